package server

import (
	"context"

	"github.com/andaru/acs/cwmperr"
	"github.com/andaru/acs/message"
	"github.com/andaru/acs/metrics"
	"github.com/andaru/acs/session"
	"go.uber.org/zap"
)

// handler observes one session on behalf of the Server
type handler struct {
	server *Server
	key    interface{}
	reason string
}

var _ session.Handler = (*handler)(nil)

func (h *handler) log(s *session.Session) *zap.Logger {
	if s.State.DeviceID.IsZero() {
		return s.Config.Logger
	}
	return s.Config.Logger.With(zap.String("device", s.State.DeviceID.String()))
}

func (h *handler) OnEstablish(_ context.Context, s *session.Session) {
	h.server.config.Metrics.SessionOpened()
	h.log(s).Info("cpe connected",
		zap.String("manufacturer", s.State.DeviceID.Manufacturer),
		zap.Int("queued", len(s.State.AcsRequests)),
	)
}

func (h *handler) OnResponse(ctx context.Context, s *session.Session, resp message.CpeResponse) error {
	h.server.config.Metrics.RPCReceived(resp.MethodName())
	p := h.server.config.Persister
	if p == nil {
		return nil
	}
	switch resp.(type) {
	case message.GetParameterValuesResponse, message.GetParameterNamesResponse, message.GetParameterAttributesResponse:
	default:
		return nil
	}
	if err := p.Persist(ctx, s.State.DeviceID.String(), resp); err != nil {
		h.server.config.Metrics.Error(cwmperr.External(err.Error()))
		return err
	}
	return nil
}

func (h *handler) OnFault(_ context.Context, s *session.Session, f message.CpeFault) {
	h.server.config.Metrics.RPCReceived(f.MethodName())
	fields := []zap.Field{zap.String("faultcode", f.FaultCode), zap.String("faultstring", f.FaultString)}
	if f.Detail != nil {
		fields = append(fields, zap.Int("cwmp_fault", f.Detail.FaultCode), zap.String("cwmp_fault_string", f.Detail.FaultString))
	}
	if s.State.Outstanding != nil {
		fields = append(fields, zap.String("command", s.State.Outstanding.MethodName()))
	}
	h.log(s).Warn("cpe fault", fields...)
}

func (h *handler) OnError(_ context.Context, _ *session.Session, err error) {
	h.reason = metrics.ReasonTerminated
	h.server.config.Metrics.Error(err)
}

func (h *handler) OnClose(_ context.Context, s *session.Session) {
	h.server.sessions.removeSession(h.key, s)
	h.server.config.Metrics.SessionClosed(h.reason)
	h.log(s).Info("session closed",
		zap.String("reason", h.reason),
		zap.Int("commands", s.State.Counters.TxCommands),
		zap.Int("messages", s.State.Counters.RxMsgs),
	)
}
