package session

import (
	"context"
	"net/http"

	"github.com/andaru/acs/cwmperr"
	"github.com/andaru/acs/message"
	"github.com/andaru/acs/soap"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// EndOfRequests is recorded in the CPE request history when the CPE
// sends an empty message, signalling it has no more requests.
const EndOfRequests = "end"

// RPCMethods is the method list returned in reply to GetRPCMethods
var RPCMethods = []string{"Inform", "GetRPCMethods", "TransferComplete", "AutonomousTransferComplete"}

// New returns a new CWMP Session using Handler h
func New(config Config, h Handler) *Session {
	if h == nil {
		h = NopHandler{}
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.NewID == nil {
		config.NewID = uuid.NewString
	}
	s := &Session{
		Config:  &config,
		State:   &State{},
		handler: h,
	}
	s.State.AcsRequests = append(s.State.AcsRequests, config.Queue...)
	return s
}

// Session is the CWMP session bound to a single CPE connection.
//
// A Session is not safe for concurrent use; it is driven by the
// goroutine serving its connection.
type Session struct {
	Config *Config
	State  *State

	handler Handler
}

// Handler is the Session handler interface.
// Server applications implement this interface to observe session
// progress and to persist CPE responses.
//
// See Session.Exchange for usage.
type Handler interface {
	// OnEstablish is called once, after the CPE's first Inform has
	// been accepted.
	OnEstablish(context.Context, *Session)
	// OnResponse is called with each response received while the
	// session is draining the command queue. An error is recorded on
	// the session as an external error and does not affect session state.
	OnResponse(context.Context, *Session, message.CpeResponse) error
	// OnFault is called with each fault received while draining.
	OnFault(context.Context, *Session, message.CpeFault)
	// OnError is called with each fatal error, just before the session
	// is closed.
	OnError(context.Context, *Session, error)
	// OnClose is called once, when the session transitions to StatusClosed.
	OnClose(context.Context, *Session)
}

// NopHandler is a Handler that does nothing. Embed it to implement
// only some Handler methods.
type NopHandler struct{}

func (NopHandler) OnEstablish(context.Context, *Session)                           {}
func (NopHandler) OnResponse(context.Context, *Session, message.CpeResponse) error { return nil }
func (NopHandler) OnFault(context.Context, *Session, message.CpeFault)             {}
func (NopHandler) OnError(context.Context, *Session, error)                        {}
func (NopHandler) OnClose(context.Context, *Session)                               {}

// Config contains Session configuration
type Config struct {
	// Queue is the initial queue of commands to send to the CPE
	Queue []message.AcsRequest
	// Logger receives session logs. Defaults to a no-op logger.
	Logger *zap.Logger
	// NewID returns correlation IDs for commands sent in reply to a
	// message without one. Defaults to random UUIDs.
	NewID func() string
}

// State contains runtime Session state
type State struct {
	// Status is the session status
	Status Status
	// CwmpVersion is the protocol version, fixed once negotiated
	CwmpVersion string
	// DeviceID is the identity reported by the CPE's Inform
	DeviceID message.DeviceID
	// CpeRequests is the history of CPE request method names, with
	// EndOfRequests appended for each empty message
	CpeRequests []string
	// AcsRequests is the queue of commands still to send
	AcsRequests []message.AcsRequest
	// Outstanding is the command sent and not yet answered, if any
	Outstanding message.AcsRequest
	// Warnings holds recoverable decode warnings
	Warnings []*cwmperr.Error
	// Counters contains session counters
	Counters struct {
		// RxMsgs is the number of HTTP messages received on the session
		RxMsgs int
		// TxCommands is the number of queued commands sent
		TxCommands int
	}

	// Opaque is user private data and is not used by the session.
	Opaque interface{}

	errs []error
}

// Status is a Session's (present) state.
type Status int

const (
	// StatusAwaitingFirstRequest is the initial session state, before
	// the CPE's Inform has been received.
	StatusAwaitingFirstRequest Status = iota
	// StatusInSession is set once the Inform is accepted. The CPE
	// may send further requests in this state.
	StatusInSession
	// StatusDraining is set once the CPE sends an empty message.
	// Queued commands are sent one at a time in this state.
	StatusDraining
	// StatusClosed indicates the session has ended, either normally
	// or due to an error.
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusAwaitingFirstRequest:
		return "awaiting-first-request"
	case StatusInSession:
		return "in-session"
	case StatusDraining:
		return "draining"
	case StatusClosed:
		return "closed"
	}
	return "unknown"
}

// Reply is the HTTP reply to send for one exchange
type Reply struct {
	// Code is the HTTP status code
	Code int
	// Body is the response envelope, nil for an empty reply
	Body []byte
	// Method is the name of the method in Body, if any
	Method string
	// Close is set when the session has ended and the connection
	// should be closed after the reply is written
	Close bool
}

// Exchange processes one HTTP request body received from the CPE and
// returns the reply to send.
//
// Requests from the CPE are answered directly. Once the CPE sends an
// empty message, each further empty message is answered with the next
// queued command until the queue is empty, at which point the session
// closes. Responses and faults received while draining are passed to
// the Handler and answered with an empty 204 reply. Anything else
// closes the session.
func (s *Session) Exchange(ctx context.Context, body string) Reply {
	if s.State.Status == StatusClosed {
		return s.terminate(ctx, cwmperr.Termination("session is closed"))
	}
	s.State.Counters.RxMsgs++

	msg, warnings, err := soap.Decode(body, s.State.CwmpVersion)
	s.addWarnings(warnings)
	if err != nil {
		return s.terminate(ctx, err)
	}
	if s.State.CwmpVersion == "" && msg.CwmpVersion != "" {
		s.State.CwmpVersion = msg.CwmpVersion
	}

	switch {
	case msg.Empty():
		s.State.CpeRequests = append(s.State.CpeRequests, EndOfRequests)
		return s.drain(ctx, msg)
	case msg.CpeRequest != nil:
		s.State.CpeRequests = append(s.State.CpeRequests, msg.CpeRequest.MethodName())
		return s.request(ctx, msg)
	case msg.CpeResponse != nil:
		if s.State.Status != StatusDraining {
			return s.terminate(ctx, cwmperr.Termination("unexpected "+msg.CpeResponse.MethodName()+" while "+s.State.Status.String()))
		}
		s.State.Outstanding = nil
		if err := s.handler.OnResponse(ctx, s, msg.CpeResponse); err != nil {
			s.external(err, msg.CpeResponse.MethodName())
		}
		return Reply{Code: http.StatusNoContent}
	default:
		if s.State.Status != StatusDraining {
			return s.terminate(ctx, cwmperr.Termination("unexpected fault while "+s.State.Status.String()))
		}
		s.State.Outstanding = nil
		s.handler.OnFault(ctx, s, *msg.CpeFault)
		return Reply{Code: http.StatusNoContent}
	}
}

// request answers a request sent by the CPE
func (s *Session) request(ctx context.Context, msg *soap.Message) Reply {
	var resp message.AcsResponse
	switch req := msg.CpeRequest.(type) {
	case message.Inform:
		if s.State.Status != StatusAwaitingFirstRequest {
			return s.terminate(ctx, cwmperr.Termination("unexpected Inform while "+s.State.Status.String()))
		}
		s.State.DeviceID = req.DeviceID
		s.State.Status = StatusInSession
		s.log().Info("session established", zap.String("cwmp_version", s.State.CwmpVersion))
		s.handler.OnEstablish(ctx, s)
		return s.reply(ctx, msg.ID, message.InformResponse{MaxEnvelopes: 1})
	case message.GetRPCMethods:
		resp = message.GetRPCMethodsResponse{MethodList: append([]string(nil), RPCMethods...)}
	case message.TransferComplete:
		resp = message.TransferCompleteResponse{}
	case message.AutonomousTransferComplete:
		resp = message.AutonomousTransferCompleteResponse{}
	case message.RequestDownload:
		resp = message.RequestDownloadResponse{}
	}
	if s.State.Status != StatusInSession {
		return s.terminate(ctx, cwmperr.Termination("unexpected "+msg.CpeRequest.MethodName()+" while "+s.State.Status.String()))
	}
	return s.reply(ctx, msg.ID, resp)
}

// drain handles an empty message: the next queued command is sent, or
// the session ends if there are none left.
func (s *Session) drain(ctx context.Context, msg *soap.Message) Reply {
	if s.State.Status == StatusAwaitingFirstRequest && len(s.State.AcsRequests) > 0 {
		return s.terminate(ctx, cwmperr.Termination("empty message before Inform"))
	}
	s.State.Status = StatusDraining
	if len(s.State.AcsRequests) == 0 {
		s.log().Info("session complete", zap.Int("commands", s.State.Counters.TxCommands))
		s.close(ctx)
		return Reply{Code: http.StatusOK, Close: true}
	}

	if s.State.Outstanding != nil {
		s.log().Warn("command unanswered", zap.String("method", s.State.Outstanding.MethodName()))
	}
	next := s.State.AcsRequests[0]
	s.State.AcsRequests = s.State.AcsRequests[1:]
	s.State.Outstanding = next
	s.State.Counters.TxCommands++

	id := msg.ID
	if id == "" {
		id = s.Config.NewID()
	}
	return s.reply(ctx, id, next)
}

// reply encodes m for the CPE
func (s *Session) reply(ctx context.Context, id string, m message.Method) Reply {
	b, err := soap.Encode(id, s.State.CwmpVersion, m)
	if err != nil {
		return s.terminate(ctx, err)
	}
	s.log().Debug("reply", zap.String("method", m.MethodName()), zap.String("id", id))
	return Reply{Code: http.StatusOK, Body: b, Method: m.MethodName()}
}

// terminate closes the session following a fatal error. The CPE is sent
// an empty 200 reply.
func (s *Session) terminate(ctx context.Context, err error) Reply {
	s.AddError(err)
	s.log().Warn("session terminated", zap.Error(err))
	if s.State.Status != StatusClosed {
		s.handler.OnError(ctx, s, err)
		s.close(ctx)
	}
	return Reply{Code: http.StatusOK, Close: true}
}

// Close closes the session, calling the Handler's OnClose if the
// session was not already closed.
func (s *Session) Close(ctx context.Context) { s.close(ctx) }

func (s *Session) close(ctx context.Context) {
	if s.State.Status == StatusClosed {
		return
	}
	s.State.Status = StatusClosed
	s.handler.OnClose(ctx, s)
}

// external records an error returned by a collaborator
func (s *Session) external(err error, method string) {
	e := cwmperr.External(err.Error(), cwmperr.WithParameter(method))
	s.AddError(errors.WithStack(e))
	s.log().Error("handler failed", zap.String("method", method), zap.Error(err))
}

func (s *Session) addWarnings(warnings []*cwmperr.Error) {
	for _, w := range warnings {
		s.log().Warn("decode warning", zap.String("parameter", w.Parameter), zap.String("message", w.Message))
	}
	s.State.Warnings = append(s.State.Warnings, warnings...)
}

// AddError adds an error to the session state
func (s *Session) AddError(errs ...error) (added int) {
	for _, err := range errs {
		if err != nil {
			s.State.errs = append(s.State.errs, err)
			added++
		}
	}
	return added
}

// Errors returns all session errors
func (s *Session) Errors() []error { return s.State.errs }

func (s *Session) log() *zap.Logger {
	l := s.Config.Logger
	if !s.State.DeviceID.IsZero() {
		l = l.With(zap.String("device", s.State.DeviceID.String()))
	}
	return l
}
