package server

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/andaru/acs/message"
	"github.com/andaru/acs/metrics"
	"github.com/andaru/acs/session"
	"github.com/andaru/acs/transport"
	"github.com/andaru/acs/version"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultMaxBodySize is the decoded request body limit used when
// Config.MaxBodySize is zero
const DefaultMaxBodySize = 1 << 20

// Persister stores parameter lists reported by CPEs. It receives
// GetParameterValuesResponse, GetParameterNamesResponse and
// GetParameterAttributesResponse messages.
type Persister interface {
	Persist(ctx context.Context, device string, resp message.CpeResponse) error
}

// QueueSource returns the commands to send to a newly connected CPE
type QueueSource func() []message.AcsRequest

// Config contains Server configuration
type Config struct {
	// Queue supplies each new session's command queue. Sessions have an
	// empty queue when nil.
	Queue QueueSource
	// Persister, if not nil, receives parameter lists reported by CPEs
	Persister Persister
	// Logger defaults to a no-op logger
	Logger *zap.Logger
	// Metrics may be nil
	Metrics *metrics.Metrics
	// MaxBodySize limits the decoded size of request bodies
	MaxBodySize int64
	// KeepAliveTimeout is the idle timeout of CPE connections; zero
	// uses net/http's default
	KeepAliveTimeout time.Duration
}

// Server serves CWMP sessions over HTTP
type Server struct {
	config   Config
	router   *mux.Router
	sessions *connTable
}

// New returns a new Server
func New(config Config) *Server {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = DefaultMaxBodySize
	}
	s := &Server{config: config, sessions: newConnTable()}
	s.router = mux.NewRouter()
	s.router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	s.router.PathPrefix("/").Methods(http.MethodPost).HandlerFunc(s.handle)
	return s
}

// Handler returns the CWMP HTTP handler
func (s *Server) Handler() http.Handler { return s.router }

// HTTPServer returns an http.Server listening on addr and serving s
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ConnContext:       s.ConnContext,
		ConnState:         s.ConnState,
		IdleTimeout:       s.config.KeepAliveTimeout,
		ReadHeaderTimeout: 30 * time.Second,
		ErrorLog:          zap.NewStdLog(s.config.Logger),
	}
}

// ConnContext records the connection in the context of its requests. It
// is installed as http.Server.ConnContext.
func (s *Server) ConnContext(ctx context.Context, c net.Conn) context.Context {
	return context.WithValue(ctx, connKey{}, c)
}

// ConnState drops the session of a closed connection. It is installed
// as http.Server.ConnState.
func (s *Server) ConnState(c net.Conn, state http.ConnState) {
	switch state {
	case http.StateClosed, http.StateHijacked:
		if sess, ok := s.sessions.remove(c); ok {
			sess.State.Opaque.(*handler).reason = metrics.ReasonDisconnected
			sess.Close(context.Background())
		}
	}
}

// Sessions returns the number of open sessions
func (s *Server) Sessions() int { return s.sessions.len() }

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	w.Header().Set("Connection", "close")
	http.Error(w, "405 Method Not Allowed", http.StatusMethodNotAllowed)
}

func unsupportedMediaType(w http.ResponseWriter) {
	w.Header().Set("Connection", "close")
	http.Error(w, "415 Unsupported Media Type", http.StatusUnsupportedMediaType)
}

// handle serves one CWMP exchange
func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() { s.config.Metrics.ObserveExchange(time.Since(start)) }()
	log := s.config.Logger.With(zap.String("remote_addr", r.RemoteAddr))

	body, status, err := s.readBody(r)
	if err != nil {
		log.Warn("bad request", zap.Error(err))
		if status == http.StatusUnsupportedMediaType {
			unsupportedMediaType(w)
			return
		}
		w.Header().Set("Connection", "close")
		http.Error(w, http.StatusText(status), status)
		return
	}

	var key interface{} = r.RemoteAddr
	if c, ok := connFromContext(r.Context()); ok {
		key = c
	}
	sess, ok := s.sessions.get(key)
	if !ok {
		sess = s.newSession(key, log)
		s.sessions.put(key, sess)
		log.Debug("session created")
	}

	before := sess.State.Counters.TxCommands
	warnings := len(sess.State.Warnings)
	requests := len(sess.State.CpeRequests)
	reply := sess.Exchange(r.Context(), body)
	s.config.Metrics.Warnings(len(sess.State.Warnings) - warnings)
	if n := len(sess.State.CpeRequests); n > requests && sess.State.CpeRequests[n-1] != session.EndOfRequests {
		s.config.Metrics.RPCReceived(sess.State.CpeRequests[n-1])
	}
	if sess.State.Counters.TxCommands > before {
		s.config.Metrics.CommandSent(reply.Method)
	}
	if reply.Close {
		s.sessions.remove(key)
	}
	s.write(w, r, reply, log)
}

// readBody returns the request body decoded to a UTF-8 string, or the
// status to reply with if it cannot be
func (s *Server) readBody(r *http.Request) (string, int, error) {
	encoding := r.Header.Get("Content-Encoding")
	if r.ContentLength == 0 {
		encoding = ""
	}
	reader, err := transport.NewReader(r.Body, encoding)
	if err != nil {
		if errors.Is(err, transport.ErrUnsupportedEncoding) {
			return "", http.StatusUnsupportedMediaType, err
		}
		return "", http.StatusBadRequest, err
	}
	defer reader.Close()
	raw, err := reader.ReadAll(s.config.MaxBodySize)
	if err != nil {
		if errors.Is(err, transport.ErrBodyTooLarge) {
			return "", http.StatusRequestEntityTooLarge, err
		}
		return "", http.StatusBadRequest, err
	}
	body, err := transport.DecodeCharset(raw, r.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, transport.ErrUnsupportedCharset) {
			return "", http.StatusUnsupportedMediaType, err
		}
		return "", http.StatusBadRequest, err
	}
	return body, http.StatusOK, nil
}

func (s *Server) newSession(key interface{}, log *zap.Logger) *session.Session {
	var queue []message.AcsRequest
	if s.config.Queue != nil {
		queue = s.config.Queue()
	}
	h := &handler{server: s, key: key, reason: metrics.ReasonComplete}
	sess := session.New(session.Config{Queue: queue, Logger: log}, h)
	sess.State.Opaque = h
	return sess
}

// write sends reply, compressed like the request when it has a body
func (s *Server) write(w http.ResponseWriter, r *http.Request, reply session.Reply, log *zap.Logger) {
	header := w.Header()
	header.Set("Server", version.Product())
	header.Set("SOAPServer", version.Product())
	if reply.Close {
		header.Set("Connection", "close")
	}
	body := reply.Body
	if len(body) > 0 {
		header.Set("Content-Type", `text/xml; charset="utf-8"`)
		if enc := r.Header.Get("Content-Encoding"); enc != "" {
			compressed, encoding, err := compress(body, enc)
			if err != nil {
				log.Error("compress reply", zap.Error(err))
			} else if encoding != "" {
				body = compressed
				header.Set("Content-Encoding", encoding)
			}
		}
		header.Set("Content-Length", strconv.Itoa(len(body)))
	}
	w.WriteHeader(reply.Code)
	if len(body) == 0 {
		return
	}
	if _, err := w.Write(body); err != nil {
		log.Warn("write reply", zap.Error(err))
	}
}

// compress encodes body with contentEncoding, returning the encoding
// to advertise
func compress(body []byte, contentEncoding string) ([]byte, string, error) {
	var buf bytes.Buffer
	tw, err := transport.NewWriter(&buf, contentEncoding)
	if err != nil {
		return nil, "", err
	}
	if _, err = tw.Write(body); err == nil {
		err = tw.Close()
	}
	if err != nil {
		return nil, "", errors.Wrap(err, "compress")
	}
	return buf.Bytes(), tw.Encoding, nil
}
