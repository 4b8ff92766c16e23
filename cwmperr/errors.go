package cwmperr

import (
	"bytes"
	"errors"
	"fmt"
)

// Kind classifies an Error by the layer that raised it
type Kind int

const (
	// KindParse is a malformed XML error raised by the tokenizer or attribute parser
	KindParse Kind = iota
	// KindProtocol is a CWMP protocol error: unknown namespace or unsupported method
	KindProtocol
	// KindCoercion is a recoverable parameter value coercion failure
	KindCoercion
	// KindExternal is an error reported by a collaborator, such as the persistence layer
	KindExternal
	// KindTermination indicates the session engine closed a session that
	// arrived in an unexpected state
	KindTermination
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindProtocol:
		return "protocol"
	case KindCoercion:
		return "coercion"
	case KindExternal:
		return "external"
	case KindTermination:
		return "termination"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k *Kind) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "parse":
		*k = KindParse
	case "protocol":
		*k = KindProtocol
	case "coercion":
		*k = KindCoercion
	case "external":
		*k = KindExternal
	case "termination":
		*k = KindTermination
	default:
		return errors.New("unknown value")
	}
	return nil
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// CodeMethodNotSupported is the CWMP fault code for an unsupported method
const CodeMethodNotSupported = 8000

// Error is a CWMP session engine error.
//
// Offset is meaningful for KindParse errors only, where it holds the
// byte offset into the document being parsed.
type Error struct {
	Kind      Kind   `json:"kind"`
	Code      int    `json:"code,omitempty"`
	Offset    int    `json:"offset,omitempty"`
	Parameter string `json:"parameter,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (e Error) Error() string {
	s := e.Kind.String()
	if e.Kind == KindCoercion {
		s += " warning"
	} else {
		s += " error"
	}
	if e.Kind == KindParse {
		s += fmt.Sprintf(" offset:%d", e.Offset)
	}
	if e.Code != 0 {
		s += fmt.Sprintf(" code:%d", e.Code)
	}
	if e.Parameter != "" {
		s += " parameter:" + e.Parameter
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	return s
}

// Fatal reports whether the error must end the current exchange.
// Only coercion warnings are recoverable.
func (e Error) Fatal() bool { return e.Kind != KindCoercion }

// KindOf returns the Kind of err if it is (or wraps) an *Error
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func newError(k Kind, msg string, opts []Option) *Error {
	e := &Error{Kind: k, Message: msg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func Parse(offset int, msg string, opts ...Option) *Error {
	return newError(KindParse, msg, append([]Option{WithOffset(offset)}, opts...))
}

func Protocol(msg string, opts ...Option) *Error { return newError(KindProtocol, msg, opts) }

func UnrecognizedVersion(uri string, opts ...Option) *Error {
	return newError(KindProtocol, "unrecognized CWMP version: "+uri, opts)
}

func MethodNotSupported(method string, opts ...Option) *Error {
	e := newError(KindProtocol, "method not supported: "+method, opts)
	// fault code is fixed for unsupported methods
	e.Code = CodeMethodNotSupported
	return e
}

func InvalidValue(parameter, msg string, opts ...Option) *Error {
	return newError(KindCoercion, msg, append([]Option{WithParameter(parameter)}, opts...))
}

func External(msg string, opts ...Option) *Error { return newError(KindExternal, msg, opts) }

func Termination(msg string, opts ...Option) *Error { return newError(KindTermination, msg, opts) }
