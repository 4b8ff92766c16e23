package cwmperr

// Option is an Error option function
type Option func(*Error)

func WithMessage(msg string) Option    { return func(e *Error) { e.Message = msg } }
func WithCode(code int) Option         { return func(e *Error) { e.Code = code } }
func WithOffset(offset int) Option     { return func(e *Error) { e.Offset = offset } }
func WithParameter(name string) Option { return func(e *Error) { e.Parameter = name } }
