package problem

import "fmt"

// Error is a Problem that can travel as a Go error. Handlers return it to
// choose the response themselves; the mapper builds one when the failure
// carries no problem of its own.
//
// An Error is immutable once built. Its full serialization includes the
// raw cause message and the captured stack trace; use Redact before showing
// it to untrusted clients.
type Error struct {
	typ      string
	title    string
	status   Status
	detail   string
	instance string
	params   map[string]any

	cause       error
	stack       StackTrace
	wantsStack  bool
	stackSource StackTrace
}

// Option configures an Error built by New.
type Option func(*Error)

// New builds an Error from opts.
func New(opts ...Option) *Error {
	e := &Error{}
	for _, opt := range opts {
		opt(e)
	}

	switch {
	case e.stackSource != nil:
		e.stack = e.stackSource
	case e.wantsStack:
		e.stack = Callers(1)
	}
	e.stackSource = nil
	e.wantsStack = false

	return e
}

// WithType sets the problem type URI.
func WithType(uri string) Option {
	return func(e *Error) { e.typ = uri }
}

// WithTitle sets the short human-readable summary.
func WithTitle(title string) Option {
	return func(e *Error) { e.title = title }
}

// WithStatus sets the HTTP status.
func WithStatus(s Status) Option {
	return func(e *Error) { e.status = s }
}

// WithDetail sets the occurrence-specific explanation.
func WithDetail(detail string) Option {
	return func(e *Error) { e.detail = detail }
}

// WithInstance sets the URI identifying this occurrence.
func WithInstance(uri string) Option {
	return func(e *Error) { e.instance = uri }
}

// WithParameter adds an extension member. Reserved member names are ignored.
func WithParameter(key string, value any) Option {
	return func(e *Error) {
		if key == "" || IsReserved(key) {
			return
		}
		if e.params == nil {
			e.params = make(map[string]any)
		}
		e.params[key] = value
	}
}

// WithCause attaches the underlying error. A nil cause is ignored.
func WithCause(err error) Option {
	return func(e *Error) {
		if err != nil {
			e.cause = err
		}
	}
}

// WithStack captures the stack at the call to New.
func WithStack() Option {
	return func(e *Error) { e.wantsStack = true }
}

// WithStackTrace attaches an already captured stack.
func WithStackTrace(st StackTrace) Option {
	return func(e *Error) {
		if len(st) > 0 {
			e.stackSource = st
		}
	}
}

func (e *Error) Type() string {
	if e.typ == "" {
		return DefaultType
	}
	return e.typ
}

func (e *Error) Title() string    { return e.title }
func (e *Error) Status() Status   { return e.status }
func (e *Error) Detail() string   { return e.detail }
func (e *Error) Instance() string { return e.instance }

func (e *Error) Parameters() map[string]any { return e.params }

// StackTrace returns the captured stack, or nil.
func (e *Error) StackTrace() StackTrace { return e.stack }

// Cause returns the attached cause, or nil.
func (e *Error) Cause() error { return e.cause }

func (e *Error) Unwrap() error { return e.cause }

// Error formats as "title: detail", falling back to whichever is present
// and finally to the status text.
func (e *Error) Error() string {
	switch {
	case e.title != "" && e.detail != "":
		return fmt.Sprintf("%s: %s", e.title, e.detail)
	case e.title != "":
		return e.title
	case e.detail != "":
		return e.detail
	case !e.status.IsZero():
		return e.status.String()
	default:
		return "problem"
	}
}

// MarshalJSON writes the full document, including the cause message and stack trace.
func (e *Error) MarshalJSON() ([]byte, error) {
	var o object
	o.addProblem(e)
	if e.cause != nil {
		o.add(memberMessage, e.cause.Error())
	}
	if len(e.stack) > 0 {
		o.add(memberStackTrace, e.stack)
	}
	return o.bytes()
}
