package problem

import (
	"errors"
	"net/http"
)

// ShouldIncludeMessage reports whether the field error message may be
// copied into the problem detail. Only missing parameters qualify; any other
// message could leak internals.
func ShouldIncludeMessage(ec ErrorContext) bool {
	return ec.Kind == KindMissingParameter
}

// DefaultProblem builds the problem for a root cause that is not a Problem.
// Only the first field error is used.
func DefaultProblem(ec ErrorContext, status Status) *Error {
	opts := []Option{WithStatus(status), WithCause(ec.RootCause)}

	if len(ec.Errors) > 0 {
		fe := ec.Errors[0]
		if fe.Title != "" {
			opts = append(opts, WithTitle(fe.Title))
		}
		if fe.Message != "" && ShouldIncludeMessage(ec) {
			opts = append(opts, WithDetail(fe.Message))
		}
		if fe.Path != "" {
			opts = append(opts, WithParameter("path", fe.Path))
		}
	}

	var st StackTracer
	if errors.As(ec.RootCause, &st) {
		opts = append(opts, WithStackTrace(st.StackTrace()))
	}

	return New(opts...)
}

// RootProblem returns the root cause itself when it is a Problem, and the
// default problem otherwise.
func RootProblem(ec ErrorContext, status Status) Problem {
	if ec.Kind == KindProblem {
		var p Problem
		if errors.As(ec.RootCause, &p) {
			return p
		}
	}
	return DefaultProblem(ec, status)
}

// Body returns the value to serialize for ec.
//
// With stack traces enabled the root problem is returned as is. Otherwise a
// StructuredProblem is returned unmodified and anything else is redacted.
func Body(ec ErrorContext, status Status, includeStackTrace bool) Problem {
	root := RootProblem(ec, status)
	if includeStackTrace {
		return root
	}
	if sp, ok := root.(StructuredProblem); ok {
		return sp
	}
	return Redact(root)
}

// BuildResponseBody sets the problem content type and body on base.
// HEAD responses carry no body and are returned unchanged.
func BuildResponseBody(ec ErrorContext, base Response, includeStackTrace bool) Response {
	if ec.Method == http.MethodHead {
		return base
	}
	base.ContentType = ContentType
	base.Body = Body(ec, base.Status, includeStackTrace)
	return base
}

// Processor applies the stack trace policy from configuration.
// It is safe for concurrent use.
type Processor struct {
	stackTrace func() bool
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// IncludeStackTrace fixes the stack trace policy.
func IncludeStackTrace(enabled bool) ProcessorOption {
	return func(p *Processor) {
		p.stackTrace = func() bool { return enabled }
	}
}

// IncludeStackTraceFunc reads the policy on every request, so a reloaded
// configuration takes effect without rebuilding the Processor.
func IncludeStackTraceFunc(fn func() bool) ProcessorOption {
	return func(p *Processor) {
		if fn != nil {
			p.stackTrace = fn
		}
	}
}

// NewProcessor returns a Processor that redacts stack traces unless configured otherwise.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{stackTrace: func() bool { return false }}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IncludesStackTrace reports the current policy.
func (p *Processor) IncludesStackTrace() bool { return p.stackTrace() }

// Process is BuildResponseBody under the configured policy.
func (p *Processor) Process(ec ErrorContext, base Response) Response {
	return BuildResponseBody(ec, base, p.stackTrace())
}

// Body is the package-level Body under the configured policy.
func (p *Processor) Body(ec ErrorContext, status Status) Problem {
	return Body(ec, status, p.stackTrace())
}
