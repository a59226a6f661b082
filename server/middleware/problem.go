package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/godamri/helix-problem/http/response"
	"github.com/godamri/helix-problem/problem"
)

// HandlerFunc is an HTTP handler that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorHandler turns handler errors into problem+json responses.
type ErrorHandler struct {
	processor *problem.Processor
	logger    *slog.Logger
}

func NewErrorHandler(processor *problem.Processor, logger *slog.Logger) *ErrorHandler {
	if processor == nil {
		processor = problem.NewProcessor()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{processor: processor, logger: logger}
}

// Handle adapts fn to http.HandlerFunc. A returned error is written as a
// problem; fn must not have written a response in that case.
func (h *ErrorHandler) Handle(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.Write(w, r, err)
		}
	}
}

// Write picks the status for err and writes the problem response.
func (h *ErrorHandler) Write(w http.ResponseWriter, r *http.Request, err error) {
	h.WriteStatus(w, r, response.StatusFor(err), err)
}

// WriteStatus writes the problem response for err with an already chosen status.
func (h *ErrorHandler) WriteStatus(w http.ResponseWriter, r *http.Request, status problem.Status, err error) {
	ec := problem.NewErrorContext(r.Method, err, problem.FieldErrorsOf(err)...)
	resp := h.processor.Process(ec, problem.Response{Status: status})
	shape := shapeOf(resp.Body)

	h.log(r, ec, status, shape)
	problemResponsesTotal.WithLabelValues(strconv.Itoa(status.Code), ec.Kind.String(), shape).Inc()

	if werr := response.WriteProblem(w, resp); werr != nil {
		h.logger.WarnContext(r.Context(), "problem: failed to write response", "error", werr, "status", status.Code)
	}
}

// NotFound answers unmatched routes.
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Write(w, r, routingProblem(r, http.StatusNotFound))
}

// MethodNotAllowed answers routes matched with the wrong method.
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.Write(w, r, routingProblem(r, http.StatusMethodNotAllowed))
}

func routingProblem(r *http.Request, code int) *problem.Error {
	return problem.New(
		problem.WithStatus(problem.StatusOf(code)),
		problem.WithTitle(http.StatusText(code)),
		problem.WithInstance(r.URL.Path),
	)
}

func (h *ErrorHandler) log(r *http.Request, ec problem.ErrorContext, status problem.Status, shape string) {
	attrs := []any{
		"status", status.Code,
		"kind", ec.Kind.String(),
		"shape", shape,
		"method", r.Method,
		"path", r.URL.Path,
	}
	if ec.RootCause != nil {
		attrs = append(attrs, "error", ec.RootCause)
	}

	if status.Code >= http.StatusInternalServerError {
		// The stack always goes to the log, whatever the response policy says.
		var st problem.StackTracer
		if errors.As(ec.RootCause, &st) {
			attrs = append(attrs, "stack", st.StackTrace())
		}
		h.logger.ErrorContext(r.Context(), "problem_response", attrs...)
		return
	}
	h.logger.WarnContext(r.Context(), "problem_response", attrs...)
}

func shapeOf(body any) string {
	switch body.(type) {
	case nil:
		return "none"
	case problem.Redacted:
		return "redacted"
	case problem.StructuredProblem:
		return "structured"
	default:
		return "full"
	}
}
