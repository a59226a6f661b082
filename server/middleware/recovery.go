package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/godamri/helix-problem/problem"
)

// PanicError is a recovered panic together with the stack it was raised on.
type PanicError struct {
	Value any
	Stack problem.StackTrace
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

func (e *PanicError) StackTrace() problem.StackTrace { return e.Stack }

// Unwrap exposes error panic values, so panic(someProblem) keeps its shape.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// PanicRecovery handles panics in HTTP handlers.
// The panic becomes a *PanicError routed through the problem pipeline, so
// the stack reaches the client only when stack traces are enabled.
// CRITICAL: This does NOT call os.Exit(1). The server must stay alive.
func (h *ErrorHandler) PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				// net/http uses this to abort the response silently.
				panic(rec)
			}

			perr := &PanicError{Value: rec, Stack: problem.Callers(2)}

			if ww.Status() != 0 {
				// Too late for a problem body; the handler already started the response.
				h.logger.ErrorContext(r.Context(), "HTTP PANIC RECOVERED after response started",
					"error", perr,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", perr.Stack,
				)
				return
			}

			h.Write(ww, r, perr)
		}()

		next.ServeHTTP(ww, r)
	})
}
