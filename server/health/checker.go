package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/godamri/helix-problem/http/response"
	"github.com/godamri/helix-problem/problem"
)

// Pinger is anything readiness depends on (database, broker, upstream).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// Checker handles the health check endpoints.
type Checker struct {
	deps    map[string]Pinger
	timeout time.Duration
	logger  *slog.Logger
}

// NewChecker creates a new health checker instance.
func NewChecker(deps map[string]Pinger, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		deps: deps,
		// If a dependency is slow (>200ms), we consider ourselves down to prevent traffic blackholes.
		timeout: 200 * time.Millisecond,
		logger:  logger,
	}
}

// RegisterRoutes registers the health check routes on the router.
func (c *Checker) RegisterRoutes(r chi.Router) {
	r.Get("/health", c.HandleHealth)   // Liveness
	r.Get("/ready", c.HandleReadiness) // Readiness
}

// HandleHealth provides a simple liveness check (Kubernetes Liveness Probe).
func (c *Checker) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// HandleReadiness checks every dependency. A failing dependency answers
// with a 503 problem listing which checks are down; the ping errors
// themselves only go to the log.
func (c *Checker) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
	defer cancel()

	checks := make(map[string]string, len(c.deps))
	down := false
	for name, dep := range c.deps {
		if err := dep.PingContext(ctx); err != nil {
			c.logger.ErrorContext(r.Context(), "readiness check failed", "dependency", name, "error", err)
			checks[name] = "DOWN"
			down = true
			continue
		}
		checks[name] = "UP"
	}

	if down {
		status := problem.StatusOf(http.StatusServiceUnavailable)
		body := problem.Redact(problem.New(
			problem.WithStatus(status),
			problem.WithTitle("Service Unavailable"),
			problem.WithInstance(r.URL.Path),
			problem.WithParameter("checks", checks),
		))
		if err := response.WriteProblem(w, problem.Response{Status: status, ContentType: problem.ContentType, Body: body}); err != nil {
			c.logger.Error("failed to write health response", "error", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]any{"status": "UP", "checks": checks}); err != nil {
		c.logger.Error("failed to write health response", "error", err)
	}
}
