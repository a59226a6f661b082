package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// Runner encapsulates the startup logic.
// It handles signals and context cancellation so you don't have to write it 50 times.
type Runner struct {
	Logger *slog.Logger
}

func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Logger: logger}
}

// Run executes fn with a context that cancels on SIGTERM/SIGINT and exits
// the process with status 1 if fn fails.
func (r *Runner) Run(fn func(ctx context.Context) error) {
	if err := r.RunContext(context.Background(), fn); err != nil {
		os.Exit(1)
	}
}

// RunContext is Run without the exit, for embedding and tests.
func (r *Runner) RunContext(parent context.Context, fn func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.Logger.Info("Service starting...")

	if err := fn(ctx); err != nil {
		r.Logger.Error("Service failed", "error", err)
		return err
	}

	r.Logger.Info("Service shutdown complete.")
	return nil
}
