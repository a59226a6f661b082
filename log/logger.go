package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/godamri/helix-problem/pkg/telemetry"
	"github.com/lmittmann/tint"
)

type Config struct {
	Level  string `envconfig:"LEVEL" yaml:"level"`   // debug, info, warn, error
	Format string `envconfig:"FORMAT" yaml:"format"` // json, console
}

// New builds the process logger on stdout.
func New(cfg Config) *slog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter builds a logger on w. Every record passes through
// telemetry.TraceHandler so it carries the request's trace identifiers.
func NewWithWriter(cfg Config, w io.Writer) *slog.Logger {
	level := ParseLevel(cfg.Level)

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "console") {
		// Pretty Print for Local Development
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		})
	} else {
		// JSON for Production (Machine Readable)
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(telemetry.NewTraceHandler(handler))
}

// ParseLevel maps a config string onto a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
