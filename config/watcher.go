package config

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// FileWatcher polls a file for changes.
// Why poll? Because fsnotify is often flaky on K8s mounted volumes due to symlink swapping strategies.
type FileWatcher struct {
	path     string
	interval time.Duration
	lastMod  time.Time
	logger   *slog.Logger
}

func NewFileWatcher(path string, interval time.Duration, logger *slog.Logger) *FileWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &FileWatcher{
		path:     path,
		interval: interval,
		logger:   logger,
	}
}

// Watch calls onChange every time the file's modification time moves
// forward. It blocks until ctx is done.
func (w *FileWatcher) Watch(ctx context.Context, onChange func()) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Initial stat
	if info, err := os.Stat(w.path); err == nil {
		w.lastMod = info.ModTime()
	}

	w.logger.Info("Config watcher started", "path", w.path, "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := os.Stat(w.path)
			if err != nil {
				continue // File might be temporarily gone during swap
			}

			if info.ModTime().After(w.lastMod) {
				w.logger.Info("Config file changed, reloading...", "path", w.path)
				w.lastMod = info.ModTime()
				onChange()
			}
		}
	}
}

// Reload returns a callback for Watch that re-runs loader and swaps the
// result into c. A broken file keeps the previous snapshot.
func Reload[T any](loader *Loader[T], c *Container[T], logger *slog.Logger) func() {
	if logger == nil {
		logger = slog.Default()
	}
	return func() {
		cfg, err := loader.Load()
		if err != nil {
			logger.Error("Config reload failed, keeping previous config", "path", loader.Path(), "error", err)
			return
		}
		if err := c.Update(*cfg); err != nil {
			logger.Error("Config reload rejected, keeping previous config", "path", loader.Path(), "error", err)
			return
		}
		logger.Info("Config reloaded", "path", loader.Path())
	}
}
