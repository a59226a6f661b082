package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type sample struct {
	Name       string `envconfig:"SAMPLE_NAME" yaml:"name" validate:"required"`
	StackTrace bool   `envconfig:"SAMPLE_STACK_TRACE" yaml:"stack_trace"`
	Port       string `envconfig:"SAMPLE_PORT" yaml:"port"`
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoaderPriority(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "name: from-yaml\nstack_trace: true\n")

	t.Setenv("CFGTEST_SAMPLE_PORT", "9090")

	cfg, err := NewLoader("CFGTEST", path, sample{Name: "default", Port: "8080"}).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Name != "from-yaml" {
		t.Fatalf("expected yaml to override defaults, got %q", cfg.Name)
	}
	if !cfg.StackTrace {
		t.Fatalf("expected yaml value to survive env processing")
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected env to override defaults, got %q", cfg.Port)
	}

	t.Setenv("CFGTEST_SAMPLE_STACK_TRACE", "false")
	cfg, err = NewLoader("CFGTEST", path, sample{}).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StackTrace {
		t.Fatalf("expected env to override yaml")
	}
}

func TestLoaderMissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewLoader("CFGTEST", filepath.Join(t.TempDir(), "absent.yaml"), sample{Name: "default"}).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Name != "default" || cfg.StackTrace {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoaderRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "stack_traces: true\n")

	if _, err := NewLoader("CFGTEST", path, sample{}).Load(); err == nil {
		t.Fatalf("expected unknown key to fail")
	}
}

func TestContainerUpdate(t *testing.T) {
	c := NewContainer(sample{Name: "a"})
	if err := c.Update(sample{Name: "b", StackTrace: true}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := c.Get(); got.Name != "b" || !got.StackTrace {
		t.Fatalf("unexpected snapshot %+v", got)
	}

	if err := c.Update(sample{}); err == nil {
		t.Fatalf("expected validation failure")
	}
	if c.Get().Name != "b" {
		t.Fatalf("expected previous snapshot to stay active")
	}
}

func TestWatchReloadsContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "name: svc\nstack_trace: false\n")

	loader := NewLoader("CFGTEST", path, sample{})
	c := NewContainer(sample{Name: "svc"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan struct{}, 1)
	reload := Reload(loader, c, nil)
	w := NewFileWatcher(path, 10*time.Millisecond, nil)
	go w.Watch(ctx, func() {
		reload()
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})

	// Give the watcher time to record the initial mod time.
	time.Sleep(50 * time.Millisecond)
	writeFile(t, path, "name: svc\nstack_trace: true\n")
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatalf("watcher did not fire")
	}
	if !c.Get().StackTrace {
		t.Fatalf("expected reloaded stack trace flag")
	}
}
