package app

import (
	"fmt"

	"github.com/godamri/helix-problem/config"
	"github.com/godamri/helix-problem/log"
	"github.com/godamri/helix-problem/server"
)

// Config is the service configuration. With an empty env prefix the
// variables are SERVICE_NAME, LOG_LEVEL, LOG_FORMAT, HTTP_PORT, ... and
// PROBLEM_STACK_TRACE.
type Config struct {
	ServiceName string        `envconfig:"SERVICE_NAME" yaml:"service_name" validate:"required"`
	Log         log.Config    `envconfig:"LOG" yaml:"log"`
	HTTP        server.Config `envconfig:"HTTP" yaml:"http"`
	Problem     ProblemConfig `envconfig:"PROBLEM" yaml:"problem"`
}

// ProblemConfig controls error response rendering.
type ProblemConfig struct {
	// StackTrace puts stack traces and raw error messages into problem
	// responses. Development only.
	StackTrace bool `envconfig:"STACK_TRACE" yaml:"stack_trace"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "helix-problem",
		Log:         log.Config{Level: "info", Format: "json"},
		HTTP:        server.DefaultConfig(),
		Problem:     ProblemConfig{StackTrace: false},
	}
}

// LoadConfig reads defaults, then the YAML file at path (optional), then
// the environment, and returns a validated container plus the loader so
// the file can be watched for changes.
func LoadConfig(envPrefix, path string) (*config.Container[Config], *config.Loader[Config], error) {
	loader := config.NewLoader(envPrefix, path, DefaultConfig())

	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	c := config.NewContainer(DefaultConfig())
	if err := c.Update(*cfg); err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	return c, loader, nil
}
