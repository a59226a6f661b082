package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Loader handles configuration loading from YAML and Environment variables.
// Priority: Env Vars > YAML > Defaults.
//
// Defaults come from the value passed to NewLoader rather than `default`
// struct tags, because envconfig would otherwise overwrite YAML values with
// the tag default whenever the variable is unset.
type Loader[T any] struct {
	envPrefix  string
	configPath string
	defaults   T
}

func NewLoader[T any](envPrefix, configPath string, defaults T) *Loader[T] {
	return &Loader[T]{
		envPrefix:  envPrefix,
		configPath: configPath,
		defaults:   defaults,
	}
}

// Path returns the YAML file the loader reads, or "".
func (l *Loader[T]) Path() string { return l.configPath }

// Load reads the configuration.
func (l *Loader[T]) Load() (*T, error) {
	cfg := l.defaults

	// 1. Load from YAML if exists
	if l.configPath != "" {
		file, err := os.Open(l.configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Optional: env vars alone are a valid setup.
		case err != nil:
			return nil, fmt.Errorf("failed to open config file: %w", err)
		default:
			defer file.Close()
			decoder := yaml.NewDecoder(file)
			decoder.KnownFields(true)
			if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to decode config file: %w", err)
			}
		}
	}

	// 2. Override with Environment Variables
	if err := envconfig.Process(l.envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env vars: %w", err)
	}

	return &cfg, nil
}
