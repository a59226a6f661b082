package config

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
)

// Container holds the config safely for concurrent access.
type Container[T any] struct {
	store    atomic.Pointer[T]
	mu       sync.Mutex // Only for writing updates
	validate *validator.Validate
}

// NewContainer initializes the config container.
func NewContainer[T any](initial T) *Container[T] {
	c := &Container[T]{
		validate: validator.New(),
	}
	c.store.Store(&initial)
	return c
}

// Get returns the current snapshot of the config.
// Lock-free; safe to call on every request.
func (c *Container[T]) Get() *T {
	return c.store.Load()
}

// Update validates newConfig and swaps it in. On failure the previous
// snapshot stays active.
func (c *Container[T]) Update(newConfig T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.validate.Struct(newConfig); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	c.store.Store(&newConfig)
	return nil
}
