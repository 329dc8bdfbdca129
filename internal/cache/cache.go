// Package cache provides a small TTL cache with an injectable clock so tests
// can control expiry deterministically.
package cache

import (
	"sync"
	"time"
)

// Clock returns the current time. Inject time.Now in production.
type Clock func() time.Time

type entry[T any] struct {
	value    T
	loadedAt time.Time
}

// TTL caches a single value for a fixed duration. Zero TTL disables caching
// entirely so every Get falls through to the loader.
type TTL[T any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	clock Clock
	ent   *entry[T]
}

// NewTTL builds a cache holding values for ttl according to clock.
func NewTTL[T any](ttl time.Duration, clock Clock) *TTL[T] {
	return &TTL[T]{ttl: ttl, clock: clock}
}

// Get returns the cached value, or loads and caches a fresh one when the
// entry is missing or older than the TTL.
func (c *TTL[T]) Get(load func() (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	if c.ent != nil && c.ttl > 0 && now.Sub(c.ent.loadedAt) < c.ttl {
		return c.ent.value, nil
	}

	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}
	c.ent = &entry[T]{value: v, loadedAt: now}
	return v, nil
}

// Invalidate drops the cached value; the next Get reloads.
func (c *TTL[T]) Invalidate() {
	c.mu.Lock()
	c.ent = nil
	c.mu.Unlock()
}
