// Package cache provides a small TTL cache for derived views.
//
// The store stays the single source of truth: cached overviews are purged
// on every successful mutation, so a stale entry can never outlive one
// interaction cycle.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	data      T
	expiresAt time.Time
}

// TTLCache is a mutex-guarded map cache with per-entry expiry.
type TTLCache[T any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]entry[T]
}

func NewTTLCache[T any](ttl time.Duration) *TTLCache[T] {
	return &TTLCache[T]{
		ttl:   ttl,
		items: make(map[string]entry[T]),
	}
}

func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.items, key)
		return zero, false
	}
	return e.data, true
}

func (c *TTLCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry[T]{data: data, expiresAt: time.Now().Add(c.ttl)}
}

// Purge drops every entry. Called after each mutation.
func (c *TTLCache[T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entry[T])
}

// CleanExpired removes expired entries and returns how many were dropped.
func (c *TTLCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for k, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// Size returns the current number of entries.
func (c *TTLCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
