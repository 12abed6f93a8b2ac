// Package cache provides a small in-memory TTL cache.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value      V
	expiration time.Time
}

// TTLCache is a concurrency-safe map whose entries expire. Expired entries
// are treated as misses and swept periodically.
type TTLCache[K comparable, V any] struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[K]entry[V]
	stop    chan struct{}
	once    sync.Once
}

// New creates a cache and starts its sweeper. Call Close to stop it.
func New[K comparable, V any](ttl, sweepEvery time.Duration) *TTLCache[K, V] {
	c := &TTLCache[K, V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[K]entry[V]),
		stop:    make(chan struct{}),
	}
	if sweepEvery > 0 {
		go c.sweep(sweepEvery)
	}
	return c
}

// Get returns the value for key if present and not expired
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiration) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key for the cache TTL
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{value: value, expiration: c.now().Add(c.ttl)}
}

// Delete removes key
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Len counts stored entries, including expired ones not yet swept
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the sweeper
func (c *TTLCache[K, V]) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *TTLCache[K, V]) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *TTLCache[K, V]) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if now.After(e.expiration) {
			delete(c.entries, key)
		}
	}
}
