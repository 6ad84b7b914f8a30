// Package cache provides a generic in-memory TTL store with sliding expiry.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Metrics tracks cache performance.
type Metrics struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Sets      int64 `json:"sets"`
	Evictions int64 `json:"evictions"`
}

// TTLCache is a map whose entries expire ttl after they were last written or
// read. A background sweeper removes expired entries until Close is called.
type TTLCache[T any] struct {
	mu     sync.Mutex
	items  map[string]entry[T]
	ttl    time.Duration
	name   string
	logger *zap.Logger
	now    func() time.Time

	hits, misses, sets, evictions atomic.Int64

	stop      chan struct{}
	closeOnce sync.Once
}

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// New creates a cache and starts its sweeper.
func New[T any](ttl time.Duration, name string, logger *zap.Logger) *TTLCache[T] {
	return newCache[T](ttl, name, logger, time.Now)
}

func newCache[T any](ttl time.Duration, name string, logger *zap.Logger, now func() time.Time) *TTLCache[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &TTLCache[T]{
		items:  make(map[string]entry[T]),
		ttl:    ttl,
		name:   name,
		logger: logger,
		now:    now,
		stop:   make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Set stores value under key.
func (c *TTLCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry[T]{value: value, expiresAt: c.now().Add(c.ttl)}
	c.sets.Add(1)
	c.logger.Debug("Cache set", zap.String("cache", c.name), zap.String("key", key))
}

// Get returns the live value under key and extends its expiry.
func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		return zero, false
	}
	now := c.now()
	if now.After(e.expiresAt) {
		delete(c.items, key)
		c.misses.Add(1)
		c.evictions.Add(1)
		c.logger.Debug("Cache expired", zap.String("cache", c.name), zap.String("key", key))
		return zero, false
	}

	e.expiresAt = now.Add(c.ttl)
	c.items[key] = e
	c.hits.Add(1)
	return e.value, true
}

// Update applies fn to the live value under key while holding the lock. It
// returns false when the key is absent or expired; fn is not called then.
func (c *TTLCache[T]) Update(key string, fn func(T) (T, error)) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	now := c.now()
	if !ok || now.After(e.expiresAt) {
		delete(c.items, key)
		return false, nil
	}

	next, err := fn(e.value)
	if err != nil {
		return true, err
	}
	c.items[key] = entry[T]{value: next, expiresAt: now.Add(c.ttl)}
	return true, nil
}

// Delete removes key and reports whether a live entry was present.
func (c *TTLCache[T]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	delete(c.items, key)
	return ok && !c.now().After(e.expiresAt)
}

// Len counts stored entries, including expired ones not yet swept.
func (c *TTLCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Metrics returns a snapshot of the counters.
func (c *TTLCache[T]) Metrics() Metrics {
	return Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Sets:      c.sets.Load(),
		Evictions: c.evictions.Load(),
	}
}

// Purge drops every expired entry and returns how many were removed.
func (c *TTLCache[T]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, key)
			removed++
		}
	}
	c.evictions.Add(int64(removed))
	return removed
}

// Close stops the sweeper. The cache stays usable.
func (c *TTLCache[T]) Close() {
	c.closeOnce.Do(func() { close(c.stop) })
}

func (c *TTLCache[T]) sweep() {
	interval := c.ttl / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if n := c.Purge(); n > 0 {
				c.logger.Info("Cache cleanup",
					zap.String("cache", c.name),
					zap.Int("expired_items", n),
					zap.Int("remaining_items", c.Len()))
			}
		}
	}
}
