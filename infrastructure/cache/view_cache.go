package cache

import (
	"sync"
	"time"
)

type viewEntry[T any] struct {
	value    T
	lastSeen time.Time
}

// ViewCache stores per-viewer view state by key and evicts entries that
// have not been touched for ttl.
type ViewCache[T any] struct {
	mu      sync.RWMutex
	entries map[string]*viewEntry[T]
	ttl     time.Duration
	now     func() time.Time
}

func NewViewCache[T any](ttl time.Duration) *ViewCache[T] {
	return &ViewCache[T]{
		entries: make(map[string]*viewEntry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// GetOrCreate returns the live entry for key, creating it with create when
// missing or expired. Concurrent callers for the same key share one entry.
func (c *ViewCache[T]) GetOrCreate(key string, create func() T) T {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok && !c.expired(e, now) {
		e.lastSeen = now
		return e.value
	}
	e := &viewEntry[T]{value: create(), lastSeen: now}
	c.entries[key] = e
	return e.value
}

// Find returns the live entry for key without creating one.
func (c *ViewCache[T]) Find(key string) (T, bool) {
	now := c.now()

	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.expired(e, now) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Sweep drops expired entries and returns how many were removed.
func (c *ViewCache[T]) Sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *ViewCache[T]) expired(e *viewEntry[T], now time.Time) bool {
	return c.ttl > 0 && now.Sub(e.lastSeen) > c.ttl
}
