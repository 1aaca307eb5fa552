// Package iconcache holds rendered window icons keyed by window handle,
// bounded in size and age.
package iconcache

import (
	"fmt"
	"sync"
	"time"

	"github.com/1broseidon/frameless/internal/platform"
)

const (
	DefaultMaxEntries = 100
	DefaultTTL        = 300 * time.Second
)

type entry[V any] struct {
	value    V
	lastUsed time.Time
}

// Cache is a size-bounded map whose entries expire TTL after their last
// use. When full, the least recently used entry is evicted.
type Cache[V any] struct {
	mu         sync.Mutex
	entries    map[string]*entry[V]
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

// New returns a cache. Non-positive arguments fall back to the defaults.
func New[V any](maxEntries int, ttl time.Duration) *Cache[V] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[V]{
		entries:    make(map[string]*entry[V]),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (c *Cache[V]) WithClock(now func() time.Time) *Cache[V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// Key derives the cache key for a window handle.
func Key(id platform.WindowID) string {
	return fmt.Sprintf("icon_%d", id)
}

// Get returns the value for key and marks it used. Expired entries are
// removed and reported as missing.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	now := c.now()
	if now.Sub(e.lastUsed) >= c.ttl {
		delete(c.entries, key)
		return zero, false
	}
	e.lastUsed = now
	return e.value, true
}

// Insert stores value under key. Expired entries are swept first; if the
// cache is still full the least recently used entry is evicted.
func (c *Cache[V]) Insert(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepLocked(now)

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[key] = &entry[V]{value: value, lastUsed: now}
}

// Contains reports whether key holds a live entry. It neither refreshes
// recency nor removes expired entries.
func (c *Cache[V]) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && c.now().Sub(e.lastUsed) < c.ttl
}

// Sweep removes every expired entry.
func (c *Cache[V]) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked(c.now())
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[V]) sweepLocked(now time.Time) {
	for k, e := range c.entries {
		if now.Sub(e.lastUsed) >= c.ttl {
			delete(c.entries, k)
		}
	}
}

func (c *Cache[V]) evictOldestLocked() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for k, e := range c.entries {
		if !found || e.lastUsed.Before(oldest) {
			oldestKey, oldest, found = k, e.lastUsed, true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}
