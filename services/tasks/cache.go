package tasks

import (
	"strings"
	"sync"
	"time"
)

// Cache TTLs: the task list is coarser than per-task detail.
const (
	ListCacheTTL   = 60 * time.Second
	DetailCacheTTL = 30 * time.Second
)

type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// TTLCache memoizes values by normalized name. Expiry is lazy: an expired
// entry is deleted on the Get that observes it; there is no background
// sweep. Safe for concurrent use.
type TTLCache[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry[T]
	now     func() time.Time
}

func NewTTLCache[T any](ttl time.Duration) *TTLCache[T] {
	return &TTLCache[T]{
		ttl:     ttl,
		entries: make(map[string]cacheEntry[T]),
		now:     time.Now,
	}
}

func normalizeCacheKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Get returns the cached value for name, reporting a miss once the entry's
// expiry has passed.
func (c *TTLCache[T]) Get(name string) (T, bool) {
	key := normalizeCacheKey(name)
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if !entry.expiresAt.After(c.now()) {
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return entry.value, true
}

// Set stores value under name with a fresh expiry, overwriting any existing
// entry.
func (c *TTLCache[T]) Set(name string, value T) {
	key := normalizeCacheKey(name)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry[T]{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Clear removes one entry unconditionally.
func (c *TTLCache[T]) Clear(name string) {
	key := normalizeCacheKey(name)
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// ClearAll removes every entry.
func (c *TTLCache[T]) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry[T])
}
