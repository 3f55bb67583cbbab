package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCacheHitAndMiss(t *testing.T) {
	cache := NewTTLCache[int](30 * time.Second)

	_, ok := cache.Get("Feed cows")
	assert.False(t, ok)

	cache.Set("Feed cows", 3)
	count, ok := cache.Get("Feed cows")
	assert.True(t, ok)
	assert.Equal(t, 3, count)

	// Keys normalize on case and surrounding whitespace.
	count, ok = cache.Get("  FEED COWS ")
	assert.True(t, ok)
	assert.Equal(t, 3, count)
}

func TestTTLCacheExpiry(t *testing.T) {
	cache := NewTTLCache[int](30 * time.Second)
	current := time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	cache.Set("Feed cows", 3)

	current = current.Add(29 * time.Second)
	_, ok := cache.Get("Feed cows")
	assert.True(t, ok)

	// Expiry is exclusive: exactly at the deadline the entry is gone.
	current = current.Add(time.Second)
	_, ok = cache.Get("Feed cows")
	assert.False(t, ok)

	// And the expired entry was evicted, not just hidden.
	current = current.Add(-time.Minute)
	_, ok = cache.Get("Feed cows")
	assert.False(t, ok)
}

func TestTTLCacheClear(t *testing.T) {
	cache := NewTTLCache[string](time.Minute)
	cache.Set("a", "1")
	cache.Set("b", "2")

	cache.Clear("A")
	_, ok := cache.Get("a")
	assert.False(t, ok)
	_, ok = cache.Get("b")
	assert.True(t, ok)

	cache.ClearAll()
	_, ok = cache.Get("b")
	assert.False(t, ok)
}
