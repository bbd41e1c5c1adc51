package ttlcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetAndGet(t *testing.T) {
	cache := New[string, int](time.Minute)

	cache.Set("a", 1)

	value, ok := cache.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, value)
}

func TestCache_MissOnUnknownKey(t *testing.T) {
	cache := New[string, int](time.Minute)

	value, ok := cache.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, value)
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	cache := New[string, int](time.Minute)

	current := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	cache.Set("a", 1)

	// До истечения TTL значение доступно
	current = current.Add(59 * time.Second)
	_, ok := cache.Get("a")
	assert.True(t, ok)

	// После истечения - промах
	current = current.Add(2 * time.Second)
	_, ok = cache.Get("a")
	assert.False(t, ok)
}

func TestCache_Invalidate(t *testing.T) {
	cache := New[string, int](time.Minute)

	cache.Set("a", 1)
	cache.Invalidate("a")

	_, ok := cache.Get("a")
	assert.False(t, ok)
}

func TestCache_Purge(t *testing.T) {
	cache := New[string, int](time.Minute)

	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Purge()

	assert.Equal(t, 0, cache.Len())
}

func TestCache_DisabledWhenTTLNonPositive(t *testing.T) {
	// TTL <= 0 означает "кэш выключен": Set ничего не пишет,
	// Get всегда промахивается
	cache := New[string, int](0)

	cache.Set("a", 1)

	_, ok := cache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}
