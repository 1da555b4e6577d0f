package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResponseCache(t *testing.T) {
	cache := newResponseCache(time.Minute)
	defer cache.Close()

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	key := cacheKey([]byte(`[{"desc":"x"}]`))
	assert.Len(t, key, 64)
	assert.Equal(t, key, cacheKey([]byte(`[{"desc":"x"}]`)))
	assert.NotEqual(t, key, cacheKey([]byte(`[{"desc":"y"}]`)))

	_, ok := cache.get(key)
	assert.False(t, ok)

	cache.set(key, "dica")
	got, ok := cache.get(key)
	assert.True(t, ok)
	assert.Equal(t, "dica", got)

	now = now.Add(2 * time.Minute)
	_, ok = cache.get(key)
	assert.False(t, ok, "expired entries are not served")
	assert.Equal(t, 1, cache.size())

	cache.evictExpired()
	assert.Zero(t, cache.size())

	cache.Close()
	cache.Close()
}
