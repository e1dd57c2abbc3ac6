package tmdb

import (
	"sync"
	"time"
)

type cacheKey struct {
	kind   string
	id     int64
	season int
}

type cacheEntry struct {
	value   any
	expires time.Time
}

type cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
}

func newCache(ttl time.Duration) *cache {
	return &cache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
	}
}

// cacheGet returns the cached value for key if present, unexpired, and of
// type T.
func cacheGet[T any](c *cache, key cacheKey) (*T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		return nil, false
	}
	value, ok := entry.value.(*T)
	return value, ok
}

func (c *cache) set(key cacheKey, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		value:   value,
		expires: time.Now().Add(c.ttl),
	}
}
