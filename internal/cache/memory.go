package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps parsed tables in memory so analysis sections that
// share a table within one run parse it only once
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a memory cache. Entries older than defaultTTL
// are evicted on the cleanup interval.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

// Get returns the cached bytes for key, if present and unexpired
func (m *MemoryCache) Get(key string) ([]byte, bool) {
	raw, found := m.store.Get(key)
	if !found {
		return nil, false
	}
	data, ok := raw.([]byte)
	return data, ok
}

// Set stores value under key for the given TTL
func (m *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	m.store.Set(key, value, ttl)
	return nil
}

// Delete removes key
func (m *MemoryCache) Delete(key string) error {
	m.store.Delete(key)
	return nil
}

// Clear drops every entry
func (m *MemoryCache) Clear() error {
	m.store.Flush()
	return nil
}
