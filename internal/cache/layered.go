package cache

import "time"

// LayeredCache combines the in-process memory cache with the persistent
// disk cache. Memory serves repeated table requests within a run; disk
// serves repeat runs over an unchanged dataset.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache creates both layers. The memory layer cleans up every
// ten minutes regardless of its TTL.
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// Get checks memory first, then disk. A disk hit is promoted into
// memory with the default TTL.
func (l *LayeredCache) Get(key string) ([]byte, bool) {
	if data, found := l.memory.Get(key); found {
		return data, true
	}
	data, found := l.disk.Get(key)
	if !found {
		return nil, false
	}
	_ = l.memory.Set(key, data, 0)
	return data, true
}

// Set writes through to both layers
func (l *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := l.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return l.disk.Set(key, value, ttl)
}

// Delete removes key from both layers
func (l *LayeredCache) Delete(key string) error {
	_ = l.memory.Delete(key)
	return l.disk.Delete(key)
}

// Clear empties both layers
func (l *LayeredCache) Clear() error {
	_ = l.memory.Clear()
	return l.disk.Clear()
}
