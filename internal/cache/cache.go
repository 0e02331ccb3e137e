package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for caching parsed tables
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// TableKey generates a cache key for a source file. Size and mtime are
// part of the key, so a changed file never hits a stale entry.
func TableKey(path string, size int64, modTime time.Time) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", path, size, modTime.UnixNano())))
	return "pitchlens:v1:" + hex.EncodeToString(hash[:])
}
