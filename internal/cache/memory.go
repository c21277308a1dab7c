package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache holds serialized model answers for the lifetime of one
// batch run. Registry dumps repeat founder strings heavily (boilerplate
// records, franchise chains), so memoizing by token sequence saves the
// bulk of model calls; entries expire so a multi-million-record run does
// not accumulate unboundedly.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a cache with the given default TTL and expired
// entry sweep interval.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the stored answer for key, if present and not expired.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores an answer under key for ttl.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete evicts a single answer.
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear evicts every stored answer.
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
