// Package cache memoizes model answers. Registry feeds repeat identical
// boilerplate founder strings massively, so one model call can serve
// thousands of records.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a cache key from the model version and the normalized token
// sequence. Same tokens + same model version always hit the same entry,
// which is what keeps categorization deterministic across a run.
func Key(modelVersion string, norms []string) string {
	h := sha256.New()
	h.Write([]byte(modelVersion))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(norms, "\x00")))
	return "edrbo:v1:" + hex.EncodeToString(h.Sum(nil))
}
