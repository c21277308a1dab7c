package ner

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ppiankov/edrbo/internal/cache"
	"github.com/ppiankov/edrbo/internal/model"
	"github.com/ppiankov/edrbo/internal/token"
)

// Cached memoizes model answers keyed by model version and normalized
// token sequence. Registry feeds repeat the same boilerplate strings for
// thousands of companies; without this every duplicate costs a model call.
type Cached struct {
	inner Model
	store cache.Cache
	ttl   time.Duration
}

// NewCached wraps a model with memoization.
func NewCached(inner Model, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cached{
		inner: inner,
		store: cache.NewMemoryCache(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

// Name returns the inner provider name.
func (c *Cached) Name() string { return c.inner.Name() }

// Version returns the inner model version.
func (c *Cached) Version() string { return c.inner.Version() }

// IsAvailable defers to the inner model.
func (c *Cached) IsAvailable(ctx context.Context) bool { return c.inner.IsAvailable(ctx) }

// Classify returns the memoized answer when present, otherwise asks the
// inner model and stores the result. Errors are never cached: a timed-out
// record should get a fresh chance on the next identical string.
func (c *Cached) Classify(ctx context.Context, toks []model.Token) ([]EntitySpan, error) {
	key := cache.Key(c.inner.Version(), token.Norms(toks))

	if data, ok := c.store.Get(key); ok {
		var spans []EntitySpan
		if err := json.Unmarshal(data, &spans); err == nil {
			return spans, nil
		}
		// Corrupt entry: drop it and fall through to the model.
		_ = c.store.Delete(key)
	}

	spans, err := c.inner.Classify(ctx, toks)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(spans); err == nil {
		_ = c.store.Set(key, data, c.ttl)
	}
	return spans, nil
}
