package ner

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/ppiankov/edrbo/internal/model"
)

// Throttled bounds the request queue into the model. When serialize is
// set, requests additionally go one at a time, for model implementations
// that are not reentrant.
type Throttled struct {
	inner   Model
	limiter *rate.Limiter
	mu      *sync.Mutex // nil unless serialized
}

// NewThrottled wraps a model with a rate limit and optional serialization.
func NewThrottled(inner Model, requestsPerSecond float64, burst int, serialize bool) *Throttled {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}
	if burst <= 0 {
		burst = 5
	}

	t := &Throttled{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
	if serialize {
		t.mu = &sync.Mutex{}
	}
	return t
}

// Name returns the inner provider name.
func (t *Throttled) Name() string { return t.inner.Name() }

// Version returns the inner model version.
func (t *Throttled) Version() string { return t.inner.Version() }

// IsAvailable defers to the inner model.
func (t *Throttled) IsAvailable(ctx context.Context) bool { return t.inner.IsAvailable(ctx) }

// Classify waits for rate-limit clearance (and the serialization lock if
// configured) before calling the inner model. Context cancellation while
// queued surfaces as an error, which the pipeline degrades to unparsed.
func (t *Throttled) Classify(ctx context.Context, toks []model.Token) ([]EntitySpan, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if t.mu != nil {
		t.mu.Lock()
		defer t.mu.Unlock()
	}
	return t.inner.Classify(ctx, toks)
}
