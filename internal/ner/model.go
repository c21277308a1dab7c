// Package ner defines the contract for the external named-entity model
// used as a fallback scorer when lexical rules are inconclusive, plus the
// wrappers that make a remote model usable inside a batch run: response
// memoization and a bounded request queue.
package ner

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ppiankov/edrbo/internal/model"
)

// Span labels the model can return.
const (
	LabelName    = "name"
	LabelCountry = "country"
	LabelAddress = "address"
	// LabelNone is returned when the model decides the record carries no
	// extractable owner at all.
	LabelNone = "none"
)

// EntitySpan is one labeled token range from the model. Start/End index
// into the token sequence, half-open.
type EntitySpan struct {
	Start int     `json:"start"`
	End   int     `json:"end"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Model is the external named-entity scorer. Treated as a black box,
// versioned, loaded once at startup. Classify must be deterministic for
// identical tokens and version.
type Model interface {
	// Name returns the provider name.
	Name() string

	// Version identifies the loaded model; it participates in cache keys.
	Version() string

	// Classify labels token ranges of one founder record.
	Classify(ctx context.Context, toks []model.Token) ([]EntitySpan, error)

	// IsAvailable checks the model is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// ErrUnavailable marks a model that failed to load or respond at startup.
// Fatal before the batch starts, never per record.
var ErrUnavailable = eris.New("named-entity model unavailable")

// NewModel builds a model from configuration and wraps it with the
// throttle and cache layers. An empty provider disables the model: the
// caller gets nil, and rule-inconclusive records become unparsed.
func NewModel(cfg model.ModelConfig) (Model, error) {
	switch strings.ToLower(cfg.Provider) {
	case "":
		return nil, nil

	case "openai":
		m, err := NewOpenAI(cfg)
		if err != nil {
			return nil, err
		}
		return Wrap(m, cfg), nil

	default:
		return nil, eris.Errorf("unknown model provider: %s (supported: openai)", cfg.Provider)
	}
}

// Wrap applies the standard wrappers around a raw model: request
// throttling first, memoization outside it so cache hits skip the queue.
func Wrap(m Model, cfg model.ModelConfig) Model {
	wrapped := NewThrottled(m, cfg.RequestsPerSecond, cfg.Burst, cfg.Serialize)
	return NewCached(wrapped, cfg.CacheTTL)
}
