// Package stats aggregates per-run quality numbers and turns them into
// diagnostic signals. The point is transparency: a run report always
// says how much of the input the rules could not handle and how the
// confidence mass is distributed, with the formula attached.
package stats

import (
	"fmt"
	"sync"

	"github.com/ppiankov/edrbo/internal/model"
)

// Signal severities.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Signal types.
const (
	SignalUnparsedRatio  = "unparsed_ratio"
	SignalLowConfidence  = "low_confidence"
	SignalModelFallback  = "model_fallback"
	SignalEmptyCompanies = "empty_companies"
)

// Signal is one diagnostic observation about the run.
type Signal struct {
	Type        string                 `json:"type"`
	Severity    string                 `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// Report is the aggregate view of one run.
type Report struct {
	Companies      int            `json:"companies"`
	Facts          int            `json:"facts"`
	ByCategory     map[string]int `json:"by_category"`
	ByRule         map[string]int `json:"by_rule"`
	UnparsedRatio  float64        `json:"unparsed_ratio"`
	MeanConfidence float64        `json:"mean_confidence"`
	Signals        []Signal       `json:"signals"`
}

// Collector accumulates run statistics. Safe for concurrent use by the
// worker pool.
type Collector struct {
	mu            sync.Mutex
	companies     int
	empty         int
	facts         int
	byCategory    map[model.Category]int
	byRule        map[string]int
	confidenceSum float64
	lowConfidence int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		byCategory: make(map[model.Category]int),
		byRule:     make(map[string]int),
	}
}

// Observe folds one company result into the totals.
func (c *Collector) Observe(res model.CompanyResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.companies++
	if len(res.Facts) == 0 {
		c.empty++
	}
	for _, f := range res.Facts {
		c.facts++
		c.byCategory[f.SourceCategory]++
		c.byRule[f.Rule]++
		c.confidenceSum += f.Confidence
		if f.Confidence < 0.5 && f.SourceCategory != model.CategoryUnparsed {
			c.lowConfidence++
		}
	}
}

// Snapshot builds the report for everything observed so far.
func (c *Collector) Snapshot() Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := Report{
		Companies:  c.companies,
		Facts:      c.facts,
		ByCategory: make(map[string]int, len(c.byCategory)),
		ByRule:     make(map[string]int, len(c.byRule)),
	}
	for cat, n := range c.byCategory {
		r.ByCategory[string(cat)] = n
	}
	for rule, n := range c.byRule {
		r.ByRule[rule] = n
	}

	if c.facts > 0 {
		r.UnparsedRatio = float64(c.byCategory[model.CategoryUnparsed]) / float64(c.facts)
		r.MeanConfidence = c.confidenceSum / float64(c.facts)
	}

	r.Signals = c.signals(r)
	return r
}

// signals derives the diagnostic signals from the aggregate numbers.
// Caller holds the lock.
func (c *Collector) signals(r Report) []Signal {
	var signals []Signal

	severity := SeverityInfo
	if r.UnparsedRatio > 0.20 {
		severity = SeverityCritical
	} else if r.UnparsedRatio > 0.05 {
		severity = SeverityWarning
	}
	signals = append(signals, Signal{
		Type:        SignalUnparsedRatio,
		Severity:    severity,
		Description: fmt.Sprintf("Unparsed ratio: %.2f%%", r.UnparsedRatio*100),
		Data: map[string]interface{}{
			"unparsed": c.byCategory[model.CategoryUnparsed],
			"facts":    c.facts,
			"formula":  "unparsed_facts / total_facts",
		},
	})

	if c.lowConfidence > 0 {
		severity := SeverityInfo
		if c.facts > 0 && float64(c.lowConfidence)/float64(c.facts) > 0.25 {
			severity = SeverityWarning
		}
		signals = append(signals, Signal{
			Type:        SignalLowConfidence,
			Severity:    severity,
			Description: fmt.Sprintf("%d facts below confidence 0.5", c.lowConfidence),
			Data: map[string]interface{}{
				"low_confidence": c.lowConfidence,
				"facts":          c.facts,
			},
		})
	}

	modelFacts := 0
	for rule, n := range c.byRule {
		if len(rule) > 6 && rule[:6] == "model:" {
			modelFacts += n
		}
	}
	if modelFacts > 0 {
		signals = append(signals, Signal{
			Type:        SignalModelFallback,
			Severity:    SeverityInfo,
			Description: fmt.Sprintf("%d facts decided by the model fallback", modelFacts),
			Data: map[string]interface{}{
				"model_facts": modelFacts,
				"facts":       c.facts,
			},
		})
	}

	if c.empty > 0 {
		signals = append(signals, Signal{
			Type:        SignalEmptyCompanies,
			Severity:    SeverityWarning,
			Description: fmt.Sprintf("%d companies produced no facts (no founder entries)", c.empty),
			Data: map[string]interface{}{
				"empty":     c.empty,
				"companies": c.companies,
			},
		})
	}

	return signals
}
