// Package categorize assigns a primary category and auxiliary flags to a
// tokenized founder record. Precedence is an explicit, ordered rule list:
// first match wins for the primary tag, so the order is auditable and
// testable in isolation.
package categorize

import (
	"context"

	"go.uber.org/zap"

	"github.com/ppiankov/edrbo/internal/lexicon"
	"github.com/ppiankov/edrbo/internal/model"
	"github.com/ppiankov/edrbo/internal/ner"
	"github.com/ppiankov/edrbo/internal/token"
)

// Decision is the categorizer output: the primary category, every
// auxiliary flag the record asserted, and the rule that decided.
type Decision struct {
	Primary model.Category
	Flags   model.CategoryFlags

	// Rule records which rule (or model label) made the decision,
	// e.g. "phrase:no-owner", "model:name".
	Rule string

	// Score is 1 for lexical rules, the model score for model decisions,
	// 0 for unparsed.
	Score float64
}

// Categorizer evaluates the ordered rule list against a token sequence,
// delegating to the external model only when every lexical rule passes.
type Categorizer struct {
	lex      *lexicon.Set
	model    ner.Model // nil when no model is configured
	minScore float64
	rules    []rule
	log      *zap.Logger
}

// rule is one predicate in the ordered list. A matching rule names the
// primary category; flags are computed separately for every record.
type rule struct {
	name  string
	match func(norms []string) (model.Category, bool)
}

// New builds a categorizer over the given rule set and optional model.
func New(lex *lexicon.Set, m ner.Model, minScore float64, log *zap.Logger) *Categorizer {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Categorizer{
		lex:      lex,
		model:    m,
		minScore: minScore,
		log:      log,
	}

	// Order matters: an explicit no-owner statement wins even when the
	// record pads it with founder names, which registry text does often.
	c.rules = []rule{
		{name: "phrase:no-owner", match: c.matchNoOwner},
		{name: "phrase:same-as-founder", match: c.matchSameAsFounder},
		{name: "multiple-owners", match: c.matchMultiple},
		{name: "legal-entity", match: c.matchLegalEntity},
		{name: "name:fingerprint", match: c.matchNamedIndividual},
	}
	return c
}

// Categorize returns the decision for one token sequence. It never fails:
// model errors and low-confidence answers degrade to unparsed. Identical
// tokens with the same lexicon and model version always yield the
// identical decision.
func (c *Categorizer) Categorize(ctx context.Context, toks []model.Token) Decision {
	norms := token.Norms(toks)
	flags := c.computeFlags(norms)

	for _, r := range c.rules {
		if cat, ok := r.match(norms); ok {
			return Decision{Primary: cat, Flags: flags, Rule: r.name, Score: 1}
		}
	}

	if c.model != nil {
		if d, ok := c.classifyWithModel(ctx, toks); ok {
			d.Flags = flags
			return d
		}
	}

	return Decision{Primary: model.CategoryUnparsed, Flags: flags, Rule: "unrecognized", Score: 0}
}

// computeFlags evaluates every auxiliary signal independently of the
// primary category.
func (c *Categorizer) computeFlags(norms []string) model.CategoryFlags {
	var f model.CategoryFlags

	_, f.AssertsNoOwner = c.lex.NoOwner().Match(norms)
	_, f.AssertsSameAsFounder = c.lex.SameAsFounder().Match(norms)
	f.MentionsMultiple = c.hasMultipleNameClusters(norms)

	if _, ok := c.lex.LegalMarkers().Match(norms); ok {
		for i := range norms {
			if entry, _, ok := c.lex.MatchCountry(norms, i); ok && entry.ISO != "UA" {
				f.MentionsForeignEntity = true
				break
			}
		}
	}
	return f
}

func (c *Categorizer) matchNoOwner(norms []string) (model.Category, bool) {
	if _, ok := c.lex.NoOwner().Match(norms); ok {
		return model.CategoryNoBeneficialOwner, true
	}
	return "", false
}

func (c *Categorizer) matchSameAsFounder(norms []string) (model.Category, bool) {
	if _, ok := c.lex.SameAsFounder().Match(norms); ok {
		return model.CategoryOwnerSameAsFounder, true
	}
	return "", false
}

func (c *Categorizer) matchMultiple(norms []string) (model.Category, bool) {
	if c.hasMultipleNameClusters(norms) {
		return model.CategoryMultipleOwners, true
	}
	return "", false
}

func (c *Categorizer) matchLegalEntity(norms []string) (model.Category, bool) {
	if _, ok := c.lex.LegalMarkers().Match(norms); ok {
		return model.CategoryLegalEntityOwner, true
	}
	return "", false
}

// matchNamedIndividual accepts records whose longest name chain looks
// like a full Ukrainian name (three tokens or more), or a two-token chain
// backed by an explicit ownership marker.
func (c *Categorizer) matchNamedIndividual(norms []string) (model.Category, bool) {
	longest := 0
	for _, chain := range c.lex.NameChains(norms) {
		if chain.Len() > longest {
			longest = chain.Len()
		}
	}
	if longest >= 3 {
		return model.CategoryNamedIndividualOwner, true
	}
	if longest == 2 {
		if _, ok := c.lex.OwnershipMarkers().Match(norms); ok {
			return model.CategoryNamedIndividualOwner, true
		}
	}
	return "", false
}

// hasMultipleNameClusters detects several owners in one record: at least
// two name chains of two or more tokens with a conjunction or delimiter
// between them.
func (c *Categorizer) hasMultipleNameClusters(norms []string) bool {
	var clusters []model.TokenRange
	for _, chain := range c.lex.NameChains(norms) {
		if chain.Len() >= 2 {
			clusters = append(clusters, chain)
		}
	}
	if len(clusters) < 2 {
		return false
	}

	for i := 1; i < len(clusters); i++ {
		for j := clusters[i-1].End; j < clusters[i].Start; j++ {
			if c.lex.IsConjunction(norms[j]) || norms[j] == "," || norms[j] == ";" {
				return true
			}
		}
	}
	return false
}

// classifyWithModel maps model spans to a category. Answers below the
// confidence threshold (or errors, including per-record timeouts) report
// no decision and the record degrades to unparsed.
func (c *Categorizer) classifyWithModel(ctx context.Context, toks []model.Token) (Decision, bool) {
	spans, err := c.model.Classify(ctx, toks)
	if err != nil {
		c.log.Debug("model classification failed", zap.Error(err))
		return Decision{}, false
	}

	var best ner.EntitySpan
	for _, s := range spans {
		if s.Score > best.Score {
			best = s
		}
	}
	if best.Score < c.minScore {
		return Decision{}, false
	}

	switch best.Label {
	case ner.LabelName:
		return Decision{Primary: model.CategoryNamedIndividualOwner, Rule: "model:name", Score: best.Score}, true
	case ner.LabelNone:
		return Decision{Primary: model.CategoryNoBeneficialOwner, Rule: "model:none", Score: best.Score}, true
	case ner.LabelCountry, ner.LabelAddress:
		// Location spans alone do not identify an owner.
		return Decision{}, false
	default:
		return Decision{}, false
	}
}
