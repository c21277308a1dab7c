// Package extract pulls name, country and address spans out of a
// candidate owner span. The name heuristic classifies every token against
// the name gazetteer and keys on the chain fingerprint; the external
// model is a fallback scorer for weak fingerprints. Country resolution
// goes through the inflected-forms dictionary; the address is what
// remains after country removal, validated by locality/street markers.
package extract

import (
	"context"

	"go.uber.org/zap"

	"github.com/ppiankov/edrbo/internal/lexicon"
	"github.com/ppiankov/edrbo/internal/model"
	"github.com/ppiankov/edrbo/internal/ner"
	"github.com/ppiankov/edrbo/internal/token"
)

// Fields is the extraction result for one candidate span. A nil field
// could not be resolved; its score is then 0. Scores feed the assembler's
// confidence weighting.
type Fields struct {
	Name        *string
	Country     *string
	CountryCode *string
	Address     *string

	NameScore    float64
	CountryScore float64
	AddressScore float64

	EntityType model.EntityType
}

// Extractor runs per-category field extraction. Immutable after New,
// safe for concurrent use.
type Extractor struct {
	lex      *lexicon.Set
	model    ner.Model // nil when no model is configured
	minScore float64
	log      *zap.Logger
}

// New creates an extractor over the rule set and optional model.
func New(lex *lexicon.Set, m ner.Model, minScore float64, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{lex: lex, model: m, minScore: minScore, log: log}
}

// Extract resolves the fields for one candidate span of the record.
// It never fails: an unresolvable field stays nil with score 0.
func (e *Extractor) Extract(ctx context.Context, raw string, toks []model.Token, span model.OwnerCandidateSpan, cat model.Category) Fields {
	switch cat {
	case model.CategoryNoBeneficialOwner:
		return Fields{EntityType: model.EntityUnknown}

	case model.CategoryOwnerSameAsFounder:
		// The owner is the founder itself; nothing to extract. Entity
		// type follows the record's own shape.
		return Fields{EntityType: e.founderEntityType(toks)}

	case model.CategoryUnparsed:
		return Fields{EntityType: model.EntityUnknown}
	}

	norms := token.Norms(toks)
	f := Fields{EntityType: e.spanEntityType(norms, span, cat)}

	nameRange := e.extractName(ctx, raw, toks, span, cat, &f)
	countryEnd := e.extractCountry(ctx, raw, toks, norms, span, &f)
	e.extractAddress(raw, toks, norms, span, nameRange, countryEnd, &f)

	return f
}

// extractName fills f.Name and returns the name token range when found.
func (e *Extractor) extractName(ctx context.Context, raw string, toks []model.Token, span model.OwnerCandidateSpan, cat model.Category, f *Fields) model.TokenRange {
	if cat == model.CategoryLegalEntityOwner || f.EntityType == model.EntityLegalEntity {
		return e.extractEntityName(raw, toks, span, f)
	}

	norms := spanNorms(toks, span)
	chains := e.chainsInSpan(norms, span)
	fp := fingerprintOf(chains)

	if fp.Classify().Usable() {
		if chain, ok := longestChain(chains); ok {
			name := sliceRaw(raw, toks, chain)
			f.Name = &name
			f.NameScore = 1
			return chain
		}
	}

	// Weak fingerprint: let the model score a name span.
	if e.model != nil {
		if spanRange, score, ok := e.modelSpan(ctx, toks, ner.LabelName); ok && score >= e.minScore {
			name := sliceRaw(raw, toks, spanRange)
			f.Name = &name
			f.NameScore = score
			return spanRange
		}
	}
	return model.TokenRange{}
}

// extractEntityName pulls a legal-entity name by exclusion: the longest
// run of span tokens that are not country forms, address markers,
// punctuation or share-size boilerplate.
func (e *Extractor) extractEntityName(raw string, toks []model.Token, span model.OwnerCandidateSpan, f *Fields) model.TokenRange {
	norms := token.Norms(toks)

	var best, cur model.TokenRange
	flush := func() {
		if cur.Len() > best.Len() {
			best = cur
		}
		cur = model.TokenRange{}
	}

	for _, i := range spanIndices(span) {
		if i >= len(norms) || e.excludedFromEntityName(norms, i) {
			flush()
			continue
		}
		if cur.Len() == 0 {
			cur = model.TokenRange{Start: i, End: i + 1}
		} else if i == cur.End {
			cur.End = i + 1
		} else {
			flush()
			cur = model.TokenRange{Start: i, End: i + 1}
		}
	}
	flush()

	if best.Len() == 0 {
		return model.TokenRange{}
	}
	name := sliceRaw(raw, toks, best)
	f.Name = &name
	f.NameScore = 1
	return best
}

func (e *Extractor) excludedFromEntityName(norms []string, i int) bool {
	if _, _, ok := e.lex.MatchCountry(norms, i); ok {
		return true
	}
	if e.lex.IsAddressMarker(norms[i]) || isBoilerplate(norms[i]) || isPunct(norms[i]) {
		return true
	}
	return false
}

// extractCountry fills f.Country/f.CountryCode and returns the token
// index right after the country match, or -1.
func (e *Extractor) extractCountry(ctx context.Context, raw string, toks []model.Token, norms []string, span model.OwnerCandidateSpan, f *Fields) int {
	for _, i := range spanIndices(span) {
		if i >= len(norms) {
			continue
		}
		if entry, n, ok := e.lex.MatchCountry(norms, i); ok {
			canonical := entry.Canonical
			iso := entry.ISO
			f.Country = &canonical
			f.CountryCode = &iso
			f.CountryScore = 1
			return i + n
		}
	}

	// Dictionary miss: accept a model country span in its raw form.
	if e.model != nil {
		if spanRange, score, ok := e.modelSpan(ctx, toks, ner.LabelCountry); ok && score >= e.minScore {
			country := sliceRaw(raw, toks, spanRange)
			f.Country = &country
			f.CountryScore = score
			return spanRange.End
		}
	}
	return -1
}

// extractAddress takes what remains after the country (or, without one,
// after the name), cut at the share-size boilerplate, and keeps it only
// when it looks like an address.
func (e *Extractor) extractAddress(raw string, toks []model.Token, norms []string, span model.OwnerCandidateSpan, nameRange model.TokenRange, countryEnd int, f *Fields) {
	last := spanLast(span, len(toks))
	start := countryEnd
	if start < 0 {
		if nameRange.Len() == 0 {
			return
		}
		start = nameRange.End
	}
	if start >= last {
		return
	}

	end := last
	for i := start; i < end; i++ {
		if norms[i] == "розмір" {
			end = i
			break
		}
	}

	// Drop hanging punctuation on both sides.
	for start < end && isPunct(norms[start]) {
		start++
	}
	for start < end && isPunct(norms[end-1]) {
		end--
	}
	if start >= end {
		return
	}

	hasMarker := false
	for i := start; i < end; i++ {
		if e.lex.IsAddressMarker(norms[i]) {
			hasMarker = true
			break
		}
	}
	if !hasMarker {
		return
	}

	addr := sliceRaw(raw, toks, model.TokenRange{Start: start, End: end})
	f.Address = &addr
	f.AddressScore = 1
}

// spanEntityType decides whether one candidate span describes a person or
// an organization.
func (e *Extractor) spanEntityType(norms []string, span model.OwnerCandidateSpan, cat model.Category) model.EntityType {
	if cat == model.CategoryLegalEntityOwner {
		return model.EntityLegalEntity
	}
	if cat == model.CategoryNamedIndividualOwner {
		return model.EntityIndividual
	}
	// Multiple owners: judge each span by its own tokens.
	if _, ok := e.lex.LegalMarkers().Match(spanNormsOf(norms, span)); ok {
		return model.EntityLegalEntity
	}
	return model.EntityIndividual
}

// founderEntityType mirrors the record's own shape for same-as-founder
// facts: a legal-entity marker means the founder is an organization, a
// name chain means a person, otherwise unknown.
func (e *Extractor) founderEntityType(toks []model.Token) model.EntityType {
	norms := token.Norms(toks)
	if _, ok := e.lex.LegalMarkers().Match(norms); ok {
		return model.EntityLegalEntity
	}
	for _, chain := range e.lex.NameChains(norms) {
		if chain.Len() >= 3 {
			return model.EntityIndividual
		}
	}
	return model.EntityUnknown
}

// modelSpan asks the model once and picks the best span with the wanted
// label. Errors (including the per-record timeout) resolve to "no span";
// they lower confidence instead of failing the record.
func (e *Extractor) modelSpan(ctx context.Context, toks []model.Token, label string) (model.TokenRange, float64, bool) {
	spans, err := e.model.Classify(ctx, toks)
	if err != nil {
		e.log.Debug("model span scoring failed", zap.Error(err))
		return model.TokenRange{}, 0, false
	}

	var (
		best  ner.EntitySpan
		found bool
	)
	for _, s := range spans {
		if s.Label == label && s.Score > best.Score {
			best = s
			found = true
		}
	}
	if !found {
		return model.TokenRange{}, 0, false
	}
	return model.TokenRange{Start: best.Start, End: best.End}, best.Score, true
}

func (e *Extractor) chainsInSpan(spanNorms []string, span model.OwnerCandidateSpan) []model.TokenRange {
	chains := e.lex.NameChains(spanNorms)
	// spanNorms is indexed from 0; shift chains back into full-token
	// index space using the span's index list. A chain must also be
	// contiguous in that space: name tokens adjacent only in the
	// projection, separated by a gap in the record, stay separate chains.
	idx := spanIndices(span)
	out := make([]model.TokenRange, 0, len(chains))
	for _, c := range chains {
		if c.Start >= len(idx) || c.End > len(idx) {
			continue
		}
		start := c.Start
		for k := c.Start; k < c.End; k++ {
			if k+1 < c.End && idx[k+1] == idx[k]+1 {
				continue
			}
			out = append(out, model.TokenRange{Start: idx[start], End: idx[k] + 1})
			start = k + 1
		}
	}
	return out
}
