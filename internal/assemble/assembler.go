// Package assemble merges extracted candidates into the final fact list
// for a company, attaching confidence and provenance. It never fails:
// the worst case is an unparsed fact with confidence zero.
package assemble

import (
	"github.com/ppiankov/edrbo/internal/categorize"
	"github.com/ppiankov/edrbo/internal/extract"
	"github.com/ppiankov/edrbo/internal/model"
)

// Field weights for the confidence score. A field the category
// legitimately lacks is excluded from the denominator entirely.
const (
	weightName    = 0.4
	weightCountry = 0.3
	weightAddress = 0.3
)

// Assembler builds immutable facts out of categorizer and extractor
// output. Stateless, safe for concurrent use.
type Assembler struct{}

// New creates an assembler.
func New() *Assembler { return &Assembler{} }

// Fact builds one beneficial-owner fact from a candidate span's
// extraction result.
func (a *Assembler) Fact(ft model.FounderText, d categorize.Decision, f extract.Fields) model.BeneficialOwnerFact {
	return model.BeneficialOwnerFact{
		CompanyID:      ft.CompanyID,
		SourceCategory: d.Primary,
		Flags:          d.Flags,
		Name:           f.Name,
		Country:        f.Country,
		CountryCode:    f.CountryCode,
		Address:        f.Address,
		EntityType:     f.EntityType,
		Confidence:     a.confidence(d, f),
		RawText:        ft.Raw,
		Rule:           d.Rule,
	}
}

// Unparsed builds the degraded fact for a record nothing could handle:
// raw text preserved verbatim, every structured field null, confidence 0.
func (a *Assembler) Unparsed(ft model.FounderText) model.BeneficialOwnerFact {
	return model.BeneficialOwnerFact{
		CompanyID:      ft.CompanyID,
		SourceCategory: model.CategoryUnparsed,
		EntityType:     model.EntityUnknown,
		Confidence:     0,
		RawText:        ft.Raw,
		Rule:           "unrecognized",
	}
}

// Result wraps the ordered fact list for one company. Order is the input
// founders order, with multi-owner splits already in split order.
func (a *Assembler) Result(company model.CompanyRecord, facts []model.BeneficialOwnerFact) model.CompanyResult {
	if facts == nil {
		facts = []model.BeneficialOwnerFact{}
	}
	return model.CompanyResult{
		EDRPOU: company.EDRPOU,
		Name:   company.Name,
		Facts:  facts,
	}
}

// confidence computes the weighted resolution score. Categories with
// extractable fields average the per-field scores by weight; an
// unresolved field counts as zero against its weight. Categories with no
// extractable fields carry the rule/model decision score instead, and
// unparsed records are always zero.
func (a *Assembler) confidence(d categorize.Decision, f extract.Fields) float64 {
	switch d.Primary {
	case model.CategoryUnparsed:
		return 0

	case model.CategoryNoBeneficialOwner, model.CategoryOwnerSameAsFounder:
		return clamp01(d.Score)
	}

	score := weightName*f.NameScore + weightCountry*f.CountryScore + weightAddress*f.AddressScore
	return clamp01(score)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
