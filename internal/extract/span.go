package extract

import (
	"sort"
	"unicode"

	"github.com/ppiankov/edrbo/internal/model"
)

// spanIndices returns the sorted token indices covered by a span,
// core range and attached modifiers together.
func spanIndices(span model.OwnerCandidateSpan) []int {
	idx := span.Tokens()
	sort.Ints(idx)
	return idx
}

// spanNorms projects the span's tokens to their normalized forms.
func spanNorms(toks []model.Token, span model.OwnerCandidateSpan) []string {
	idx := spanIndices(span)
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		if i < len(toks) {
			out = append(out, toks[i].Norm)
		}
	}
	return out
}

// spanNormsOf is spanNorms over an already-projected norm slice.
func spanNormsOf(norms []string, span model.OwnerCandidateSpan) []string {
	idx := spanIndices(span)
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		if i < len(norms) {
			out = append(out, norms[i])
		}
	}
	return out
}

// spanLast returns one past the highest token index the span covers,
// capped at n.
func spanLast(span model.OwnerCandidateSpan, n int) int {
	last := span.End
	for _, m := range span.Modifiers {
		if m.End > last {
			last = m.End
		}
	}
	if last > n {
		last = n
	}
	return last
}

// sliceRaw cuts the original string between the first and last token of
// the range, preserving the source punctuation and casing.
func sliceRaw(raw string, toks []model.Token, r model.TokenRange) string {
	if r.Len() == 0 || r.End > len(toks) {
		return ""
	}
	return raw[toks[r.Start].Start:toks[r.End-1].End]
}

// isPunct reports a token with no letters or digits.
func isPunct(norm string) bool {
	if norm == "" {
		return true
	}
	for _, r := range norm {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Share-size boilerplate that trails most founder records.
var boilerplate = map[string]struct{}{
	"розмір":     {},
	"внесок":     {},
	"внеску":     {},
	"частка":     {},
	"частки":     {},
	"статутного": {},
	"статутний":  {},
	"фонд":       {},
	"фонду":      {},
	"капітал":    {},
	"капіталу":   {},
	"грн":        {},
	"коп":        {},
}

func isBoilerplate(norm string) bool {
	_, ok := boilerplate[norm]
	return ok
}
