package lexicon

import "strings"

// PhraseSet matches fixed phrases (one or more tokens) against a
// normalized token sequence. Matching is contiguous: every token of the
// phrase must appear in order with nothing in between.
type PhraseSet struct {
	// byFirst indexes phrases by their first token so a scan only looks
	// at candidates that can possibly start here.
	byFirst map[string][][]string
}

// NewPhraseSet returns an empty phrase set.
func NewPhraseSet() *PhraseSet {
	return &PhraseSet{byFirst: make(map[string][][]string)}
}

// Add registers a phrase given as a whitespace-separated string.
func (p *PhraseSet) Add(phrase string) {
	parts := strings.Fields(phrase)
	if len(parts) == 0 {
		return
	}
	p.byFirst[parts[0]] = append(p.byFirst[parts[0]], parts)
}

// Match scans the token sequence for any registered phrase and returns
// the first (leftmost, then longest) match.
func (p *PhraseSet) Match(norms []string) (string, bool) {
	phrase, _, _, ok := p.MatchRange(norms)
	return phrase, ok
}

// MatchRange is Match plus the token range [start, end) of the match.
func (p *PhraseSet) MatchRange(norms []string) (string, int, int, bool) {
	for i := range norms {
		candidates, ok := p.byFirst[norms[i]]
		if !ok {
			continue
		}
		var best []string
		for _, cand := range candidates {
			if len(cand) > len(norms)-i {
				continue
			}
			if !matchesAt(norms, i, cand) {
				continue
			}
			if len(cand) > len(best) {
				best = cand
			}
		}
		if best != nil {
			return strings.Join(best, " "), i, i + len(best), true
		}
	}
	return "", 0, 0, false
}

func matchesAt(norms []string, i int, phrase []string) bool {
	for j, w := range phrase {
		if norms[i+j] != w {
			return false
		}
	}
	return true
}
