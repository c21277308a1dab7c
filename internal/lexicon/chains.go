package lexicon

import "github.com/ppiankov/edrbo/internal/model"

// NameChains returns the maximal runs of consecutive tokens found in the
// name gazetteer. A Ukrainian full name is usually a run of three
// (surname, given name, patronymic), which is what the fingerprint
// heuristics downstream key on.
func (s *Set) NameChains(norms []string) []model.TokenRange {
	var chains []model.TokenRange
	start := -1

	for i, n := range norms {
		if s.IsName(n) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			chains = append(chains, model.TokenRange{Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		chains = append(chains, model.TokenRange{Start: start, End: len(norms)})
	}
	return chains
}
