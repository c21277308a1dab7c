package lexicon

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Country is a canonical country entry resolved from any of its inflected
// or adjectival forms.
type Country struct {
	Canonical string // Canonical Ukrainian name, e.g. "Україна"
	ISO       string // ISO 3166-1 alpha-2, e.g. "UA"
}

// countryIndex maps normalized forms (single- and multi-token) to their
// canonical entry. Multi-token forms are indexed by first token.
type countryIndex struct {
	single  map[string]Country
	byFirst map[string][]countryForm
}

type countryForm struct {
	tokens []string
	entry  Country
}

// loadCountries parses the embedded TSV (ISO, canonical, forms...) and an
// optional external file of the same shape.
func loadCountries(override string) (*countryIndex, error) {
	idx := &countryIndex{
		single:  make(map[string]Country),
		byFirst: make(map[string][]countryForm),
	}

	sources := []string{"datasets/countries.tsv"}
	if override != "" {
		sources = append(sources, override)
	}

	for _, src := range sources {
		if err := eachLine(src, func(line string) {
			fields := strings.Split(line, "\t")
			if len(fields) < 3 {
				return
			}
			entry := Country{ISO: strings.ToUpper(fields[0]), Canonical: fields[1]}
			for _, form := range fields[2:] {
				idx.add(strings.ToLower(strings.TrimSpace(form)), entry)
			}
		}); err != nil {
			return nil, eris.Wrapf(err, "parse countries from %s", src)
		}
	}

	return idx, nil
}

func (idx *countryIndex) add(form string, entry Country) {
	if form == "" {
		return
	}
	tokens := strings.Fields(form)
	if len(tokens) == 1 {
		idx.single[form] = entry
		return
	}
	idx.byFirst[tokens[0]] = append(idx.byFirst[tokens[0]], countryForm{tokens: tokens, entry: entry})
}

// matchAt tries the longest country form starting at position i.
func (idx *countryIndex) matchAt(norms []string, i int) (Country, int, bool) {
	var (
		best    Country
		bestLen int
	)

	for _, form := range idx.byFirst[norms[i]] {
		if len(form.tokens) > len(norms)-i || len(form.tokens) <= bestLen {
			continue
		}
		if matchesAt(norms, i, form.tokens) {
			best = form.entry
			bestLen = len(form.tokens)
		}
	}
	if bestLen > 0 {
		return best, bestLen, true
	}

	if entry, ok := idx.single[norms[i]]; ok {
		return entry, 1, true
	}
	return Country{}, 0, false
}
