// Package lexicon holds the fixed dictionaries and phrase templates the
// categorizer and extractors run on: country forms, no-owner and
// same-as-founder phrase templates, legal-entity and address markers,
// the name gazetteer and conjunction tokens.
//
// Seed datasets are embedded; config may point at external files that
// extend or override them.
package lexicon

import (
	"bufio"
	"embed"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ppiankov/edrbo/internal/model"
)

//go:embed datasets/*.txt datasets/countries.tsv
var datasets embed.FS

// Set is the full rule set, immutable after Load. Safe for concurrent
// reads from any number of workers.
type Set struct {
	names          map[string]struct{}
	countries      *countryIndex
	noOwner        *PhraseSet
	sameAsFounder  *PhraseSet
	boMarkers      *PhraseSet
	legalMarkers   *PhraseSet
	addressMarkers map[string]struct{}
	conjunctions   map[string]struct{}
}

// Load builds the rule set from the embedded seed datasets, merged with
// any external overrides configured in cfg.
func Load(cfg model.LexiconConfig) (*Set, error) {
	names, err := loadSet(
		[]string{"datasets/names.txt", cfg.NamesPath},
		[]string{"datasets/names_junk.txt", cfg.NamesJunkPath},
	)
	if err != nil {
		return nil, eris.Wrap(err, "lexicon: load names")
	}

	countries, err := loadCountries(cfg.CountriesPath)
	if err != nil {
		return nil, eris.Wrap(err, "lexicon: load countries")
	}

	noOwner, err := loadPhrases([]string{"datasets/phrases_no_owner.txt", cfg.NoOwnerPath})
	if err != nil {
		return nil, eris.Wrap(err, "lexicon: load no-owner phrases")
	}

	sameAsFounder, err := loadPhrases([]string{"datasets/phrases_same_as_founder.txt", cfg.SameAsFounderPath})
	if err != nil {
		return nil, eris.Wrap(err, "lexicon: load same-as-founder phrases")
	}

	boMarkers, err := loadPhrases([]string{"datasets/markers_bo.txt"})
	if err != nil {
		return nil, eris.Wrap(err, "lexicon: load ownership markers")
	}

	legalMarkers, err := loadPhrases([]string{"datasets/markers_legal.txt"})
	if err != nil {
		return nil, eris.Wrap(err, "lexicon: load legal-entity markers")
	}

	addressMarkers, err := loadSet([]string{"datasets/markers_address.txt"}, nil)
	if err != nil {
		return nil, eris.Wrap(err, "lexicon: load address markers")
	}

	conjunctions, err := loadSet([]string{"datasets/conjunctions.txt"}, nil)
	if err != nil {
		return nil, eris.Wrap(err, "lexicon: load conjunctions")
	}

	return &Set{
		names:          names,
		countries:      countries,
		noOwner:        noOwner,
		sameAsFounder:  sameAsFounder,
		boMarkers:      boMarkers,
		legalMarkers:   legalMarkers,
		addressMarkers: addressMarkers,
		conjunctions:   conjunctions,
	}, nil
}

// IsName reports whether the normalized token is in the name gazetteer.
func (s *Set) IsName(norm string) bool {
	_, ok := s.names[norm]
	return ok
}

// IsAddressMarker reports whether the token is a locality/street marker.
func (s *Set) IsAddressMarker(norm string) bool {
	_, ok := s.addressMarkers[norm]
	return ok
}

// IsConjunction reports whether the token joins several owners.
func (s *Set) IsConjunction(norm string) bool {
	_, ok := s.conjunctions[norm]
	return ok
}

// NoOwner matches the no-owner phrase templates.
func (s *Set) NoOwner() *PhraseSet { return s.noOwner }

// SameAsFounder matches the owner-is-founder phrase templates.
func (s *Set) SameAsFounder() *PhraseSet { return s.sameAsFounder }

// OwnershipMarkers matches tokens that make a record a
// beneficial-ownership assertion at all.
func (s *Set) OwnershipMarkers() *PhraseSet { return s.boMarkers }

// LegalMarkers matches legal-entity markers.
func (s *Set) LegalMarkers() *PhraseSet { return s.legalMarkers }

// MatchCountry tries to match a country form starting at token i of the
// normalized token sequence. Longest form wins. Returns the canonical
// entry and the number of tokens consumed.
func (s *Set) MatchCountry(norms []string, i int) (Country, int, bool) {
	return s.countries.matchAt(norms, i)
}

// loadSet reads one token per line from the given sources (embedded paths
// or filesystem paths; empty entries skipped), then removes everything
// found in the exclude sources. Lines shorter than two bytes and comments
// are dropped, matching the original junk filtering.
func loadSet(include, exclude []string) (map[string]struct{}, error) {
	out := make(map[string]struct{})

	for _, src := range include {
		if src == "" {
			continue
		}
		if err := eachLine(src, func(line string) {
			if line = strings.ToLower(line); len(line) > 1 {
				out[line] = struct{}{}
			}
		}); err != nil {
			return nil, err
		}
	}

	for _, src := range exclude {
		if src == "" {
			continue
		}
		if err := eachLine(src, func(line string) {
			delete(out, strings.ToLower(line))
		}); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func loadPhrases(sources []string) (*PhraseSet, error) {
	ps := NewPhraseSet()
	for _, src := range sources {
		if src == "" {
			continue
		}
		if err := eachLine(src, func(line string) {
			ps.Add(strings.ToLower(line))
		}); err != nil {
			return nil, err
		}
	}
	return ps, nil
}

// eachLine streams non-empty, non-comment lines from either the embedded
// datasets (datasets/ prefix) or an external file.
func eachLine(src string, fn func(string)) error {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(src, "datasets/") {
		data, err = datasets.ReadFile(src)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return eris.Wrapf(err, "read %s", src)
	}

	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fn(line)
	}
	return sc.Err()
}
