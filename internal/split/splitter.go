// Package split decomposes a founder record asserting several owners into
// independent candidate spans, one per owner, before field extraction.
package split

import (
	"github.com/ppiankov/edrbo/internal/lexicon"
	"github.com/ppiankov/edrbo/internal/model"
	"github.com/ppiankov/edrbo/internal/token"
)

// Splitter splits a token sequence at delimiter boundaries between
// name-like clusters. Country/address modifiers attach to the nearest
// name span; ties resolve to the preceding span. No token is dropped:
// every non-delimiter token belongs to exactly one span.
type Splitter struct {
	lex *lexicon.Set
}

// New creates a splitter over the given rule set.
func New(lex *lexicon.Set) *Splitter {
	return &Splitter{lex: lex}
}

// Split returns one candidate span per detected owner. When fewer than
// two name clusters exist the whole sequence is a single span.
func (s *Splitter) Split(toks []model.Token) []model.OwnerCandidateSpan {
	norms := token.Norms(toks)

	var clusters []model.TokenRange
	for _, chain := range s.lex.NameChains(norms) {
		if chain.Len() >= 2 {
			clusters = append(clusters, chain)
		}
	}

	if len(clusters) < 2 {
		return []model.OwnerCandidateSpan{{Start: 0, End: len(toks)}}
	}

	spans := make([]model.OwnerCandidateSpan, len(clusters))
	for i, cl := range clusters {
		spans[i] = model.OwnerCandidateSpan{Start: cl.Start, End: cl.End}
	}

	// Assign every token outside the clusters to the nearest cluster,
	// skipping delimiters. Runs of tokens with the same owner become one
	// modifier range.
	owner := make([]int, len(toks))
	for i := range owner {
		owner[i] = -1
	}
	for ci, cl := range clusters {
		for i := cl.Start; i < cl.End; i++ {
			owner[i] = ci
		}
	}

	for i := range toks {
		if owner[i] >= 0 || s.IsDelimiter(norms[i]) {
			continue
		}
		owner[i] = s.nearestCluster(clusters, i)
	}

	for ci := range clusters {
		start := -1
		for i := 0; i <= len(toks); i++ {
			inRun := i < len(toks) && owner[i] == ci && !insideCluster(clusters[ci], i)
			if inRun && start < 0 {
				start = i
			}
			if !inRun && start >= 0 {
				spans[ci].Modifiers = append(spans[ci].Modifiers, model.TokenRange{Start: start, End: i})
				start = -1
			}
		}
	}

	return spans
}

// IsDelimiter reports whether a token only separates owners: conjunction
// tokens and the comma/semicolon between clusters.
func (s *Splitter) IsDelimiter(norm string) bool {
	return s.lex.IsConjunction(norm) || norm == "," || norm == ";"
}

// nearestCluster picks the owning cluster for a stray token: smallest
// token distance wins, ties go to the preceding cluster.
func (s *Splitter) nearestCluster(clusters []model.TokenRange, i int) int {
	best := -1
	bestDist := 0

	for ci, cl := range clusters {
		var dist int
		switch {
		case i >= cl.End:
			dist = i - cl.End + 1
		case i < cl.Start:
			dist = cl.Start - i
		default:
			dist = 0
		}

		if best < 0 || dist < bestDist {
			best, bestDist = ci, dist
			continue
		}
		// Equal distance: the preceding cluster (the one that ends before
		// the token) wins over the following one.
		if dist == bestDist && i >= cl.End && i < clusters[best].Start {
			best = ci
		}
	}
	return best
}

func insideCluster(cl model.TokenRange, i int) bool {
	return i >= cl.Start && i < cl.End
}
