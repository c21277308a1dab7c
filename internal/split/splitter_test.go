package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/edrbo/internal/lexicon"
	"github.com/ppiankov/edrbo/internal/model"
	"github.com/ppiankov/edrbo/internal/token"
)

func newSplitter(t *testing.T) *Splitter {
	t.Helper()
	lex, err := lexicon.Load(model.LexiconConfig{})
	require.NoError(t, err)
	return New(lex)
}

func tokenize(t *testing.T, text string) []model.Token {
	t.Helper()
	a, err := token.NewAdapter(token.NewWordPunct())
	require.NoError(t, err)
	toks, err := a.Tokenize(text)
	require.NoError(t, err)
	return toks
}

func TestSplitTwoOwners(t *testing.T) {
	s := newSplitter(t)
	toks := tokenize(t, "Іванов Іван Іванович та Петренко Петро Петрович, Україна")

	spans := s.Split(toks)
	require.Len(t, spans, 2)

	// First cluster is the first full name, nothing else nearby.
	assert.Equal(t, 0, spans[0].Start)
	assert.Equal(t, 3, spans[0].End)

	// Second span owns the trailing country: it is the nearest cluster.
	assert.Equal(t, 4, spans[1].Start)
	assert.Equal(t, 7, spans[1].End)
	require.Len(t, spans[1].Modifiers, 1)
	assert.Equal(t, model.TokenRange{Start: 8, End: 9}, spans[1].Modifiers[0])
}

func TestSplitSingleOwnerIsWholeSequence(t *testing.T) {
	s := newSplitter(t)
	toks := tokenize(t, "Іванов Іван Іванович, Україна")

	spans := s.Split(toks)
	require.Len(t, spans, 1)
	assert.Equal(t, model.OwnerCandidateSpan{Start: 0, End: len(toks)}, spans[0])
}

func TestSplitCoversEveryNonDelimiterToken(t *testing.T) {
	s := newSplitter(t)
	toks := tokenize(t, "Іванов Іван Іванович, Україна, м. Київ та Петренко Петро Петрович, Польща")

	spans := s.Split(toks)
	require.Len(t, spans, 2)

	covered := make(map[int]bool)
	for _, span := range spans {
		for _, i := range span.Tokens() {
			assert.False(t, covered[i], "token %d assigned twice", i)
			covered[i] = true
		}
	}

	for i, tok := range toks {
		if s.IsDelimiter(tok.Norm) {
			continue
		}
		assert.True(t, covered[i], "token %d (%q) not covered", i, tok.Text)
	}
}

func TestSplitTieGoesToPrecedingCluster(t *testing.T) {
	s := newSplitter(t)

	// Hand-built norms: two 2-token clusters with one stray token exactly
	// between them.
	norms := []string{"іванов", "іван", "х1", "петренко", "петро"}
	toks := make([]model.Token, len(norms))
	for i, n := range norms {
		toks[i] = model.Token{Text: n, Norm: n}
	}

	spans := s.Split(toks)
	require.Len(t, spans, 2)
	require.Len(t, spans[0].Modifiers, 1)
	assert.Equal(t, model.TokenRange{Start: 2, End: 3}, spans[0].Modifiers[0])
	assert.Empty(t, spans[1].Modifiers)
}

func TestIsDelimiter(t *testing.T) {
	s := newSplitter(t)
	assert.True(t, s.IsDelimiter("та"))
	assert.True(t, s.IsDelimiter(","))
	assert.True(t, s.IsDelimiter(";"))
	assert.False(t, s.IsDelimiter("іванов"))
}
