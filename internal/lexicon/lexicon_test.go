package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/edrbo/internal/model"
)

func loadDefault(t *testing.T) *Set {
	t.Helper()
	s, err := Load(model.LexiconConfig{})
	require.NoError(t, err)
	return s
}

func TestLoadEmbeddedDatasets(t *testing.T) {
	s := loadDefault(t)

	assert.True(t, s.IsName("іванов"))
	assert.True(t, s.IsName("петренко"))
	assert.False(t, s.IsName("україна"))

	assert.True(t, s.IsAddressMarker("вул"))
	assert.True(t, s.IsConjunction("та"))
	assert.False(t, s.IsConjunction("іван"))
}

func TestNoOwnerPhrases(t *testing.T) {
	s := loadDefault(t)

	_, ok := s.NoOwner().Match([]string{"кінцевий", "бенефіціарний", "власник", "відсутній"})
	assert.True(t, ok)

	_, ok = s.NoOwner().Match([]string{"засновник", "іванов"})
	assert.False(t, ok)
}

func TestSameAsFounderPhrases(t *testing.T) {
	s := loadDefault(t)

	_, ok := s.SameAsFounder().Match([]string{
		"засновник", "є", "одночасно", "кінцевим", "бенефіціарним", "власником",
	})
	assert.True(t, ok)
}

func TestMatchCountryInflectedForms(t *testing.T) {
	s := loadDefault(t)

	entry, n, ok := s.MatchCountry([]string{"громадянин", "україни"}, 1)
	require.True(t, ok)
	assert.Equal(t, "Україна", entry.Canonical)
	assert.Equal(t, "UA", entry.ISO)
	assert.Equal(t, 1, n)
}

func TestMatchCountryMultiTokenLongestWins(t *testing.T) {
	s := loadDefault(t)

	entry, n, ok := s.MatchCountry([]string{"російська", "федерація"}, 0)
	require.True(t, ok)
	assert.Equal(t, "RU", entry.ISO)
	assert.Equal(t, 2, n)
}

func TestMatchCountryMiss(t *testing.T) {
	s := loadDefault(t)

	_, _, ok := s.MatchCountry([]string{"товариство"}, 0)
	assert.False(t, ok)
}

func TestNameChains(t *testing.T) {
	s := loadDefault(t)

	chains := s.NameChains([]string{"іванов", "іван", "іванович", ",", "україна"})
	assert.Equal(t, []model.TokenRange{{Start: 0, End: 3}}, chains)

	chains = s.NameChains([]string{"іванов", "іван", "та", "петренко", "петро"})
	assert.Equal(t, []model.TokenRange{{Start: 0, End: 2}, {Start: 3, End: 5}}, chains)

	assert.Empty(t, s.NameChains([]string{"товариство", "з", "обмеженою"}))
}

func TestPhraseSetLeftmostThenLongest(t *testing.T) {
	ps := NewPhraseSet()
	ps.Add("бенефіціарний власник")
	ps.Add("бенефіціарний власник відсутній")
	ps.Add("власник відсутній")

	phrase, start, end, ok := ps.MatchRange([]string{"кінцевий", "бенефіціарний", "власник", "відсутній"})
	require.True(t, ok)
	assert.Equal(t, "бенефіціарний власник відсутній", phrase)
	assert.Equal(t, 1, start)
	assert.Equal(t, 4, end)
}

func TestExternalNamesExtendEmbedded(t *testing.T) {
	extra := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(extra, []byte("# extra\nсидоренко\n"), 0o644))

	s, err := Load(model.LexiconConfig{NamesPath: extra})
	require.NoError(t, err)

	assert.True(t, s.IsName("сидоренко"))
	assert.True(t, s.IsName("іванов"))
}

func TestJunkListRemovesNames(t *testing.T) {
	junk := filepath.Join(t.TempDir(), "junk.txt")
	require.NoError(t, os.WriteFile(junk, []byte("іванов\n"), 0o644))

	s, err := Load(model.LexiconConfig{NamesJunkPath: junk})
	require.NoError(t, err)

	assert.False(t, s.IsName("іванов"))
	assert.True(t, s.IsName("петренко"))
}
