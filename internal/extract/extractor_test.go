package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/edrbo/internal/lexicon"
	"github.com/ppiankov/edrbo/internal/model"
	"github.com/ppiankov/edrbo/internal/token"
)

func newExtractor(t *testing.T) *Extractor {
	t.Helper()
	lex, err := lexicon.Load(model.LexiconConfig{})
	require.NoError(t, err)
	return New(lex, nil, 0.5, nil)
}

func tokenize(t *testing.T, text string) []model.Token {
	t.Helper()
	a, err := token.NewAdapter(token.NewWordPunct())
	require.NoError(t, err)
	toks, err := a.Tokenize(text)
	require.NoError(t, err)
	return toks
}

func wholeSpan(toks []model.Token) model.OwnerCandidateSpan {
	return model.OwnerCandidateSpan{Start: 0, End: len(toks)}
}

func TestExtractNameCountryAddress(t *testing.T) {
	e := newExtractor(t)
	raw := "Іванов Іван Іванович, Україна, м. Київ, розмір частки 100 грн."
	toks := tokenize(t, raw)

	f := e.Extract(context.Background(), raw, toks, wholeSpan(toks), model.CategoryNamedIndividualOwner)

	require.NotNil(t, f.Name)
	assert.Equal(t, "Іванов Іван Іванович", *f.Name)
	assert.Equal(t, float64(1), f.NameScore)

	require.NotNil(t, f.Country)
	assert.Equal(t, "Україна", *f.Country)
	require.NotNil(t, f.CountryCode)
	assert.Equal(t, "UA", *f.CountryCode)

	require.NotNil(t, f.Address)
	assert.Equal(t, "м. Київ", *f.Address)

	assert.Equal(t, model.EntityIndividual, f.EntityType)
}

func TestExtractPreservesSourceCasing(t *testing.T) {
	e := newExtractor(t)
	raw := "ІВАНОВ ІВАН ІВАНОВИЧ, УКРАЇНА"
	toks := tokenize(t, raw)

	f := e.Extract(context.Background(), raw, toks, wholeSpan(toks), model.CategoryNamedIndividualOwner)

	require.NotNil(t, f.Name)
	assert.Equal(t, "ІВАНОВ ІВАН ІВАНОВИЧ", *f.Name)
	// Country resolves to the canonical dictionary form, not the raw slice.
	require.NotNil(t, f.Country)
	assert.Equal(t, "Україна", *f.Country)
}

func TestExtractCountryInflectedForm(t *testing.T) {
	e := newExtractor(t)
	raw := "Іванов Іван Іванович, громадянин України"
	toks := tokenize(t, raw)

	f := e.Extract(context.Background(), raw, toks, wholeSpan(toks), model.CategoryNamedIndividualOwner)

	require.NotNil(t, f.Country)
	assert.Equal(t, "Україна", *f.Country)
	require.NotNil(t, f.CountryCode)
	assert.Equal(t, "UA", *f.CountryCode)
}

func TestExtractAddressNeedsMarker(t *testing.T) {
	e := newExtractor(t)
	// Trailing tokens without any locality marker must not become an address.
	raw := "Іванов Іван Іванович, Україна, частка 50 відсотків"
	toks := tokenize(t, raw)

	f := e.Extract(context.Background(), raw, toks, wholeSpan(toks), model.CategoryNamedIndividualOwner)

	assert.Nil(t, f.Address)
	assert.Equal(t, float64(0), f.AddressScore)
}

func TestExtractAddressCutAtShareBoilerplate(t *testing.T) {
	e := newExtractor(t)
	raw := "Іванов Іван Іванович, Україна, вул. Хрещатик 1, розмір внеску 500 грн"
	toks := tokenize(t, raw)

	f := e.Extract(context.Background(), raw, toks, wholeSpan(toks), model.CategoryNamedIndividualOwner)

	require.NotNil(t, f.Address)
	assert.Equal(t, "вул. Хрещатик 1", *f.Address)
}

func TestExtractLegalEntityName(t *testing.T) {
	e := newExtractor(t)
	raw := "Товариство з обмеженою відповідальністю \"Ромашка\", Україна"
	toks := tokenize(t, raw)

	f := e.Extract(context.Background(), raw, toks, wholeSpan(toks), model.CategoryLegalEntityOwner)

	require.NotNil(t, f.Name)
	assert.Equal(t, "Товариство з обмеженою відповідальністю", *f.Name)
	assert.Equal(t, model.EntityLegalEntity, f.EntityType)
	require.NotNil(t, f.CountryCode)
	assert.Equal(t, "UA", *f.CountryCode)
}

func TestExtractNoFieldCategories(t *testing.T) {
	e := newExtractor(t)
	raw := "кінцевий бенефіціарний власник відсутній"
	toks := tokenize(t, raw)

	f := e.Extract(context.Background(), raw, toks, wholeSpan(toks), model.CategoryNoBeneficialOwner)
	assert.Nil(t, f.Name)
	assert.Nil(t, f.Country)
	assert.Nil(t, f.Address)
	assert.Equal(t, model.EntityUnknown, f.EntityType)
}

func TestSameAsFounderEntityType(t *testing.T) {
	e := newExtractor(t)

	tests := []struct {
		raw  string
		want model.EntityType
	}{
		{"Іванов Іван Іванович, засновник є одночасно кінцевим бенефіціарним власником", model.EntityIndividual},
		{"ТОВ \"Ромашка\", засновник є одночасно кінцевим бенефіціарним власником", model.EntityLegalEntity},
		{"засновник є одночасно кінцевим бенефіціарним власником", model.EntityUnknown},
	}

	for _, tt := range tests {
		toks := tokenize(t, tt.raw)
		f := e.Extract(context.Background(), tt.raw, toks, wholeSpan(toks), model.CategoryOwnerSameAsFounder)
		assert.Equal(t, tt.want, f.EntityType, tt.raw)
	}
}

func TestExtractWeakFingerprintWithoutModel(t *testing.T) {
	e := newExtractor(t)
	// Two-token chain is below the fingerprint threshold; with no model the
	// name stays unresolved.
	raw := "Іванов Іван, Україна"
	toks := tokenize(t, raw)

	f := e.Extract(context.Background(), raw, toks, wholeSpan(toks), model.CategoryNamedIndividualOwner)
	assert.Nil(t, f.Name)
	assert.Equal(t, float64(0), f.NameScore)
	require.NotNil(t, f.Country)
}

func TestExtractNameStopsAtSpanGap(t *testing.T) {
	e := newExtractor(t)
	raw := "Петренко Петро Петрович, Іван"
	toks := tokenize(t, raw)

	// A name-like modifier separated from the core by a delimiter must
	// not fuse with the core chain: the gap token would otherwise be
	// swallowed into the extracted name.
	span := model.OwnerCandidateSpan{Start: 0, End: 3, Modifiers: []model.TokenRange{{Start: 4, End: 5}}}

	f := e.Extract(context.Background(), raw, toks, span, model.CategoryMultipleOwners)
	require.NotNil(t, f.Name)
	assert.Equal(t, "Петренко Петро Петрович", *f.Name)
}

func TestExtractPerSpanFields(t *testing.T) {
	e := newExtractor(t)
	raw := "Іванов Іван Іванович та Петренко Петро Петрович, Україна"
	toks := tokenize(t, raw)

	// Spans as the splitter would produce them: second cluster owns the
	// trailing country token.
	first := model.OwnerCandidateSpan{Start: 0, End: 3}
	second := model.OwnerCandidateSpan{Start: 4, End: 7, Modifiers: []model.TokenRange{{Start: 8, End: 9}}}

	f1 := e.Extract(context.Background(), raw, toks, first, model.CategoryMultipleOwners)
	require.NotNil(t, f1.Name)
	assert.Equal(t, "Іванов Іван Іванович", *f1.Name)
	assert.Nil(t, f1.Country)

	f2 := e.Extract(context.Background(), raw, toks, second, model.CategoryMultipleOwners)
	require.NotNil(t, f2.Name)
	assert.Equal(t, "Петренко Петро Петрович", *f2.Name)
	require.NotNil(t, f2.Country)
	assert.Equal(t, "Україна", *f2.Country)
}
