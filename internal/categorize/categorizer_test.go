package categorize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/edrbo/internal/lexicon"
	"github.com/ppiankov/edrbo/internal/model"
	"github.com/ppiankov/edrbo/internal/ner"
	"github.com/ppiankov/edrbo/internal/token"
)

func tokenize(t *testing.T, text string) []model.Token {
	t.Helper()
	a, err := token.NewAdapter(token.NewWordPunct())
	require.NoError(t, err)
	toks, err := a.Tokenize(text)
	require.NoError(t, err)
	return toks
}

func newCategorizer(t *testing.T, m ner.Model) *Categorizer {
	t.Helper()
	lex, err := lexicon.Load(model.LexiconConfig{})
	require.NoError(t, err)
	return New(lex, m, 0.5, nil)
}

func TestCategorizePrimary(t *testing.T) {
	c := newCategorizer(t, nil)

	tests := []struct {
		name string
		text string
		want model.Category
		rule string
	}{
		{
			name: "no owner declared",
			text: "кінцевий бенефіціарний власник відсутній",
			want: model.CategoryNoBeneficialOwner,
			rule: "phrase:no-owner",
		},
		{
			name: "owner is the founder",
			text: "засновник є одночасно кінцевим бенефіціарним власником",
			want: model.CategoryOwnerSameAsFounder,
			rule: "phrase:same-as-founder",
		},
		{
			name: "single named individual",
			text: "Іванов Іван Іванович, Україна, м. Київ",
			want: model.CategoryNamedIndividualOwner,
			rule: "name:fingerprint",
		},
		{
			name: "legal entity",
			text: "Товариство з обмеженою відповідальністю \"Ромашка\", Польща",
			want: model.CategoryLegalEntityOwner,
			rule: "legal-entity",
		},
		{
			name: "several owners joined by conjunction",
			text: "Іванов Іван Іванович та Петренко Петро Петрович",
			want: model.CategoryMultipleOwners,
			rule: "multiple-owners",
		},
		{
			name: "nothing recognizable",
			text: "статутний капітал 100 грн",
			want: model.CategoryUnparsed,
			rule: "unrecognized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := c.Categorize(context.Background(), tokenize(t, tt.text))
			assert.Equal(t, tt.want, d.Primary)
			assert.Equal(t, tt.rule, d.Rule)
		})
	}
}

func TestNoOwnerWinsOverPaddedName(t *testing.T) {
	c := newCategorizer(t, nil)

	// A record can deny an owner and still carry the founder's full name.
	toks := tokenize(t, "Іванов Іван Іванович, кінцевий бенефіціарний власник відсутній")
	d := c.Categorize(context.Background(), toks)

	assert.Equal(t, model.CategoryNoBeneficialOwner, d.Primary)
	assert.True(t, d.Flags.AssertsNoOwner)
	assert.Equal(t, float64(1), d.Score)
}

func TestFlagsComputedIndependently(t *testing.T) {
	c := newCategorizer(t, nil)

	toks := tokenize(t, "Іванов Іван Іванович та Петренко Петро Петрович")
	d := c.Categorize(context.Background(), toks)

	assert.Equal(t, model.CategoryMultipleOwners, d.Primary)
	assert.True(t, d.Flags.MentionsMultiple)
	assert.False(t, d.Flags.AssertsNoOwner)
	assert.False(t, d.Flags.AssertsSameAsFounder)
}

func TestForeignLegalEntityFlag(t *testing.T) {
	c := newCategorizer(t, nil)

	toks := tokenize(t, "юридична особа за законодавством Польщі")
	d := c.Categorize(context.Background(), toks)

	assert.Equal(t, model.CategoryLegalEntityOwner, d.Primary)
	assert.True(t, d.Flags.MentionsForeignEntity)
}

func TestTwoTokenNameNeedsOwnershipMarker(t *testing.T) {
	c := newCategorizer(t, nil)

	// Surname plus given name alone is too weak.
	d := c.Categorize(context.Background(), tokenize(t, "Іванов Іван"))
	assert.Equal(t, model.CategoryUnparsed, d.Primary)

	// The same pair backed by an ownership marker is accepted.
	d = c.Categorize(context.Background(), tokenize(t, "бенефіціарний власник Іванов Іван"))
	assert.Equal(t, model.CategoryNamedIndividualOwner, d.Primary)
}

func TestCategorizeIdempotent(t *testing.T) {
	c := newCategorizer(t, nil)
	toks := tokenize(t, "Іванов Іван Іванович, Україна")

	first := c.Categorize(context.Background(), toks)
	second := c.Categorize(context.Background(), toks)
	assert.Equal(t, first, second)
}

// fakeModel returns a fixed answer for every record.
type fakeModel struct {
	spans []ner.EntitySpan
	err   error
	calls int
}

func (f *fakeModel) Name() string                         { return "fake" }
func (f *fakeModel) Version() string                      { return "fake:1" }
func (f *fakeModel) IsAvailable(ctx context.Context) bool { return true }
func (f *fakeModel) Classify(ctx context.Context, toks []model.Token) ([]ner.EntitySpan, error) {
	f.calls++
	return f.spans, f.err
}

func TestModelFallbackAboveThreshold(t *testing.T) {
	m := &fakeModel{spans: []ner.EntitySpan{{Start: 0, End: 2, Label: ner.LabelName, Score: 0.9}}}
	c := newCategorizer(t, m)

	// No rule matches this record, so the model decides.
	d := c.Categorize(context.Background(), tokenize(t, "статутний капітал 100 грн"))

	assert.Equal(t, model.CategoryNamedIndividualOwner, d.Primary)
	assert.Equal(t, "model:name", d.Rule)
	assert.InDelta(t, 0.9, d.Score, 1e-9)
}

func TestModelFallbackBelowThresholdDegrades(t *testing.T) {
	m := &fakeModel{spans: []ner.EntitySpan{{Start: 0, End: 2, Label: ner.LabelName, Score: 0.3}}}
	c := newCategorizer(t, m)

	d := c.Categorize(context.Background(), tokenize(t, "статутний капітал 100 грн"))
	assert.Equal(t, model.CategoryUnparsed, d.Primary)
	assert.Equal(t, float64(0), d.Score)
}

func TestModelErrorDegradesToUnparsed(t *testing.T) {
	m := &fakeModel{err: context.DeadlineExceeded}
	c := newCategorizer(t, m)

	d := c.Categorize(context.Background(), tokenize(t, "статутний капітал 100 грн"))
	assert.Equal(t, model.CategoryUnparsed, d.Primary)
}

func TestModelNotConsultedWhenRuleMatches(t *testing.T) {
	m := &fakeModel{spans: []ner.EntitySpan{{Start: 0, End: 1, Label: ner.LabelNone, Score: 0.99}}}
	c := newCategorizer(t, m)

	d := c.Categorize(context.Background(), tokenize(t, "кінцевий бенефіціарний власник відсутній"))
	assert.Equal(t, model.CategoryNoBeneficialOwner, d.Primary)
	assert.Zero(t, m.calls)
}
