// Package token wraps the external language-specific tokenizer behind a
// small adapter: it validates the offset contract and applies the
// normalization every downstream rule relies on (Ukrainian-aware
// lowercasing, hanging-dash stripping).
package token

import (
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ppiankov/edrbo/internal/model"
)

// Tokenizer is the contract expected from the external tokenizer: an
// ordered token sequence with non-overlapping, monotonic byte offsets
// into the input. Must be deterministic for identical input.
type Tokenizer interface {
	Tokenize(text string) ([]model.Token, error)
}

// ErrTokenization marks tokenizer unavailability or malformed offsets.
// It is fatal at pipeline construction, never raised per record.
var ErrTokenization = eris.New("tokenization error")

// Adapter validates and normalizes the output of an external tokenizer.
type Adapter struct {
	inner Tokenizer
}

// NewAdapter wraps the given tokenizer and eagerly verifies it on a probe
// string, so a broken tokenizer fails the pipeline at startup.
func NewAdapter(inner Tokenizer) (*Adapter, error) {
	if inner == nil {
		return nil, eris.Wrap(ErrTokenization, "no tokenizer configured")
	}
	a := &Adapter{inner: inner}
	if _, err := a.Tokenize("засновник - товариство , 100 грн ."); err != nil {
		return nil, eris.Wrap(err, "tokenizer probe failed")
	}
	return a, nil
}

// Tokenize runs the inner tokenizer, checks the offset contract and fills
// Token.Norm for every token.
func (a *Adapter) Tokenize(text string) ([]model.Token, error) {
	toks, err := a.inner.Tokenize(text)
	if err != nil {
		return nil, eris.Wrapf(ErrTokenization, "tokenizer failed: %v", err)
	}

	lower := cases.Lower(language.Ukrainian)
	prevEnd := 0
	for i := range toks {
		t := &toks[i]
		if t.Start < prevEnd || t.End <= t.Start || t.End > len(text) {
			return nil, eris.Wrapf(ErrTokenization,
				"malformed offsets for token %d: [%d, %d) after %d", i, t.Start, t.End, prevEnd)
		}
		if text[t.Start:t.End] != t.Text {
			return nil, eris.Wrapf(ErrTokenization,
				"token %d text %q does not match source span %q", i, t.Text, text[t.Start:t.End])
		}
		prevEnd = t.End

		t.Norm = normalize(lower, t.Text)
	}
	return toks, nil
}

// normalize lowercases the surface form and strips hanging dashes, the
// same cleanup the registry feed needs before any dictionary lookup.
func normalize(lower cases.Caser, s string) string {
	return strings.Trim(lower.String(s), "-")
}

// Norms returns just the normalized forms, the shape most rules consume.
func Norms(toks []model.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Norm
	}
	return out
}
