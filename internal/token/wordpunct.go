package token

import (
	"unicode"

	"github.com/ppiankov/edrbo/internal/model"
)

// WordPunct is the default tokenizer: maximal runs of letters/digits and
// maximal runs of other non-space characters become separate tokens,
// whitespace is dropped. An apostrophe between letters stays inside the
// word, which Ukrainian needs (об'єднаний, ім'я).
type WordPunct struct{}

// NewWordPunct returns the built-in word/punctuation tokenizer.
func NewWordPunct() *WordPunct { return &WordPunct{} }

// Tokenize splits text into word and punctuation tokens with byte offsets.
func (w *WordPunct) Tokenize(text string) ([]model.Token, error) {
	var toks []model.Token

	runes := []rune(text)
	// Byte offset of each rune, plus the final length for the last token.
	offs := make([]int, len(runes)+1)
	pos := 0
	for i, r := range runes {
		offs[i] = pos
		pos += len(string(r))
	}
	offs[len(runes)] = pos

	emit := func(startRune, endRune int) {
		toks = append(toks, model.Token{
			Text:  string(runes[startRune:endRune]),
			Start: offs[startRune],
			End:   offs[endRune],
		})
	}

	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case isWordRune(r):
			start := i
			for i < len(runes) && (isWordRune(runes[i]) || isInnerApostrophe(runes, i)) {
				i++
			}
			emit(start, i)
		default:
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) && !isWordRune(runes[i]) {
				i++
			}
			emit(start, i)
		}
	}

	return toks, nil
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isInnerApostrophe reports whether runes[i] is an apostrophe with
// letters on both sides.
func isInnerApostrophe(runes []rune, i int) bool {
	if runes[i] != '\'' && runes[i] != '’' {
		return false
	}
	return i > 0 && i+1 < len(runes) &&
		unicode.IsLetter(runes[i-1]) && unicode.IsLetter(runes[i+1])
}
