package model

// FounderText is one raw founder string from a company record,
// as it appears in the registry feed. Immutable once read.
type FounderText struct {
	Raw       string `json:"raw"`        // Original string, preserved verbatim
	CompanyID string `json:"company_id"` // EDRPOU code of the owning company
	Index     int    `json:"index"`      // Position within the company's founders list (0-based)
}

// Token is one unit of a tokenized founder string. Offsets are byte
// positions into FounderText.Raw; they never overlap and always grow.
type Token struct {
	Text  string `json:"text"`  // Surface form as it appears in the source
	Norm  string `json:"norm"`  // Lowercased, dash-stripped form used by all rules
	Start int    `json:"start"` // Byte offset of the first byte in the raw string
	End   int    `json:"end"`   // Byte offset one past the last byte
}

// OwnerCandidateSpan is a subrange of tokens believed to describe exactly
// one owner, produced by the splitter before field extraction.
// Start/End index into the token sequence, half-open.
type OwnerCandidateSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`

	// Modifiers are extra token ranges (country/address tails) attached
	// to this span by the nearest-span rule. They live outside
	// [Start, End) but belong to the same owner.
	Modifiers []TokenRange `json:"modifiers,omitempty"`
}

// TokenRange is a half-open range of token indices.
type TokenRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of tokens covered by the range.
func (r TokenRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Tokens returns every token index covered by the span, including
// attached modifier ranges.
func (s OwnerCandidateSpan) Tokens() []int {
	var idx []int
	for i := s.Start; i < s.End; i++ {
		idx = append(idx, i)
	}
	for _, m := range s.Modifiers {
		for i := m.Start; i < m.End; i++ {
			idx = append(idx, i)
		}
	}
	return idx
}
