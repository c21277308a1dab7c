package sink

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/ppiankov/edrbo/internal/model"
)

var csvHeader = []string{
	"edrpou", "company_name", "category", "entity_type",
	"name", "country", "country_code", "address",
	"confidence", "rule",
	"asserts_no_owner", "asserts_same_as_founder",
	"mentions_foreign_entity", "mentions_multiple",
	"raw_text",
}

// CSV flattens results to one row per fact. Null fields become empty
// cells; the JSONL format is the one that preserves the distinction.
type CSV struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewCSV creates a CSV sink over w.
func NewCSV(w io.Writer) *CSV {
	return &CSV{w: csv.NewWriter(w)}
}

// Write emits one row per fact, writing the header first.
func (s *CSV) Write(res model.CompanyResult) error {
	if !s.wroteHeader {
		if err := s.w.Write(csvHeader); err != nil {
			return eris.Wrap(err, "write csv header")
		}
		s.wroteHeader = true
	}

	for _, f := range res.Facts {
		row := []string{
			f.CompanyID,
			res.Name,
			string(f.SourceCategory),
			string(f.EntityType),
			deref(f.Name),
			deref(f.Country),
			deref(f.CountryCode),
			deref(f.Address),
			strconv.FormatFloat(f.Confidence, 'f', 3, 64),
			f.Rule,
			strconv.FormatBool(f.Flags.AssertsNoOwner),
			strconv.FormatBool(f.Flags.AssertsSameAsFounder),
			strconv.FormatBool(f.Flags.MentionsForeignEntity),
			strconv.FormatBool(f.Flags.MentionsMultiple),
			f.RawText,
		}
		if err := s.w.Write(row); err != nil {
			return eris.Wrap(err, "write csv row")
		}
	}
	return nil
}

// Close flushes buffered rows.
func (s *CSV) Close() error {
	s.w.Flush()
	return eris.Wrap(s.w.Error(), "flush csv")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
