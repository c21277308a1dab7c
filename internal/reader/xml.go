// Package reader streams company records out of a registry dump. The
// official EDR export is a single XML document, usually windows-1251
// encoded, far too large to hold in memory; records are decoded one
// RECORD element at a time.
package reader

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/net/html/charset"

	"github.com/ppiankov/edrbo/internal/model"
)

// xmlRecord mirrors one RECORD element of the dump.
type xmlRecord struct {
	Name     string   `xml:"NAME"`
	EDRPOU   string   `xml:"EDRPOU"`
	Founders []string `xml:"FOUNDERS>FOUNDER"`
}

// XML reads company records from an EDR XML dump.
type XML struct {
	dec *xml.Decoder
}

// NewXML wraps a raw dump stream. The document's declared encoding is
// honored via the charset resolver, so windows-1251 feeds decode
// transparently.
func NewXML(r io.Reader) *XML {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	return &XML{dec: dec}
}

// Next returns the next company record, or io.EOF at the end of the
// dump. Malformed XML is a hard error: a truncated dump should fail the
// run, not silently shorten it.
func (x *XML) Next() (model.CompanyRecord, error) {
	for {
		tok, err := x.dec.Token()
		if err == io.EOF {
			return model.CompanyRecord{}, io.EOF
		}
		if err != nil {
			return model.CompanyRecord{}, eris.Wrap(err, "decode registry dump")
		}

		start, ok := tok.(xml.StartElement)
		if !ok || !strings.EqualFold(start.Name.Local, "RECORD") {
			continue
		}

		var rec xmlRecord
		if err := x.dec.DecodeElement(&rec, &start); err != nil {
			return model.CompanyRecord{}, eris.Wrap(err, "decode record element")
		}

		return model.CompanyRecord{
			EDRPOU:   PadEDRPOU(rec.EDRPOU),
			Name:     strings.TrimSpace(rec.Name),
			Founders: trimEach(rec.Founders),
		}, nil
	}
}

// PadEDRPOU left-pads a numeric registry code to the canonical eight
// digits. Dumps store codes as integers and drop leading zeros.
func PadEDRPOU(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || len(code) >= 8 {
		return code
	}
	return strings.Repeat("0", 8-len(code)) + code
}

// trimEach trims surrounding whitespace but keeps empty entries: an
// empty FOUNDER element is a data problem for validation to report, not
// one for the reader to hide.
func trimEach(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
