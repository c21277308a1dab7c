package sink

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"

	"github.com/ppiankov/edrbo/internal/model"
)

// JSONL writes one company result per line. Null fields stay null in
// the output: a consumer must be able to tell "no country" from an
// empty string.
type JSONL struct {
	buf *bufio.Writer
	enc *json.Encoder
}

// NewJSONL creates a JSONL sink over w.
func NewJSONL(w io.Writer) *JSONL {
	buf := bufio.NewWriter(w)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return &JSONL{buf: buf, enc: enc}
}

// Write emits one line.
func (s *JSONL) Write(res model.CompanyResult) error {
	if err := s.enc.Encode(res); err != nil {
		return eris.Wrap(err, "encode result")
	}
	return nil
}

// Close flushes buffered output.
func (s *JSONL) Close() error {
	return eris.Wrap(s.buf.Flush(), "flush output")
}
