package reader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ppiankov/edrbo/internal/model"
)

// Lines reads one founder string per line, for ad-hoc runs against text
// extracts instead of the full XML dump. Blank lines and # comments are
// skipped; every line becomes its own single-founder record with a
// synthetic sequential identifier.
type Lines struct {
	sc  *bufio.Scanner
	seq int
}

// NewLines wraps a plain-text stream.
func NewLines(r io.Reader) *Lines {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Lines{sc: sc}
}

// Next returns the next record, or io.EOF.
func (l *Lines) Next() (model.CompanyRecord, error) {
	for l.sc.Scan() {
		line := strings.TrimSpace(l.sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		l.seq++
		return model.CompanyRecord{
			EDRPOU:   fmt.Sprintf("line:%d", l.seq),
			Founders: []string{line},
		}, nil
	}
	if err := l.sc.Err(); err != nil {
		return model.CompanyRecord{}, eris.Wrap(err, "read input lines")
	}
	return model.CompanyRecord{}, io.EOF
}
