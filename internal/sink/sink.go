// Package sink writes extraction results to their output format. One
// sink instance serializes all writes; the worker pool funnels results
// through a single consumer goroutine.
package sink

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ppiankov/edrbo/internal/model"
)

// Sink consumes company results.
type Sink interface {
	Write(res model.CompanyResult) error
	Close() error
}

// New picks a sink by format name.
func New(format string, w io.Writer) (Sink, error) {
	switch strings.ToLower(format) {
	case "", "jsonl":
		return NewJSONL(w), nil
	case "csv":
		return NewCSV(w), nil
	default:
		return nil, eris.Errorf("unknown output format: %s (supported: jsonl, csv)", format)
	}
}
