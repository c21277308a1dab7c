package reader

import "github.com/ppiankov/edrbo/internal/model"

// Source yields company records until io.EOF. Implementations are not
// safe for concurrent use; one goroutine drains the source and feeds
// the worker pool.
type Source interface {
	Next() (model.CompanyRecord, error)
}
