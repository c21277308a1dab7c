package worker

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/edrbo/internal/model"
)

// Processor turns one company record into its fact list. Implemented by
// the pipeline; must be safe for concurrent use.
type Processor interface {
	ProcessCompany(ctx context.Context, rec model.CompanyRecord) model.CompanyResult
}

// CompanyJob processes one registry record.
type CompanyJob struct {
	Seq       int
	Record    model.CompanyRecord
	Processor Processor
}

// Execute runs the record through the pipeline.
func (j *CompanyJob) Execute(ctx context.Context) Result {
	return &CompanyResult{
		Seq:    j.Seq,
		Result: j.Processor.ProcessCompany(ctx, j.Record),
	}
}

// CompanyResult pairs a pipeline result with its input position.
type CompanyResult struct {
	Seq    int
	Result model.CompanyResult
	Error  error
}

// Err implements Result.
func (r *CompanyResult) Err() error { return r.Error }

// BatchProcessor fans company records out over the pool.
type BatchProcessor struct {
	processor Processor
	workers   int
}

// NewBatchProcessor creates a batch processor with the given parallelism.
func NewBatchProcessor(p Processor, workers int) *BatchProcessor {
	return &BatchProcessor{processor: p, workers: workers}
}

// ProcessRecords processes an in-memory slice and returns results in
// input order.
func (b *BatchProcessor) ProcessRecords(ctx context.Context, recs []model.CompanyRecord) []model.CompanyResult {
	if len(recs) == 0 {
		return []model.CompanyResult{}
	}

	pool := NewPool(b.workers)
	pool.Start()
	for i, rec := range recs {
		pool.Submit(&CompanyJob{Seq: i, Record: rec, Processor: b.processor})
	}

	results := pool.Wait()
	ordered := make([]*CompanyResult, 0, len(results))
	for _, r := range results {
		ordered = append(ordered, r.(*CompanyResult))
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Seq < ordered[j].Seq })

	out := make([]model.CompanyResult, len(ordered))
	for i, r := range ordered {
		out[i] = r.Result
	}
	return out
}

// ProcessStream consumes records from in and emits results on out until
// in closes or the context is cancelled. Result order follows worker
// completion, not input order; the sequence number is not preserved
// because a registry dump does not fit in memory. out is closed on
// return.
func (b *BatchProcessor) ProcessStream(ctx context.Context, in <-chan model.CompanyRecord, out chan<- model.CompanyResult) error {
	defer close(out)

	g, ctx := errgroup.WithContext(ctx)
	workers := b.workers
	if workers <= 0 {
		workers = 1
	}

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case rec, ok := <-in:
					if !ok {
						return nil
					}
					res := b.processor.ProcessCompany(ctx, rec)
					select {
					case out <- res:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
		})
	}

	return g.Wait()
}
