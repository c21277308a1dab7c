// Package worker runs company records through the pipeline on a fixed
// pool of goroutines. Concurrency lives here, not in the pipeline: the
// processing code stays synchronous and the pool stays generic.
package worker

import (
	"context"
	"sync"
)

// Job is one unit of work for the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a job hands back.
type Result interface {
	Err() error
}

// Pool executes jobs on a fixed number of workers. Submit and Wait must
// be called from the same goroutine.
type Pool struct {
	workers   int
	jobs      chan Job
	results   chan Result
	wg        sync.WaitGroup
	collectWG sync.WaitGroup
	collected []Result
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool with the given worker count; values below one
// clamp to one.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers and the result collector. The collector
// drains results while submissions are still in flight, so Submit never
// stalls behind a full results channel.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}

	p.collectWG.Add(1)
	go func() {
		defer p.collectWG.Done()
		for res := range p.results {
			p.collected = append(p.collected, res)
		}
	}()
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			res := job.Execute(p.ctx)
			select {
			case p.results <- res:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues one job. Submissions after Shutdown are dropped.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes the queue, waits for the workers to drain it and returns
// every collected result.
func (p *Pool) Wait() []Result {
	close(p.jobs)
	p.wg.Wait()
	p.closeResults()
	p.collectWG.Wait()
	return p.collected
}

// Shutdown cancels in-flight jobs and releases the workers.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
	p.collectWG.Wait()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() { close(p.results) })
}
