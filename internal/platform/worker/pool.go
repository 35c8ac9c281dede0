// Package worker provides a generic worker pool for concurrent task
// execution. The quoting engine uses it to fan a batch of independent quote
// computations across a fixed number of goroutines.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work producing a value of type T.
type Job[T any] struct {
	// ID identifies the job in results and logs.
	ID string
	// Execute runs the work. It receives the pool's context.
	Execute func(ctx context.Context) (T, error)
}

// Result is the outcome of one job.
type Result[T any] struct {
	JobID string
	Value T
	Err   error
}

// Pool processes jobs concurrently with a fixed number of workers pulling
// from a shared queue.
type Pool[T any] struct {
	workers  int
	jobQueue chan Job[T]
	results  chan Result[T]
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewPool starts a pool with the given worker count and queue buffer.
// Workers begin waiting for jobs immediately; Close shuts them down.
func NewPool[T any](ctx context.Context, workers, queueSize int) *Pool[T] {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	poolCtx, cancel := context.WithCancel(ctx)

	p := &Pool[T]{
		workers:  workers,
		jobQueue: make(chan Job[T], queueSize),
		results:  make(chan Result[T], queueSize+workers),
		ctx:      poolCtx,
		cancel:   cancel,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Pool[T]) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			value, err := job.Execute(p.ctx)
			select {
			case p.results <- Result[T]{JobID: job.ID, Value: value, Err: err}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job, blocking while the queue is full. It fails only when
// the pool's context is cancelled.
func (p *Pool[T]) Submit(job Job[T]) error {
	select {
	case <-p.ctx.Done():
		return p.ctx.Err()
	case p.jobQueue <- job:
		return nil
	}
}

// SubmitAndWait submits all jobs and collects one result per job. Results
// arrive in completion order, not submission order. On cancellation it
// returns whatever completed. Submission runs concurrently with collection
// so batches larger than the queue cannot wedge the pool.
func (p *Pool[T]) SubmitAndWait(jobs []Job[T]) []Result[T] {
	submitted := make(chan int, 1)
	go func() {
		n := 0
		for _, job := range jobs {
			if err := p.Submit(job); err != nil {
				break
			}
			n++
		}
		submitted <- n
	}()

	results := make([]Result[T], 0, len(jobs))
	want := len(jobs)
	for len(results) < want {
		select {
		case <-p.ctx.Done():
			return results
		case n := <-submitted:
			// Submission stopped early; collect only what went in.
			want = n
		case result := <-p.results:
			results = append(results, result)
		}
	}

	return results
}

// Results exposes the results channel for callers that stream jobs.
func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Close stops accepting jobs and waits for in-flight work to finish.
// Workers exit via context cancellation; the job queue is never closed so a
// late Submit fails cleanly instead of panicking.
func (p *Pool[T]) Close() {
	p.cancel()
	p.wg.Wait()
	close(p.results)
}

// Workers returns the configured worker count.
func (p *Pool[T]) Workers() int {
	return p.workers
}

// QueueLen returns the number of jobs waiting in the queue.
func (p *Pool[T]) QueueLen() int {
	return len(p.jobQueue)
}
