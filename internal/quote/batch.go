package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/jmolinari/stableswap-quoter/internal/bps"
	"github.com/jmolinari/stableswap-quoter/internal/platform/observability"
	"github.com/jmolinari/stableswap-quoter/internal/platform/worker"
	"github.com/jmolinari/stableswap-quoter/internal/pool"
)

// Direction selects which side of the pool a swap sells.
type Direction int

const (
	AToB Direction = iota
	BToA
)

func (d Direction) String() string {
	if d == AToB {
		return "a_to_b"
	}
	return "b_to_a"
}

// Request is one swap to price in a batch.
type Request struct {
	ID        string
	Pool      *pool.State
	Direction Direction
	AmountIn  uint64
	Slippage  bps.BPS
}

// Outcome pairs a request ID with its quote or failure.
type Outcome struct {
	ID    string
	Quote SwapQuote
	Err   error
}

// BatchQuoter fans independent quote computations across a worker pool.
// Quotes are pure CPU work, so the pool is sized to cores rather than to
// outstanding I/O.
type BatchQuoter struct {
	workers int
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewBatchQuoter builds a BatchQuoter running up to workers quotes
// concurrently per batch.
func NewBatchQuoter(workers int, logger *observability.Logger, metrics *observability.Metrics) *BatchQuoter {
	if workers <= 0 {
		workers = 1
	}
	return &BatchQuoter{
		workers: workers,
		logger:  logger,
		metrics: metrics,
	}
}

// QuoteAll prices every request and returns one outcome per request, in
// completion order. Individual failures land in their outcome; the batch
// itself fails only on context cancellation before completion.
func (b *BatchQuoter) QuoteAll(ctx context.Context, requests []Request) ([]Outcome, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	start := time.Now()

	p := worker.NewPool[Outcome](ctx, b.workers, len(requests))
	defer p.Close()

	jobs := make([]worker.Job[Outcome], len(requests))
	for i, req := range requests {
		req := req
		jobs[i] = worker.Job[Outcome]{
			ID: req.ID,
			Execute: func(ctx context.Context) (Outcome, error) {
				return b.quoteOne(ctx, req), nil
			},
		}
	}

	results := p.SubmitAndWait(jobs)
	if len(results) < len(requests) {
		return nil, fmt.Errorf("batch quote: cancelled after %d of %d quotes: %w",
			len(results), len(requests), ctx.Err())
	}

	outcomes := make([]Outcome, 0, len(results))
	for _, r := range results {
		outcomes = append(outcomes, r.Value)
	}

	b.metrics.RecordBatch(ctx, len(requests), time.Since(start))
	b.logger.LogDebug(ctx, "batch quoted",
		"requests", len(requests),
		"duration", time.Since(start).String(),
	)

	return outcomes, nil
}

func (b *BatchQuoter) quoteOne(ctx context.Context, req Request) Outcome {
	start := time.Now()

	q := NewQuoter(req.Pool)

	var sq SwapQuote
	var err error
	switch req.Direction {
	case AToB:
		sq, err = q.SwapAToB(req.AmountIn, req.Slippage)
	default:
		sq, err = q.SwapBToA(req.AmountIn, req.Slippage)
	}

	b.metrics.RecordQuote(ctx, "swap_"+req.Direction.String(), time.Since(start), err)
	if err != nil {
		b.logger.LogError(ctx, "quote failed", err,
			"request_id", req.ID,
			"direction", req.Direction.String(),
			"amount_in", req.AmountIn,
		)
	}

	return Outcome{ID: req.ID, Quote: sq, Err: err}
}
