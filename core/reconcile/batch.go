package reconcile

// Batch execution primitive for gateways that apply upserts one at a time.

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Outcome is what one applied operation did to the store.
type Outcome int

const (
	// OutcomeInserted means a new record was created.
	OutcomeInserted Outcome = iota + 1
	// OutcomeModified means an existing record was found and its content changed.
	OutcomeModified
	// OutcomeUnchanged means an existing record was found with identical content.
	OutcomeUnchanged
)

// ApplyFunc applies a single operation atomically. A returned error is a failure of that
// operation only.
type ApplyFunc func(ctx context.Context, op UpsertOp) (Outcome, error)

// ClassifyFunc maps a per-operation error to its kind.
type ClassifyFunc func(err error) ErrorKind

// RunBatch executes ops with apply and aggregates the outcomes.
//
// Unordered batches run on a bounded worker pool; every operation is attempted no matter
// how many others fail. Ordered batches run sequentially and stop at the first failure.
// If ctx ends before the batch completes, RunBatch returns ctx's error and no result;
// operations already applied stay applied.
func RunBatch(ctx context.Context, ops []UpsertOp, opts BulkOptions, apply ApplyFunc, classify ClassifyFunc) (*BulkResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if classify == nil {
		classify = DefaultClassify
	}

	outcomes := make([]Outcome, len(ops))
	errs := make([]error, len(ops))

	if opts.Ordered {
		for i, op := range ops {
			if ctx.Err() != nil {
				break
			}
			outcomes[i], errs[i] = apply(ctx, op)
			if errs[i] != nil {
				break
			}
		}
	} else {
		workers := opts.Workers
		if workers <= 0 {
			workers = DefaultWorkers
		}

		var g errgroup.Group
		g.SetLimit(workers)
		for i, op := range ops {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				outcomes[i], errs[i] = apply(ctx, op)
				return nil
			})
		}
		_ = g.Wait()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &BulkResult{}
	for i, op := range ops {
		if errs[i] != nil {
			result.Errors = append(result.Errors, OperationError{
				Index:    i,
				Question: op.Question,
				Kind:     classify(errs[i]),
				Err:      errs[i],
			})
			continue
		}
		switch outcomes[i] {
		case OutcomeInserted:
			result.InsertedCount++
		case OutcomeModified:
			result.MatchedCount++
			result.ModifiedCount++
		case OutcomeUnchanged:
			result.MatchedCount++
		}
	}

	return result, nil
}

// DefaultClassify recognizes timeouts and reports everything else as unknown.
func DefaultClassify(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindUnknown
}
