package reconcile

import (
	"context"
)

// Reconcile upserts records into the store as a single unordered batch.
//
// Individual operation failures are reported in Result.Failures and never fail the call.
// The only call-level error is ErrSubmission, returned when the batch could not be
// carried out at all (including opts.Timeout expiring). An empty record list returns a
// zero Result without contacting the store.
func Reconcile(ctx context.Context, gw Gateway, records []CanonicalRecord, opts Options) (*Result, error) {
	result := &Result{Failures: []Failure{}}

	ops := BuildOperations(records, opts.Dedupe)
	if len(ops) == 0 {
		return result, nil
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	bulk, err := gw.BulkUpsert(ctx, ops, BulkOptions{Ordered: false, Workers: opts.Workers})
	if err != nil {
		return nil, submissionError(err)
	}

	result.Created = bulk.InsertedCount
	result.Updated = bulk.ModifiedCount
	result.Matched = bulk.MatchedCount + bulk.InsertedCount
	for _, opErr := range bulk.Errors {
		msg := ""
		if opErr.Err != nil {
			msg = opErr.Err.Error()
		}
		result.Failures = append(result.Failures, Failure{
			Question: opErr.Question,
			Kind:     opErr.Kind,
			Message:  msg,
		})
	}

	return result, nil
}
