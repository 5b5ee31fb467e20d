package reconcile

import (
	"context"
	"slices"
	"sync"
)

// fakeStore is an in-memory Gateway with per-key atomic upserts.
type fakeStore struct {
	mu      sync.Mutex
	records map[string]CanonicalRecord

	// failOn makes the upsert for a question fail with the given error.
	failOn map[string]error
	// bulkErr fails the whole BulkUpsert call.
	bulkErr error
	// ensureErr fails EnsureIndexes.
	ensureErr error
	// block makes BulkUpsert wait for the context to end.
	block bool

	ensureCalls int
	bulkCalls   int
	lastOpts    BulkOptions
	lastOps     []UpsertOp
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[string]CanonicalRecord),
		failOn:  make(map[string]error),
	}
}

func (f *fakeStore) EnsureIndexes(ctx context.Context, decl SchemaDecl) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureCalls++
	return f.ensureErr
}

func (f *fakeStore) BulkUpsert(ctx context.Context, ops []UpsertOp, opts BulkOptions) (*BulkResult, error) {
	f.mu.Lock()
	f.bulkCalls++
	f.lastOpts = opts
	f.lastOps = ops
	bulkErr, block := f.bulkErr, f.block
	f.mu.Unlock()

	if bulkErr != nil {
		return nil, bulkErr
	}
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return RunBatch(ctx, ops, opts, f.apply, nil)
}

func (f *fakeStore) apply(ctx context.Context, op UpsertOp) (Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failOn[op.Question]; ok {
		return 0, err
	}

	existing, found := f.records[op.Question]
	f.records[op.Question] = op.Set
	if !found {
		return OutcomeInserted, nil
	}
	if existing.Answer == op.Set.Answer && slices.Equal(existing.Tags, op.Set.Tags) {
		return OutcomeUnchanged, nil
	}
	return OutcomeModified, nil
}

func (f *fakeStore) get(question string) (CanonicalRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[question]
	return rec, ok
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}
