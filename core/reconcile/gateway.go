package reconcile

import "context"

// Gateway is the persistent store as seen by the reconciliation engine.
// Implementations own record identity and timestamps, and must enforce the declared
// uniqueness constraint themselves so that concurrent writers cannot create duplicates.
type Gateway interface {
	// EnsureIndexes establishes the declared indexes. Declaring an index that already
	// exists with the same definition is a no-op. An incompatible existing definition
	// fails with ErrSchemaConflict; an unreachable store with ErrConnection.
	EnsureIndexes(ctx context.Context, decl SchemaDecl) error

	// BulkUpsert applies all operations and reports aggregate counts.
	// Failures of individual operations are returned in BulkResult.Errors; a non-nil
	// error means the batch could not be carried out at all.
	BulkUpsert(ctx context.Context, ops []UpsertOp, opts BulkOptions) (*BulkResult, error)
}
