package reconcile

import (
	"context"
	"errors"
	"fmt"
)

// Fatal error kinds. Each aborts the invocation that produced it; callers test for them
// with errors.Is. Per-record failures are never reported through these, see Failure.
var (
	// ErrEmptyOrInvalidInput means there is nothing meaningful to reconcile.
	ErrEmptyOrInvalidInput = errors.New("empty or invalid input")

	// ErrConnection means the store is unreachable or refused the credentials.
	ErrConnection = errors.New("store connection failed")

	// ErrSchemaConflict means the required constraints or indexes could not be established.
	ErrSchemaConflict = errors.New("schema conflict")

	// ErrSubmission means a batch could not be carried out at all.
	ErrSubmission = errors.New("batch submission failed")
)

// ErrorKind classifies why a single upsert operation failed.
type ErrorKind string

const (
	// KindDuplicateKey is a uniqueness violation that survived the store's retries.
	KindDuplicateKey ErrorKind = "duplicate_key"
	// KindConflict is a transient write conflict (deadlock, lock wait timeout).
	KindConflict ErrorKind = "conflict"
	// KindTimeout is an operation that ran out of time on its own.
	KindTimeout ErrorKind = "timeout"
	// KindInvalid is an operation the store rejected as malformed.
	KindInvalid ErrorKind = "invalid"
	// KindUnknown is anything else.
	KindUnknown ErrorKind = "unknown"
)

// OperationError describes one failed operation inside a bulk call.
type OperationError struct {
	// Index is the position of the operation in the submitted batch.
	Index int
	// Question is the natural key the operation targeted.
	Question string
	// Kind classifies the failure.
	Kind ErrorKind
	// Err is the underlying store error.
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %d (%q): %s: %v", e.Index, e.Question, e.Kind, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// submissionError wraps err as ErrSubmission unless it already is one.
func submissionError(err error) error {
	if errors.Is(err, ErrSubmission) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: timed out: %w", ErrSubmission, err)
	}
	return fmt.Errorf("%w: %w", ErrSubmission, err)
}
