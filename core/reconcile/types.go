package reconcile

import "time"

// RawRecord is one untrusted input element as decoded from JSON.
// Any field may be missing or carry the wrong type; Normalize is the only reader.
type RawRecord map[string]any

// CanonicalRecord is a validated, trimmed record ready to be upserted.
// Question and Answer are never empty; Tags is never nil.
type CanonicalRecord struct {
	// Question is the natural key.
	Question string `json:"question"`

	// Answer is the stored answer text.
	Answer string `json:"answer"`

	// Tags keeps the input order and duplicates.
	Tags []string `json:"tags"`
}

// UpsertOp is a conditional upsert: find the record whose question equals Question,
// replace its content if found, create it otherwise.
type UpsertOp struct {
	// Question is the match filter.
	Question string

	// Set holds the fields written on both insert and update.
	Set CanonicalRecord
}

// BulkOptions controls how a gateway executes a batch.
type BulkOptions struct {
	// Ordered executes operations sequentially and stops at the first failure.
	// Reconcile always submits with Ordered=false.
	Ordered bool

	// Workers bounds the number of operations in flight for unordered batches.
	// Zero selects DefaultWorkers.
	Workers int
}

// BulkResult is the gateway's aggregate answer for one batch.
type BulkResult struct {
	// InsertedCount is the number of operations that created a new record.
	InsertedCount int

	// ModifiedCount is the number of operations that changed an existing record.
	ModifiedCount int

	// MatchedCount is the number of operations that found an existing record,
	// whether or not its content changed.
	MatchedCount int

	// Errors lists failed operations ordered by Index.
	Errors []OperationError
}

// Failure identifies a record the store could not reconcile.
type Failure struct {
	// Question is the natural key of the failed record.
	Question string `json:"question"`

	// Kind classifies the failure.
	Kind ErrorKind `json:"error_kind"`

	// Message is the store error text.
	Message string `json:"message"`
}

// Result summarizes one reconciliation run.
type Result struct {
	// Created counts records inserted by this run.
	Created int `json:"created"`

	// Updated counts existing records whose content changed.
	Updated int `json:"updated"`

	// Matched counts records that match their input by key after the run:
	// existing ones found (changed or not) plus the ones just created.
	Matched int `json:"matched"`

	// Failures lists per-record failures. They do not fail the run.
	Failures []Failure `json:"failures"`
}

// Options tunes a reconciliation run.
type Options struct {
	// Workers bounds concurrent operations. Zero selects DefaultWorkers.
	Workers int

	// Timeout bounds the whole batch submission. Zero means no timeout.
	Timeout time.Duration

	// Dedupe keeps only the last occurrence of each question before submission.
	Dedupe bool
}

// DefaultWorkers is the fan-out used when no worker count is configured.
const DefaultWorkers = 16
