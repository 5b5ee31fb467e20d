// Package reconcile provides the normalization and idempotent reconciliation engine that
// synchronizes a snapshot of question/answer records into a persistent store.
//
// # Architecture
//
// The engine consists of three parts, leaf-first:
//
// 1. Normalizer: DecodeRawRecords and Normalize turn untrusted JSON into CanonicalRecord
//    values, dropping records with a blank question or answer.
//
// 2. Key & Index Model: DefaultSchema declares the natural-key uniqueness constraint on
//    question and a combined search index over question, answer and tags. EnsureSchema
//    establishes both, idempotently, before any write.
//
// 3. Engine: Reconcile builds one conditional upsert per record and submits them as a
//    single unordered batch through a Gateway, aggregating counts and per-record failures.
//
// The store itself is reached through the Gateway interface. Gateways that apply
// operations one at a time can use RunBatch, which fans operations out over a bounded
// worker pool and collects outcomes without ever aborting on a single failure.
//
// # Errors
//
// ErrEmptyOrInvalidInput, ErrConnection, ErrSchemaConflict and ErrSubmission are fatal
// for an invocation. Per-record failures only appear in Result.Failures.
//
// # Usage Example
//
//	raw, err := reconcile.DecodeRawRecords(data)
//	if err != nil {
//	    return err
//	}
//	records, err := reconcile.Normalize(raw)
//	if err != nil {
//	    return err
//	}
//	if err := reconcile.EnsureSchema(ctx, store, reconcile.DefaultSchema()); err != nil {
//	    return err
//	}
//	result, err := reconcile.Reconcile(ctx, store, records, reconcile.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Created, result.Updated, result.Matched)
package reconcile
