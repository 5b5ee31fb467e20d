// Package teach implements the SQL-backed question/answer import feature.
//
// # Components
//
//   - Store: the reconcile.Gateway over GORM. Each upsert runs in its own transaction,
//     locks the row by question, and inserts, updates or leaves it untouched. Losing an
//     insert race on the unique question index is retried as an update.
//   - EnsureIndexes: creates the teach_qa table and its declared indexes, comparing what
//     already exists via database.GetTableIndexes.
//   - ReadSource: reads a snapshot from disk or from object storage (s3://bucket/key).
//   - Service: normalize, ensure schema, reconcile, with logging at each step.
//   - Handler: HTTP endpoints.
//
// # HTTP Endpoints
//
//   - POST /teach/import : Import the records in the body, or the snapshot named by ?source=.
//   - GET /teach/schema : The collection and index declaration.
//
// Fatal errors map to 400 (invalid input), 409 (schema conflict), 503 (store unreachable)
// and 502 (submission failed).
package teach
