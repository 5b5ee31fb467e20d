// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so that teach snapshots can be read straight from an
// AWS S3 or self-hosted MinIO bucket instead of the local filesystem.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easy
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Object References
//
// Source paths of the form s3://bucket/key are recognized by ParseObjectURL.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	reader, err := client.GetObject(ctx, "teach", "data/teach.json", minio.GetObjectOptions{})
package storage
