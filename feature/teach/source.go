package teach

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"teach-sync/core/reconcile"
	"teach-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// ReadSource loads a snapshot from a local path or an s3://bucket/key reference.
// s3:///key reads key from defaultBucket. An object reference needs client; a missing
// source is reconcile.ErrEmptyOrInvalidInput.
func ReadSource(ctx context.Context, client storage.Client, defaultBucket, ref string) ([]byte, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: no source given", reconcile.ErrEmptyOrInvalidInput)
	}
	if key, ok := strings.CutPrefix(ref, storage.ObjectURLScheme+"/"); ok && defaultBucket != "" {
		ref = storage.ObjectURLScheme + defaultBucket + "/" + key
	}

	bucket, key, isObject := storage.ParseObjectURL(ref)
	if !isObject {
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", reconcile.ErrEmptyOrInvalidInput, ref, err)
		}
		return data, nil
	}

	if client == nil {
		return nil, errors.New("object storage is not configured")
	}
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: bucket %s does not exist", reconcile.ErrEmptyOrInvalidInput, bucket)
	}

	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", ref, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: object %s does not exist", reconcile.ErrEmptyOrInvalidInput, ref)
		}
		return nil, fmt.Errorf("read object %s: %w", ref, err)
	}
	return data, nil
}

// LoadRecords reads and decodes a snapshot.
func LoadRecords(ctx context.Context, client storage.Client, defaultBucket, ref string) ([]reconcile.RawRecord, error) {
	data, err := ReadSource(ctx, client, defaultBucket, ref)
	if err != nil {
		return nil, err
	}
	return reconcile.DecodeRawRecords(data)
}
