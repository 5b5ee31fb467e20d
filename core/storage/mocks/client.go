package mocks

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// Client is a testify mock of storage.Client.
type Client struct {
	mock.Mock
}

// NewSnapshotClient returns a Client serving data as bucket/key.
func NewSnapshotClient(bucket, key string, data []byte) *Client {
	c := new(Client)
	c.On("BucketExists", mock.Anything, bucket).Return(true, nil)
	c.On("GetObject", mock.Anything, bucket, key, mock.Anything).
		Return(io.NopCloser(bytes.NewReader(data)), nil)
	return c
}

func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

// GetObject returns the configured reader. A nil first return value yields a nil reader.
func (m *Client) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}
