// Package minio implements the upload blob store against any S3-compatible
// endpoint.
package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/cavemanlearn/bff/internal/config"
)

// BlobStore writes objects into a single bucket.
type BlobStore struct {
	client *minio.Client
	bucket string
}

// NewBlobStore connects to the configured endpoint. The bucket must already
// exist; provisioning is a deployment concern.
func NewBlobStore(cfg config.Storage) (*BlobStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("connect object storage: %w", err)
	}
	return &BlobStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *BlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}
