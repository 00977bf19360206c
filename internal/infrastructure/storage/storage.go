// Package storage keeps uploaded lab report files in an object store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/deringirish/PHMS/config"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage is the minimal blob API the report flow needs.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// New builds the store selected by cfg.Driver and makes sure the bucket exists.
func New(ctx context.Context, cfg config.StorageConfig) (ObjectStorage, error) {
	switch cfg.Driver {
	case "", "minio":
		return NewMinioStorage(ctx, cfg)
	case "s3":
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
