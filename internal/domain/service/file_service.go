package service

import (
	"context"
	"io"
)

// PutOptions controls a single object write.
type PutOptions struct {
	ContentType  string
	CacheControl string
	// NoOverwrite makes Put fail with an errors.Conflict AppError when the
	// path already exists.
	NoOverwrite bool
}

// ObjectStorage is the storage side of the hosted backend.
type ObjectStorage interface {
	Put(ctx context.Context, bucket, path string, content io.Reader, size int64, opts PutOptions) error
	// PublicURL is a pure derivation and never touches the network.
	PublicURL(bucket, path string) string
	Remove(ctx context.Context, bucket string, paths []string) error
	Close() error
}
