package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"marketplace/internal/domain/service"
	"marketplace/pkg/errors"
	"marketplace/pkg/logger"
)

// MinIOStorageClient serves the same bucket/path contract from any
// S3-compatible endpoint, mainly for local development.
type MinIOStorageClient struct {
	client *minio.Client
}

func NewMinIOStorageClient(ctx context.Context, endpoint, accessKey, secretKey string, useSSL bool, buckets ...string) (*MinIOStorageClient, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	for _, bucket := range buckets {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if exists {
			continue
		}
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to make bucket %s: %w", bucket, err)
		}
		logger.Info("Created bucket %s on %s", bucket, endpoint)
	}

	return &MinIOStorageClient{client: client}, nil
}

func (c *MinIOStorageClient) Put(ctx context.Context, bucket, path string, content io.Reader, size int64, opts service.PutOptions) error {
	// S3 has no create-only put here, so check first. Paths carry a random
	// token and a timestamp, which keeps the window small.
	if opts.NoOverwrite {
		_, err := c.client.StatObject(ctx, bucket, path, minio.StatObjectOptions{})
		if err == nil {
			return errors.Conflict("The resource already exists", nil)
		}
		if minio.ToErrorResponse(err).Code != "NoSuchKey" {
			return errors.Transport("Failed to upload image", err)
		}
	}

	_, err := c.client.PutObject(ctx, bucket, path, content, size, minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		CacheControl: opts.CacheControl,
	})
	if err != nil {
		return errors.Transport("Failed to upload image", err)
	}

	logger.Debug("Stored object %s/%s (%d bytes)", bucket, path, size)
	return nil
}

func (c *MinIOStorageClient) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", c.client.EndpointURL().String(), bucket, path)
}

func (c *MinIOStorageClient) Remove(ctx context.Context, bucket string, paths []string) error {
	for _, path := range paths {
		if err := c.client.RemoveObject(ctx, bucket, path, minio.RemoveObjectOptions{}); err != nil {
			return errors.Transport("Failed to delete image", err)
		}
	}
	return nil
}

func (c *MinIOStorageClient) Close() error {
	return nil
}
