package storage

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"marketplace/internal/domain/service"
	"marketplace/pkg/errors"
	"marketplace/pkg/logger"
)

const defaultGCSBaseURL = "https://storage.googleapis.com"

type CloudStorageClient struct {
	client        *storage.Client
	publicBaseURL string
}

func NewCloudStorageClient(ctx context.Context, publicBaseURL string, opts ...option.ClientOption) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	if publicBaseURL == "" {
		publicBaseURL = defaultGCSBaseURL
	}

	return &CloudStorageClient{
		client:        client,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// EnsureCORS lets browsers load images straight from the bucket.
func (c *CloudStorageClient) EnsureCORS(ctx context.Context, bucketName string) error {
	bucket := c.client.Bucket(bucketName)

	corsConfig := storage.CORS{
		MaxAge:          3600,
		Methods:         []string{"GET", "HEAD"},
		Origins:         []string{"*"},
		ResponseHeaders: []string{"Content-Type"},
	}

	bucketAttrs, err := bucket.Attrs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bucket attributes: %v", err)
	}

	if len(bucketAttrs.CORS) == 0 {
		_, err := bucket.Update(ctx, storage.BucketAttrsToUpdate{
			CORS: []storage.CORS{corsConfig},
		})
		if err != nil {
			return fmt.Errorf("failed to update bucket CORS: %v", err)
		}
	}

	return nil
}

func (c *CloudStorageClient) Put(ctx context.Context, bucket, path string, content io.Reader, size int64, opts service.PutOptions) error {
	obj := c.client.Bucket(bucket).Object(path)
	if opts.NoOverwrite {
		obj = obj.If(storage.Conditions{DoesNotExist: true})
	}

	wc := obj.NewWriter(ctx)
	wc.ContentType = opts.ContentType
	wc.CacheControl = opts.CacheControl

	if _, err := io.Copy(wc, content); err != nil {
		_ = wc.Close()
		return errors.Transport("Failed to upload image", err)
	}

	if err := wc.Close(); err != nil {
		var apiErr *googleapi.Error
		if stderrors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed {
			return errors.Conflict("The resource already exists", err)
		}
		return errors.Transport("Failed to upload image", err)
	}

	logger.Debug("Stored object %s/%s (%d bytes)", bucket, path, size)
	return nil
}

func (c *CloudStorageClient) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicBaseURL, bucket, path)
}

func (c *CloudStorageClient) Remove(ctx context.Context, bucket string, paths []string) error {
	for _, path := range paths {
		err := c.client.Bucket(bucket).Object(path).Delete(ctx)
		if err != nil && !stderrors.Is(err, storage.ErrObjectNotExist) {
			return errors.Transport("Failed to delete image", err)
		}
	}
	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
