package usecase

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/service"
	"marketplace/internal/validate"
	"marketplace/pkg/errors"
)

const (
	DefaultBucket  = "listing-images"
	DefaultMaxSize = 5 * 1024 * 1024

	uploadCacheControl = "public, max-age=3600"
)

type UploadOptions struct {
	Bucket  string
	MaxSize int64
}

func (o UploadOptions) withDefaults(defaults UploadOptions) UploadOptions {
	if o.Bucket == "" {
		o.Bucket = defaults.Bucket
	}
	if o.MaxSize <= 0 {
		o.MaxSize = defaults.MaxSize
	}
	return o
}

type UploadUseCase struct {
	storage  service.ObjectStorage
	defaults UploadOptions

	now   func() time.Time
	token func() string
}

func NewUploadUseCase(storage service.ObjectStorage, defaults UploadOptions) *UploadUseCase {
	return &UploadUseCase{
		storage:  storage,
		defaults: defaults.withDefaults(UploadOptions{Bucket: DefaultBucket, MaxSize: DefaultMaxSize}),
		now:      time.Now,
		token:    randomToken,
	}
}

// UploadOne validates an image and stores it under a fresh path. Existing
// objects are never overwritten.
func (uc *UploadUseCase) UploadOne(ctx context.Context, file *entity.SourceFile, opts UploadOptions) (*entity.UploadedAsset, error) {
	opts = opts.withDefaults(uc.defaults)

	if err := validateImage(file, opts.MaxSize); err != nil {
		return nil, fail("Error uploading image", "", err)
	}

	path := uc.objectPath(file.Name)
	err := uc.storage.Put(ctx, opts.Bucket, path, file.Reader(), file.Size, service.PutOptions{
		ContentType:  file.ContentType,
		CacheControl: uploadCacheControl,
		NoOverwrite:  true,
	})
	if err != nil {
		return nil, fail("Error uploading image", "Failed to upload image", err)
	}

	return &entity.UploadedAsset{
		URL:  uc.storage.PublicURL(opts.Bucket, path),
		Path: path,
	}, nil
}

// UploadMany uploads every file concurrently. Any failure fails the whole
// call and no partial result is returned; objects that were stored before the
// failure are left in place.
func (uc *UploadUseCase) UploadMany(ctx context.Context, files []*entity.SourceFile, opts UploadOptions) ([]*entity.UploadedAsset, error) {
	if len(files) == 0 {
		return nil, fail("Error uploading multiple images", "", errors.EmptyInput("No files provided"))
	}

	assets := make([]*entity.UploadedAsset, len(files))
	errs := make([]error, len(files))

	var g errgroup.Group
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			assets[i], errs[i] = uc.UploadOne(ctx, file, opts)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	var first error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if first == nil {
			first = err
		}
		failed++
	}
	if failed > 0 {
		return nil, fail("Error uploading multiple images", "", errors.Aggregate(failed, errors.Message(first, "Failed to upload image")))
	}

	return assets, nil
}

func (uc *UploadUseCase) DeleteOne(ctx context.Context, path, bucket string) (bool, error) {
	if path == "" {
		return false, fail("Error deleting image", "", errors.InvalidInput("File path is required"))
	}
	if bucket == "" {
		bucket = uc.defaults.Bucket
	}

	if err := uc.storage.Remove(ctx, bucket, []string{path}); err != nil {
		return false, fail("Error deleting image", "Failed to delete image", err)
	}
	return true, nil
}

// GetURL derives the public URL of a stored object without a network call.
func (uc *UploadUseCase) GetURL(ctx context.Context, path, bucket string) (*entity.UploadedAsset, error) {
	if path == "" {
		return nil, fail("Error getting image URL", "", errors.InvalidInput("File path is required"))
	}
	if bucket == "" {
		bucket = uc.defaults.Bucket
	}

	return &entity.UploadedAsset{
		URL:  uc.storage.PublicURL(bucket, path),
		Path: path,
	}, nil
}

// Defaults reports the bucket and size limit applied when options are empty.
func (uc *UploadUseCase) Defaults() UploadOptions {
	return uc.defaults
}

func (uc *UploadUseCase) objectPath(filename string) string {
	return fmt.Sprintf("%s_%d.%s", uc.token(), uc.now().UnixMilli(), extension(filename))
}

func validateImage(file *entity.SourceFile, maxSize int64) error {
	if file == nil {
		return errors.Validation("No file provided")
	}
	if !validate.IsImage(file.ContentType) {
		return errors.Validation("File must be an image")
	}
	if file.Size > maxSize {
		return errors.Validation(fmt.Sprintf("Image size must be less than %sMB", megabytes(maxSize)))
	}
	if !validate.SupportedImage(file.ContentType) {
		return errors.Validation("Unsupported image format. Supported formats: JPEG, PNG, GIF, WebP")
	}
	return nil
}

// megabytes renders size in MiB with one decimal, rounding halves up.
func megabytes(size int64) string {
	mb := float64(size) / (1024 * 1024)
	return strconv.FormatFloat(math.Floor(mb*10+0.5)/10, 'f', 1, 64)
}

// extension returns the lower-cased text after the last dot, or the whole
// name when there is no dot.
func extension(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		filename = filename[i+1:]
	}
	return strings.ToLower(filename)
}

func randomToken() string {
	return strconv.FormatUint(rand.Uint64(), 36)
}
