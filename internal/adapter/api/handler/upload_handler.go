package handler

import (
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"

	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"
	"marketplace/pkg/errors"
	"marketplace/pkg/logger"
	"marketplace/pkg/response"
)

type UploadHandler struct {
	uploadUseCase *usecase.UploadUseCase
}

func NewUploadHandler(uploadUseCase *usecase.UploadUseCase) *UploadHandler {
	return &UploadHandler{
		uploadUseCase: uploadUseCase,
	}
}

// Callers may name the configured bucket and may tighten the size limit;
// neither can be widened past the server configuration.
type uploadOptionsRequest struct {
	Bucket  string `form:"bucket" query:"bucket" validate:"omitempty,max=63"`
	MaxSize int64  `form:"max_size" query:"max_size" validate:"omitempty,gt=0"`
}

func (h *UploadHandler) UploadImage(c echo.Context) error {
	opts, err := h.bindUploadOptions(c)
	if err != nil {
		return response.Error(c, err)
	}

	var file *entity.SourceFile
	if header, err := c.FormFile("file"); err == nil {
		if file, err = readSourceFile(header, opts.MaxSize); err != nil {
			return response.Error(c, errors.BadRequest("Missing or invalid file", err))
		}
	}

	asset, err := h.uploadUseCase.UploadOne(c.Request().Context(), file, opts)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, asset)
}

func (h *UploadHandler) UploadImages(c echo.Context) error {
	opts, err := h.bindUploadOptions(c)
	if err != nil {
		return response.Error(c, err)
	}

	var files []*entity.SourceFile
	if form, err := c.MultipartForm(); err == nil {
		for _, header := range form.File["files"] {
			file, err := readSourceFile(header, opts.MaxSize)
			if err != nil {
				return response.Error(c, errors.BadRequest("Missing or invalid file", err))
			}
			files = append(files, file)
		}
	}

	assets, err := h.uploadUseCase.UploadMany(c.Request().Context(), files, opts)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, assets)
}

func (h *UploadHandler) DeleteImage(c echo.Context) error {
	bucket, err := h.allowedBucket(c.QueryParam("bucket"))
	if err != nil {
		return response.Error(c, err)
	}

	deleted, err := h.uploadUseCase.DeleteOne(c.Request().Context(), c.Param("path"), bucket)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, deleted)
}

func (h *UploadHandler) GetImageURL(c echo.Context) error {
	bucket, err := h.allowedBucket(c.QueryParam("bucket"))
	if err != nil {
		return response.Error(c, err)
	}

	asset, err := h.uploadUseCase.GetURL(c.Request().Context(), c.Param("path"), bucket)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, asset)
}

func (h *UploadHandler) bindUploadOptions(c echo.Context) (usecase.UploadOptions, error) {
	var req uploadOptionsRequest
	if err := c.Bind(&req); err != nil {
		return usecase.UploadOptions{}, errors.BadRequest("Invalid upload options", err)
	}
	if err := c.Validate(&req); err != nil {
		return usecase.UploadOptions{}, err
	}

	bucket, err := h.allowedBucket(req.Bucket)
	if err != nil {
		return usecase.UploadOptions{}, err
	}

	opts := h.uploadUseCase.Defaults()
	opts.Bucket = bucket
	if req.MaxSize > 0 && req.MaxSize < opts.MaxSize {
		opts.MaxSize = req.MaxSize
	}
	return opts, nil
}

// allowedBucket resolves a caller-supplied bucket name. Only the configured
// bucket is reachable over HTTP.
func (h *UploadHandler) allowedBucket(bucket string) (string, error) {
	configured := h.uploadUseCase.Defaults().Bucket
	if bucket == "" || bucket == configured {
		return configured, nil
	}
	logger.Warn("Rejected request for bucket %s", bucket)
	return "", errors.Validation("Unknown bucket")
}

// readSourceFile loads a multipart part into memory. A missing or generic
// content type is replaced by one sniffed from the leading bytes. Parts
// larger than maxSize are not read; their declared size is enough for the
// caller to reject them.
func readSourceFile(header *multipart.FileHeader, maxSize int64) (*entity.SourceFile, error) {
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		detected, err := mimetype.DetectReader(src)
		if err != nil {
			return nil, err
		}
		contentType = detected.String()
		logger.Debug("Sniffed content type %s for %s", contentType, header.Filename)
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
	}

	file := &entity.SourceFile{
		Name:        header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	}
	if header.Size > maxSize {
		return file, nil
	}

	if file.Content, err = io.ReadAll(io.LimitReader(src, maxSize)); err != nil {
		return nil, err
	}
	return file, nil
}
