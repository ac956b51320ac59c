package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vbonduro/prettyteeth/internal/domain"
	"github.com/vbonduro/prettyteeth/internal/photostore"
)

// imageRepository is the subset of store.ImageStore that ImageService requires.
type imageRepository interface {
	Add(img domain.NewImage) domain.ImageRecord
	List() []domain.ImageRecord
	ListByDate(date string) []domain.ImageRecord
	Get(id string) (domain.ImageRecord, bool)
	Delete(id string) bool
}

// UploadImageInput is one parsed upload. MimeType is the type sniffed from
// Data; any file is accepted and an empty MimeType is stored as
// application/octet-stream.
type UploadImageInput struct {
	Date         string
	Description  string
	Category     string
	OriginalName string
	MimeType     string
	Data         []byte
}

type ImageService struct {
	store    imageRepository
	photoStg photostore.PhotoStore
	logger   *slog.Logger
}

func NewImageService(store imageRepository, photoStg photostore.PhotoStore, logger *slog.Logger) *ImageService {
	return &ImageService{store: store, photoStg: photoStg, logger: logger}
}

// Upload stores the image bytes under a server-generated filename and records
// the metadata.
func (s *ImageService) Upload(ctx context.Context, in UploadImageInput) (domain.ImageRecord, error) {
	if err := validateUpload(in); err != nil {
		return domain.ImageRecord{}, err
	}
	s.logger.Info("upload image started", "date", in.Date, "mime_type", in.MimeType, "bytes", len(in.Data))

	mimeType := in.MimeType
	if mimeType == "" {
		mimeType = photostore.FallbackMIME
	}
	originalName := in.OriginalName
	if originalName == "" {
		originalName = "unknown"
	}

	filename, err := s.photoStg.Save(ctx, originalName, mimeType, bytes.NewReader(in.Data))
	if err != nil {
		return domain.ImageRecord{}, fmt.Errorf("failed to save image: %w", err)
	}
	s.logger.Debug("image saved", "filename", filename)

	if err := ctx.Err(); err != nil {
		s.removeFile(context.WithoutCancel(ctx), filename)
		return domain.ImageRecord{}, fmt.Errorf("upload aborted: %w", err)
	}

	img := s.store.Add(domain.NewImage{
		Date:         in.Date,
		Filename:     filename,
		OriginalName: originalName,
		Description:  in.Description,
		Category:     in.Category,
	})
	s.logger.Info("upload image complete", "image_id", img.ID, "filename", filename)
	return img, nil
}

func (s *ImageService) List(_ context.Context) []domain.ImageRecord {
	return s.store.List()
}

func (s *ImageService) ListByDate(_ context.Context, date string) []domain.ImageRecord {
	return s.store.ListByDate(date)
}

func (s *ImageService) Get(_ context.Context, id string) (domain.ImageRecord, error) {
	img, ok := s.store.Get(id)
	if !ok {
		return domain.ImageRecord{}, domain.ErrImageNotFound
	}
	return img, nil
}

// Delete removes the record, then the backing file. A missing file is not an
// error; other file errors are logged and the record stays deleted.
func (s *ImageService) Delete(ctx context.Context, id string) (domain.ImageRecord, error) {
	img, ok := s.store.Get(id)
	if !ok || !s.store.Delete(id) {
		return domain.ImageRecord{}, domain.ErrImageNotFound
	}
	s.logger.Info("image deleted", "image_id", id)
	s.removeFile(ctx, img.Filename)
	return img, nil
}

// Open returns the stored bytes for filename.
func (s *ImageService) Open(ctx context.Context, filename string) (io.ReadCloser, string, error) {
	return s.photoStg.Open(ctx, filename)
}

func (s *ImageService) removeFile(ctx context.Context, filename string) {
	err := s.photoStg.Delete(ctx, filename)
	switch {
	case err == nil:
	case errors.Is(err, photostore.ErrNotFound):
		s.logger.Debug("image file already gone", "filename", filename)
	default:
		s.logger.Error("failed to delete image file", "filename", filename, "error", err)
	}
}

func validateUpload(in UploadImageInput) error {
	var fields []string
	if strings.TrimSpace(in.Date) == "" {
		fields = append(fields, "date is required")
	}
	if len(in.Data) == 0 {
		fields = append(fields, "file is required")
	}
	return domain.NewValidationError(fields...)
}
