package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-journal/internal/domain"
	"github.com/pkordes/travel-journal/internal/imagestore"
	"github.com/pkordes/travel-journal/internal/repo"
)

// ImageService associates uploaded image files with travel records.
// It holds the record repo because attaching requires verifying the record
// exists and then patching its image_filename, and the byte store because
// that is where the file contents actually live.
type ImageService struct {
	records repo.RecordRepo
	store   imagestore.Store
}

// NewImageService constructs an ImageService backed by the provided repo and store.
func NewImageService(records repo.RecordRepo, store imagestore.Store) *ImageService {
	return &ImageService{records: records, store: store}
}

// Attach validates and stores an uploaded image for the given record, then
// points the record's image_filename at the stored object. The generated
// name is a fresh UUID plus the upload's original extension, so names never
// collide and never reveal anything about the uploader.
//
// Returns domain.ErrNotFound if the record does not exist and
// domain.ErrUnsupportedMedia if contentType does not indicate an image.
// Any other error is a storage failure.
func (s *ImageService) Attach(ctx context.Context, recordID uuid.UUID, file io.Reader, size int64, originalName, contentType string) (string, error) {
	rec, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return "", fmt.Errorf("service.ImageService.Attach: %w", err)
	}

	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: file must be an image", domain.ErrUnsupportedMedia)
	}

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	if err := s.store.Put(ctx, filename, file, size, contentType); err != nil {
		return "", fmt.Errorf("service.ImageService.Attach: %w: %v", domain.ErrStorage, err)
	}

	patch := domain.RecordPatch{ImageFilename: &filename}
	patch.Apply(&rec)
	if _, err := s.records.Update(ctx, rec); err != nil {
		return "", fmt.Errorf("service.ImageService.Attach: update record: %w", err)
	}

	return filename, nil
}

// Retrieve opens the image attached to the given record.
// Returns domain.ErrNotFound in three distinct cases: the record does not
// exist, the record has no attached image, or the stored file has gone
// missing from the byte store.
func (s *ImageService) Retrieve(ctx context.Context, recordID uuid.UUID) (io.ReadCloser, string, error) {
	rec, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return nil, "", fmt.Errorf("service.ImageService.Retrieve: %w", err)
	}

	if rec.ImageFilename == "" {
		return nil, "", fmt.Errorf("service.ImageService.Retrieve: no image attached: %w", domain.ErrNotFound)
	}

	rc, err := s.store.Get(ctx, rec.ImageFilename)
	if err != nil {
		if errors.Is(err, imagestore.ErrNotExist) {
			return nil, "", fmt.Errorf("service.ImageService.Retrieve: image file missing: %w", domain.ErrNotFound)
		}
		return nil, "", fmt.Errorf("service.ImageService.Retrieve: %w: %v", domain.ErrStorage, err)
	}

	return rc, rec.ImageFilename, nil
}
