// Package service contains the business logic for the Travel Journal API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-journal/internal/domain"
	"github.com/pkordes/travel-journal/internal/repo"
)

// RecordService implements business logic for travel record operations.
type RecordService struct {
	repo repo.RecordRepo
}

// NewRecordService constructs a RecordService backed by the provided RecordRepo.
func NewRecordService(r repo.RecordRepo) *RecordService {
	return &RecordService{repo: r}
}

// Create validates and persists a new record. The store assigns the ID and
// both timestamps; created_at equals updated_at on the returned record.
// Returns domain.ErrValidation if input violates field constraints.
func (s *RecordService) Create(ctx context.Context, rec domain.Record) (domain.Record, error) {
	if err := validateRecord(rec); err != nil {
		return domain.Record{}, err
	}
	result, err := s.repo.Create(ctx, rec)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.RecordService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single record by ID.
// Returns domain.ErrNotFound if no record with that ID exists.
func (s *RecordService) GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.RecordService.GetByID: %w", err)
	}
	return result, nil
}

// List returns the filtered, paginated records plus the total match count
// ignoring pagination, so callers can build page links.
// Always returns a non-nil slice so callers can safely range over it.
func (s *RecordService) List(ctx context.Context, filter domain.Filter, page domain.Pagination) ([]domain.Record, int64, error) {
	records, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.RecordService.List: %w", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("service.RecordService.List: count: %w", err)
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, total, nil
}

// Update applies a partial update: only fields set on the patch change,
// everything else keeps its stored value. The store refreshes updated_at.
// Returns domain.ErrNotFound if the record does not exist and
// domain.ErrValidation if the patched record violates field constraints.
func (s *RecordService) Update(ctx context.Context, id uuid.UUID, patch domain.RecordPatch) (domain.Record, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.RecordService.Update: %w", err)
	}

	patch.Apply(&existing)
	if err := validateRecord(existing); err != nil {
		return domain.Record{}, err
	}

	result, err := s.repo.Update(ctx, existing)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.RecordService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a record by ID. Returns true if a record existed and was
// removed, false if there was nothing to delete. A missing ID is a normal
// outcome here, not an error.
func (s *RecordService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("service.RecordService.Delete: %w", err)
	}
	return true, nil
}

// validateRecord enforces the field constraints common to Create and Update.
//   - title, country, city, category must be non-empty after trimming,
//     with the same length caps the storage schema assumes
//   - latitude/longitude are each individually optional but bounded when set
//   - rating must be in [1, 5]
//   - visit_date is required
func validateRecord(rec domain.Record) error {
	if strings.TrimSpace(rec.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len(rec.Title) > 200 {
		return fmt.Errorf("%w: title must be at most 200 characters", domain.ErrValidation)
	}
	if strings.TrimSpace(rec.Country) == "" {
		return fmt.Errorf("%w: country is required", domain.ErrValidation)
	}
	if len(rec.Country) > 100 {
		return fmt.Errorf("%w: country must be at most 100 characters", domain.ErrValidation)
	}
	if strings.TrimSpace(rec.City) == "" {
		return fmt.Errorf("%w: city is required", domain.ErrValidation)
	}
	if len(rec.City) > 100 {
		return fmt.Errorf("%w: city must be at most 100 characters", domain.ErrValidation)
	}
	if strings.TrimSpace(rec.Category) == "" {
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if rec.Latitude != nil && (*rec.Latitude < -90 || *rec.Latitude > 90) {
		return fmt.Errorf("%w: latitude must be between -90 and 90", domain.ErrValidation)
	}
	if rec.Longitude != nil && (*rec.Longitude < -180 || *rec.Longitude > 180) {
		return fmt.Errorf("%w: longitude must be between -180 and 180", domain.ErrValidation)
	}
	if rec.Rating < 1 || rec.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	if rec.VisitDate.IsZero() {
		return fmt.Errorf("%w: visit_date is required", domain.ErrValidation)
	}
	return nil
}
