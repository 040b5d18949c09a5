package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-journal/internal/domain"
	"github.com/pkordes/travel-journal/internal/repo"
	"github.com/pkordes/travel-journal/internal/service"
)

// mockRecordRepo is a hand-written test double for repo.RecordRepo.
// Each method is a function field — set only the ones your test needs.
type mockRecordRepo struct {
	create  func(ctx context.Context, rec domain.Record) (domain.Record, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Record, error)
	list    func(ctx context.Context, filter domain.Filter, page domain.Pagination) ([]domain.Record, error)
	count   func(ctx context.Context, filter domain.Filter) (int64, error)
	update  func(ctx context.Context, rec domain.Record) (domain.Record, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRecordRepo) Create(ctx context.Context, rec domain.Record) (domain.Record, error) {
	return m.create(ctx, rec)
}
func (m *mockRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error) {
	return m.getByID(ctx, id)
}
func (m *mockRecordRepo) List(ctx context.Context, filter domain.Filter, page domain.Pagination) ([]domain.Record, error) {
	return m.list(ctx, filter, page)
}
func (m *mockRecordRepo) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	return m.count(ctx, filter)
}
func (m *mockRecordRepo) Update(ctx context.Context, rec domain.Record) (domain.Record, error) {
	return m.update(ctx, rec)
}
func (m *mockRecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockRecordRepo must satisfy repo.RecordRepo.
var _ repo.RecordRepo = (*mockRecordRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validRecord() domain.Record {
	return domain.Record{
		Title:     "Weekend in Paris",
		Country:   "France",
		City:      "Paris",
		VisitDate: time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
		Rating:    5,
		Category:  "city",
	}
}

// echoRepo echoes whatever it receives back — useful for Create/Update tests
// that only care about validation logic, not what the DB returns.
func echoRepo() *mockRecordRepo {
	return &mockRecordRepo{
		create: func(_ context.Context, r domain.Record) (domain.Record, error) { return r, nil },
		update: func(_ context.Context, r domain.Record) (domain.Record, error) { return r, nil },
	}
}

// ---- Create ----------------------------------------------------------------

func TestRecordService_Create_Valid(t *testing.T) {
	svc := service.NewRecordService(echoRepo())

	got, err := svc.Create(context.Background(), validRecord())

	require.NoError(t, err)
	assert.Equal(t, "Weekend in Paris", got.Title)
}

func TestRecordService_Create_MissingTitle(t *testing.T) {
	svc := service.NewRecordService(echoRepo())

	rec := validRecord()
	rec.Title = "   " // whitespace-only should be treated as empty

	_, err := svc.Create(context.Background(), rec)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecordService_Create_TitleTooLong(t *testing.T) {
	svc := service.NewRecordService(echoRepo())

	rec := validRecord()
	for len(rec.Title) <= 200 {
		rec.Title += rec.Title
	}

	_, err := svc.Create(context.Background(), rec)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecordService_Create_RatingBounds(t *testing.T) {
	svc := service.NewRecordService(echoRepo())

	for _, rating := range []int{0, 6, -1} {
		rec := validRecord()
		rec.Rating = rating
		_, err := svc.Create(context.Background(), rec)
		assert.ErrorIs(t, err, domain.ErrValidation, "rating=%d", rating)
	}

	for rating := 1; rating <= 5; rating++ {
		rec := validRecord()
		rec.Rating = rating
		_, err := svc.Create(context.Background(), rec)
		assert.NoError(t, err, "rating=%d", rating)
	}
}

func TestRecordService_Create_CoordinateBounds(t *testing.T) {
	svc := service.NewRecordService(echoRepo())

	badLat := 90.5
	rec := validRecord()
	rec.Latitude = &badLat
	_, err := svc.Create(context.Background(), rec)
	assert.ErrorIs(t, err, domain.ErrValidation)

	badLon := -180.5
	rec = validRecord()
	rec.Longitude = &badLon
	_, err = svc.Create(context.Background(), rec)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Each coordinate is independently optional: latitude alone is fine.
	lat := 48.85
	rec = validRecord()
	rec.Latitude = &lat
	_, err = svc.Create(context.Background(), rec)
	assert.NoError(t, err)
}

func TestRecordService_Create_MissingVisitDate(t *testing.T) {
	svc := service.NewRecordService(echoRepo())

	rec := validRecord()
	rec.VisitDate = time.Time{}

	_, err := svc.Create(context.Background(), rec)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Update ----------------------------------------------------------------

func TestRecordService_Update_PartialLeavesOtherFields(t *testing.T) {
	stored := validRecord()
	stored.ID = uuid.New()
	stored.Notes = "original notes"

	var updatedWith domain.Record
	repo := &mockRecordRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Record, error) { return stored, nil },
		update: func(_ context.Context, r domain.Record) (domain.Record, error) {
			updatedWith = r
			return r, nil
		},
	}
	svc := service.NewRecordService(repo)

	rating := 2
	got, err := svc.Update(context.Background(), stored.ID, domain.RecordPatch{Rating: &rating})

	require.NoError(t, err)
	assert.Equal(t, 2, got.Rating)
	assert.Equal(t, stored.Title, updatedWith.Title)
	assert.Equal(t, stored.Notes, updatedWith.Notes)
	assert.Equal(t, stored.Country, updatedWith.Country)
}

func TestRecordService_Update_NotFound(t *testing.T) {
	repo := &mockRecordRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Record, error) {
			return domain.Record{}, fmt.Errorf("repo: %w", domain.ErrNotFound)
		},
	}
	svc := service.NewRecordService(repo)

	title := "New title"
	_, err := svc.Update(context.Background(), uuid.New(), domain.RecordPatch{Title: &title})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordService_Update_PatchedRecordValidated(t *testing.T) {
	stored := validRecord()
	stored.ID = uuid.New()
	repo := &mockRecordRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Record, error) { return stored, nil },
	}
	svc := service.NewRecordService(repo)

	bad := 9
	_, err := svc.Update(context.Background(), stored.ID, domain.RecordPatch{Rating: &bad})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Delete ----------------------------------------------------------------

func TestRecordService_Delete_ReportsBoolean(t *testing.T) {
	calls := 0
	repo := &mockRecordRepo{
		delete: func(_ context.Context, _ uuid.UUID) error {
			calls++
			if calls == 1 {
				return nil
			}
			return fmt.Errorf("repo: %w", domain.ErrNotFound)
		},
	}
	svc := service.NewRecordService(repo)

	// First delete removes the record; the second finds nothing. Neither is
	// an error at this layer.
	deleted, err := svc.Delete(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRecordService_Delete_RepoFailure(t *testing.T) {
	repo := &mockRecordRepo{
		delete: func(_ context.Context, _ uuid.UUID) error { return errors.New("connection reset") },
	}
	svc := service.NewRecordService(repo)

	_, err := svc.Delete(context.Background(), uuid.New())

	assert.Error(t, err)
}

// ---- List ------------------------------------------------------------------

func TestRecordService_List_ReturnsTotalAndNonNilSlice(t *testing.T) {
	repo := &mockRecordRepo{
		list: func(_ context.Context, _ domain.Filter, _ domain.Pagination) ([]domain.Record, error) {
			return nil, nil // repo returns nil for an empty result set
		},
		count: func(_ context.Context, _ domain.Filter) (int64, error) { return 42, nil },
	}
	svc := service.NewRecordService(repo)

	records, total, err := svc.List(context.Background(), domain.Filter{}, domain.Pagination{Limit: 10})

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Equal(t, int64(42), total)
}

func TestRecordService_List_PassesFilterToCount(t *testing.T) {
	var listFilter, countFilter domain.Filter
	repo := &mockRecordRepo{
		list: func(_ context.Context, f domain.Filter, _ domain.Pagination) ([]domain.Record, error) {
			listFilter = f
			return []domain.Record{}, nil
		},
		count: func(_ context.Context, f domain.Filter) (int64, error) {
			countFilter = f
			return 0, nil
		},
	}
	svc := service.NewRecordService(repo)

	filter := domain.Filter{Country: "France", MinRating: 3}
	_, _, err := svc.List(context.Background(), filter, domain.Pagination{Limit: 10})

	require.NoError(t, err)
	// count must see exactly the filter list saw, or pagination totals lie.
	assert.Equal(t, listFilter, countFilter)
}
