package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-journal/internal/domain"
	"github.com/pkordes/travel-journal/internal/imagestore"
	"github.com/pkordes/travel-journal/internal/service"
)

// mockImageStore is a function-field double for imagestore.Store.
type mockImageStore struct {
	put func(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	get func(ctx context.Context, name string) (io.ReadCloser, error)
}

func (m *mockImageStore) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	return m.put(ctx, name, r, size, contentType)
}
func (m *mockImageStore) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	return m.get(ctx, name)
}

var _ imagestore.Store = (*mockImageStore)(nil)

func TestImageService_Attach_Success(t *testing.T) {
	stored := validRecord()
	stored.ID = uuid.New()

	var patched domain.Record
	records := &mockRecordRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Record, error) { return stored, nil },
		update: func(_ context.Context, r domain.Record) (domain.Record, error) {
			patched = r
			return r, nil
		},
	}
	var storedName, storedType string
	store := &mockImageStore{
		put: func(_ context.Context, name string, _ io.Reader, _ int64, contentType string) error {
			storedName = name
			storedType = contentType
			return nil
		},
	}
	svc := service.NewImageService(records, store)

	filename, err := svc.Attach(context.Background(), stored.ID,
		strings.NewReader("png bytes"), 9, "Eiffel Tower.PNG", "image/png")

	require.NoError(t, err)
	assert.Equal(t, storedName, filename)
	assert.True(t, strings.HasSuffix(filename, ".png"), "extension should be lowercased: %q", filename)
	assert.NotEqual(t, "Eiffel Tower.PNG", filename, "stored name must not reuse the upload name")
	assert.Equal(t, "image/png", storedType)
	assert.Equal(t, filename, patched.ImageFilename)
	// everything else on the record stays put
	assert.Equal(t, stored.Title, patched.Title)
	assert.Equal(t, stored.Rating, patched.Rating)
}

func TestImageService_Attach_RecordNotFound(t *testing.T) {
	records := &mockRecordRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Record, error) {
			return domain.Record{}, fmt.Errorf("repo: %w", domain.ErrNotFound)
		},
	}
	svc := service.NewImageService(records, &mockImageStore{})

	_, err := svc.Attach(context.Background(), uuid.New(),
		strings.NewReader("png bytes"), 9, "photo.png", "image/png")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImageService_Attach_RejectsNonImage(t *testing.T) {
	stored := validRecord()
	stored.ID = uuid.New()
	records := &mockRecordRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Record, error) { return stored, nil },
		update: func(_ context.Context, _ domain.Record) (domain.Record, error) {
			t.Fatal("record must not be updated for a rejected upload")
			return domain.Record{}, nil
		},
	}
	store := &mockImageStore{
		put: func(_ context.Context, _ string, _ io.Reader, _ int64, _ string) error {
			t.Fatal("nothing must be stored for a rejected upload")
			return nil
		},
	}
	svc := service.NewImageService(records, store)

	_, err := svc.Attach(context.Background(), stored.ID,
		strings.NewReader("%PDF-1.7"), 8, "itinerary.pdf", "application/pdf")

	assert.ErrorIs(t, err, domain.ErrUnsupportedMedia)
}

func TestImageService_Attach_StoreFailure(t *testing.T) {
	stored := validRecord()
	stored.ID = uuid.New()
	records := &mockRecordRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Record, error) { return stored, nil },
		update: func(_ context.Context, _ domain.Record) (domain.Record, error) {
			t.Fatal("record must not be updated when the store write fails")
			return domain.Record{}, nil
		},
	}
	store := &mockImageStore{
		put: func(_ context.Context, _ string, _ io.Reader, _ int64, _ string) error {
			return errors.New("disk full")
		},
	}
	svc := service.NewImageService(records, store)

	_, err := svc.Attach(context.Background(), stored.ID,
		strings.NewReader("png bytes"), 9, "photo.png", "image/png")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrUnsupportedMedia)
}

func TestImageService_Retrieve_Success(t *testing.T) {
	stored := validRecord()
	stored.ID = uuid.New()
	stored.ImageFilename = "abc123.jpg"
	records := &mockRecordRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Record, error) { return stored, nil },
	}
	store := &mockImageStore{
		get: func(_ context.Context, name string) (io.ReadCloser, error) {
			assert.Equal(t, "abc123.jpg", name)
			return io.NopCloser(strings.NewReader("jpeg bytes")), nil
		},
	}
	svc := service.NewImageService(records, store)

	rc, filename, err := svc.Retrieve(context.Background(), stored.ID)

	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "abc123.jpg", filename)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(body))
}

func TestImageService_Retrieve_NotFoundVariants(t *testing.T) {
	missingRecord := &mockRecordRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Record, error) {
			return domain.Record{}, fmt.Errorf("repo: %w", domain.ErrNotFound)
		},
	}

	withoutImage := validRecord()
	withoutImage.ID = uuid.New()
	noAttachment := &mockRecordRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Record, error) { return withoutImage, nil },
	}

	withImage := validRecord()
	withImage.ID = uuid.New()
	withImage.ImageFilename = "gone.png"
	fileGone := &mockRecordRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Record, error) { return withImage, nil },
	}
	goneStore := &mockImageStore{
		get: func(_ context.Context, _ string) (io.ReadCloser, error) {
			return nil, imagestore.ErrNotExist
		},
	}

	tests := []struct {
		name    string
		records *mockRecordRepo
		store   *mockImageStore
	}{
		{"record missing", missingRecord, &mockImageStore{}},
		{"no image attached", noAttachment, &mockImageStore{}},
		{"file missing from store", fileGone, goneStore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewImageService(tt.records, tt.store)
			_, _, err := svc.Retrieve(context.Background(), uuid.New())
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}
