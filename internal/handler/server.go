// Package handler implements the HTTP surface of the Travel Journal API.
// Handlers are methods on Server, split into resource-specific files
// (record.go, stats.go, image.go, ...) that all share the same struct.
// Handlers decode and shape-check requests, call a service, and map
// sentinel errors to status codes; no business logic lives here.
package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/travel-journal/internal/domain"
)

// RecordServicer defines the business operations the record handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type RecordServicer interface {
	Create(ctx context.Context, rec domain.Record) (domain.Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error)
	List(ctx context.Context, filter domain.Filter, page domain.Pagination) ([]domain.Record, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.RecordPatch) (domain.Record, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// StatsServicer defines the aggregate operation the stats handler depends on.
type StatsServicer interface {
	Aggregate(ctx context.Context) (domain.Stats, error)
}

// ImageServicer defines the attachment operations the image handlers depend on.
type ImageServicer interface {
	Attach(ctx context.Context, recordID uuid.UUID, file io.Reader, size int64, originalName, contentType string) (string, error)
	Retrieve(ctx context.Context, recordID uuid.UUID) (io.ReadCloser, string, error)
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	records  RecordServicer
	stats    StatsServicer
	images   ImageServicer
	validate *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(records RecordServicer, stats StatsServicer, images ImageServicer) *Server {
	return &Server{
		records:  records,
		stats:    stats,
		images:   images,
		validate: validator.New(),
	}
}

// Routes registers every endpoint on a fresh chi router.
// Static segments (stats/aggregate) are matched before the {id} parameter,
// so the aggregate path never collides with record lookups.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealth)
	r.Get("/openapi.yaml", s.handleOpenAPI)

	r.Route("/api/v1/travel-records", func(r chi.Router) {
		r.Post("/", s.handleCreateRecord)
		r.Get("/", s.handleListRecords)
		r.Get("/stats/aggregate", s.handleAggregateStats)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetRecord)
			r.Put("/", s.handleUpdateRecord)
			r.Delete("/", s.handleDeleteRecord)
			r.Post("/image", s.handleAttachImage)
			r.Get("/image", s.handleGetImage)
		})
	})

	return r
}

// recordID parses the {id} path parameter. The bool result is false when the
// value is not a UUID, in which case a 400 has already been written.
func (s *Server) recordID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid record id")
		return uuid.UUID{}, false
	}
	return id, true
}
