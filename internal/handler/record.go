package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/travel-journal/internal/domain"
)

// createRecordRequest is the POST body. Validator tags mirror the field
// constraints the service enforces, so malformed shapes are rejected before
// a service round-trip.
type createRecordRequest struct {
	Title     string    `json:"title" validate:"required,max=200"`
	Country   string    `json:"country" validate:"required,max=100"`
	City      string    `json:"city" validate:"required,max=100"`
	Latitude  *float64  `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64  `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	VisitDate time.Time `json:"visit_date" validate:"required"`
	Rating    int       `json:"rating" validate:"required,gte=1,lte=5"`
	Category  string    `json:"category" validate:"required"`
	Notes     string    `json:"notes"`
}

// updateRecordRequest is the PUT body: every field optional, absent fields
// keep their stored value. There is deliberately no image_filename field —
// that column changes only through the image attachment flow.
type updateRecordRequest struct {
	Title     *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Country   *string    `json:"country" validate:"omitempty,min=1,max=100"`
	City      *string    `json:"city" validate:"omitempty,min=1,max=100"`
	Latitude  *float64   `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64   `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	VisitDate *time.Time `json:"visit_date"`
	Rating    *int       `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Category  *string    `json:"category" validate:"omitempty,min=1"`
	Notes     *string    `json:"notes"`
}

// listRecordsResponse is the paginated list envelope.
// Page is skip/limit+1 with floor division — pagination UIs rely on it.
type listRecordsResponse struct {
	Records []domain.Record `json:"records"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

// handleCreateRecord handles POST /api/v1/travel-records.
func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, validationMessage(err))
		return
	}

	created, err := s.records.Create(r.Context(), domain.Record{
		Title:     req.Title,
		Country:   req.Country,
		City:      req.City,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		VisitDate: req.VisitDate,
		Rating:    req.Rating,
		Category:  req.Category,
		Notes:     req.Notes,
	})
	if err != nil {
		writeServiceError(w, err, "travel record not found")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleListRecords handles GET /api/v1/travel-records with the optional
// filter set and skip/limit pagination.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	filter, page, err := parseListQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	records, total, err := s.records.List(r.Context(), filter, page)
	if err != nil {
		writeServiceError(w, err, "travel record not found")
		return
	}

	writeJSON(w, http.StatusOK, listRecordsResponse{
		Records: records,
		Total:   total,
		Page:    page.Page(),
		PerPage: page.Limit,
	})
}

// handleGetRecord handles GET /api/v1/travel-records/{id}.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := s.recordID(w, r)
	if !ok {
		return
	}

	rec, err := s.records.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "travel record not found")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// handleUpdateRecord handles PUT /api/v1/travel-records/{id} as a partial
// update: only fields present in the body change.
func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := s.recordID(w, r)
	if !ok {
		return
	}

	var req updateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, validationMessage(err))
		return
	}

	updated, err := s.records.Update(r.Context(), id, domain.RecordPatch{
		Title:     req.Title,
		Country:   req.Country,
		City:      req.City,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		VisitDate: req.VisitDate,
		Rating:    req.Rating,
		Category:  req.Category,
		Notes:     req.Notes,
	})
	if err != nil {
		writeServiceError(w, err, "travel record not found")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteRecord handles DELETE /api/v1/travel-records/{id}.
// The service reports a missing record as a boolean, not an error; the 404
// translation happens here.
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := s.recordID(w, r)
	if !ok {
		return
	}

	deleted, err := s.records.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "travel record not found")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, codeNotFound, "travel record not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseListQuery extracts the filter set and pagination from query params.
// Rating bounds accept 0 as "filter not applied", preserving the long-standing
// behavior of the public API.
func parseListQuery(r *http.Request) (domain.Filter, domain.Pagination, error) {
	q := r.URL.Query()

	skip, err := intParam(q.Get("skip"))
	if err != nil {
		return domain.Filter{}, domain.Pagination{}, fmt.Errorf("skip must be an integer")
	}
	if skip != nil && *skip < 0 {
		return domain.Filter{}, domain.Pagination{}, fmt.Errorf("skip must be >= 0")
	}
	limit, err := intParam(q.Get("limit"))
	if err != nil {
		return domain.Filter{}, domain.Pagination{}, fmt.Errorf("limit must be an integer")
	}
	if limit != nil && (*limit < 1 || *limit > 1000) {
		return domain.Filter{}, domain.Pagination{}, fmt.Errorf("limit must be between 1 and 1000")
	}
	page := domain.NewPagination(skip, limit)

	filter := domain.Filter{
		Country:  q.Get("country"),
		City:     q.Get("city"),
		Category: q.Get("category"),
	}

	minRating, err := intParam(q.Get("min_rating"))
	if err != nil {
		return domain.Filter{}, domain.Pagination{}, fmt.Errorf("min_rating must be an integer")
	}
	if minRating != nil {
		if *minRating < 0 || *minRating > 5 {
			return domain.Filter{}, domain.Pagination{}, fmt.Errorf("min_rating must be between 0 and 5")
		}
		filter.MinRating = *minRating
	}
	maxRating, err := intParam(q.Get("max_rating"))
	if err != nil {
		return domain.Filter{}, domain.Pagination{}, fmt.Errorf("max_rating must be an integer")
	}
	if maxRating != nil {
		if *maxRating < 0 || *maxRating > 5 {
			return domain.Filter{}, domain.Pagination{}, fmt.Errorf("max_rating must be between 0 and 5")
		}
		filter.MaxRating = *maxRating
	}

	filter.StartDate, err = timeParam(q.Get("start_date"))
	if err != nil {
		return domain.Filter{}, domain.Pagination{}, fmt.Errorf("start_date must be an ISO date or datetime")
	}
	filter.EndDate, err = timeParam(q.Get("end_date"))
	if err != nil {
		return domain.Filter{}, domain.Pagination{}, fmt.Errorf("end_date must be an ISO date or datetime")
	}

	return filter, page, nil
}

// intParam parses an optional integer query value; "" yields nil.
func intParam(v string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// timeParam parses an optional RFC 3339 datetime or bare date; "" yields nil.
func timeParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		t, err = time.Parse("2006-01-02", v)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}

// validationMessage renders a validator error as a single human-readable line
// naming the offending JSON fields.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields = append(fields, fmt.Sprintf("%s is required", jsonName(fe.Field())))
		case "max":
			fields = append(fields, fmt.Sprintf("%s must be at most %s characters", jsonName(fe.Field()), fe.Param()))
		case "min":
			fields = append(fields, fmt.Sprintf("%s must not be empty", jsonName(fe.Field())))
		case "gte", "lte":
			fields = append(fields, fmt.Sprintf("%s is out of range", jsonName(fe.Field())))
		default:
			fields = append(fields, fmt.Sprintf("%s is invalid", jsonName(fe.Field())))
		}
	}
	return strings.Join(fields, "; ")
}

// jsonName converts a Go struct field name to its snake_case JSON name.
func jsonName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
