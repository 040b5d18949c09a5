// Package repo contains all database access logic for the Travel Journal API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-journal/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, pgx.Tx,
// and pgxmock's pool. Accepting this interface instead of *pgxpool.Pool
// directly lets unit tests pass a mock and integration tests pass a
// transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// recordColumns is the canonical column list shared by every query that
// returns full records; scanRecord expects exactly this order.
const recordColumns = `id, title, country, city, latitude, longitude,
		visit_date, rating, category, notes, image_filename, created_at, updated_at`

// RecordRepo defines the persistence operations for travel records.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type RecordRepo interface {
	// Create inserts a new record and returns the persisted row (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, rec domain.Record) (domain.Record, error)

	// GetByID retrieves a single record by its UUID primary key.
	// Returns domain.ErrNotFound if no record with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error)

	// List returns the records matching filter, ordered by visit_date
	// descending with id descending as the deterministic tiebreak, sliced
	// by the pagination window.
	List(ctx context.Context, filter domain.Filter, page domain.Pagination) ([]domain.Record, error)

	// Count returns the total number of records matching filter,
	// ignoring pagination.
	Count(ctx context.Context, filter domain.Filter) (int64, error)

	// Update overwrites the mutable fields of an existing record, refreshes
	// updated_at, and returns the updated row.
	// Returns domain.ErrNotFound if no record with that ID exists.
	Update(ctx context.Context, rec domain.Record) (domain.Record, error)

	// Delete removes a record by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgRecordRepo is the Postgres implementation of RecordRepo.
type pgRecordRepo struct {
	db db
}

// NewRecordRepo constructs a RecordRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx or a pgxmock pool.
func NewRecordRepo(db db) RecordRepo {
	return &pgRecordRepo{db: db}
}

// Create inserts a new record row and returns the full persisted record.
func (r *pgRecordRepo) Create(ctx context.Context, rec domain.Record) (domain.Record, error) {
	const q = `
		INSERT INTO travel_records
			(title, country, city, latitude, longitude, visit_date, rating, category, notes)
		VALUES
			(@title, @country, @city, @latitude, @longitude, @visit_date, @rating, @category, @notes)
		RETURNING ` + recordColumns

	args := pgx.NamedArgs{
		"title":      rec.Title,
		"country":    rec.Country,
		"city":       rec.City,
		"latitude":   rec.Latitude, // nil becomes NULL
		"longitude":  rec.Longitude,
		"visit_date": rec.VisitDate,
		"rating":     rec.Rating,
		"category":   rec.Category,
		"notes":      textOrNull(rec.Notes),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a record by primary key.
func (r *pgRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error) {
	const q = `
		SELECT ` + recordColumns + `
		FROM travel_records
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns the filtered records ordered by visit_date DESC, id DESC.
func (r *pgRecordRepo) List(ctx context.Context, filter domain.Filter, page domain.Pagination) ([]domain.Record, error) {
	where, args := filterClause(filter)
	q := `
		SELECT ` + recordColumns + `
		FROM travel_records` + where + `
		ORDER BY visit_date DESC, id DESC
		OFFSET @skip LIMIT @limit`
	args["skip"] = page.Skip
	args["limit"] = page.Limit

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.RecordRepo.List: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RecordRepo.List: scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RecordRepo.List: rows: %w", err)
	}

	return records, nil
}

// Count returns the total number of matches for filter, ignoring pagination.
func (r *pgRecordRepo) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	where, args := filterClause(filter)
	q := `SELECT COUNT(*) FROM travel_records` + where

	var total int64
	if err := r.db.QueryRow(ctx, q, args).Scan(&total); err != nil {
		return 0, fmt.Errorf("repo.RecordRepo.Count: %w", err)
	}
	return total, nil
}

// Update overwrites the mutable fields of a record and returns the updated row.
// The database sets updated_at, which keeps updated_at >= created_at without
// trusting application clocks.
func (r *pgRecordRepo) Update(ctx context.Context, rec domain.Record) (domain.Record, error) {
	const q = `
		UPDATE travel_records
		SET title          = @title,
		    country        = @country,
		    city           = @city,
		    latitude       = @latitude,
		    longitude      = @longitude,
		    visit_date     = @visit_date,
		    rating         = @rating,
		    category       = @category,
		    notes          = @notes,
		    image_filename = @image_filename,
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + recordColumns

	args := pgx.NamedArgs{
		"id":             rec.ID,
		"title":          rec.Title,
		"country":        rec.Country,
		"city":           rec.City,
		"latitude":       rec.Latitude,
		"longitude":      rec.Longitude,
		"visit_date":     rec.VisitDate,
		"rating":         rec.Rating,
		"category":       rec.Category,
		"notes":          textOrNull(rec.Notes),
		"image_filename": textOrNull(rec.ImageFilename),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a record by primary key.
func (r *pgRecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM travel_records WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.RecordRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.RecordRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// filterClause renders the optional filter predicates as a WHERE clause with
// named args. Zero-valued predicates are skipped entirely, so a zero rating
// bound disables that bound rather than excluding every record.
func filterClause(f domain.Filter) (string, pgx.NamedArgs) {
	var conds []string
	args := pgx.NamedArgs{}

	if f.Country != "" {
		conds = append(conds, "country ILIKE @country")
		args["country"] = "%" + f.Country + "%"
	}
	if f.City != "" {
		conds = append(conds, "city ILIKE @city")
		args["city"] = "%" + f.City + "%"
	}
	if f.Category != "" {
		conds = append(conds, "category ILIKE @category")
		args["category"] = "%" + f.Category + "%"
	}
	if f.MinRating > 0 {
		conds = append(conds, "rating >= @min_rating")
		args["min_rating"] = f.MinRating
	}
	if f.MaxRating > 0 {
		conds = append(conds, "rating <= @max_rating")
		args["max_rating"] = f.MaxRating
	}
	if f.StartDate != nil {
		conds = append(conds, "visit_date >= @start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conds = append(conds, "visit_date <= @end_date")
		args["end_date"] = *f.EndDate
	}

	if len(conds) == 0 {
		return "", args
	}
	return "\n\t\tWHERE " + strings.Join(conds, " AND "), args
}

// textOrNull maps an empty string to SQL NULL, for columns where the domain
// type uses "" to mean absent (notes, image_filename).
func textOrNull(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanRecord to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord maps a single database row into a domain.Record.
// It handles the UUID and nullable column conversions.
func scanRecord(s scanner) (domain.Record, error) {
	var (
		rec     domain.Record
		id      pgtype.UUID
		lat     pgtype.Float8
		lon     pgtype.Float8
		notes   pgtype.Text
		imageFn pgtype.Text
	)

	err := s.Scan(&id, &rec.Title, &rec.Country, &rec.City, &lat, &lon,
		&rec.VisitDate, &rec.Rating, &rec.Category, &notes, &imageFn,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Record{}, domain.ErrNotFound
		}
		return domain.Record{}, err
	}

	rec.ID = uuid.UUID(id.Bytes)
	if lat.Valid {
		v := lat.Float64
		rec.Latitude = &v
	}
	if lon.Valid {
		v := lon.Float64
		rec.Longitude = &v
	}
	if notes.Valid {
		rec.Notes = notes.String
	}
	if imageFn.Valid {
		rec.ImageFilename = imageFn.String
	}

	return rec, nil
}
