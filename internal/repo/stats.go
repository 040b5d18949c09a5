package repo

import (
	"context"
	"fmt"

	"github.com/pkordes/travel-journal/internal/domain"
)

// StatsRepo computes the aggregate statistics over the full record set.
// Aggregation happens in SQL; nothing is cached, every call scans fresh.
type StatsRepo interface {
	// Aggregate returns the derived statistics for all records.
	// An empty table yields empty (non-nil) maps and zero counts.
	Aggregate(ctx context.Context) (domain.Stats, error)
}

// pgStatsRepo is the Postgres implementation of StatsRepo.
type pgStatsRepo struct {
	db db
}

// NewStatsRepo constructs a StatsRepo backed by the provided db connection.
func NewStatsRepo(db db) StatsRepo {
	return &pgStatsRepo{db: db}
}

// Aggregate runs the four aggregate queries and assembles the Stats value.
func (r *pgStatsRepo) Aggregate(ctx context.Context) (domain.Stats, error) {
	stats := domain.Stats{
		AverageRatingByCountry: map[string]float64{},
		TopDestinationsByMonth: map[string]string{},
		CategoryDistribution:   map[string]int{},
	}

	if err := r.averageRatingByCountry(ctx, stats.AverageRatingByCountry); err != nil {
		return domain.Stats{}, fmt.Errorf("repo.StatsRepo.Aggregate: %w", err)
	}
	if err := r.topDestinationsByMonth(ctx, stats.TopDestinationsByMonth); err != nil {
		return domain.Stats{}, fmt.Errorf("repo.StatsRepo.Aggregate: %w", err)
	}
	if err := r.categoryDistribution(ctx, stats.CategoryDistribution); err != nil {
		return domain.Stats{}, fmt.Errorf("repo.StatsRepo.Aggregate: %w", err)
	}

	const countsQ = `
		SELECT COUNT(DISTINCT country), COUNT(DISTINCT city)
		FROM travel_records`
	err := r.db.QueryRow(ctx, countsQ).Scan(&stats.TotalCountriesVisited, &stats.TotalCitiesVisited)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("repo.StatsRepo.Aggregate: distinct counts: %w", err)
	}

	return stats, nil
}

func (r *pgStatsRepo) averageRatingByCountry(ctx context.Context, out map[string]float64) error {
	const q = `
		SELECT country, AVG(rating)::float8
		FROM travel_records
		GROUP BY country`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return fmt.Errorf("average rating: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			country string
			avg     float64
		)
		if err := rows.Scan(&country, &avg); err != nil {
			return fmt.Errorf("average rating: scan: %w", err)
		}
		out[country] = avg
	}
	return rows.Err()
}

// topDestinationsByMonth picks, per calendar month, the title of the record
// with the highest rating. DISTINCT ON with (rating DESC, id ASC) makes the
// winner deterministic: among equal max ratings the lowest id wins.
func (r *pgStatsRepo) topDestinationsByMonth(ctx context.Context, out map[string]string) error {
	const q = `
		SELECT DISTINCT ON (to_char(visit_date, 'YYYY-MM'))
			to_char(visit_date, 'YYYY-MM') AS month, title
		FROM travel_records
		ORDER BY to_char(visit_date, 'YYYY-MM'), rating DESC, id ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return fmt.Errorf("top destinations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var month, title string
		if err := rows.Scan(&month, &title); err != nil {
			return fmt.Errorf("top destinations: scan: %w", err)
		}
		out[month] = title
	}
	return rows.Err()
}

func (r *pgStatsRepo) categoryDistribution(ctx context.Context, out map[string]int) error {
	const q = `
		SELECT category, COUNT(*)
		FROM travel_records
		GROUP BY category`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return fmt.Errorf("category distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			category string
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			return fmt.Errorf("category distribution: scan: %w", err)
		}
		out[category] = count
	}
	return rows.Err()
}
