package service

import (
	"context"
	"fmt"

	"github.com/pkordes/travel-journal/internal/domain"
	"github.com/pkordes/travel-journal/internal/repo"
)

// StatsService exposes the aggregate statistics computed by the repo layer.
// Stats are recomputed on every call; there is deliberately no caching.
type StatsService struct {
	stats repo.StatsRepo
}

// NewStatsService constructs a StatsService backed by the provided StatsRepo.
func NewStatsService(stats repo.StatsRepo) *StatsService {
	return &StatsService{stats: stats}
}

// Aggregate returns the current derived statistics over all records.
// Maps in the result are always non-nil, so an empty store serializes as
// empty objects rather than nulls.
func (s *StatsService) Aggregate(ctx context.Context) (domain.Stats, error) {
	stats, err := s.stats.Aggregate(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("service.StatsService.Aggregate: %w", err)
	}
	if stats.AverageRatingByCountry == nil {
		stats.AverageRatingByCountry = map[string]float64{}
	}
	if stats.TopDestinationsByMonth == nil {
		stats.TopDestinationsByMonth = map[string]string{}
	}
	if stats.CategoryDistribution == nil {
		stats.CategoryDistribution = map[string]int{}
	}
	return stats, nil
}
