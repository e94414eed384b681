package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/drivelog/internal/domain"
	"github.com/pkordes/drivelog/internal/repo"
)

// StatsService builds the monthly and yearly distance reports.
type StatsService struct {
	tx repo.Transactor
}

// NewStatsService constructs a StatsService.
func NewStatsService(tx repo.Transactor) *StatsService {
	return &StatsService{tx: tx}
}

// Monthly reports total distance and per-destination usage for one month.
// Destinations are ordered by trip count.
func (s *StatsService) Monthly(ctx context.Context, userID uuid.UUID, year, month int) (domain.MonthlyStats, error) {
	first, _, err := domain.MonthRange(year, month)
	if err != nil {
		return domain.MonthlyStats{}, fmt.Errorf("service.StatsService.Monthly: %w", err)
	}
	from, to := first, first.AddDate(0, 1, 0)

	out := domain.MonthlyStats{Year: year, Month: month}
	err = s.tx.InTx(ctx, func(r repo.Repos) error {
		var err error
		if out.TotalKm, err = r.Stats.TotalKm(ctx, userID, from, to); err != nil {
			return err
		}
		out.Destinations, err = r.Stats.DestinationUsage(ctx, userID, from, to, repo.ByCount)
		return err
	})
	if err != nil {
		return domain.MonthlyStats{}, fmt.Errorf("service.StatsService.Monthly: %w", err)
	}
	if out.Destinations == nil {
		out.Destinations = []domain.DestinationUsage{}
	}
	return out, nil
}

// Yearly reports total distance, a per-month breakdown and per-destination
// usage for one year. Unlike Monthly, destinations are ordered by distance.
func (s *StatsService) Yearly(ctx context.Context, userID uuid.UUID, year int) (domain.YearlyStats, error) {
	from, to, err := domain.YearRange(year)
	if err != nil {
		return domain.YearlyStats{}, fmt.Errorf("service.StatsService.Yearly: %w", err)
	}

	out := domain.YearlyStats{Year: year}
	err = s.tx.InTx(ctx, func(r repo.Repos) error {
		var err error
		if out.TotalKm, err = r.Stats.TotalKm(ctx, userID, from, to); err != nil {
			return err
		}
		if out.Months, err = r.Stats.MonthTotals(ctx, userID, from, to); err != nil {
			return err
		}
		out.Destinations, err = r.Stats.DestinationUsage(ctx, userID, from, to, repo.ByKm)
		return err
	})
	if err != nil {
		return domain.YearlyStats{}, fmt.Errorf("service.StatsService.Yearly: %w", err)
	}
	if out.Months == nil {
		out.Months = []domain.MonthTotal{}
	}
	if out.Destinations == nil {
		out.Destinations = []domain.DestinationUsage{}
	}
	return out, nil
}
