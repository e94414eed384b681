package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/drivelog/internal/domain"
)

// UsageOrder selects the sort key of a per-destination breakdown.
type UsageOrder int

const (
	// ByCount orders destinations by trip count, highest first.
	ByCount UsageOrder = iota
	// ByKm orders destinations by distance subtotal, highest first.
	ByKm
)

// StatsRepo runs the reporting aggregations. Every query scans driving-log
// entries whose calendar day belongs to userID and falls in [from, to).
// Sums are computed on NUMERIC in Postgres and returned as tenths.
type StatsRepo interface {
	// TotalKm returns the summed destination distance, zero when there are no entries.
	TotalKm(ctx context.Context, userID uuid.UUID, from, to time.Time) (domain.Km, error)

	// DestinationUsage returns trip count and distance subtotal per destination.
	DestinationUsage(ctx context.Context, userID uuid.UUID, from, to time.Time, order UsageOrder) ([]domain.DestinationUsage, error)

	// MonthTotals returns distance and trip count per calendar month,
	// chronologically, for months that have at least one entry.
	MonthTotals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MonthTotal, error)
}

type pgStatsRepo struct {
	db db
}

// NewStatsRepo constructs a StatsRepo backed by the provided db connection.
func NewStatsRepo(db db) StatsRepo {
	return &pgStatsRepo{db: db}
}

const statsFrom = `
	FROM driving_logs l
	JOIN calendar_days cd ON cd.id = l.day_id
	JOIN destinations d ON d.id = l.destination_id
	WHERE cd.user_id = @user_id AND cd.date >= @from AND cd.date < @to`

func (r *pgStatsRepo) TotalKm(ctx context.Context, userID uuid.UUID, from, to time.Time) (domain.Km, error) {
	const q = `SELECT (COALESCE(SUM(d.km), 0) * 10)::bigint` + statsFrom

	var tenths int64
	if err := r.db.QueryRow(ctx, q, rangeArgs(userID, from, to)).Scan(&tenths); err != nil {
		return 0, fmt.Errorf("repo.StatsRepo.TotalKm: %w", err)
	}
	return domain.KmFromTenths(tenths), nil
}

func (r *pgStatsRepo) DestinationUsage(ctx context.Context, userID uuid.UUID, from, to time.Time, order UsageOrder) ([]domain.DestinationUsage, error) {
	const base = `
		SELECT d.id, d.name, COUNT(l.id) AS trips, (SUM(d.km) * 10)::bigint AS km_tenths` + statsFrom + `
		GROUP BY d.id, d.name`

	// Name breaks ties so the output is stable.
	q := base + ` ORDER BY trips DESC, d.name`
	if order == ByKm {
		q = base + ` ORDER BY km_tenths DESC, d.name`
	}

	rows, err := r.db.Query(ctx, q, rangeArgs(userID, from, to))
	if err != nil {
		return nil, fmt.Errorf("repo.StatsRepo.DestinationUsage: %w", err)
	}
	defer rows.Close()

	usage := []domain.DestinationUsage{}
	for rows.Next() {
		var (
			u      domain.DestinationUsage
			id     pgtype.UUID
			tenths int64
		)
		if err := rows.Scan(&id, &u.Name, &u.Count, &tenths); err != nil {
			return nil, fmt.Errorf("repo.StatsRepo.DestinationUsage: scan: %w", err)
		}
		u.DestinationID = uuid.UUID(id.Bytes)
		u.KmTotal = domain.KmFromTenths(tenths)
		usage = append(usage, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StatsRepo.DestinationUsage: rows: %w", err)
	}
	return usage, nil
}

func (r *pgStatsRepo) MonthTotals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MonthTotal, error) {
	const q = `
		SELECT date_trunc('month', cd.date)::date AS month,
		       (SUM(d.km) * 10)::bigint,
		       COUNT(l.id)` + statsFrom + `
		GROUP BY month
		ORDER BY month`

	rows, err := r.db.Query(ctx, q, rangeArgs(userID, from, to))
	if err != nil {
		return nil, fmt.Errorf("repo.StatsRepo.MonthTotals: %w", err)
	}
	defer rows.Close()

	totals := []domain.MonthTotal{}
	for rows.Next() {
		var (
			m      domain.MonthTotal
			month  pgtype.Date
			tenths int64
		)
		if err := rows.Scan(&month, &tenths, &m.Trips); err != nil {
			return nil, fmt.Errorf("repo.StatsRepo.MonthTotals: scan: %w", err)
		}
		m.Month = month.Time
		m.TotalKm = domain.KmFromTenths(tenths)
		totals = append(totals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StatsRepo.MonthTotals: rows: %w", err)
	}
	return totals, nil
}

func rangeArgs(userID uuid.UUID, from, to time.Time) pgx.NamedArgs {
	return pgx.NamedArgs{"user_id": userID, "from": from, "to": to}
}
