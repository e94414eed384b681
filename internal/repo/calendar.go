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

// CalendarDayRepo defines the persistence operations for CalendarDays.
type CalendarDayRepo interface {
	// ListDates returns the dates the user already has a calendar day for
	// within the inclusive range [first, last].
	ListDates(ctx context.Context, userID uuid.UUID, first, last time.Time) ([]time.Time, error)

	// InsertDates creates calendar days for the given dates in one statement.
	// Dates that already exist (including rows inserted concurrently by
	// another request) are skipped by the (user_id, date) unique constraint.
	// Returns the number of rows actually inserted.
	InsertDates(ctx context.Context, userID uuid.UUID, dates []time.Time) (int64, error)

	// ListWithLogs returns the user's days within [first, last] ordered by
	// date, each with its driving-log entry and destination when present.
	ListWithLogs(ctx context.Context, userID uuid.UUID, first, last time.Time) ([]domain.CalendarDay, error)

	// GetByID retrieves a calendar day regardless of owner so callers can
	// tell "does not exist" apart from "belongs to someone else".
	GetByID(ctx context.Context, id uuid.UUID) (domain.CalendarDay, error)
}

type pgCalendarDayRepo struct {
	db db
}

// NewCalendarDayRepo constructs a CalendarDayRepo backed by the provided db connection.
func NewCalendarDayRepo(db db) CalendarDayRepo {
	return &pgCalendarDayRepo{db: db}
}

func (r *pgCalendarDayRepo) ListDates(ctx context.Context, userID uuid.UUID, first, last time.Time) ([]time.Time, error) {
	const q = `
		SELECT date
		FROM calendar_days
		WHERE user_id = @user_id AND date BETWEEN @first AND @last
		ORDER BY date`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID, "first": first, "last": last})
	if err != nil {
		return nil, fmt.Errorf("repo.CalendarDayRepo.ListDates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d pgtype.Date
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("repo.CalendarDayRepo.ListDates: scan: %w", err)
		}
		dates = append(dates, d.Time)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CalendarDayRepo.ListDates: rows: %w", err)
	}
	return dates, nil
}

func (r *pgCalendarDayRepo) InsertDates(ctx context.Context, userID uuid.UUID, dates []time.Time) (int64, error) {
	if len(dates) == 0 {
		return 0, nil
	}

	const q = `
		INSERT INTO calendar_days (user_id, date)
		SELECT @user_id::uuid, d
		FROM unnest(@dates::date[]) AS t(d)
		ON CONFLICT (user_id, date) DO NOTHING`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID, "dates": dates})
	if err != nil {
		return 0, fmt.Errorf("repo.CalendarDayRepo.InsertDates: %w", mapErr(err))
	}
	return tag.RowsAffected(), nil
}

func (r *pgCalendarDayRepo) ListWithLogs(ctx context.Context, userID uuid.UUID, first, last time.Time) ([]domain.CalendarDay, error) {
	const q = `
		SELECT cd.id, cd.user_id, cd.date,
		       l.id, l.destination_id, l.notes, l.created_at, l.updated_at,
		       d.user_id, d.name, (d.km * 10)::bigint, d.is_active, d.created_at, d.updated_at
		FROM calendar_days cd
		LEFT JOIN driving_logs l ON l.day_id = cd.id
		LEFT JOIN destinations d ON d.id = l.destination_id
		WHERE cd.user_id = @user_id AND cd.date BETWEEN @first AND @last
		ORDER BY cd.date`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID, "first": first, "last": last})
	if err != nil {
		return nil, fmt.Errorf("repo.CalendarDayRepo.ListWithLogs: %w", err)
	}
	defer rows.Close()

	days := []domain.CalendarDay{}
	for rows.Next() {
		day, err := scanDayWithLog(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CalendarDayRepo.ListWithLogs: scan: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CalendarDayRepo.ListWithLogs: rows: %w", err)
	}
	return days, nil
}

func (r *pgCalendarDayRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.CalendarDay, error) {
	const q = `SELECT id, user_id, date FROM calendar_days WHERE id = @id`

	var (
		dayID, userID pgtype.UUID
		date          pgtype.Date
	)
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&dayID, &userID, &date); err != nil {
		return domain.CalendarDay{}, fmt.Errorf("repo.CalendarDayRepo.GetByID: %w", mapErr(err))
	}
	return domain.CalendarDay{
		ID:     uuid.UUID(dayID.Bytes),
		UserID: uuid.UUID(userID.Bytes),
		Date:   date.Time,
	}, nil
}

// scanDayWithLog maps one LEFT JOIN row. All log and destination columns are
// NULL when the day has no entry.
func scanDayWithLog(s scanner) (domain.CalendarDay, error) {
	var (
		dayID, dayUser pgtype.UUID
		date           pgtype.Date

		logID, destID          pgtype.UUID
		notes                  pgtype.Text
		logCreated, logUpdated pgtype.Timestamptz

		destUser               pgtype.UUID
		destName               pgtype.Text
		destKm                 pgtype.Int8
		destActive             pgtype.Bool
		destCreated, destUpdtd pgtype.Timestamptz
	)

	err := s.Scan(
		&dayID, &dayUser, &date,
		&logID, &destID, &notes, &logCreated, &logUpdated,
		&destUser, &destName, &destKm, &destActive, &destCreated, &destUpdtd,
	)
	if err != nil {
		return domain.CalendarDay{}, err
	}

	day := domain.CalendarDay{
		ID:     uuid.UUID(dayID.Bytes),
		UserID: uuid.UUID(dayUser.Bytes),
		Date:   date.Time,
	}
	if !logID.Valid {
		return day, nil
	}

	day.Log = &domain.DrivingLogEntry{
		ID:            uuid.UUID(logID.Bytes),
		DayID:         day.ID,
		DestinationID: uuid.UUID(destID.Bytes),
		Notes:         notes.String,
		CreatedAt:     logCreated.Time,
		UpdatedAt:     logUpdated.Time,
		Date:          day.Date,
		UserID:        day.UserID,
		Destination: domain.Destination{
			ID:        uuid.UUID(destID.Bytes),
			UserID:    uuid.UUID(destUser.Bytes),
			Name:      destName.String,
			Km:        domain.KmFromTenths(destKm.Int64),
			IsActive:  destActive.Bool,
			CreatedAt: destCreated.Time,
			UpdatedAt: destUpdtd.Time,
		},
	}
	return day, nil
}
