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

// DrivingLogRepo defines the persistence operations for DrivingLogEntries.
type DrivingLogRepo interface {
	// Create inserts a new entry and returns it with its day and destination
	// resolved. Returns domain.ErrConflict if the day already has an entry.
	Create(ctx context.Context, entry domain.DrivingLogEntry) (domain.DrivingLogEntry, error)

	// GetByID retrieves an entry regardless of owner; the owning user is
	// reported in the result's UserID. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (domain.DrivingLogEntry, error)

	// Update overwrites destination_id and notes. day_id is never written.
	Update(ctx context.Context, entry domain.DrivingLogEntry) (domain.DrivingLogEntry, error)

	// ListByRange returns the user's entries whose day falls in [from, to),
	// ordered by date, flattened for export.
	ListByRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.ExportRow, error)
}

type pgDrivingLogRepo struct {
	db db
}

// NewDrivingLogRepo constructs a DrivingLogRepo backed by the provided db connection.
func NewDrivingLogRepo(db db) DrivingLogRepo {
	return &pgDrivingLogRepo{db: db}
}

const drivingLogSelect = `
	SELECT l.id, l.day_id, l.notes, l.created_at, l.updated_at,
	       cd.date, cd.user_id,
	       d.id, d.user_id, d.name, (d.km * 10)::bigint, d.is_active, d.created_at, d.updated_at
	FROM driving_logs l
	JOIN calendar_days cd ON cd.id = l.day_id
	JOIN destinations d ON d.id = l.destination_id`

func (r *pgDrivingLogRepo) Create(ctx context.Context, entry domain.DrivingLogEntry) (domain.DrivingLogEntry, error) {
	const q = `
		INSERT INTO driving_logs (day_id, destination_id, notes)
		VALUES (@day_id, @destination_id, @notes)
		RETURNING id`

	args := pgx.NamedArgs{
		"day_id":         entry.DayID,
		"destination_id": entry.DestinationID,
		"notes":          entry.Notes,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return domain.DrivingLogEntry{}, fmt.Errorf("repo.DrivingLogRepo.Create: %w", mapErr(err))
	}

	result, err := r.GetByID(ctx, uuid.UUID(id.Bytes))
	if err != nil {
		return domain.DrivingLogEntry{}, fmt.Errorf("repo.DrivingLogRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDrivingLogRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.DrivingLogEntry, error) {
	const q = drivingLogSelect + ` WHERE l.id = @id`

	result, err := scanDrivingLog(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.DrivingLogEntry{}, fmt.Errorf("repo.DrivingLogRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDrivingLogRepo) Update(ctx context.Context, entry domain.DrivingLogEntry) (domain.DrivingLogEntry, error) {
	const q = `
		UPDATE driving_logs
		SET destination_id = @destination_id,
		    notes          = @notes,
		    updated_at     = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":             entry.ID,
		"destination_id": entry.DestinationID,
		"notes":          entry.Notes,
	})
	if err != nil {
		return domain.DrivingLogEntry{}, fmt.Errorf("repo.DrivingLogRepo.Update: %w", mapErr(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.DrivingLogEntry{}, fmt.Errorf("repo.DrivingLogRepo.Update: %w", domain.ErrNotFound)
	}

	result, err := r.GetByID(ctx, entry.ID)
	if err != nil {
		return domain.DrivingLogEntry{}, fmt.Errorf("repo.DrivingLogRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDrivingLogRepo) ListByRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.ExportRow, error) {
	const q = `
		SELECT cd.date, d.name, (d.km * 10)::bigint, l.notes
		FROM driving_logs l
		JOIN calendar_days cd ON cd.id = l.day_id
		JOIN destinations d ON d.id = l.destination_id
		WHERE cd.user_id = @user_id AND cd.date >= @from AND cd.date < @to
		ORDER BY cd.date`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID, "from": from, "to": to})
	if err != nil {
		return nil, fmt.Errorf("repo.DrivingLogRepo.ListByRange: %w", err)
	}
	defer rows.Close()

	out := []domain.ExportRow{}
	for rows.Next() {
		var (
			row    domain.ExportRow
			date   pgtype.Date
			tenths int64
		)
		if err := rows.Scan(&date, &row.Destination, &tenths, &row.Notes); err != nil {
			return nil, fmt.Errorf("repo.DrivingLogRepo.ListByRange: scan: %w", err)
		}
		row.Date = date.Time
		row.Km = domain.KmFromTenths(tenths)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DrivingLogRepo.ListByRange: rows: %w", err)
	}
	return out, nil
}

func scanDrivingLog(s scanner) (domain.DrivingLogEntry, error) {
	var (
		e                  domain.DrivingLogEntry
		id, dayID, dayUser pgtype.UUID
		date               pgtype.Date
		destID, destUser   pgtype.UUID
		destTenths         int64
	)
	err := s.Scan(
		&id, &dayID, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
		&date, &dayUser,
		&destID, &destUser, &e.Destination.Name, &destTenths, &e.Destination.IsActive,
		&e.Destination.CreatedAt, &e.Destination.UpdatedAt,
	)
	if err != nil {
		return domain.DrivingLogEntry{}, mapErr(err)
	}
	e.ID = uuid.UUID(id.Bytes)
	e.DayID = uuid.UUID(dayID.Bytes)
	e.Date = date.Time
	e.UserID = uuid.UUID(dayUser.Bytes)
	e.DestinationID = uuid.UUID(destID.Bytes)
	e.Destination.ID = e.DestinationID
	e.Destination.UserID = uuid.UUID(destUser.Bytes)
	e.Destination.Km = domain.KmFromTenths(destTenths)
	return e, nil
}
