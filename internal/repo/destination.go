package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/drivelog/internal/domain"
)

// DestinationRepo defines the persistence operations for Destinations.
// Reads and writes are scoped by userID and only see active rows; a
// soft-deleted destination is invisible here but still resolves through
// DrivingLogRepo and CalendarDayRepo joins.
type DestinationRepo interface {
	// Create inserts a new active destination and returns the persisted record.
	Create(ctx context.Context, dest domain.Destination) (domain.Destination, error)

	// GetActive retrieves an active destination owned by userID.
	// Returns domain.ErrNotFound if it does not exist, belongs to someone
	// else, or has been soft-deleted.
	GetActive(ctx context.Context, userID, id uuid.UUID) (domain.Destination, error)

	// ListActive returns one page of the user's active destinations ordered
	// by name, and the total number of active destinations.
	ListActive(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Destination, int64, error)

	// Update overwrites name and km of an active destination owned by dest.UserID.
	Update(ctx context.Context, dest domain.Destination) (domain.Destination, error)

	// Deactivate flips is_active to false. Returns domain.ErrNotFound if no
	// active destination with that id is owned by userID.
	Deactivate(ctx context.Context, userID, id uuid.UUID) error
}

type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db connection.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

// km is stored as NUMERIC(7,1) and exchanged as an integer number of tenths.
const destinationColumns = `id, user_id, name, (km * 10)::bigint, is_active, created_at, updated_at`

func (r *pgDestinationRepo) Create(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	const q = `
		INSERT INTO destinations (user_id, name, km)
		VALUES (@user_id, @name, @km_tenths::bigint::numeric / 10)
		RETURNING ` + destinationColumns

	args := pgx.NamedArgs{
		"user_id":   dest.UserID,
		"name":      dest.Name,
		"km_tenths": dest.Km.Tenths(),
	}

	result, err := scanDestination(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) GetActive(ctx context.Context, userID, id uuid.UUID) (domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations
		WHERE id = @id AND user_id = @user_id AND is_active`

	result, err := scanDestination(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetActive: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) ListActive(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	const countQ = `SELECT COUNT(*) FROM destinations WHERE user_id = @user_id AND is_active`
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations
		WHERE user_id = @user_id AND is_active
		ORDER BY name, created_at
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"user_id": userID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.DestinationRepo.ListActive: count: %w", err)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"user_id": userID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.DestinationRepo.ListActive: %w", err)
	}
	defer rows.Close()

	dests := []domain.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.DestinationRepo.ListActive: scan: %w", err)
		}
		dests = append(dests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.DestinationRepo.ListActive: rows: %w", err)
	}
	return dests, total, nil
}

func (r *pgDestinationRepo) Update(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	const q = `
		UPDATE destinations
		SET name       = @name,
		    km         = @km_tenths::bigint::numeric / 10,
		    updated_at = now()
		WHERE id = @id AND user_id = @user_id AND is_active
		RETURNING ` + destinationColumns

	args := pgx.NamedArgs{
		"id":        dest.ID,
		"user_id":   dest.UserID,
		"name":      dest.Name,
		"km_tenths": dest.Km.Tenths(),
	}

	result, err := scanDestination(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) Deactivate(ctx context.Context, userID, id uuid.UUID) error {
	const q = `
		UPDATE destinations
		SET is_active = FALSE, updated_at = now()
		WHERE id = @id AND user_id = @user_id AND is_active`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Deactivate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DestinationRepo.Deactivate: %w", domain.ErrNotFound)
	}
	return nil
}

func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d      domain.Destination
		id     pgtype.UUID
		userID pgtype.UUID
		tenths int64
	)
	err := s.Scan(&id, &userID, &d.Name, &tenths, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Destination{}, mapErr(err)
	}
	d.ID = uuid.UUID(id.Bytes)
	d.UserID = uuid.UUID(userID.Bytes)
	d.Km = domain.KmFromTenths(tenths)
	return d, nil
}
