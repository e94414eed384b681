package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/drivelog/internal/domain"
)

// UserRepo defines the persistence operations for Users.
type UserRepo interface {
	// Create inserts a new user and returns the persisted record.
	// Returns domain.ErrConflict if the username is taken.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByID retrieves a single user. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// UpdateProfile overwrites the self-service profile fields
	// (first_name, last_name, default_start_address).
	UpdateProfile(ctx context.Context, user domain.User) (domain.User, error)
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, username, email, first_name, last_name, default_start_address, created_at, updated_at`

func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (username, email, first_name, last_name, default_start_address)
		VALUES (@username, @email, @first_name, @last_name, @default_start_address)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"username":              user.Username,
		"email":                 user.Email,
		"first_name":            user.FirstName,
		"last_name":             user.LastName,
		"default_start_address": user.DefaultStartAddress,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) UpdateProfile(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		UPDATE users
		SET first_name            = @first_name,
		    last_name             = @last_name,
		    default_start_address = @default_start_address,
		    updated_at            = now()
		WHERE id = @id
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"id":                    user.ID,
		"first_name":            user.FirstName,
		"last_name":             user.LastName,
		"default_start_address": user.DefaultStartAddress,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.UpdateProfile: %w", err)
	}
	return result, nil
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u       domain.User
		id      pgtype.UUID
		address pgtype.Text
	)
	err := s.Scan(&id, &u.Username, &u.Email, &u.FirstName, &u.LastName, &address, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	u.ID = uuid.UUID(id.Bytes)
	if address.Valid {
		a := address.String
		u.DefaultStartAddress = &a
	}
	return u, nil
}
