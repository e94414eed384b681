// Package service contains the business logic for the drive logbook.
// Services validate inputs, enforce ownership rules, and run repo calls inside
// one transaction per operation. No SQL lives here: services depend on the
// repo.Transactor interface, not on Postgres.
package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pkordes/drivelog/internal/domain"
	"github.com/pkordes/drivelog/internal/repo"
)

const (
	maxNameLen    = 150
	maxAddressLen = 255
)

// UserService implements the self-service profile operations.
type UserService struct {
	tx repo.Transactor
}

// NewUserService constructs a UserService.
func NewUserService(tx repo.Transactor) *UserService {
	return &UserService{tx: tx}
}

// Create validates and persists a new user. Used by the admin CLI in place of
// a registration flow. Returns domain.ErrConflict if the username is taken.
func (s *UserService) Create(ctx context.Context, user domain.User) (domain.User, error) {
	user.Username = strings.TrimSpace(user.Username)
	if user.Username == "" {
		return domain.User{}, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if err := validateProfile(user); err != nil {
		return domain.User{}, err
	}

	var created domain.User
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		var err error
		created, err = r.Users.Create(ctx, user)
		return err
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Create: %w", err)
	}
	return created, nil
}

// Get returns the caller's own account.
func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	var u domain.User
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		var err error
		u, err = r.Users.GetByID(ctx, userID)
		return err
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Get: %w", err)
	}
	return u, nil
}

// UpdateProfile applies a partial update of first name, last name and
// default start address to the caller's account.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (domain.User, error) {
	var updated domain.User
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		current, err := r.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		next := patch.Apply(current)
		if err := validateProfile(next); err != nil {
			return err
		}
		updated, err = r.Users.UpdateProfile(ctx, next)
		return err
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.UpdateProfile: %w", err)
	}
	return updated, nil
}

func validateProfile(u domain.User) error {
	if utf8.RuneCountInString(u.FirstName) > maxNameLen {
		return fmt.Errorf("%w: first_name must be at most %d characters", domain.ErrValidation, maxNameLen)
	}
	if utf8.RuneCountInString(u.LastName) > maxNameLen {
		return fmt.Errorf("%w: last_name must be at most %d characters", domain.ErrValidation, maxNameLen)
	}
	if u.DefaultStartAddress != nil && utf8.RuneCountInString(*u.DefaultStartAddress) > maxAddressLen {
		return fmt.Errorf("%w: default_start_address must be at most %d characters", domain.ErrValidation, maxAddressLen)
	}
	return nil
}
