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

const maxDestinationNameLen = 255

// DestinationService implements the per-user destination registry.
// Only active destinations are visible; Delete is a soft delete.
type DestinationService struct {
	tx repo.Transactor
}

// NewDestinationService constructs a DestinationService.
func NewDestinationService(tx repo.Transactor) *DestinationService {
	return &DestinationService{tx: tx}
}

// Create validates and persists a new active destination owned by userID.
func (s *DestinationService) Create(ctx context.Context, userID uuid.UUID, dest domain.Destination) (domain.Destination, error) {
	dest.Name = strings.TrimSpace(dest.Name)
	if err := validateDestination(dest); err != nil {
		return domain.Destination{}, err
	}
	dest.UserID = userID

	var created domain.Destination
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		var err error
		created, err = r.Destinations.Create(ctx, dest)
		return err
	})
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	return created, nil
}

// Get returns one of the caller's active destinations.
// Returns domain.ErrNotFound for unknown, foreign or soft-deleted destinations.
func (s *DestinationService) Get(ctx context.Context, userID, id uuid.UUID) (domain.Destination, error) {
	var d domain.Destination
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		var err error
		d, err = r.Destinations.GetActive(ctx, userID, id)
		return err
	})
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Get: %w", err)
	}
	return d, nil
}

// List returns one page of the caller's active destinations.
// Items is never nil so callers can safely range over it.
func (s *DestinationService) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Destination], error) {
	page := domain.Page[domain.Destination]{Params: p}
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		var err error
		page.Items, page.Total, err = r.Destinations.ListActive(ctx, userID, p)
		return err
	})
	if err != nil {
		return domain.Page[domain.Destination]{}, fmt.Errorf("service.DestinationService.List: %w", err)
	}
	if page.Items == nil {
		page.Items = []domain.Destination{}
	}
	return page, nil
}

// Update applies a partial update to one of the caller's active destinations.
func (s *DestinationService) Update(ctx context.Context, userID, id uuid.UUID, patch domain.DestinationPatch) (domain.Destination, error) {
	var updated domain.Destination
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		current, err := r.Destinations.GetActive(ctx, userID, id)
		if err != nil {
			return err
		}
		next := patch.Apply(current)
		next.Name = strings.TrimSpace(next.Name)
		if err := validateDestination(next); err != nil {
			return err
		}
		updated, err = r.Destinations.Update(ctx, next)
		return err
	})
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}
	return updated, nil
}

// Delete soft-deletes one of the caller's active destinations. Driving-log
// entries that reference it keep resolving its name and distance.
func (s *DestinationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		return r.Destinations.Deactivate(ctx, userID, id)
	})
	if err != nil {
		return fmt.Errorf("service.DestinationService.Delete: %w", err)
	}
	return nil
}

// validateDestination enforces the rules shared by Create and Update.
//   - Name must be non-empty and at most 255 characters.
//   - Km must be between 0 and 999999.9.
func validateDestination(d domain.Destination) error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(d.Name) > maxDestinationNameLen {
		return fmt.Errorf("%w: name must be at most %d characters", domain.ErrValidation, maxDestinationNameLen)
	}
	if d.Km < 0 {
		return fmt.Errorf("%w: km must not be negative", domain.ErrValidation)
	}
	if d.Km > domain.MaxKm {
		return fmt.Errorf("%w: km must be at most %s", domain.ErrValidation, domain.MaxKm)
	}
	return nil
}
