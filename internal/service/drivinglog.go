package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/drivelog/internal/domain"
	"github.com/pkordes/drivelog/internal/repo"
)

// DrivingLogService implements creation, retrieval and partial update of
// driving-log entries. An entry belongs to the user who owns its calendar day.
type DrivingLogService struct {
	tx repo.Transactor
}

// NewDrivingLogService constructs a DrivingLogService.
func NewDrivingLogService(tx repo.Transactor) *DrivingLogService {
	return &DrivingLogService{tx: tx}
}

// Create persists a new entry for entry.DayID.
//
// Returns domain.ErrValidation if the day or destination does not exist (or the
// destination is not one of the caller's active destinations),
// domain.ErrForbidden if the day belongs to another user, and
// domain.ErrConflict if the day already has an entry.
func (s *DrivingLogService) Create(ctx context.Context, userID uuid.UUID, entry domain.DrivingLogEntry) (domain.DrivingLogEntry, error) {
	var created domain.DrivingLogEntry
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		day, err := r.Days.GetByID(ctx, entry.DayID)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: day does not exist", domain.ErrValidation)
		}
		if err != nil {
			return err
		}
		if day.UserID != userID {
			return fmt.Errorf("%w: calendar day belongs to another user", domain.ErrForbidden)
		}

		if err := requireVisibleDestination(ctx, r, userID, entry.DestinationID); err != nil {
			return err
		}

		created, err = r.Logs.Create(ctx, entry)
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%w: day already has a driving log entry", domain.ErrConflict)
		}
		return err
	})
	if err != nil {
		return domain.DrivingLogEntry{}, fmt.Errorf("service.DrivingLogService.Create: %w", err)
	}
	return created, nil
}

// Get returns an entry owned by the caller.
// Returns domain.ErrNotFound if it does not exist and domain.ErrForbidden if
// its day belongs to another user.
func (s *DrivingLogService) Get(ctx context.Context, userID, id uuid.UUID) (domain.DrivingLogEntry, error) {
	var e domain.DrivingLogEntry
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		var err error
		e, err = getOwnedEntry(ctx, r, userID, id)
		return err
	})
	if err != nil {
		return domain.DrivingLogEntry{}, fmt.Errorf("service.DrivingLogService.Get: %w", err)
	}
	return e, nil
}

// Update applies a partial update of destination and notes.
// Ownership is checked before anything is written, so a forbidden update
// leaves the entry unchanged. The entry's day can never change.
func (s *DrivingLogService) Update(ctx context.Context, userID, id uuid.UUID, patch domain.DrivingLogPatch) (domain.DrivingLogEntry, error) {
	var updated domain.DrivingLogEntry
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		current, err := getOwnedEntry(ctx, r, userID, id)
		if err != nil {
			return err
		}
		if patch.Empty() {
			updated = current
			return nil
		}

		next := current
		// Keeping the current destination is always allowed, even if it has
		// since been soft-deleted.
		if patch.DestinationID != nil && *patch.DestinationID != current.DestinationID {
			if err := requireVisibleDestination(ctx, r, userID, *patch.DestinationID); err != nil {
				return err
			}
			next.DestinationID = *patch.DestinationID
		}
		if patch.Notes != nil {
			next.Notes = *patch.Notes
		}

		updated, err = r.Logs.Update(ctx, next)
		return err
	})
	if err != nil {
		return domain.DrivingLogEntry{}, fmt.Errorf("service.DrivingLogService.Update: %w", err)
	}
	return updated, nil
}

func getOwnedEntry(ctx context.Context, r repo.Repos, userID, id uuid.UUID) (domain.DrivingLogEntry, error) {
	e, err := r.Logs.GetByID(ctx, id)
	if err != nil {
		return domain.DrivingLogEntry{}, err
	}
	if e.UserID != userID {
		return domain.DrivingLogEntry{}, fmt.Errorf("%w: driving log entry belongs to another user", domain.ErrForbidden)
	}
	return e, nil
}

func requireVisibleDestination(ctx context.Context, r repo.Repos, userID, destID uuid.UUID) error {
	_, err := r.Destinations.GetActive(ctx, userID, destID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: destination does not exist", domain.ErrValidation)
	}
	return err
}
