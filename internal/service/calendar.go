package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/drivelog/internal/domain"
	"github.com/pkordes/drivelog/internal/repo"
)

// CalendarService serves month views of the calendar-day ledger.
type CalendarService struct {
	tx repo.Transactor
}

// NewCalendarService constructs a CalendarService.
func NewCalendarService(tx repo.Transactor) *CalendarService {
	return &CalendarService{tx: tx}
}

// Month returns one calendar day per date of the given month, ordered by date,
// each carrying its driving-log entry when one exists.
//
// Days missing from the ledger are created first in a single batch insert.
// Existing days are never duplicated or overwritten; if a concurrent request
// inserts the same dates, the (user, date) unique constraint skips them and
// this call observes the rows the other request created.
func (s *CalendarService) Month(ctx context.Context, userID uuid.UUID, year, month int) ([]domain.CalendarDay, error) {
	first, last, err := domain.MonthRange(year, month)
	if err != nil {
		return nil, fmt.Errorf("service.CalendarService.Month: %w", err)
	}

	var days []domain.CalendarDay
	err = s.tx.InTx(ctx, func(r repo.Repos) error {
		existing, err := r.Days.ListDates(ctx, userID, first, last)
		if err != nil {
			return err
		}
		if missing := domain.MissingDates(first, last, existing); len(missing) > 0 {
			if _, err := r.Days.InsertDates(ctx, userID, missing); err != nil {
				return err
			}
		}
		days, err = r.Days.ListWithLogs(ctx, userID, first, last)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("service.CalendarService.Month: %w", err)
	}
	if days == nil {
		days = []domain.CalendarDay{}
	}
	return days, nil
}
