// Package domain contains the core data types for the drive logbook.
// It depends only on uuid and the standard library and is imported by every
// other internal package (repo, service, handler).
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and key format for calendar dates.
const DateLayout = "2006-01-02"

// CalendarDay is a per-user row representing one date. It exists whether or
// not a drive was logged; Log is nil when nothing was logged that day.
type CalendarDay struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Date   time.Time
	Log    *DrivingLogEntry
}

// MonthRange returns the first and last date of the given month in UTC.
// Returns ErrValidation when year/month do not form a valid month.
func MonthRange(year, month int) (first, last time.Time, err error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month must be between 1 and 12", ErrValidation)
	}
	if year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: year must be between 1 and 9999", ErrValidation)
	}
	first = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the next month normalises to the last day of this one.
	last = time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return first, last, nil
}

// YearRange returns the half-open range [Jan 1 of year, Jan 1 of year+1).
func YearRange(year int) (from, to time.Time, err error) {
	if year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: year must be between 1 and 9999", ErrValidation)
	}
	from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0), nil
}

// MissingDates returns every date in [first, last] that is not in existing,
// in ascending order. Only the calendar date of each value is compared.
func MissingDates(first, last time.Time, existing []time.Time) []time.Time {
	have := make(map[string]struct{}, len(existing))
	for _, d := range existing {
		have[d.Format(DateLayout)] = struct{}{}
	}

	var missing []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if _, ok := have[d.Format(DateLayout)]; !ok {
			missing = append(missing, d)
		}
	}
	return missing
}
