package domain

import (
	"time"

	"github.com/google/uuid"
)

// DrivingLogEntry records the drive taken on one calendar day.
// A day has at most one entry and the DayID never changes after creation.
//
// Date and UserID are read from the owning calendar day; Destination is
// resolved at query time so its current name and distance are reported even
// after it has been soft-deleted.
type DrivingLogEntry struct {
	ID            uuid.UUID
	DayID         uuid.UUID
	DestinationID uuid.UUID
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Date        time.Time
	UserID      uuid.UUID
	Destination Destination
}

// DrivingLogPatch carries a partial update of an entry.
// There is intentionally no way to move an entry to another day.
type DrivingLogPatch struct {
	DestinationID *uuid.UUID
	Notes         *string
}

// Empty reports whether the patch changes nothing.
func (p DrivingLogPatch) Empty() bool {
	return p.DestinationID == nil && p.Notes == nil
}
