package domain

import (
	"time"

	"github.com/google/uuid"
)

// Destination is a named trip endpoint with a fixed distance, owned by one user.
// Deletion is logical: IsActive flips to false and the row stays so that
// driving-log entries referencing it keep resolving.
type Destination struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Km        Km
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DestinationPatch carries a partial destination update. Nil fields are left as is.
type DestinationPatch struct {
	Name *string
	Km   *Km
}

// Apply returns a copy of d with the patch applied.
func (p DestinationPatch) Apply(d Destination) Destination {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Km != nil {
		d.Km = *p.Km
	}
	return d
}
