package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account record. Users are never hard-deleted.
// DefaultStartAddress is nil when the user has not set one.
type User struct {
	ID                  uuid.UUID
	Username            string
	Email               string
	FirstName           string
	LastName            string
	DefaultStartAddress *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ProfilePatch carries a partial self-service profile update.
// A nil pointer leaves the field untouched. For the start address,
// SetStartAddress distinguishes "not sent" from an explicit null that clears it.
type ProfilePatch struct {
	FirstName           *string
	LastName            *string
	SetStartAddress     bool
	DefaultStartAddress *string
}

// Apply returns a copy of u with the patch applied.
func (p ProfilePatch) Apply(u User) User {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.SetStartAddress {
		u.DefaultStartAddress = p.DefaultStartAddress
	}
	return u
}
