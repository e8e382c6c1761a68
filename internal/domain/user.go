package domain

import (
	"time"
)

// Role identifies the permission level of a user account.
// Values match the legacy data files, including the lowercase worker role.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleTimekeeper Role = "TIMEKEEPER"
	RoleWorker     Role = "worker"
)

// IsValid checks if the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTimekeeper, RoleWorker:
		return true
	}
	return false
}

// IsPrivileged returns true for roles allowed to manage other users' data.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleTimekeeper
}

// User represents a user account in the domain model.
// This is a pure domain model without storage-specific concerns.
// JSON tags preserve the legacy data file keys, mixed casing included.
type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Role              Role      `json:"role"`
	PIN               string    `json:"pin"`
	CreatedAt         time.Time `json:"createdAt"`
	Suspended         bool      `json:"is_suspended"`
	SuspensionNoteIDs []string  `json:"suspension_notes"`
}

// NewUser creates a new User with the given details.
// The caller assigns the ID.
func NewUser(name, email, phone string, role Role, pin string, createdAt time.Time) User {
	return User{
		Name:              name,
		Email:             email,
		Phone:             phone,
		Role:              role,
		PIN:               pin,
		CreatedAt:         createdAt,
		Suspended:         false,
		SuspensionNoteIDs: []string{},
	}
}

// IsValid checks if the user has valid data.
func (u User) IsValid() bool {
	return u.Name != "" && u.PIN != "" && u.Role.IsValid()
}

// SuspensionSnapshot captures the suspension-relevant state of a user
// at a point in time, for before/after audit notes.
type SuspensionSnapshot struct {
	Suspended bool
	Role      Role
}

// SuspensionState returns the current suspension snapshot of the user.
func (u User) SuspensionState() SuspensionSnapshot {
	return SuspensionSnapshot{
		Suspended: u.Suspended,
		Role:      u.Role,
	}
}
