package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user.
// PasswordHash is an opaque bcrypt hash and is never compared in plaintext.
// Deactivation is a soft flag: other entities keep referencing the user by id.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         UserRole
	IsActive     bool
	CreatedAt    time.Time
}
