package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project groups documents under a single owning user.
// Ownership is immutable after creation.
type Project struct {
	ID          uuid.UUID
	Title       string
	Description *string
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectAccess is an explicit per-user grant on a project.
// At most one grant exists per (project, user) pair; re-granting updates the
// existing row in place.
type ProjectAccess struct {
	ID         uuid.UUID
	ProjectID  uuid.UUID
	UserID     uuid.UUID
	Permission Permission
	GrantedBy  uuid.UUID
	CreatedAt  time.Time
}

// AccessWithEmails is a ProjectAccess enriched for display with the target's
// and granter's email addresses. Either email may be nil if the referenced
// user no longer resolves (enrichment is best-effort).
type AccessWithEmails struct {
	ProjectAccess
	UserEmail    *string
	GranterEmail *string
}
