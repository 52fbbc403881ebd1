package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit action names recorded by the services. Status changes use the
// dynamic form "<status>_document" (e.g. "published_document").
const (
	AuditActionCreateUser     = "create_user"
	AuditActionDeactivateUser = "deactivate_user"
	AuditActionCreateProject  = "create_project"
	AuditActionUpdateProject  = "update_project"
	AuditActionGrantAccess    = "grant_access"
	AuditActionUpdateAccess   = "update_access"
	AuditActionRevokeAccess   = "revoke_access"
	AuditActionCreateDocument = "create_document"
	AuditActionUpdateDocument = "update_document"
	AuditActionRestoreVersion = "restore_version"
)

// AuditRecord is an immutable append-only entry in the audit trail.
// Meta is an opaque key-value payload serialized as JSON; key order is
// immaterial. Records are never updated or deleted after insertion.
type AuditRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Action     string
	EntityType EntityType
	EntityID   *uuid.UUID
	Meta       map[string]any
	CreatedAt  time.Time
}

// RecordWithActor is an AuditRecord enriched for display with the actor's
// email. ActorEmail is nil if the user no longer resolves.
type RecordWithActor struct {
	AuditRecord
	ActorEmail *string
}

// AuditFilter narrows an audit log listing. nil fields are ignored.
type AuditFilter struct {
	UserID     *uuid.UUID
	Action     *string
	EntityType *EntityType
	EntityID   *uuid.UUID
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}
