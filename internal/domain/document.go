package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document belongs to exactly one project. Content mutates in place; each
// substantive content change is snapshotted as a DocumentVersion.
type Document struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Title     string
	Content   string
	Status    DocumentStatus
	CreatedBy uuid.UUID
	UpdatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentVersion is an immutable snapshot of a document's content.
// Version numbers per document are strictly increasing starting at 1 and are
// never reused, even across restores.
type DocumentVersion struct {
	ID              uuid.UUID
	DocumentID      uuid.UUID
	Version         int
	ContentSnapshot string
	CreatedBy       uuid.UUID
	CreatedAt       time.Time
}

// VersionWithCreator is a DocumentVersion enriched for display with the
// creator's email. CreatorEmail is nil if the user no longer resolves.
type VersionWithCreator struct {
	DocumentVersion
	CreatorEmail *string
}

// DocumentPatch carries the optional fields of a partial document update.
// nil means "leave unchanged".
type DocumentPatch struct {
	Title   *string
	Content *string
}
