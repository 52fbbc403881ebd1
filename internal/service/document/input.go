package document

import (
	"strings"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

const (
	TitleMinLen = 3
	TitleMaxLen = 120
)

func validateTitle(errs []domain.FieldError, title string) []domain.FieldError {
	title = strings.TrimSpace(title)
	if len(title) < TitleMinLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: "min 3 characters"})
	}
	if len(title) > TitleMaxLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 120 characters"})
	}
	return errs
}

// CreateDocumentInput holds the parameters for creating a document.
type CreateDocumentInput struct {
	ProjectID uuid.UUID
	Title     string
	Content   string
}

// Validate checks all fields and collects all errors.
func (i CreateDocumentInput) Validate() error {
	var errs []domain.FieldError

	if i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "required"})
	}
	errs = validateTitle(errs, i.Title)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// GetDocumentInput holds the parameters for reading a document.
type GetDocumentInput struct {
	DocumentID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i GetDocumentInput) Validate() error {
	if i.DocumentID == uuid.Nil {
		return domain.NewValidationError("document_id", "required")
	}
	return nil
}

// ListDocumentsInput holds the parameters for listing a project's documents.
type ListDocumentsInput struct {
	ProjectID uuid.UUID
	Status    *domain.DocumentStatus
	Limit     int
	Offset    int
}

// Validate checks all fields and collects all errors.
func (i ListDocumentsInput) Validate() error {
	var errs []domain.FieldError

	if i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "required"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be draft, published or archived"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must not be negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateDocumentInput holds the parameters for a partial document update.
type UpdateDocumentInput struct {
	DocumentID uuid.UUID
	Title      *string
	Content    *string
}

// Validate checks all fields and collects all errors.
func (i UpdateDocumentInput) Validate() error {
	var errs []domain.FieldError

	if i.DocumentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "document_id", Message: "required"})
	}
	if i.Title == nil && i.Content == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Title != nil {
		errs = validateTitle(errs, *i.Title)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ChangeStatusInput holds the parameters for a document status transition.
type ChangeStatusInput struct {
	DocumentID uuid.UUID
	Status     domain.DocumentStatus
}

// Validate checks all fields and collects all errors.
func (i ChangeStatusInput) Validate() error {
	var errs []domain.FieldError

	if i.DocumentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "document_id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be draft, published or archived"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListVersionsInput holds the parameters for listing a document's versions.
type ListVersionsInput struct {
	DocumentID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i ListVersionsInput) Validate() error {
	if i.DocumentID == uuid.Nil {
		return domain.NewValidationError("document_id", "required")
	}
	return nil
}

// GetVersionInput holds the parameters for reading a single version.
type GetVersionInput struct {
	DocumentID uuid.UUID
	Version    int
}

// Validate checks all fields and collects all errors.
func (i GetVersionInput) Validate() error {
	var errs []domain.FieldError

	if i.DocumentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "document_id", Message: "required"})
	}
	if i.Version < 1 {
		errs = append(errs, domain.FieldError{Field: "version", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RestoreVersionInput holds the parameters for restoring a version.
type RestoreVersionInput struct {
	DocumentID uuid.UUID
	Version    int
}

// Validate checks all fields and collects all errors.
func (i RestoreVersionInput) Validate() error {
	var errs []domain.FieldError

	if i.DocumentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "document_id", Message: "required"})
	}
	if i.Version < 1 {
		errs = append(errs, domain.FieldError{Field: "version", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
