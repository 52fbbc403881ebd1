package access

import (
	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

// GrantAccessInput holds the parameters for granting or re-granting access.
type GrantAccessInput struct {
	ProjectID  uuid.UUID
	UserID     uuid.UUID
	Permission domain.Permission
}

// Validate checks all fields and collects all errors.
func (i GrantAccessInput) Validate() error {
	var errs []domain.FieldError

	if i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "required"})
	}
	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if !i.Permission.IsValid() {
		errs = append(errs, domain.FieldError{Field: "permission", Message: "must be viewer or editor"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RevokeAccessInput holds the parameters for revoking access.
type RevokeAccessInput struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i RevokeAccessInput) Validate() error {
	var errs []domain.FieldError

	if i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "required"})
	}
	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListAccessInput holds the parameters for listing a project's grants.
type ListAccessInput struct {
	ProjectID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i ListAccessInput) Validate() error {
	if i.ProjectID == uuid.Nil {
		return domain.NewValidationError("project_id", "required")
	}
	return nil
}
