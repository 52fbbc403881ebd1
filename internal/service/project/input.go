package project

import (
	"strings"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

const (
	TitleMinLen       = 3
	TitleMaxLen       = 120
	DescriptionMaxLen = 2000
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

// CreateProjectInput holds the parameters for creating a project.
type CreateProjectInput struct {
	Title       string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i CreateProjectInput) Validate() error {
	var errs []domain.FieldError

	errs = validateTitle(errs, i.Title)
	if i.Description != nil && len(*i.Description) > DescriptionMaxLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// GetProjectInput holds the parameters for reading a project.
type GetProjectInput struct {
	ProjectID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i GetProjectInput) Validate() error {
	if i.ProjectID == uuid.Nil {
		return domain.NewValidationError("project_id", "required")
	}
	return nil
}

// UpdateProjectInput holds the parameters for a partial project update.
// Description ptr("") clears the field.
type UpdateProjectInput struct {
	ProjectID   uuid.UUID
	Title       *string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i UpdateProjectInput) Validate() error {
	var errs []domain.FieldError

	if i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "required"})
	}
	if i.Title == nil && i.Description == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Title != nil {
		errs = validateTitle(errs, *i.Title)
	}
	if i.Description != nil && len(*i.Description) > DescriptionMaxLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
