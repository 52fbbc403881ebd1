package user

import (
	"fmt"
	"strings"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

const (
	EmailMaxLen    = 255
	PasswordMinLen = 8

	DefaultListLimit = 50
	MaxListLimit     = 200
)

// LoginInput holds the credentials for a password login.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks all fields and collects all errors.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Email) == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "is required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "is required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RegisterInput holds the fields for creating a new account.
type RegisterInput struct {
	Email    string
	Password string
	Role     domain.UserRole
}

// Validate checks all fields and collects all errors.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	email := strings.TrimSpace(i.Email)
	switch {
	case email == "":
		errs = append(errs, domain.FieldError{Field: "email", Message: "is required"})
	case len(email) > EmailMaxLen:
		errs = append(errs, domain.FieldError{Field: "email", Message: fmt.Sprintf("max length is %d", EmailMaxLen)})
	case !strings.Contains(email, "@"):
		errs = append(errs, domain.FieldError{Field: "email", Message: "must be a valid email address"})
	}

	if len(i.Password) < PasswordMinLen {
		errs = append(errs, domain.FieldError{Field: "password", Message: fmt.Sprintf("min length is %d", PasswordMinLen)})
	}

	if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "unknown role"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds pagination for a user listing.
type ListInput struct {
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must not be negative"})
	}
	if i.Limit > MaxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("max %d", MaxListLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
