package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

// Login authenticates a user by email and password and issues an access
// token. Returns ErrUnauthorized if the email is not found or the password
// is wrong, and ErrDeactivated for a soft-deleted account.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if !u.IsActive {
		return nil, domain.ErrDeactivated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.jwt.GenerateAccessToken(u.ID, u.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &AuthResult{AccessToken: token, User: u}, nil
}
