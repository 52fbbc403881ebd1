package user

import (
	"context"
	"fmt"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// ListResult is a page of users with the total count.
type ListResult struct {
	Users []*domain.User
	Total int
}

// ListUsers returns a page of accounts ordered by creation time.
// Only admins may list users.
func (s *Service) ListUsers(ctx context.Context, input ListInput) (*ListResult, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.Role.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}

	users, err := s.users.List(ctx, limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	return &ListResult{Users: users, Total: total}, nil
}
