package project

import (
	"context"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// GetProject returns a project by id. Requires at least viewer access.
func (s *Service) GetProject(ctx context.Context, input GetProjectInput) (*domain.Project, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	level, project, err := s.resolver.Resolve(ctx, actor, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if !level.CanView() {
		return nil, domain.ErrForbidden
	}

	return project, nil
}
