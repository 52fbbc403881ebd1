package project

import (
	"context"
	"fmt"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// ListProjects returns the projects visible to the actor: every project for
// admins, owned and granted projects for everyone else.
func (s *Service) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if actor.Role.IsAdmin() {
		projects, err := s.projects.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list all projects: %w", err)
		}
		return projects, nil
	}

	projects, err := s.projects.ListVisible(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list visible projects: %w", err)
	}
	return projects, nil
}
