package access

import (
	"context"
	"fmt"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// ListAccess returns all grants on a project with user and granter emails.
// Only admins and the project owner may inspect the grant list.
func (s *Service) ListAccess(ctx context.Context, input ListAccessInput) ([]*domain.AccessWithEmails, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if !CanManage(actor, project) {
		return nil, domain.ErrForbidden
	}

	grants, err := s.grants.ListByProject(ctx, input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}

	return grants, nil
}
