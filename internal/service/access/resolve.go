package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

// Resolve computes a user's effective access level on a project and returns
// the project alongside it. Precedence: admin role, then ownership, then an
// explicit grant; anything else resolves to none.
// Returns domain.ErrNotFound when the project does not exist, so callers can
// distinguish a missing project from a forbidden one.
func (s *Service) Resolve(ctx context.Context, user domain.User, projectID uuid.UUID) (domain.AccessLevel, *domain.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return domain.AccessLevelNone, nil, fmt.Errorf("resolve access: %w", err)
	}

	if user.Role.IsAdmin() {
		return domain.AccessLevelEditor, project, nil
	}
	if project.OwnerID == user.ID {
		return domain.AccessLevelEditor, project, nil
	}

	grant, err := s.grants.Get(ctx, projectID, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.AccessLevelNone, project, nil
		}
		return domain.AccessLevelNone, nil, fmt.Errorf("resolve access: %w", err)
	}

	return grant.Permission.Level(), project, nil
}

// CanManage reports whether a user may manage grants on a project:
// admins and the project owner.
func CanManage(user domain.User, project *domain.Project) bool {
	return user.Role.IsAdmin() || project.OwnerID == user.ID
}
