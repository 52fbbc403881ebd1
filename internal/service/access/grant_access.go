package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// GrantAccess creates a grant for (project, user) or updates the existing one
// in place. Only admins and the project owner may manage grants.
// The audit action distinguishes a fresh grant from a permission change.
func (s *Service) GrantAccess(ctx context.Context, input GrantAccessInput) (*domain.AccessWithEmails, error) {
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

	target, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("get target user: %w", err)
	}

	action := domain.AuditActionGrantAccess
	if _, err := s.grants.Get(ctx, input.ProjectID, input.UserID); err == nil {
		action = domain.AuditActionUpdateAccess
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get existing grant: %w", err)
	}

	var grant *domain.ProjectAccess
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var upsertErr error
		grant, upsertErr = s.grants.Upsert(txCtx, input.ProjectID, input.UserID, input.Permission, actor.ID)
		if upsertErr != nil {
			return fmt.Errorf("upsert grant: %w", upsertErr)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     actor.ID,
			Action:     action,
			EntityType: domain.EntityTypeAccess,
			EntityID:   &grant.ID,
			Meta: map[string]any{
				"project_id":     input.ProjectID.String(),
				"target_user_id": input.UserID.String(),
				"permission":     input.Permission.String(),
			},
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "access granted",
		slog.String("actor_id", actor.ID.String()),
		slog.String("project_id", input.ProjectID.String()),
		slog.String("target_user_id", input.UserID.String()),
		slog.String("permission", input.Permission.String()),
		slog.String("action", action),
	)

	return &domain.AccessWithEmails{
		ProjectAccess: *grant,
		UserEmail:     &target.Email,
		GranterEmail:  &actor.Email,
	}, nil
}
