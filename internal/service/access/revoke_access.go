package access

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// RevokeAccess removes the grant for (project, user).
// Only admins and the project owner may manage grants.
// Returns domain.ErrNotFound when no grant exists for the pair.
func (s *Service) RevokeAccess(ctx context.Context, input RevokeAccessInput) error {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	project, err := s.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return fmt.Errorf("get project: %w", err)
	}
	if !CanManage(actor, project) {
		return domain.ErrForbidden
	}

	grant, err := s.grants.Get(ctx, input.ProjectID, input.UserID)
	if err != nil {
		return fmt.Errorf("get grant: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.grants.Delete(txCtx, input.ProjectID, input.UserID); delErr != nil {
			return fmt.Errorf("delete grant: %w", delErr)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     actor.ID,
			Action:     domain.AuditActionRevokeAccess,
			EntityType: domain.EntityTypeAccess,
			EntityID:   &grant.ID,
			Meta: map[string]any{
				"project_id":     input.ProjectID.String(),
				"target_user_id": input.UserID.String(),
			},
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "access revoked",
		slog.String("actor_id", actor.ID.String()),
		slog.String("project_id", input.ProjectID.String()),
		slog.String("target_user_id", input.UserID.String()),
	)

	return nil
}
