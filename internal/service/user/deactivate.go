package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// Deactivate soft-deletes an account: the row stays, documents and audit
// records keep referencing it, but logins are rejected.
// Only admins may deactivate users, and never themselves.
func (s *Service) Deactivate(ctx context.Context, userID uuid.UUID) error {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if !actor.Role.IsAdmin() {
		return domain.ErrForbidden
	}
	if actor.ID == userID {
		return domain.NewValidationError("user_id", "cannot deactivate own account")
	}

	target, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.users.SetActive(txCtx, target.ID, false); err != nil {
			return fmt.Errorf("deactivate user: %w", err)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     actor.ID,
			Action:     domain.AuditActionDeactivateUser,
			EntityType: domain.EntityTypeUser,
			EntityID:   &target.ID,
			Meta: map[string]any{
				"email": target.Email,
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

	s.log.InfoContext(ctx, "user deactivated",
		slog.String("actor_id", actor.ID.String()),
		slog.String("user_id", target.ID.String()),
	)

	return nil
}
