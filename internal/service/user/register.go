package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// Register creates a new account with the given role.
// Only admins may register users.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
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

	email := strings.ToLower(strings.TrimSpace(input.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created *domain.User
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.users.Create(txCtx, email, string(hash), input.Role)
		if createErr != nil {
			return fmt.Errorf("create user: %w", createErr)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     actor.ID,
			Action:     domain.AuditActionCreateUser,
			EntityType: domain.EntityTypeUser,
			EntityID:   &created.ID,
			Meta: map[string]any{
				"email": created.Email,
				"role":  created.Role.String(),
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

	s.log.InfoContext(ctx, "user registered",
		slog.String("actor_id", actor.ID.String()),
		slog.String("user_id", created.ID.String()),
		slog.String("role", created.Role.String()),
	)

	return created, nil
}
