// Package access provides project access-grant management and the effective
// permission resolver used by every project-scoped operation.
package access

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

type projectRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
}

type accessRepo interface {
	Get(ctx context.Context, projectID, userID uuid.UUID) (*domain.ProjectAccess, error)
	Upsert(ctx context.Context, projectID, userID uuid.UUID, perm domain.Permission, grantedBy uuid.UUID) (*domain.ProjectAccess, error)
	Delete(ctx context.Context, projectID, userID uuid.UUID) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.AccessWithEmails, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides access-grant operations and permission resolution.
type Service struct {
	projects projectRepo
	grants   accessRepo
	users    userRepo
	audit    auditLogger
	tx       txManager
	log      *slog.Logger
}

// NewService creates a new Access service.
func NewService(
	log *slog.Logger,
	projects projectRepo,
	grants accessRepo,
	users userRepo,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		projects: projects,
		grants:   grants,
		users:    users,
		audit:    audit,
		tx:       tx,
		log:      log.With("service", "access"),
	}
}
