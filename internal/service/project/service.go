// Package project provides project management: creation, partial update,
// and visibility-scoped listing.
package project

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

type projectRepo interface {
	Create(ctx context.Context, title string, description *string, ownerID uuid.UUID) (*domain.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	Update(ctx context.Context, id uuid.UUID, title, description *string) (*domain.Project, error)
	ListAll(ctx context.Context) ([]*domain.Project, error)
	ListVisible(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error)
}

type accessResolver interface {
	Resolve(ctx context.Context, user domain.User, projectID uuid.UUID) (domain.AccessLevel, *domain.Project, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides project operations.
type Service struct {
	projects projectRepo
	resolver accessResolver
	audit    auditLogger
	tx       txManager
	log      *slog.Logger
}

// NewService creates a new Project service.
func NewService(
	log *slog.Logger,
	projects projectRepo,
	resolver accessResolver,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		projects: projects,
		resolver: resolver,
		audit:    audit,
		tx:       tx,
		log:      log.With("service", "project"),
	}
}

// canCreate reports whether a role may create projects.
// Workers and viewers only participate through grants.
func canCreate(role domain.UserRole) bool {
	return role == domain.UserRoleAdmin || role == domain.UserRoleManager
}
