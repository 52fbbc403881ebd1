// Package document provides the document lifecycle service: CRUD within a
// project, status transitions, and the immutable version history with
// restore.
package document

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/config"
	"github.com/nkontur/doccenter-backend/internal/domain"
)

type documentRepo interface {
	Create(ctx context.Context, projectID uuid.UUID, title, content string, createdBy uuid.UUID) (*domain.Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, status *domain.DocumentStatus, limit, offset int) ([]*domain.Document, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.DocumentPatch, updatedBy uuid.UUID) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus, updatedBy uuid.UUID) (*domain.Document, error)

	MaxVersion(ctx context.Context, documentID uuid.UUID) (int, error)
	CreateVersion(ctx context.Context, documentID uuid.UUID, version int, snapshot string, createdBy uuid.UUID) (*domain.DocumentVersion, error)
	GetVersion(ctx context.Context, documentID uuid.UUID, version int) (*domain.DocumentVersion, error)
	ListVersions(ctx context.Context, documentID uuid.UUID) ([]*domain.VersionWithCreator, error)
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

// Service provides document operations.
type Service struct {
	docs     documentRepo
	resolver accessResolver
	audit    auditLogger
	tx       txManager
	cfg      config.DocumentConfig
	log      *slog.Logger
}

// NewService creates a new Document service.
func NewService(
	log *slog.Logger,
	docs documentRepo,
	resolver accessResolver,
	audit auditLogger,
	tx txManager,
	cfg config.DocumentConfig,
) *Service {
	return &Service{
		docs:     docs,
		resolver: resolver,
		audit:    audit,
		tx:       tx,
		cfg:      cfg,
		log:      log.With("service", "document"),
	}
}

// requireView resolves the actor's level on a project and rejects levels
// below viewer.
func (s *Service) requireView(ctx context.Context, actor domain.User, projectID uuid.UUID) error {
	level, _, err := s.resolver.Resolve(ctx, actor, projectID)
	if err != nil {
		return err
	}
	if !level.CanView() {
		return domain.ErrForbidden
	}
	return nil
}

// requireEdit resolves the actor's level on a project and rejects levels
// below editor.
func (s *Service) requireEdit(ctx context.Context, actor domain.User, projectID uuid.UUID) error {
	level, _, err := s.resolver.Resolve(ctx, actor, projectID)
	if err != nil {
		return err
	}
	if !level.CanEdit() {
		return domain.ErrForbidden
	}
	return nil
}
