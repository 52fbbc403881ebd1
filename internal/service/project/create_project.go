package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// CreateProject creates a project owned by the actor.
// Only admins and managers may create projects.
func (s *Service) CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !canCreate(actor.Role) {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)

	var project *domain.Project
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		project, createErr = s.projects.Create(txCtx, title, input.Description, actor.ID)
		if createErr != nil {
			return fmt.Errorf("create project: %w", createErr)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     actor.ID,
			Action:     domain.AuditActionCreateProject,
			EntityType: domain.EntityTypeProject,
			EntityID:   &project.ID,
			Meta: map[string]any{
				"title": project.Title,
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

	s.log.InfoContext(ctx, "project created",
		slog.String("actor_id", actor.ID.String()),
		slog.String("project_id", project.ID.String()),
		slog.String("title", project.Title),
	)

	return project, nil
}
