package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// UpdateProject applies a partial update to a project's title and/or
// description. Only admins and the project owner may update a project.
func (s *Service) UpdateProject(ctx context.Context, input UpdateProjectInput) (*domain.Project, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if !actor.Role.IsAdmin() && current.OwnerID != actor.ID {
		return nil, domain.ErrForbidden
	}

	title := input.Title
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		title = &trimmed
	}

	var updatedFields []string
	if title != nil {
		updatedFields = append(updatedFields, "title")
	}
	if input.Description != nil {
		updatedFields = append(updatedFields, "description")
	}

	var project *domain.Project
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updErr error
		project, updErr = s.projects.Update(txCtx, input.ProjectID, title, input.Description)
		if updErr != nil {
			return fmt.Errorf("update project: %w", updErr)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     actor.ID,
			Action:     domain.AuditActionUpdateProject,
			EntityType: domain.EntityTypeProject,
			EntityID:   &input.ProjectID,
			Meta: map[string]any{
				"updated_fields": updatedFields,
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

	s.log.InfoContext(ctx, "project updated",
		slog.String("actor_id", actor.ID.String()),
		slog.String("project_id", input.ProjectID.String()),
	)

	return project, nil
}
