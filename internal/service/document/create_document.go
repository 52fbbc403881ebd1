package document

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// CreateDocument creates a draft document in a project together with its
// initial version snapshot (version 1). Requires editor access.
func (s *Service) CreateDocument(ctx context.Context, input CreateDocumentInput) (*domain.Document, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if err := s.requireEdit(ctx, actor, input.ProjectID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)

	var doc *domain.Document
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		doc, createErr = s.docs.Create(txCtx, input.ProjectID, title, input.Content, actor.ID)
		if createErr != nil {
			return fmt.Errorf("create document: %w", createErr)
		}

		if _, verErr := s.docs.CreateVersion(txCtx, doc.ID, 1, doc.Content, actor.ID); verErr != nil {
			return fmt.Errorf("create initial version: %w", verErr)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     actor.ID,
			Action:     domain.AuditActionCreateDocument,
			EntityType: domain.EntityTypeDocument,
			EntityID:   &doc.ID,
			Meta: map[string]any{
				"title":      doc.Title,
				"project_id": input.ProjectID.String(),
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

	s.log.InfoContext(ctx, "document created",
		slog.String("actor_id", actor.ID.String()),
		slog.String("document_id", doc.ID.String()),
		slog.String("project_id", input.ProjectID.String()),
	)

	return doc, nil
}
