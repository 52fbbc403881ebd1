package document

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// ChangeStatus transitions a document to a new lifecycle status.
// Any status is reachable from any other. Requires editor access.
// The audit action is derived from the target status ("published_document",
// "archived_document", "draft_document").
func (s *Service) ChangeStatus(ctx context.Context, input ChangeStatusInput) (*domain.Document, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.docs.GetByID(ctx, input.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	if err := s.requireEdit(ctx, actor, current.ProjectID); err != nil {
		return nil, err
	}

	oldStatus := current.Status

	var doc *domain.Document
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updErr error
		doc, updErr = s.docs.UpdateStatus(txCtx, input.DocumentID, input.Status, actor.ID)
		if updErr != nil {
			return fmt.Errorf("update status: %w", updErr)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     actor.ID,
			Action:     fmt.Sprintf("%s_document", input.Status),
			EntityType: domain.EntityTypeDocument,
			EntityID:   &input.DocumentID,
			Meta: map[string]any{
				"old_status": oldStatus.String(),
				"new_status": input.Status.String(),
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

	s.log.InfoContext(ctx, "document status changed",
		slog.String("actor_id", actor.ID.String()),
		slog.String("document_id", input.DocumentID.String()),
		slog.String("old_status", oldStatus.String()),
		slog.String("new_status", input.Status.String()),
	)

	return doc, nil
}
