package document

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// RestoreVersion copies an old version's snapshot back into the document's
// live content. A new version is ALWAYS appended, even when the restored
// content equals the current content, so the history records the restore
// itself. Requires editor access.
func (s *Service) RestoreVersion(ctx context.Context, input RestoreVersionInput) (*domain.Document, error) {
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

	restored, err := s.docs.GetVersion(ctx, input.DocumentID, input.Version)
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}

	var (
		doc        *domain.Document
		newVersion int
	)
	run := func(txCtx context.Context) error {
		var updErr error
		doc, updErr = s.docs.Update(txCtx, input.DocumentID, domain.DocumentPatch{Content: &restored.ContentSnapshot}, actor.ID)
		if updErr != nil {
			return fmt.Errorf("update document: %w", updErr)
		}

		maxVersion, verErr := s.docs.MaxVersion(txCtx, input.DocumentID)
		if verErr != nil {
			return fmt.Errorf("max version: %w", verErr)
		}
		newVersion = maxVersion + 1

		if _, verErr = s.docs.CreateVersion(txCtx, input.DocumentID, newVersion, doc.Content, actor.ID); verErr != nil {
			return fmt.Errorf("create version: %w", verErr)
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     actor.ID,
			Action:     domain.AuditActionRestoreVersion,
			EntityType: domain.EntityTypeDocument,
			EntityID:   &input.DocumentID,
			Meta: map[string]any{
				"restored_version": input.Version,
				"new_version":      newVersion,
			},
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}

		return nil
	}

	if err := s.runWithVersionRetry(ctx, run); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "version restored",
		slog.String("actor_id", actor.ID.String()),
		slog.String("document_id", input.DocumentID.String()),
		slog.Int("restored_version", input.Version),
		slog.Int("new_version", newVersion),
	)

	return doc, nil
}
