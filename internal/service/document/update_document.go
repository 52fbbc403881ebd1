package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// UpdateDocument applies a partial update to a document. When the update
// changes the content, a new version snapshot is appended in the same
// transaction. Requires editor access.
//
// A concurrent editor may take the next version number first; the whole
// transaction is then retried with a fresh number, and after the configured
// number of attempts the operation fails with domain.ErrConflict.
func (s *Service) UpdateDocument(ctx context.Context, input UpdateDocumentInput) (*domain.Document, error) {
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

	patch := domain.DocumentPatch{Content: input.Content}
	var updatedFields []string
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		patch.Title = &title
		updatedFields = append(updatedFields, "title")
	}
	if input.Content != nil {
		updatedFields = append(updatedFields, "content")
	}

	contentChanged := input.Content != nil && *input.Content != current.Content

	var doc *domain.Document
	run := func(txCtx context.Context) error {
		var updErr error
		doc, updErr = s.docs.Update(txCtx, input.DocumentID, patch, actor.ID)
		if updErr != nil {
			return fmt.Errorf("update document: %w", updErr)
		}

		if contentChanged {
			maxVersion, verErr := s.docs.MaxVersion(txCtx, input.DocumentID)
			if verErr != nil {
				return fmt.Errorf("max version: %w", verErr)
			}
			if _, verErr = s.docs.CreateVersion(txCtx, input.DocumentID, maxVersion+1, doc.Content, actor.ID); verErr != nil {
				return fmt.Errorf("create version: %w", verErr)
			}
		}

		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     actor.ID,
			Action:     domain.AuditActionUpdateDocument,
			EntityType: domain.EntityTypeDocument,
			EntityID:   &input.DocumentID,
			Meta: map[string]any{
				"updated_fields":  updatedFields,
				"content_changed": contentChanged,
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

	s.log.InfoContext(ctx, "document updated",
		slog.String("actor_id", actor.ID.String()),
		slog.String("document_id", input.DocumentID.String()),
		slog.Bool("content_changed", contentChanged),
	)

	return doc, nil
}

// runWithVersionRetry executes fn in a transaction, retrying when a
// concurrent writer wins the race for the next version number.
func (s *Service) runWithVersionRetry(ctx context.Context, fn func(txCtx context.Context) error) error {
	var err error
	for attempt := 0; attempt < s.cfg.MaxVersionRetries; attempt++ {
		err = s.tx.RunInTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return err
		}
		s.log.WarnContext(ctx, "version number conflict, retrying",
			slog.Int("attempt", attempt+1),
		)
	}
	return fmt.Errorf("version race not resolved after %d attempts: %w", s.cfg.MaxVersionRetries, domain.ErrConflict)
}
