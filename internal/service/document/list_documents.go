package document

import (
	"context"
	"fmt"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// ListDocuments returns a page of a project's documents, optionally filtered
// by status. Requires viewer access.
func (s *Service) ListDocuments(ctx context.Context, input ListDocumentsInput) ([]*domain.Document, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if err := s.requireView(ctx, actor, input.ProjectID); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = s.cfg.ListDefaultLimit
	}
	if limit > s.cfg.ListMaxLimit {
		limit = s.cfg.ListMaxLimit
	}

	docs, err := s.docs.ListByProject(ctx, input.ProjectID, input.Status, limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}
