package document

import (
	"context"
	"fmt"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// GetDocument returns a document by id. Requires viewer access on the
// document's project.
func (s *Service) GetDocument(ctx context.Context, input GetDocumentInput) (*domain.Document, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.docs.GetByID(ctx, input.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	if err := s.requireView(ctx, actor, doc.ProjectID); err != nil {
		return nil, err
	}

	return doc, nil
}
