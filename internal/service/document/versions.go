package document

import (
	"context"
	"fmt"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

// ListVersions returns a document's version history, newest first, with the
// creator's email. Requires viewer access.
func (s *Service) ListVersions(ctx context.Context, input ListVersionsInput) ([]*domain.VersionWithCreator, error) {
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

	versions, err := s.docs.ListVersions(ctx, input.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}

	return versions, nil
}

// GetVersion returns a single version snapshot of a document.
// Requires viewer access.
func (s *Service) GetVersion(ctx context.Context, input GetVersionInput) (*domain.DocumentVersion, error) {
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

	version, err := s.docs.GetVersion(ctx, input.DocumentID, input.Version)
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}

	return version, nil
}
