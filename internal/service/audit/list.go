package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// ListInput holds the optional filters for an audit trail listing.
type ListInput struct {
	UserID     *uuid.UUID
	Action     *string
	EntityType *domain.EntityType
	EntityID   *uuid.UUID
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.EntityType != nil && !i.EntityType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "entity_type", Message: "unknown entity type"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must not be negative"})
	}
	if i.Limit > MaxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("max %d", MaxListLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}
	if i.From != nil && i.To != nil && i.To.Before(*i.From) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must not precede from"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// List returns audit records matching the filter, newest first.
// Only admins may read the trail.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.RecordWithActor, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.Role.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}

	records, err := s.records.List(ctx, domain.AuditFilter{
		UserID:     input.UserID,
		Action:     input.Action,
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		From:       input.From,
		To:         input.To,
		Limit:      limit,
		Offset:     input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}

	return records, nil
}
