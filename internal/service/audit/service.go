// Package audit provides the audit-trail service: recording actions from the
// other services and the administrative listing of the trail.
package audit

import (
	"context"
	"log/slog"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

type auditRepo interface {
	Create(ctx context.Context, rec *domain.AuditRecord) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.RecordWithActor, error)
}

// Service provides audit trail operations.
type Service struct {
	records auditRepo
	log     *slog.Logger
}

// NewService creates a new Audit service.
func NewService(log *slog.Logger, records auditRepo) *Service {
	return &Service{
		records: records,
		log:     log.With("service", "audit"),
	}
}
