package audit

import (
	"context"
	"fmt"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

// Log appends a record to the audit trail. Callers invoke it inside their
// own transaction context, so a failed append rolls the business write back
// with it.
func (s *Service) Log(ctx context.Context, rec domain.AuditRecord) error {
	if err := s.records.Create(ctx, &rec); err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}
