package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/internal/service/audit"
)

// auditService defines the minimal interface needed by AuditHandler.
type auditService interface {
	List(ctx context.Context, input audit.ListInput) ([]*domain.RecordWithActor, error)
}

// AuditHandler serves the audit trail REST endpoint.
type AuditHandler struct {
	svc auditService
	log *slog.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(svc auditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, log: logger.With("handler", "audit")}
}

// List handles GET /audit. Admin only. All filters are optional:
// userId, action, entityType, entityId, from, to (RFC 3339), limit, offset.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := audit.ListInput{
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	}

	if v := q.Get("userId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid userId")
			return
		}
		input.UserID = &id
	}
	if v := q.Get("action"); v != "" {
		input.Action = &v
	}
	if v := q.Get("entityType"); v != "" {
		et := domain.EntityType(v)
		input.EntityType = &et
	}
	if v := q.Get("entityId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid entityId")
			return
		}
		input.EntityID = &id
	}
	if v := q.Get("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from timestamp")
			return
		}
		input.From = &ts
	}
	if v := q.Get("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to timestamp")
			return
		}
		input.To = &ts
	}

	records, err := h.svc.List(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]auditResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toAuditResponse(rec))
	}

	writeJSON(w, http.StatusOK, map[string]any{"records": out})
}
