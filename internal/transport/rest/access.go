package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/internal/service/access"
)

// accessService defines the minimal interface needed by AccessHandler.
type accessService interface {
	GrantAccess(ctx context.Context, input access.GrantAccessInput) (*domain.AccessWithEmails, error)
	RevokeAccess(ctx context.Context, input access.RevokeAccessInput) error
	ListAccess(ctx context.Context, input access.ListAccessInput) ([]*domain.AccessWithEmails, error)
}

// AccessHandler serves project access grant REST endpoints.
type AccessHandler struct {
	svc accessService
	log *slog.Logger
}

// NewAccessHandler creates an AccessHandler.
func NewAccessHandler(svc accessService, logger *slog.Logger) *AccessHandler {
	return &AccessHandler{svc: svc, log: logger.With("handler", "access")}
}

type grantAccessRequest struct {
	UserID     string `json:"userId"`
	Permission string `json:"permission"`
}

// Grant handles POST /projects/{id}/access. Creates or updates a grant.
func (h *AccessHandler) Grant(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req grantAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId")
		return
	}

	granted, err := h.svc.GrantAccess(r.Context(), access.GrantAccessInput{
		ProjectID:  projectID,
		UserID:     userID,
		Permission: domain.Permission(req.Permission),
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccessResponse(granted))
}

// Revoke handles DELETE /projects/{id}/access/{userID}.
func (h *AccessHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	err := h.svc.RevokeAccess(r.Context(), access.RevokeAccessInput{
		ProjectID: projectID,
		UserID:    userID,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}

// List handles GET /projects/{id}/access.
func (h *AccessHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	grants, err := h.svc.ListAccess(r.Context(), access.ListAccessInput{ProjectID: projectID})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]accessResponse, 0, len(grants))
	for _, g := range grants {
		out = append(out, toAccessResponse(g))
	}

	writeJSON(w, http.StatusOK, map[string]any{"grants": out})
}
