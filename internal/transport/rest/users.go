package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/service/user"
)

// userService defines the minimal interface needed by UserHandler.
type userService interface {
	ListUsers(ctx context.Context, input user.ListInput) (*user.ListResult, error)
	Deactivate(ctx context.Context, userID uuid.UUID) error
}

// UserHandler serves user administration REST endpoints.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "users")}
}

type userListResponse struct {
	Users []userResponse `json:"users"`
	Total int            `json:"total"`
}

// List handles GET /users?limit=50&offset=0. Admin only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListUsers(r.Context(), user.ListInput{
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	users := make([]userResponse, 0, len(result.Users))
	for _, u := range result.Users {
		users = append(users, toUserResponse(u))
	}

	writeJSON(w, http.StatusOK, userListResponse{Users: users, Total: result.Total})
}

// Deactivate handles POST /users/{id}/deactivate. Admin only.
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Deactivate(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
