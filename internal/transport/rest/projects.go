package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/internal/service/project"
)

// projectService defines the minimal interface needed by ProjectHandler.
type projectService interface {
	CreateProject(ctx context.Context, input project.CreateProjectInput) (*domain.Project, error)
	GetProject(ctx context.Context, input project.GetProjectInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, input project.UpdateProjectInput) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
}

// ProjectHandler serves project REST endpoints.
type ProjectHandler struct {
	svc projectService
	log *slog.Logger
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(svc projectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{svc: svc, log: logger.With("handler", "projects")}
}

type createProjectRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

type updateProjectRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Create handles POST /projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateProject(r.Context(), project.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProjectResponse(created))
}

// Get handles GET /projects/{id}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetProject(r.Context(), project.GetProjectInput{ProjectID: id})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(p))
}

// Update handles PATCH /projects/{id}.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.UpdateProject(r.Context(), project.UpdateProjectInput{
		ProjectID:   id,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(p))
}

// List handles GET /projects. Admins see all, everyone else sees projects
// they own or are granted on.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.ListProjects(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"projects": toProjectResponses(projects)})
}
