package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/internal/service/document"
)

// documentService defines the minimal interface needed by DocumentHandler.
type documentService interface {
	CreateDocument(ctx context.Context, input document.CreateDocumentInput) (*domain.Document, error)
	GetDocument(ctx context.Context, input document.GetDocumentInput) (*domain.Document, error)
	ListDocuments(ctx context.Context, input document.ListDocumentsInput) ([]*domain.Document, error)
	UpdateDocument(ctx context.Context, input document.UpdateDocumentInput) (*domain.Document, error)
	ChangeStatus(ctx context.Context, input document.ChangeStatusInput) (*domain.Document, error)
	ListVersions(ctx context.Context, input document.ListVersionsInput) ([]*domain.VersionWithCreator, error)
	GetVersion(ctx context.Context, input document.GetVersionInput) (*domain.DocumentVersion, error)
	RestoreVersion(ctx context.Context, input document.RestoreVersionInput) (*domain.Document, error)
}

// DocumentHandler serves document REST endpoints.
type DocumentHandler struct {
	svc documentService
	log *slog.Logger
}

// NewDocumentHandler creates a DocumentHandler.
func NewDocumentHandler(svc documentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{svc: svc, log: logger.With("handler", "documents")}
}

type createDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updateDocumentRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

// Create handles POST /projects/{id}/documents.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateDocument(r.Context(), document.CreateDocumentInput{
		ProjectID: projectID,
		Title:     req.Title,
		Content:   req.Content,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDocumentResponse(created))
}

// ListByProject handles GET /projects/{id}/documents?status=draft&limit=20&offset=0.
func (h *DocumentHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	input := document.ListDocumentsInput{
		ProjectID: projectID,
		Limit:     queryInt(r, "limit", 0),
		Offset:    queryInt(r, "offset", 0),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.DocumentStatus(s)
		input.Status = &status
	}

	docs, err := h.svc.ListDocuments(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"documents": toDocumentResponses(docs)})
}

// Get handles GET /documents/{id}.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	d, err := h.svc.GetDocument(r.Context(), document.GetDocumentInput{DocumentID: id})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDocumentResponse(d))
}

// Update handles PATCH /documents/{id}.
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req updateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.svc.UpdateDocument(r.Context(), document.UpdateDocumentInput{
		DocumentID: id,
		Title:      req.Title,
		Content:    req.Content,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDocumentResponse(d))
}

// ChangeStatus handles POST /documents/{id}/status.
func (h *DocumentHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.svc.ChangeStatus(r.Context(), document.ChangeStatusInput{
		DocumentID: id,
		Status:     domain.DocumentStatus(req.Status),
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDocumentResponse(d))
}

// ListVersions handles GET /documents/{id}/versions.
func (h *DocumentHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	versions, err := h.svc.ListVersions(r.Context(), document.ListVersionsInput{DocumentID: id})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]versionResponse, 0, len(versions))
	for _, v := range versions {
		out = append(out, toVersionResponse(&v.DocumentVersion, v.CreatorEmail))
	}

	writeJSON(w, http.StatusOK, map[string]any{"versions": out})
}

// GetVersion handles GET /documents/{id}/versions/{version}.
func (h *DocumentHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	version, ok := pathInt(w, r, "version")
	if !ok {
		return
	}

	v, err := h.svc.GetVersion(r.Context(), document.GetVersionInput{
		DocumentID: id,
		Version:    version,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toVersionResponse(v, nil))
}

// Restore handles POST /documents/{id}/restore/{version}.
func (h *DocumentHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	version, ok := pathInt(w, r, "version")
	if !ok {
		return
	}

	d, err := h.svc.RestoreVersion(r.Context(), document.RestoreVersionInput{
		DocumentID: id,
		Version:    version,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toDocumentResponse(d))
}
