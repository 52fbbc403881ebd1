package rest

import (
	"time"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Role:      u.Role.String(),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

type projectResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		OwnerID:     p.OwnerID.String(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProjectResponses(projects []*domain.Project) []projectResponse {
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	return out
}

type documentResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"createdBy"`
	UpdatedBy string    `json:"updatedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toDocumentResponse(d *domain.Document) documentResponse {
	return documentResponse{
		ID:        d.ID.String(),
		ProjectID: d.ProjectID.String(),
		Title:     d.Title,
		Content:   d.Content,
		Status:    d.Status.String(),
		CreatedBy: d.CreatedBy.String(),
		UpdatedBy: d.UpdatedBy.String(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toDocumentResponses(docs []*domain.Document) []documentResponse {
	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}
	return out
}

type versionResponse struct {
	ID              string    `json:"id"`
	DocumentID      string    `json:"documentId"`
	Version         int       `json:"version"`
	ContentSnapshot string    `json:"contentSnapshot"`
	CreatedBy       string    `json:"createdBy"`
	CreatorEmail    *string   `json:"creatorEmail,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toVersionResponse(v *domain.DocumentVersion, creatorEmail *string) versionResponse {
	return versionResponse{
		ID:              v.ID.String(),
		DocumentID:      v.DocumentID.String(),
		Version:         v.Version,
		ContentSnapshot: v.ContentSnapshot,
		CreatedBy:       v.CreatedBy.String(),
		CreatorEmail:    creatorEmail,
		CreatedAt:       v.CreatedAt,
	}
}

type accessResponse struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"projectId"`
	UserID       string    `json:"userId"`
	UserEmail    *string   `json:"userEmail,omitempty"`
	Permission   string    `json:"permission"`
	GrantedBy    string    `json:"grantedBy"`
	GranterEmail *string   `json:"granterEmail,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toAccessResponse(a *domain.AccessWithEmails) accessResponse {
	return accessResponse{
		ID:           a.ID.String(),
		ProjectID:    a.ProjectID.String(),
		UserID:       a.UserID.String(),
		UserEmail:    a.UserEmail,
		Permission:   a.Permission.String(),
		GrantedBy:    a.GrantedBy.String(),
		GranterEmail: a.GranterEmail,
		CreatedAt:    a.CreatedAt,
	}
}

type auditResponse struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	ActorEmail *string        `json:"actorEmail,omitempty"`
	Action     string         `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   *string        `json:"entityId,omitempty"`
	Meta       map[string]any `json:"meta,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func toAuditResponse(rec *domain.RecordWithActor) auditResponse {
	out := auditResponse{
		ID:         rec.ID.String(),
		UserID:     rec.UserID.String(),
		ActorEmail: rec.ActorEmail,
		Action:     rec.Action,
		EntityType: rec.EntityType.String(),
		Meta:       rec.Meta,
		CreatedAt:  rec.CreatedAt,
	}
	if rec.EntityID != nil {
		s := rec.EntityID.String()
		out.EntityID = &s
	}
	return out
}
