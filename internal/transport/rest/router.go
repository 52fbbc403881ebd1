package rest

import "net/http"

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Projects *ProjectHandler
	Access   *AccessHandler
	Docs     *DocumentHandler
	Audit    *AuditHandler
	Health   *HealthHandler
}

// NewRouter builds the HTTP route table. Authentication and other
// cross-cutting concerns are applied by the caller around the returned mux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	// probes
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	// auth
	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	mux.HandleFunc("GET /api/v1/auth/me", h.Auth.Me)

	// users (admin)
	mux.HandleFunc("GET /api/v1/users", h.Users.List)
	mux.HandleFunc("POST /api/v1/users/{id}/deactivate", h.Users.Deactivate)

	// projects
	mux.HandleFunc("POST /api/v1/projects", h.Projects.Create)
	mux.HandleFunc("GET /api/v1/projects", h.Projects.List)
	mux.HandleFunc("GET /api/v1/projects/{id}", h.Projects.Get)
	mux.HandleFunc("PATCH /api/v1/projects/{id}", h.Projects.Update)

	// project access grants
	mux.HandleFunc("POST /api/v1/projects/{id}/access", h.Access.Grant)
	mux.HandleFunc("GET /api/v1/projects/{id}/access", h.Access.List)
	mux.HandleFunc("DELETE /api/v1/projects/{id}/access/{userID}", h.Access.Revoke)

	// documents
	mux.HandleFunc("POST /api/v1/projects/{id}/documents", h.Docs.Create)
	mux.HandleFunc("GET /api/v1/projects/{id}/documents", h.Docs.ListByProject)
	mux.HandleFunc("GET /api/v1/documents/{id}", h.Docs.Get)
	mux.HandleFunc("PATCH /api/v1/documents/{id}", h.Docs.Update)
	mux.HandleFunc("POST /api/v1/documents/{id}/status", h.Docs.ChangeStatus)
	mux.HandleFunc("GET /api/v1/documents/{id}/versions", h.Docs.ListVersions)
	mux.HandleFunc("GET /api/v1/documents/{id}/versions/{version}", h.Docs.GetVersion)
	mux.HandleFunc("POST /api/v1/documents/{id}/restore/{version}", h.Docs.Restore)

	// audit trail (admin)
	mux.HandleFunc("GET /api/v1/audit", h.Audit.List)

	return mux
}
