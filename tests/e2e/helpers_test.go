//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nkontur/doccenter-backend/internal/adapter/postgres"
	accessrepo "github.com/nkontur/doccenter-backend/internal/adapter/postgres/access"
	auditrepo "github.com/nkontur/doccenter-backend/internal/adapter/postgres/audit"
	documentrepo "github.com/nkontur/doccenter-backend/internal/adapter/postgres/document"
	projectrepo "github.com/nkontur/doccenter-backend/internal/adapter/postgres/project"
	"github.com/nkontur/doccenter-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/nkontur/doccenter-backend/internal/adapter/postgres/user"
	"github.com/nkontur/doccenter-backend/internal/auth"
	"github.com/nkontur/doccenter-backend/internal/config"
	"github.com/nkontur/doccenter-backend/internal/domain"
	accesssvc "github.com/nkontur/doccenter-backend/internal/service/access"
	auditsvc "github.com/nkontur/doccenter-backend/internal/service/audit"
	documentsvc "github.com/nkontur/doccenter-backend/internal/service/document"
	projectsvc "github.com/nkontur/doccenter-backend/internal/service/project"
	usersvc "github.com/nkontur/doccenter-backend/internal/service/user"
	"github.com/nkontur/doccenter-backend/internal/transport/middleware"
	"github.com/nkontur/doccenter-backend/internal/transport/rest"
)

// testPassword is the known password for all API-seeded users.
const testPassword = "e2e-password-1"

// testEnv is a fully wired application over a shared test database,
// served through httptest.
type testEnv struct {
	t      *testing.T
	server *httptest.Server
	pool   *pgxpool.Pool
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authCfg := config.AuthConfig{
		JWTSecret:        "e2e-secret-0123456789abcdef0123456789",
		JWTIssuer:        "doccenter-e2e",
		AccessTokenTTL:   time.Hour,
		PasswordHashCost: bcrypt.MinCost,
	}
	docCfg := config.DocumentConfig{
		MaxVersionRetries: 3,
		ListDefaultLimit:  20,
		ListMaxLimit:      100,
	}

	txManager := postgres.NewTxManager(pool)
	users := userrepo.New(pool)
	projects := projectrepo.New(pool)
	grants := accessrepo.New(pool)
	documents := documentrepo.New(pool)
	auditRecords := auditrepo.New(pool)

	jwtManager := auth.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)

	auditService := auditsvc.NewService(logger, auditRecords)
	accessService := accesssvc.NewService(logger, projects, grants, users, auditService, txManager)
	projectService := projectsvc.NewService(logger, projects, accessService, auditService, txManager)
	documentService := documentsvc.NewService(logger, documents, accessService, auditService, txManager, docCfg)
	userService := usersvc.NewService(logger, users, auditService, txManager, jwtManager, authCfg)

	mux := rest.NewRouter(rest.Handlers{
		Auth:     rest.NewAuthHandler(userService, logger),
		Users:    rest.NewUserHandler(userService, logger),
		Projects: rest.NewProjectHandler(projectService, logger),
		Access:   rest.NewAccessHandler(accessService, logger),
		Docs:     rest.NewDocumentHandler(documentService, logger),
		Audit:    rest.NewAuditHandler(auditService, logger),
		Health:   rest.NewHealthHandler(pool, "e2e"),
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Auth(jwtManager, users),
	)(mux)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &testEnv{t: t, server: server, pool: pool}
}

// ---------------------------------------------------------------------------
// HTTP helpers
// ---------------------------------------------------------------------------

// do performs a JSON request. token may be empty for anonymous calls.
// Returns the status code and the decoded JSON body (nil on empty body).
func (e *testEnv) do(method, path, token string, body any) (int, map[string]any) {
	e.t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reqBody)
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)

	if len(raw) == 0 {
		return resp.StatusCode, nil
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// plain-text middleware responses (401/403/429)
		return resp.StatusCode, map[string]any{"raw": string(raw)}
	}
	return resp.StatusCode, decoded
}

// ---------------------------------------------------------------------------
// account helpers
// ---------------------------------------------------------------------------

// seedLoginUser inserts an active user whose password is testPassword.
func (e *testEnv) seedLoginUser(role domain.UserRole) domain.User {
	e.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(e.t, err)

	u := domain.User{
		ID:       uuid.New(),
		Email:    "e2e-" + uuid.NewString()[:8] + "@example.com",
		Role:     role,
		IsActive: true,
	}

	_, err = e.pool.Exec(context.Background(),
		`INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true)`,
		u.ID, u.Email, string(hash), string(u.Role),
	)
	require.NoError(e.t, err)

	return u
}

// login exchanges a seeded user's credentials for an access token.
func (e *testEnv) login(u domain.User) string {
	e.t.Helper()

	status, body := e.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    u.Email,
		"password": testPassword,
	})
	require.Equal(e.t, http.StatusOK, status, "login %s: %v", u.Email, body)

	token, ok := body["accessToken"].(string)
	require.True(e.t, ok, "expected accessToken in login response")
	require.NotEmpty(e.t, token)
	return token
}

// loginAs seeds a user with the given role and logs them in.
func (e *testEnv) loginAs(role domain.UserRole) (domain.User, string) {
	e.t.Helper()
	u := e.seedLoginUser(role)
	return u, e.login(u)
}

// field digs a string field out of a decoded JSON object.
func field(t *testing.T, body map[string]any, name string) string {
	t.Helper()
	v, ok := body[name].(string)
	require.True(t, ok, "expected string field %q in %v", name, body)
	return v
}
