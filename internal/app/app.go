// Package app wires configuration, storage, services, and transport into a
// running HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nkontur/doccenter-backend/internal/adapter/postgres"
	accessrepo "github.com/nkontur/doccenter-backend/internal/adapter/postgres/access"
	auditrepo "github.com/nkontur/doccenter-backend/internal/adapter/postgres/audit"
	documentrepo "github.com/nkontur/doccenter-backend/internal/adapter/postgres/document"
	projectrepo "github.com/nkontur/doccenter-backend/internal/adapter/postgres/project"
	userrepo "github.com/nkontur/doccenter-backend/internal/adapter/postgres/user"
	"github.com/nkontur/doccenter-backend/internal/auth"
	"github.com/nkontur/doccenter-backend/internal/config"
	accesssvc "github.com/nkontur/doccenter-backend/internal/service/access"
	auditsvc "github.com/nkontur/doccenter-backend/internal/service/audit"
	documentsvc "github.com/nkontur/doccenter-backend/internal/service/document"
	projectsvc "github.com/nkontur/doccenter-backend/internal/service/project"
	usersvc "github.com/nkontur/doccenter-backend/internal/service/user"
	"github.com/nkontur/doccenter-backend/internal/transport/middleware"
	"github.com/nkontur/doccenter-backend/internal/transport/rest"
)

// apiRateLimitPerMinute bounds requests per client IP across the whole API.
const apiRateLimitPerMinute = 300

// Run is the application entry point. It loads configuration, applies
// database migrations, wires repositories, services, and HTTP handlers,
// and serves until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	users := userrepo.New(pool)
	projects := projectrepo.New(pool)
	grants := accessrepo.New(pool)
	documents := documentrepo.New(pool)
	auditRecords := auditrepo.New(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	auditService := auditsvc.NewService(logger, auditRecords)
	accessService := accesssvc.NewService(logger, projects, grants, users, auditService, txManager)
	projectService := projectsvc.NewService(logger, projects, accessService, auditService, txManager)
	documentService := documentsvc.NewService(logger, documents, accessService, auditService, txManager, cfg.Document)
	userService := usersvc.NewService(logger, users, auditService, txManager, jwtManager, cfg.Auth)

	mux := rest.NewRouter(rest.Handlers{
		Auth:     rest.NewAuthHandler(userService, logger),
		Users:    rest.NewUserHandler(userService, logger),
		Projects: rest.NewProjectHandler(projectService, logger),
		Access:   rest.NewAccessHandler(accessService, logger),
		Docs:     rest.NewDocumentHandler(documentService, logger),
		Audit:    rest.NewAuditHandler(auditService, logger),
		Health:   rest.NewHealthHandler(pool, BuildVersion()),
	})

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(apiRateLimitPerMinute),
		middleware.Auth(jwtManager, users),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
