// Package user provides account operations: password login, admin-only
// registration, listing, and soft deactivation.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/config"
	"github.com/nkontur/doccenter-backend/internal/domain"
)

type userRepo interface {
	Create(ctx context.Context, email, passwordHash string, role domain.UserRole) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	Count(ctx context.Context) (int, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID, role string) (string, error)
}

// Service provides user account operations.
type Service struct {
	users userRepo
	audit auditLogger
	tx    txManager
	jwt   jwtManager
	cfg   config.AuthConfig
	log   *slog.Logger
}

// NewService creates a new User service.
func NewService(
	log *slog.Logger,
	users userRepo,
	audit auditLogger,
	tx txManager,
	jwt jwtManager,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		users: users,
		audit: audit,
		tx:    tx,
		jwt:   jwt,
		cfg:   cfg,
		log:   log.With("service", "user"),
	}
}

// AuthResult is returned by Login.
type AuthResult struct {
	AccessToken string
	User        *domain.User
}
