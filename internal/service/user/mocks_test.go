package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

// Hand-rolled func-field mocks for the service's consumer interfaces.

type userRepoMock struct {
	CreateFunc     func(ctx context.Context, email, passwordHash string, role domain.UserRole) (*domain.User, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	ListFunc       func(ctx context.Context, limit, offset int) ([]*domain.User, error)
	CountFunc      func(ctx context.Context) (int, error)
	SetActiveFunc  func(ctx context.Context, id uuid.UUID, active bool) error
}

func (m *userRepoMock) Create(ctx context.Context, email, passwordHash string, role domain.UserRole) (*domain.User, error) {
	return m.CreateFunc(ctx, email, passwordHash, role)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return m.ListFunc(ctx, limit, offset)
}

func (m *userRepoMock) Count(ctx context.Context) (int, error) {
	return m.CountFunc(ctx)
}

func (m *userRepoMock) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.SetActiveFunc(ctx, id, active)
}

type auditLoggerMock struct {
	LogFunc func(ctx context.Context, record domain.AuditRecord) error

	records []domain.AuditRecord
}

func (m *auditLoggerMock) Log(ctx context.Context, record domain.AuditRecord) error {
	m.records = append(m.records, record)
	if m.LogFunc != nil {
		return m.LogFunc(ctx, record)
	}
	return nil
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

type jwtManagerMock struct {
	GenerateAccessTokenFunc func(userID uuid.UUID, role string) (string, error)
}

func (m *jwtManagerMock) GenerateAccessToken(userID uuid.UUID, role string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, role)
	}
	return "test-token", nil
}
