package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

// Hand-rolled func-field mocks for the service's consumer interfaces.

type projectRepoMock struct {
	CreateFunc      func(ctx context.Context, title string, description *string, ownerID uuid.UUID) (*domain.Project, error)
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	UpdateFunc      func(ctx context.Context, id uuid.UUID, title, description *string) (*domain.Project, error)
	ListAllFunc     func(ctx context.Context) ([]*domain.Project, error)
	ListVisibleFunc func(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error)
}

func (m *projectRepoMock) Create(ctx context.Context, title string, description *string, ownerID uuid.UUID) (*domain.Project, error) {
	return m.CreateFunc(ctx, title, description, ownerID)
}

func (m *projectRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *projectRepoMock) Update(ctx context.Context, id uuid.UUID, title, description *string) (*domain.Project, error) {
	return m.UpdateFunc(ctx, id, title, description)
}

func (m *projectRepoMock) ListAll(ctx context.Context) ([]*domain.Project, error) {
	return m.ListAllFunc(ctx)
}

func (m *projectRepoMock) ListVisible(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error) {
	return m.ListVisibleFunc(ctx, userID)
}

type accessResolverMock struct {
	ResolveFunc func(ctx context.Context, user domain.User, projectID uuid.UUID) (domain.AccessLevel, *domain.Project, error)
}

func (m *accessResolverMock) Resolve(ctx context.Context, user domain.User, projectID uuid.UUID) (domain.AccessLevel, *domain.Project, error) {
	return m.ResolveFunc(ctx, user, projectID)
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
