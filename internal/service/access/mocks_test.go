package access

import (
	"context"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

// Hand-rolled func-field mocks for the service's consumer interfaces.

type projectRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
}

func (m *projectRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return m.GetByIDFunc(ctx, id)
}

type accessRepoMock struct {
	GetFunc           func(ctx context.Context, projectID, userID uuid.UUID) (*domain.ProjectAccess, error)
	UpsertFunc        func(ctx context.Context, projectID, userID uuid.UUID, perm domain.Permission, grantedBy uuid.UUID) (*domain.ProjectAccess, error)
	DeleteFunc        func(ctx context.Context, projectID, userID uuid.UUID) error
	ListByProjectFunc func(ctx context.Context, projectID uuid.UUID) ([]*domain.AccessWithEmails, error)
}

func (m *accessRepoMock) Get(ctx context.Context, projectID, userID uuid.UUID) (*domain.ProjectAccess, error) {
	return m.GetFunc(ctx, projectID, userID)
}

func (m *accessRepoMock) Upsert(ctx context.Context, projectID, userID uuid.UUID, perm domain.Permission, grantedBy uuid.UUID) (*domain.ProjectAccess, error) {
	return m.UpsertFunc(ctx, projectID, userID, perm, grantedBy)
}

func (m *accessRepoMock) Delete(ctx context.Context, projectID, userID uuid.UUID) error {
	return m.DeleteFunc(ctx, projectID, userID)
}

func (m *accessRepoMock) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.AccessWithEmails, error) {
	return m.ListByProjectFunc(ctx, projectID)
}

type userRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
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
