package document

import (
	"context"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

// Hand-rolled func-field mocks for the service's consumer interfaces.

type documentRepoMock struct {
	CreateFunc        func(ctx context.Context, projectID uuid.UUID, title, content string, createdBy uuid.UUID) (*domain.Document, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByProjectFunc func(ctx context.Context, projectID uuid.UUID, status *domain.DocumentStatus, limit, offset int) ([]*domain.Document, error)
	UpdateFunc        func(ctx context.Context, id uuid.UUID, patch domain.DocumentPatch, updatedBy uuid.UUID) (*domain.Document, error)
	UpdateStatusFunc  func(ctx context.Context, id uuid.UUID, status domain.DocumentStatus, updatedBy uuid.UUID) (*domain.Document, error)

	MaxVersionFunc    func(ctx context.Context, documentID uuid.UUID) (int, error)
	CreateVersionFunc func(ctx context.Context, documentID uuid.UUID, version int, snapshot string, createdBy uuid.UUID) (*domain.DocumentVersion, error)
	GetVersionFunc    func(ctx context.Context, documentID uuid.UUID, version int) (*domain.DocumentVersion, error)
	ListVersionsFunc  func(ctx context.Context, documentID uuid.UUID) ([]*domain.VersionWithCreator, error)
}

func (m *documentRepoMock) Create(ctx context.Context, projectID uuid.UUID, title, content string, createdBy uuid.UUID) (*domain.Document, error) {
	return m.CreateFunc(ctx, projectID, title, content, createdBy)
}

func (m *documentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *documentRepoMock) ListByProject(ctx context.Context, projectID uuid.UUID, status *domain.DocumentStatus, limit, offset int) ([]*domain.Document, error) {
	return m.ListByProjectFunc(ctx, projectID, status, limit, offset)
}

func (m *documentRepoMock) Update(ctx context.Context, id uuid.UUID, patch domain.DocumentPatch, updatedBy uuid.UUID) (*domain.Document, error) {
	return m.UpdateFunc(ctx, id, patch, updatedBy)
}

func (m *documentRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus, updatedBy uuid.UUID) (*domain.Document, error) {
	return m.UpdateStatusFunc(ctx, id, status, updatedBy)
}

func (m *documentRepoMock) MaxVersion(ctx context.Context, documentID uuid.UUID) (int, error) {
	return m.MaxVersionFunc(ctx, documentID)
}

func (m *documentRepoMock) CreateVersion(ctx context.Context, documentID uuid.UUID, version int, snapshot string, createdBy uuid.UUID) (*domain.DocumentVersion, error) {
	return m.CreateVersionFunc(ctx, documentID, version, snapshot, createdBy)
}

func (m *documentRepoMock) GetVersion(ctx context.Context, documentID uuid.UUID, version int) (*domain.DocumentVersion, error) {
	return m.GetVersionFunc(ctx, documentID, version)
}

func (m *documentRepoMock) ListVersions(ctx context.Context, documentID uuid.UUID) ([]*domain.VersionWithCreator, error) {
	return m.ListVersionsFunc(ctx, documentID)
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

	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	m.calls++
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

// resolverWithLevel returns a resolver that always reports the given level.
func resolverWithLevel(level domain.AccessLevel) *accessResolverMock {
	return &accessResolverMock{
		ResolveFunc: func(_ context.Context, _ domain.User, projectID uuid.UUID) (domain.AccessLevel, *domain.Project, error) {
			return level, &domain.Project{ID: projectID}, nil
		},
	}
}
