package access

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

func newTestService(
	projects *projectRepoMock,
	grants *accessRepoMock,
	users *userRepoMock,
	audit *auditLoggerMock,
) *Service {
	return NewService(slog.Default(), projects, grants, users, audit, &txManagerMock{})
}

func actorCtx(user domain.User) context.Context {
	return ctxutil.WithActor(context.Background(), user)
}

func adminUser() domain.User {
	return domain.User{ID: uuid.New(), Email: "admin@example.com", Role: domain.UserRoleAdmin, IsActive: true}
}

func managerUser() domain.User {
	return domain.User{ID: uuid.New(), Email: "manager@example.com", Role: domain.UserRoleManager, IsActive: true}
}

func workerUser() domain.User {
	return domain.User{ID: uuid.New(), Email: "worker@example.com", Role: domain.UserRoleWorker, IsActive: true}
}

func projectOwnedBy(ownerID uuid.UUID) *domain.Project {
	return &domain.Project{ID: uuid.New(), Title: "Docs", OwnerID: ownerID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
}

// ---------------------------------------------------------------------------
// Resolve
// ---------------------------------------------------------------------------

func TestResolve_AdminIsEditor(t *testing.T) {
	t.Parallel()

	admin := adminUser()
	proj := projectOwnedBy(uuid.New())

	projects := &projectRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return proj, nil },
	}
	// Grant lookup must not be reached for admins.
	grants := &accessRepoMock{}

	svc := newTestService(projects, grants, &userRepoMock{}, &auditLoggerMock{})

	level, got, err := svc.Resolve(context.Background(), admin, proj.ID)
	if err != nil {
		t.Fatalf("Resolve: unexpected error: %v", err)
	}
	if level != domain.AccessLevelEditor {
		t.Errorf("expected editor, got %s", level)
	}
	if got.ID != proj.ID {
		t.Errorf("project mismatch: got %s", got.ID)
	}
}

func TestResolve_OwnerIsEditor(t *testing.T) {
	t.Parallel()

	owner := managerUser()
	proj := projectOwnedBy(owner.ID)

	projects := &projectRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return proj, nil },
	}
	svc := newTestService(projects, &accessRepoMock{}, &userRepoMock{}, &auditLoggerMock{})

	level, _, err := svc.Resolve(context.Background(), owner, proj.ID)
	if err != nil {
		t.Fatalf("Resolve: unexpected error: %v", err)
	}
	if level != domain.AccessLevelEditor {
		t.Errorf("expected editor, got %s", level)
	}
}

func TestResolve_GrantLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		perm domain.Permission
		want domain.AccessLevel
	}{
		{"viewer grant", domain.PermissionViewer, domain.AccessLevelViewer},
		{"editor grant", domain.PermissionEditor, domain.AccessLevelEditor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user := workerUser()
			proj := projectOwnedBy(uuid.New())

			projects := &projectRepoMock{
				GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return proj, nil },
			}
			grants := &accessRepoMock{
				GetFunc: func(_ context.Context, _, _ uuid.UUID) (*domain.ProjectAccess, error) {
					return &domain.ProjectAccess{ProjectID: proj.ID, UserID: user.ID, Permission: tt.perm}, nil
				},
			}
			svc := newTestService(projects, grants, &userRepoMock{}, &auditLoggerMock{})

			level, _, err := svc.Resolve(context.Background(), user, proj.ID)
			if err != nil {
				t.Fatalf("Resolve: unexpected error: %v", err)
			}
			if level != tt.want {
				t.Errorf("expected %s, got %s", tt.want, level)
			}
		})
	}
}

func TestResolve_NoGrantIsNone(t *testing.T) {
	t.Parallel()

	user := workerUser()
	proj := projectOwnedBy(uuid.New())

	projects := &projectRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return proj, nil },
	}
	grants := &accessRepoMock{
		GetFunc: func(_ context.Context, _, _ uuid.UUID) (*domain.ProjectAccess, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(projects, grants, &userRepoMock{}, &auditLoggerMock{})

	level, got, err := svc.Resolve(context.Background(), user, proj.ID)
	if err != nil {
		t.Fatalf("Resolve: unexpected error: %v", err)
	}
	if level != domain.AccessLevelNone {
		t.Errorf("expected none, got %s", level)
	}
	if got == nil {
		t.Error("project should still be returned at level none")
	}
}

func TestResolve_ProjectNotFound(t *testing.T) {
	t.Parallel()

	projects := &projectRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(projects, &accessRepoMock{}, &userRepoMock{}, &auditLoggerMock{})

	_, _, err := svc.Resolve(context.Background(), workerUser(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// GrantAccess
// ---------------------------------------------------------------------------

func TestGrantAccess_NewGrant(t *testing.T) {
	t.Parallel()

	owner := managerUser()
	target := workerUser()
	proj := projectOwnedBy(owner.ID)

	projects := &projectRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return proj, nil },
	}
	grants := &accessRepoMock{
		GetFunc: func(_ context.Context, _, _ uuid.UUID) (*domain.ProjectAccess, error) {
			return nil, domain.ErrNotFound
		},
		UpsertFunc: func(_ context.Context, pid, uid uuid.UUID, perm domain.Permission, grantedBy uuid.UUID) (*domain.ProjectAccess, error) {
			return &domain.ProjectAccess{
				ID: uuid.New(), ProjectID: pid, UserID: uid,
				Permission: perm, GrantedBy: grantedBy, CreatedAt: time.Now(),
			}, nil
		},
	}
	users := &userRepoMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return &target, nil
		},
	}
	audit := &auditLoggerMock{}

	svc := newTestService(projects, grants, users, audit)

	got, err := svc.GrantAccess(actorCtx(owner), GrantAccessInput{
		ProjectID: proj.ID, UserID: target.ID, Permission: domain.PermissionEditor,
	})
	if err != nil {
		t.Fatalf("GrantAccess: unexpected error: %v", err)
	}

	if got.Permission != domain.PermissionEditor {
		t.Errorf("Permission mismatch: got %s", got.Permission)
	}
	if got.UserEmail == nil || *got.UserEmail != target.Email {
		t.Errorf("UserEmail mismatch: got %v", got.UserEmail)
	}
	if got.GranterEmail == nil || *got.GranterEmail != owner.Email {
		t.Errorf("GranterEmail mismatch: got %v", got.GranterEmail)
	}

	if len(audit.records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(audit.records))
	}
	if audit.records[0].Action != domain.AuditActionGrantAccess {
		t.Errorf("audit action mismatch: got %q", audit.records[0].Action)
	}
}

func TestGrantAccess_ExistingGrantIsUpdate(t *testing.T) {
	t.Parallel()

	owner := managerUser()
	target := workerUser()
	proj := projectOwnedBy(owner.ID)

	projects := &projectRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return proj, nil },
	}
	grants := &accessRepoMock{
		GetFunc: func(_ context.Context, pid, uid uuid.UUID) (*domain.ProjectAccess, error) {
			return &domain.ProjectAccess{ID: uuid.New(), ProjectID: pid, UserID: uid, Permission: domain.PermissionViewer}, nil
		},
		UpsertFunc: func(_ context.Context, pid, uid uuid.UUID, perm domain.Permission, grantedBy uuid.UUID) (*domain.ProjectAccess, error) {
			return &domain.ProjectAccess{ID: uuid.New(), ProjectID: pid, UserID: uid, Permission: perm, GrantedBy: grantedBy}, nil
		},
	}
	users := &userRepoMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) { return &target, nil },
	}
	audit := &auditLoggerMock{}

	svc := newTestService(projects, grants, users, audit)

	_, err := svc.GrantAccess(actorCtx(owner), GrantAccessInput{
		ProjectID: proj.ID, UserID: target.ID, Permission: domain.PermissionEditor,
	})
	if err != nil {
		t.Fatalf("GrantAccess: unexpected error: %v", err)
	}

	if len(audit.records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(audit.records))
	}
	if audit.records[0].Action != domain.AuditActionUpdateAccess {
		t.Errorf("expected update_access, got %q", audit.records[0].Action)
	}
}

func TestGrantAccess_Forbidden(t *testing.T) {
	t.Parallel()

	stranger := workerUser()
	proj := projectOwnedBy(uuid.New())

	projects := &projectRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return proj, nil },
	}
	svc := newTestService(projects, &accessRepoMock{}, &userRepoMock{}, &auditLoggerMock{})

	_, err := svc.GrantAccess(actorCtx(stranger), GrantAccessInput{
		ProjectID: proj.ID, UserID: uuid.New(), Permission: domain.PermissionViewer,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGrantAccess_ProjectNotFoundBeforeForbidden(t *testing.T) {
	t.Parallel()

	stranger := workerUser()

	projects := &projectRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(projects, &accessRepoMock{}, &userRepoMock{}, &auditLoggerMock{})

	_, err := svc.GrantAccess(actorCtx(stranger), GrantAccessInput{
		ProjectID: uuid.New(), UserID: uuid.New(), Permission: domain.PermissionViewer,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing project must surface as ErrNotFound, got %v", err)
	}
}

func TestGrantAccess_TargetUserNotFound(t *testing.T) {
	t.Parallel()

	owner := managerUser()
	proj := projectOwnedBy(owner.ID)

	projects := &projectRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return proj, nil },
	}
	users := &userRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(projects, &accessRepoMock{}, users, &auditLoggerMock{})

	_, err := svc.GrantAccess(actorCtx(owner), GrantAccessInput{
		ProjectID: proj.ID, UserID: uuid.New(), Permission: domain.PermissionViewer,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGrantAccess_InvalidPermission(t *testing.T) {
	t.Parallel()

	owner := managerUser()
	svc := newTestService(&projectRepoMock{}, &accessRepoMock{}, &userRepoMock{}, &auditLoggerMock{})

	_, err := svc.GrantAccess(actorCtx(owner), GrantAccessInput{
		ProjectID: uuid.New(), UserID: uuid.New(), Permission: "superuser",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGrantAccess_Unauthorized(t *testing.T) {
	t.Parallel()

	svc := newTestService(&projectRepoMock{}, &accessRepoMock{}, &userRepoMock{}, &auditLoggerMock{})

	_, err := svc.GrantAccess(context.Background(), GrantAccessInput{
		ProjectID: uuid.New(), UserID: uuid.New(), Permission: domain.PermissionViewer,
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGrantAccess_AuditFailureAborts(t *testing.T) {
	t.Parallel()

	owner := managerUser()
	target := workerUser()
	proj := projectOwnedBy(owner.ID)

	projects := &projectRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return proj, nil },
	}
	grants := &accessRepoMock{
		GetFunc: func(_ context.Context, _, _ uuid.UUID) (*domain.ProjectAccess, error) {
			return nil, domain.ErrNotFound
		},
		UpsertFunc: func(_ context.Context, pid, uid uuid.UUID, perm domain.Permission, grantedBy uuid.UUID) (*domain.ProjectAccess, error) {
			return &domain.ProjectAccess{ID: uuid.New(), ProjectID: pid, UserID: uid, Permission: perm}, nil
		},
	}
	users := &userRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.User, error) { return &target, nil },
	}
	audit := &auditLoggerMock{
		LogFunc: func(_ context.Context, _ domain.AuditRecord) error {
			return errors.New("audit insert failed")
		},
	}

	svc := newTestService(projects, grants, users, audit)

	_, err := svc.GrantAccess(actorCtx(owner), GrantAccessInput{
		ProjectID: proj.ID, UserID: target.ID, Permission: domain.PermissionViewer,
	})
	if err == nil {
		t.Fatal("expected error when audit logging fails")
	}
}

// ---------------------------------------------------------------------------
// RevokeAccess
// ---------------------------------------------------------------------------

func TestRevokeAccess_Success(t *testing.T) {
	t.Parallel()

	admin := adminUser()
	target := workerUser()
	proj := projectOwnedBy(uuid.New())

	deleted := false
	projects := &projectRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return proj, nil },
	}
	grants := &accessRepoMock{
		GetFunc: func(_ context.Context, pid, uid uuid.UUID) (*domain.ProjectAccess, error) {
			return &domain.ProjectAccess{ID: uuid.New(), ProjectID: pid, UserID: uid, Permission: domain.PermissionViewer}, nil
		},
		DeleteFunc: func(_ context.Context, _, _ uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	audit := &auditLoggerMock{}

	svc := newTestService(projects, grants, &userRepoMock{}, audit)

	err := svc.RevokeAccess(actorCtx(admin), RevokeAccessInput{ProjectID: proj.ID, UserID: target.ID})
	if err != nil {
		t.Fatalf("RevokeAccess: unexpected error: %v", err)
	}
	if !deleted {
		t.Error("grant should be deleted")
	}
	if len(audit.records) != 1 || audit.records[0].Action != domain.AuditActionRevokeAccess {
		t.Errorf("expected revoke_access audit record, got %v", audit.records)
	}
}

func TestRevokeAccess_GrantNotFound(t *testing.T) {
	t.Parallel()

	owner := managerUser()
	proj := projectOwnedBy(owner.ID)

	projects := &projectRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return proj, nil },
	}
	grants := &accessRepoMock{
		GetFunc: func(_ context.Context, _, _ uuid.UUID) (*domain.ProjectAccess, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(projects, grants, &userRepoMock{}, &auditLoggerMock{})

	err := svc.RevokeAccess(actorCtx(owner), RevokeAccessInput{ProjectID: proj.ID, UserID: uuid.New()})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ListAccess
// ---------------------------------------------------------------------------

func TestListAccess_OwnerSeesGrants(t *testing.T) {
	t.Parallel()

	owner := managerUser()
	proj := projectOwnedBy(owner.ID)

	projects := &projectRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return proj, nil },
	}
	grants := &accessRepoMock{
		ListByProjectFunc: func(_ context.Context, _ uuid.UUID) ([]*domain.AccessWithEmails, error) {
			return []*domain.AccessWithEmails{
				{ProjectAccess: domain.ProjectAccess{ID: uuid.New(), Permission: domain.PermissionViewer}},
			}, nil
		},
	}
	svc := newTestService(projects, grants, &userRepoMock{}, &auditLoggerMock{})

	got, err := svc.ListAccess(actorCtx(owner), ListAccessInput{ProjectID: proj.ID})
	if err != nil {
		t.Fatalf("ListAccess: unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 grant, got %d", len(got))
	}
}

func TestListAccess_GranteeForbidden(t *testing.T) {
	t.Parallel()

	grantee := workerUser()
	proj := projectOwnedBy(uuid.New())

	projects := &projectRepoMock{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return proj, nil },
	}
	svc := newTestService(projects, &accessRepoMock{}, &userRepoMock{}, &auditLoggerMock{})

	_, err := svc.ListAccess(actorCtx(grantee), ListAccessInput{ProjectID: proj.ID})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
