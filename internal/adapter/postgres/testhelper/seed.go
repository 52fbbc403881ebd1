package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an active user with the given role.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		PasswordHash: "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtestha",
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.PasswordHash, string(user.Role), user.IsActive, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedProject creates a project owned by ownerID.
// Returns a filled domain.Project.
func SeedProject(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID) domain.Project {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	project := domain.Project{
		ID:        uuid.New(),
		Title:     "Test Project " + suffix,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO projects (id, title, description, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		project.ID, project.Title, project.Description, project.OwnerID, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProject insert: %v", err)
	}

	return project
}

// SeedAccess creates an access grant on a project for a user.
// Returns a filled domain.ProjectAccess.
func SeedAccess(t *testing.T, pool *pgxpool.Pool, projectID, userID, grantedBy uuid.UUID, perm domain.Permission) domain.ProjectAccess {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	access := domain.ProjectAccess{
		ID:         uuid.New(),
		ProjectID:  projectID,
		UserID:     userID,
		Permission: perm,
		GrantedBy:  grantedBy,
		CreatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO project_access (id, project_id, user_id, permission, granted_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		access.ID, access.ProjectID, access.UserID, string(access.Permission), access.GrantedBy, access.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAccess insert: %v", err)
	}

	return access
}

// SeedDocument creates a draft document in a project, authored by authorID,
// together with its initial version snapshot (version 1).
// Returns a filled domain.Document.
func SeedDocument(t *testing.T, pool *pgxpool.Pool, projectID, authorID uuid.UUID) domain.Document {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	doc := domain.Document{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     "Test Document " + suffix,
		Content:   "initial content " + suffix,
		Status:    domain.DocumentStatusDraft,
		CreatedBy: authorID,
		UpdatedBy: authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO documents (id, project_id, title, content, status, created_by, updated_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		doc.ID, doc.ProjectID, doc.Title, doc.Content, string(doc.Status), doc.CreatedBy, doc.UpdatedBy, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDocument insert document: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO document_versions (id, document_id, version, content_snapshot, created_by, created_at)
		 VALUES ($1, $2, 1, $3, $4, $5)`,
		uuid.New(), doc.ID, doc.Content, authorID, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDocument insert version: %v", err)
	}

	return doc
}
