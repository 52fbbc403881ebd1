// Package access implements the project access-grant repository using
// PostgreSQL. At most one grant row exists per (project, user) pair; the
// schema enforces this with a unique constraint and Upsert relies on it.
package access

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/nkontur/doccenter-backend/internal/adapter/postgres"
	"github.com/nkontur/doccenter-backend/internal/domain"
)

// Repo provides access-grant persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new access repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const accessColumns = `id, project_id, user_id, permission, granted_by, created_at`

const getAccessSQL = `
SELECT ` + accessColumns + `
FROM project_access
WHERE project_id = $1 AND user_id = $2`

const upsertAccessSQL = `
INSERT INTO project_access (project_id, user_id, permission, granted_by)
VALUES ($1, $2, $3, $4)
ON CONFLICT (project_id, user_id)
DO UPDATE SET permission = EXCLUDED.permission, granted_by = EXCLUDED.granted_by
RETURNING ` + accessColumns

const deleteAccessSQL = `
DELETE FROM project_access
WHERE project_id = $1 AND user_id = $2`

const listByProjectSQL = `
SELECT
    a.id, a.project_id, a.user_id, a.permission, a.granted_by, a.created_at,
    u.email AS user_email,
    g.email AS granter_email
FROM project_access a
JOIN users u ON u.id = a.user_id
LEFT JOIN users g ON g.id = a.granted_by
WHERE a.project_id = $1
ORDER BY a.created_at, a.id`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the grant for a (project, user) pair.
// Returns domain.ErrNotFound if no grant exists.
func (r *Repo) Get(ctx context.Context, projectID, userID uuid.UUID) (*domain.ProjectAccess, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanAccess(querier.QueryRow(ctx, getAccessSQL, projectID, userID))
	if err != nil {
		return nil, postgres.MapError(err, "access", userID)
	}

	return a, nil
}

// ListByProject returns all grants on a project with user and granter emails,
// in stable creation order. Returns an empty slice (not nil) when none.
func (r *Repo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.AccessWithEmails, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByProjectSQL, projectID)
	if err != nil {
		return nil, fmt.Errorf("list access by project: %w", err)
	}
	defer rows.Close()

	var result []*domain.AccessWithEmails
	for rows.Next() {
		var (
			item         domain.AccessWithEmails
			permission   string
			grantedBy    pgtype.UUID
			granterEmail pgtype.Text
		)
		if err := rows.Scan(
			&item.ID, &item.ProjectID, &item.UserID, &permission, &grantedBy, &item.CreatedAt,
			&item.UserEmail, &granterEmail,
		); err != nil {
			return nil, fmt.Errorf("list access by project: %w", err)
		}
		item.Permission = domain.Permission(permission)
		if grantedBy.Valid {
			item.GrantedBy = uuid.UUID(grantedBy.Bytes)
		}
		if granterEmail.Valid {
			item.GranterEmail = &granterEmail.String
		}
		item.CreatedAt = item.CreatedAt.UTC()
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list access by project: %w", err)
	}

	if result == nil {
		result = []*domain.AccessWithEmails{}
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Upsert creates the grant for (project, user) or updates its permission and
// granter in place. Returns the persisted row either way.
// Returns domain.ErrNotFound if the project or user does not exist.
func (r *Repo) Upsert(ctx context.Context, projectID, userID uuid.UUID, perm domain.Permission, grantedBy uuid.UUID) (*domain.ProjectAccess, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, upsertAccessSQL, projectID, userID, string(perm), grantedBy)

	a, err := scanAccess(row)
	if err != nil {
		return nil, postgres.MapError(err, "access", userID)
	}

	return a, nil
}

// Delete removes the grant for a (project, user) pair.
// Returns domain.ErrNotFound if no grant exists.
func (r *Repo) Delete(ctx context.Context, projectID, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteAccessSQL, projectID, userID)
	if err != nil {
		return postgres.MapError(err, "access", userID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("access %s: %w", userID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanAccess(row pgx.Row) (*domain.ProjectAccess, error) {
	var (
		a          domain.ProjectAccess
		permission string
		grantedBy  pgtype.UUID
	)
	err := row.Scan(&a.ID, &a.ProjectID, &a.UserID, &permission, &grantedBy, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	a.Permission = domain.Permission(permission)
	if grantedBy.Valid {
		a.GrantedBy = uuid.UUID(grantedBy.Bytes)
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}
