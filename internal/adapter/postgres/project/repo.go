// Package project implements the project repository using PostgreSQL.
package project

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/nkontur/doccenter-backend/internal/adapter/postgres"
	"github.com/nkontur/doccenter-backend/internal/domain"
)

// Repo provides project persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new project repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const projectColumns = `id, title, description, owner_id, created_at, updated_at`

const createProjectSQL = `
INSERT INTO projects (title, description, owner_id)
VALUES ($1, $2, $3)
RETURNING ` + projectColumns

const getProjectByIDSQL = `
SELECT ` + projectColumns + `
FROM projects
WHERE id = $1`

const listAllProjectsSQL = `
SELECT ` + projectColumns + `
FROM projects
ORDER BY created_at, id`

// A project is visible to a non-admin when they own it or hold a grant on it.
const listVisibleProjectsSQL = `
SELECT ` + projectColumns + `
FROM projects p
WHERE p.owner_id = $1
   OR EXISTS (
        SELECT 1 FROM project_access a
        WHERE a.project_id = p.id AND a.user_id = $1
      )
ORDER BY p.created_at, p.id`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new project and returns the persisted domain.Project.
func (r *Repo) Create(ctx context.Context, title string, description *string, ownerID uuid.UUID) (*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createProjectSQL, title, ptrStringToPgText(description), ownerID)

	p, err := scanProject(row)
	if err != nil {
		return nil, postgres.MapError(err, "project", uuid.Nil)
	}

	return p, nil
}

// Update applies a partial update to title and/or description and returns
// the updated project. Description ptr("") clears the field (sets NULL).
// Returns domain.ErrNotFound if the project does not exist.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, title, description *string) (*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder().
		Update("projects").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + projectColumns)

	if title != nil {
		b = b.Set("title", *title)
	}
	if description != nil {
		if *description == "" {
			b = b.Set("description", nil)
		} else {
			b = b.Set("description", *description)
		}
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update project: %w", err)
	}

	p, err := scanProject(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "project", id)
	}

	return p, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a project by primary key.
// Returns domain.ErrNotFound if the project does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanProject(querier.QueryRow(ctx, getProjectByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "project", id)
	}

	return p, nil
}

// ListAll returns every project in stable creation order (admin view).
// Returns an empty slice (not nil) when there are no projects.
func (r *Repo) ListAll(ctx context.Context) ([]*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listAllProjectsSQL)
	if err != nil {
		return nil, fmt.Errorf("list all projects: %w", err)
	}
	defer rows.Close()

	projects, err := scanProjects(rows)
	if err != nil {
		return nil, fmt.Errorf("list all projects: %w", err)
	}

	return projects, nil
}

// ListVisible returns the projects a user owns or holds a grant on,
// in stable creation order. Returns an empty slice (not nil) when none.
func (r *Repo) ListVisible(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listVisibleProjectsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list visible projects: %w", err)
	}
	defer rows.Close()

	projects, err := scanProjects(rows)
	if err != nil {
		return nil, fmt.Errorf("list visible projects: %w", err)
	}

	return projects, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		p           domain.Project
		description pgtype.Text
	)
	err := row.Scan(&p.ID, &p.Title, &description, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		p.Description = &description.String
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

func scanProjects(rows pgx.Rows) ([]*domain.Project, error) {
	var result []*domain.Project
	for rows.Next() {
		var (
			p           domain.Project
			description pgtype.Text
		)
		if err := rows.Scan(&p.ID, &p.Title, &description, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if description.Valid {
			p.Description = &description.String
		}
		p.CreatedAt = p.CreatedAt.UTC()
		p.UpdatedAt = p.UpdatedAt.UTC()
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Project{}
	}

	return result, nil
}

// ptrStringToPgText converts a *string to pgtype.Text (nil -> NULL).
func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
