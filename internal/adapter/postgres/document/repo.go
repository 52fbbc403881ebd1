// Package document implements the document and document-version repositories
// using PostgreSQL. Version rows are append-only; the unique constraint on
// (document_id, version) turns concurrent snapshot races into mappable
// domain.ErrAlreadyExists for the service retry loop.
package document

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

// Repo provides document persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new document repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const documentColumns = `id, project_id, title, content, status, created_by, updated_by, created_at, updated_at`

const createDocumentSQL = `
INSERT INTO documents (project_id, title, content, created_by, updated_by)
VALUES ($1, $2, $3, $4, $4)
RETURNING ` + documentColumns

const getDocumentByIDSQL = `
SELECT ` + documentColumns + `
FROM documents
WHERE id = $1`

const updateStatusSQL = `
UPDATE documents
SET status = $2, updated_by = $3, updated_at = now()
WHERE id = $1
RETURNING ` + documentColumns

const countByProjectSQL = `SELECT count(*) FROM documents WHERE project_id = $1`

const maxVersionSQL = `
SELECT COALESCE(MAX(version), 0)
FROM document_versions
WHERE document_id = $1`

const createVersionSQL = `
INSERT INTO document_versions (document_id, version, content_snapshot, created_by)
VALUES ($1, $2, $3, $4)
RETURNING id, document_id, version, content_snapshot, created_by, created_at`

const getVersionSQL = `
SELECT id, document_id, version, content_snapshot, created_by, created_at
FROM document_versions
WHERE document_id = $1 AND version = $2`

const listVersionsSQL = `
SELECT
    v.id, v.document_id, v.version, v.content_snapshot, v.created_by, v.created_at,
    u.email AS creator_email
FROM document_versions v
LEFT JOIN users u ON u.id = v.created_by
WHERE v.document_id = $1
ORDER BY v.version DESC`

// ---------------------------------------------------------------------------
// Document write operations
// ---------------------------------------------------------------------------

// Create inserts a new draft document authored by createdBy and returns it.
// The initial version snapshot is the caller's responsibility (it is written
// in the same transaction by the service).
func (r *Repo) Create(ctx context.Context, projectID uuid.UUID, title, content string, createdBy uuid.UUID) (*domain.Document, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createDocumentSQL, projectID, title, content, createdBy)

	d, err := scanDocument(row)
	if err != nil {
		return nil, postgres.MapError(err, "document", uuid.Nil)
	}

	return d, nil
}

// Update applies a partial update to title and/or content, stamps updated_by,
// and returns the updated document.
// Returns domain.ErrNotFound if the document does not exist.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.DocumentPatch, updatedBy uuid.UUID) (*domain.Document, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder().
		Update("documents").
		Set("updated_by", updatedBy).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + documentColumns)

	if patch.Title != nil {
		b = b.Set("title", *patch.Title)
	}
	if patch.Content != nil {
		b = b.Set("content", *patch.Content)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update document: %w", err)
	}

	d, err := scanDocument(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "document", id)
	}

	return d, nil
}

// UpdateStatus transitions the document lifecycle status and stamps updated_by.
// Returns domain.ErrNotFound if the document does not exist.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus, updatedBy uuid.UUID) (*domain.Document, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateStatusSQL, id, string(status), updatedBy)

	d, err := scanDocument(row)
	if err != nil {
		return nil, postgres.MapError(err, "document", id)
	}

	return d, nil
}

// ---------------------------------------------------------------------------
// Document read operations
// ---------------------------------------------------------------------------

// GetByID returns a document by primary key.
// Returns domain.ErrNotFound if the document does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	d, err := scanDocument(querier.QueryRow(ctx, getDocumentByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "document", id)
	}

	return d, nil
}

// ListByProject returns a page of a project's documents in stable creation
// order, optionally filtered by status. Returns an empty slice (not nil)
// when the page is empty.
func (r *Repo) ListByProject(ctx context.Context, projectID uuid.UUID, status *domain.DocumentStatus, limit, offset int) ([]*domain.Document, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder().
		Select("id", "project_id", "title", "content", "status", "created_by", "updated_by", "created_at", "updated_at").
		From("documents").
		Where(squirrel.Eq{"project_id": projectID}).
		OrderBy("created_at", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if status != nil {
		b = b.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list documents: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}

// CountByProject returns the number of documents in a project.
func (r *Repo) CountByProject(ctx context.Context, projectID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countByProjectSQL, projectID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Version operations
// ---------------------------------------------------------------------------

// MaxVersion returns the highest version number recorded for a document,
// or 0 when no versions exist yet.
func (r *Repo) MaxVersion(ctx context.Context, documentID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var v int
	if err := querier.QueryRow(ctx, maxVersionSQL, documentID).Scan(&v); err != nil {
		return 0, fmt.Errorf("max version: %w", err)
	}

	return v, nil
}

// CreateVersion appends an immutable content snapshot with an explicit
// version number. Returns domain.ErrAlreadyExists when a concurrent writer
// took the same version number first; callers retry with a fresh number.
func (r *Repo) CreateVersion(ctx context.Context, documentID uuid.UUID, version int, snapshot string, createdBy uuid.UUID) (*domain.DocumentVersion, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createVersionSQL, documentID, version, snapshot, createdBy)

	v, err := scanVersion(row)
	if err != nil {
		return nil, postgres.MapError(err, "document_version", documentID)
	}

	return v, nil
}

// GetVersion returns a specific version snapshot of a document.
// Returns domain.ErrNotFound if the version does not exist.
func (r *Repo) GetVersion(ctx context.Context, documentID uuid.UUID, version int) (*domain.DocumentVersion, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	v, err := scanVersion(querier.QueryRow(ctx, getVersionSQL, documentID, version))
	if err != nil {
		return nil, postgres.MapError(err, "document_version", documentID)
	}

	return v, nil
}

// ListVersions returns all versions of a document, newest first, with the
// creator's email. Returns an empty slice (not nil) when none.
func (r *Repo) ListVersions(ctx context.Context, documentID uuid.UUID) ([]*domain.VersionWithCreator, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listVersionsSQL, documentID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var result []*domain.VersionWithCreator
	for rows.Next() {
		var (
			item         domain.VersionWithCreator
			creatorEmail pgtype.Text
		)
		if err := rows.Scan(
			&item.ID, &item.DocumentID, &item.Version, &item.ContentSnapshot, &item.CreatedBy, &item.CreatedAt,
			&creatorEmail,
		); err != nil {
			return nil, fmt.Errorf("list versions: %w", err)
		}
		if creatorEmail.Valid {
			item.CreatorEmail = &creatorEmail.String
		}
		item.CreatedAt = item.CreatedAt.UTC()
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}

	if result == nil {
		result = []*domain.VersionWithCreator{}
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var (
		d      domain.Document
		status string
	)
	err := row.Scan(&d.ID, &d.ProjectID, &d.Title, &d.Content, &status, &d.CreatedBy, &d.UpdatedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}

	d.Status = domain.DocumentStatus(status)
	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	return &d, nil
}

func scanDocuments(rows pgx.Rows) ([]*domain.Document, error) {
	var result []*domain.Document
	for rows.Next() {
		var (
			d      domain.Document
			status string
		)
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.Title, &d.Content, &status, &d.CreatedBy, &d.UpdatedBy, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		d.Status = domain.DocumentStatus(status)
		d.CreatedAt = d.CreatedAt.UTC()
		d.UpdatedAt = d.UpdatedAt.UTC()
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Document{}
	}

	return result, nil
}

func scanVersion(row pgx.Row) (*domain.DocumentVersion, error) {
	var v domain.DocumentVersion
	err := row.Scan(&v.ID, &v.DocumentID, &v.Version, &v.ContentSnapshot, &v.CreatedBy, &v.CreatedAt)
	if err != nil {
		return nil, err
	}

	v.CreatedAt = v.CreatedAt.UTC()
	return &v, nil
}
