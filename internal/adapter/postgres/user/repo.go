// Package user implements the user repository using PostgreSQL.
// It covers account lookup for authentication, administrative listing,
// and soft deactivation.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/nkontur/doccenter-backend/internal/adapter/postgres"
	"github.com/nkontur/doccenter-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `id, email, password_hash, role, is_active, created_at`

const createUserSQL = `
INSERT INTO users (email, password_hash, role)
VALUES ($1, $2, $3)
RETURNING ` + userColumns

const getUserByIDSQL = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

const getUserByEmailSQL = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1`

const listUsersSQL = `
SELECT ` + userColumns + `
FROM users
ORDER BY created_at, id
LIMIT $1 OFFSET $2`

const countUsersSQL = `SELECT count(*) FROM users`

const setActiveSQL = `
UPDATE users
SET is_active = $2
WHERE id = $1`

const emailsByIDsSQL = `
SELECT id, email
FROM users
WHERE id = ANY($1::uuid[])`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new user and returns the persisted domain.User.
// Returns domain.ErrAlreadyExists if the email is taken.
func (r *Repo) Create(ctx context.Context, email, passwordHash string, role domain.UserRole) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createUserSQL, email, passwordHash, string(role))

	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}

	return u, nil
}

// SetActive flips the soft-deactivation flag.
// Returns domain.ErrNotFound if the user does not exist.
func (r *Repo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setActiveSQL, id, active)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
// Returns domain.ErrNotFound if the user does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getUserByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return u, nil
}

// GetByEmail returns a user by unique email.
// Returns domain.ErrNotFound if no user has this email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getUserByEmailSQL, email))
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}

	return u, nil
}

// List returns a page of users in stable creation order.
// Returns an empty slice (not nil) when the page is empty.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listUsersSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

// Count returns the total number of users.
func (r *Repo) Count(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countUsersSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}

// EmailsByIDs returns a map from user id to email for the given ids.
// Missing ids are simply absent from the map.
func (r *Repo) EmailsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, emailsByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("emails by ids: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID]string, len(ids))
	for rows.Next() {
		var (
			id    uuid.UUID
			email string
		)
		if err := rows.Scan(&id, &email); err != nil {
			return nil, fmt.Errorf("emails by ids: %w", err)
		}
		result[id] = email
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("emails by ids: %w", err)
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, err
	}

	u.Role = domain.UserRole(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func scanUsers(rows pgx.Rows) ([]*domain.User, error) {
	var result []*domain.User
	for rows.Next() {
		var (
			u         domain.User
			role      string
			createdAt time.Time
		)
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.IsActive, &createdAt); err != nil {
			return nil, err
		}
		u.Role = domain.UserRole(role)
		u.CreatedAt = createdAt.UTC()
		result = append(result, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.User{}
	}

	return result, nil
}
