// Package audit implements the append-only audit trail repository using
// PostgreSQL. Records are only ever inserted and read back; there are no
// update or delete operations on this table.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/nkontur/doccenter-backend/internal/adapter/postgres"
	"github.com/nkontur/doccenter-backend/internal/domain"
)

// Repo provides audit-trail persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createAuditSQL = `
INSERT INTO audit_logs (user_id, action, entity_type, entity_id, meta)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`

// Create appends an audit record. When called inside a transaction the
// record commits or rolls back together with the business write.
func (r *Repo) Create(ctx context.Context, rec *domain.AuditRecord) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var meta []byte
	if rec.Meta != nil {
		b, err := json.Marshal(rec.Meta)
		if err != nil {
			return fmt.Errorf("marshal audit meta: %w", err)
		}
		meta = b
	}

	err := querier.QueryRow(ctx, createAuditSQL,
		rec.UserID, rec.Action, string(rec.EntityType), rec.EntityID, meta,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "audit", rec.UserID)
	}

	rec.CreatedAt = rec.CreatedAt.UTC()
	return nil
}

// List returns audit records matching the filter, newest first, with the
// actor's email. Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.RecordWithActor, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	b := postgres.Builder().
		Select(
			"a.id", "a.user_id", "a.action", "a.entity_type", "a.entity_id", "a.meta", "a.created_at",
			"u.email AS actor_email",
		).
		From("audit_logs a").
		LeftJoin("users u ON u.id = a.user_id").
		OrderBy("a.created_at DESC", "a.id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	if filter.UserID != nil {
		b = b.Where(squirrel.Eq{"a.user_id": *filter.UserID})
	}
	if filter.Action != nil {
		b = b.Where(squirrel.Eq{"a.action": *filter.Action})
	}
	if filter.EntityType != nil {
		b = b.Where(squirrel.Eq{"a.entity_type": string(*filter.EntityType)})
	}
	if filter.EntityID != nil {
		b = b.Where(squirrel.Eq{"a.entity_id": *filter.EntityID})
	}
	if filter.From != nil {
		b = b.Where(squirrel.GtOrEq{"a.created_at": *filter.From})
	}
	if filter.To != nil {
		b = b.Where(squirrel.LtOrEq{"a.created_at": *filter.To})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list audit: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()

	var result []*domain.RecordWithActor
	for rows.Next() {
		var (
			item       domain.RecordWithActor
			userID     pgtype.UUID
			entityType string
			entityID   pgtype.UUID
			meta       []byte
			actorEmail pgtype.Text
		)
		if err := rows.Scan(
			&item.ID, &userID, &item.Action, &entityType, &entityID, &meta, &item.CreatedAt,
			&actorEmail,
		); err != nil {
			return nil, fmt.Errorf("list audit: %w", err)
		}

		if userID.Valid {
			item.UserID = uuid.UUID(userID.Bytes)
		}
		item.EntityType = domain.EntityType(entityType)
		if entityID.Valid {
			id := uuid.UUID(entityID.Bytes)
			item.EntityID = &id
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &item.Meta); err != nil {
				return nil, fmt.Errorf("unmarshal audit meta: %w", err)
			}
		}
		if actorEmail.Valid {
			item.ActorEmail = &actorEmail.String
		}
		item.CreatedAt = item.CreatedAt.UTC()
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}

	if result == nil {
		result = []*domain.RecordWithActor{}
	}

	return result, nil
}
