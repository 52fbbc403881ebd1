package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
)

type ctxKey string

const (
	actorKey     ctxKey = "actor"
	requestIDKey ctxKey = "request_id"
)

// WithActor stores the authenticated user in the context.
func WithActor(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, actorKey, u)
}

// ActorFromCtx extracts the authenticated user from the context.
// Returns false if no actor is present or the stored value has a nil ID.
func ActorFromCtx(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(actorKey).(domain.User)
	if !ok || u.ID == uuid.Nil {
		return domain.User{}, false
	}
	return u, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
