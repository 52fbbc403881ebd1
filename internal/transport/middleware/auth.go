package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nkontur/doccenter-backend/internal/domain"
	"github.com/nkontur/doccenter-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

type actorLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Auth returns middleware that resolves a Bearer token into the acting user
// and stores it in the request context. Requests without a token pass
// through anonymously; downstream handlers decide whether that is allowed.
// A token for a deactivated account is rejected with 403.
func Auth(validator tokenValidator, users actorLoader) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}

			userID, _, err := validator.ValidateAccessToken(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			u, err := users.GetByID(r.Context(), userID)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !u.IsActive {
				http.Error(w, "account deactivated", http.StatusForbidden)
				return
			}

			ctx := ctxutil.WithActor(r.Context(), *u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
