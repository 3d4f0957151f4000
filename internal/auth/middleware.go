package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/patilmallikarjuna1130-maker/finance-track/internal/core"
)

type contextKey string

const userContextKey contextKey = "current_user"

// UserLookup resolves a user id from a verified token to the stored user.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int64) (core.User, error)
}

// Middleware verifies the bearer token on every request and places the
// current user in the context. Requests without a valid token are rejected
// with 401 before any handler runs.
func Middleware(secret string, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				unauthorized(w)
				return
			}

			claims, err := ParseToken(secret, tokenStr)
			if err != nil {
				slog.WarnContext(r.Context(), "Token rejected", "error", err)
				unauthorized(w)
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				slog.WarnContext(r.Context(), "Token for unknown user", "user_id", claims.UserID)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user or ErrUnauthenticated.
func UserFromContext(ctx context.Context) (core.User, error) {
	user, ok := ctx.Value(userContextKey).(core.User)
	if !ok {
		return core.User{}, ErrUnauthenticated
	}
	return user, nil
}

// WithUser returns a context carrying the given user. Intended for tests
// and internal callers that already authenticated through another path.
func WithUser(ctx context.Context, user core.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	// Query parameter fallback for download links that cannot set headers.
	return r.URL.Query().Get("token")
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthenticated"}`))
}
