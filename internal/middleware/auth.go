package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cs-Nikhil/msdproject/internal/auth"
	"github.com/cs-Nikhil/msdproject/internal/authz"
	"github.com/cs-Nikhil/msdproject/internal/model"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity returns the caller set by Authenticate, or false when the
// request never passed through it.
func Identity(ctx context.Context) (authz.Identity, bool) {
	id, ok := ctx.Value(identityKey).(authz.Identity)
	return id, ok
}

// WithIdentity is a test hook for exercising handlers without a token.
func WithIdentity(ctx context.Context, id authz.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Authenticate parses the Bearer token and stores the request-scoped
// identity (user id + role) on the context.
func Authenticate(secret string, reject func(w http.ResponseWriter, status int, msg string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := ""
			if h := r.Header.Get("Authorization"); h != "" {
				raw = strings.TrimPrefix(h, "Bearer ")
			}
			if raw == "" {
				// fall back to the cookie set by the login endpoint
				if c, err := r.Cookie("access_token"); err == nil {
					raw = c.Value
				}
			}
			if raw == "" {
				reject(w, http.StatusUnauthorized, "no token")
				return
			}

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				reject(w, http.StatusUnauthorized, "bad token")
				return
			}

			ctx := WithIdentity(r.Context(), authz.Identity{UserID: claims.UserID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route on the caller's role. Must run after
// Authenticate.
func RequireRole(role model.Role, reject func(w http.ResponseWriter, status int, msg string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := Identity(r.Context())
			if !ok || id.Role != role {
				reject(w, http.StatusUnauthorized, "not authorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
