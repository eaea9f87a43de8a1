package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinic-management-api/internal/auth"
	"clinic-management-api/internal/model"
)

type ctxKey string

const identityKey ctxKey = "identity"

// IdentityFrom returns the authenticated identity attached by Authenticate.
func IdentityFrom(ctx context.Context) (model.Identity, bool) {
	id, ok := ctx.Value(identityKey).(model.Identity)
	return id, ok
}

// WithIdentity is used by tests to simulate an authenticated request.
func WithIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Authenticate attaches the identity from a valid bearer token to the
// request context. Requests without a usable token pass through anonymous;
// the role guard decides what anonymous is allowed to reach.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// token from Authorization: Bearer <jwt>
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithIdentity(r.Context(), claims.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole guards a route subtree. Anonymous requests and identities
// outside the permitted set are both redirected to the login page, never
// told why.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	permitted := make(map[model.Role]bool, len(roles))
	for _, role := range roles {
		permitted[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFrom(r.Context())
			if !ok || !permitted[id.Role] {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
