package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/epicurean/epicurean/pkg/auth"
	"github.com/epicurean/epicurean/pkg/response"
)

type userIDKey struct{}
type roleKey struct{}

// Auth validates the Bearer token and stores the caller's identity in the
// request context for downstream handlers and rbac checks.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
		ctx = context.WithValue(ctx, roleKey{}, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth stores the caller's identity when a valid Bearer token is
// present and lets the request through either way. Guest-friendly routes
// (the cart) use this instead of Auth.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token != "" {
			if claims, err := auth.ValidateToken(token); err == nil {
				ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
				ctx = context.WithValue(ctx, roleKey{}, claims.Role)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromCtx returns the authenticated user's id, if any.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	return UserIDFrom(r.Context())
}

// RoleFromCtx returns the authenticated user's role, if any.
func RoleFromCtx(r *http.Request) (string, bool) {
	return RoleFrom(r.Context())
}

// UserIDFrom reads the authenticated user's id off a bare context. Useful
// for resolvers that only see a context.Context.
func UserIDFrom(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey{}).(uint)
	return id, ok
}

// RoleFrom reads the authenticated user's role off a bare context.
func RoleFrom(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey{}).(string)
	return role, ok
}
