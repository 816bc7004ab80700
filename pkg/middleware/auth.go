// Package middleware provides the HTTP middleware chain: request auth gates,
// CORS, request logging, and panic recovery.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/bistro/pkg/auth"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

type emailKey struct{}

// EmailFromCtx returns the authenticated email attached by RequireToken.
func EmailFromCtx(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey{}).(string)
	return email, ok && email != ""
}

// WithEmail stores an authenticated email in ctx. Exported for tests that
// exercise handlers behind the token gate without running it.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey{}, email)
}

// RequireToken is the first authorization gate. It extracts the bearer token
// from the Authorization header, verifies it, and attaches the decoded email
// to the request context. Absent token → 401, invalid or expired → 403.
func RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))

		if token == "" {
			response.Unauthorized(w, "Access denied. No token provided.")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Forbidden(w, "Access denied. Invalid token.")
			return
		}

		ctx := WithEmail(r.Context(), claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RoleLookup resolves the stored role for an email. Implemented by the user
// repository; injected here so the gate holds no collection handle of its own.
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// RequireAdmin is the second gate, only reachable after RequireToken. It loads
// the user behind the authenticated email and rejects anyone without the
// admin role.
func RequireAdmin(users RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := EmailFromCtx(r.Context())
			if !ok {
				response.Forbidden(w, "Access denied. You are not an admin.")
				return
			}

			role, err := users.RoleByEmail(r.Context(), email)
			if err != nil || role != "admin" {
				response.Forbidden(w, "Access denied. You are not an admin.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
