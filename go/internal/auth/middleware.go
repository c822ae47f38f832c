package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcdev12/ipl-auction/go/internal/auction"
	"github.com/mcdev12/ipl-auction/go/internal/models"
)

type contextKey struct{}

// CallerFromContext returns the caller attached by the middleware. The zero
// Caller (unauthenticated) comes back when no valid token was presented.
func CallerFromContext(ctx context.Context) auction.Caller {
	caller, _ := ctx.Value(contextKey{}).(auction.Caller)
	return caller
}

// Middleware parses an optional Bearer token and attaches the caller to the
// request context. Invalid tokens degrade to an anonymous caller; handlers
// that need authentication use RequireAuth or RequireRole.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r); ok {
			if caller, err := m.ParseCaller(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), contextKey{}, caller))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests without a valid token.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !CallerFromContext(r.Context()).Authenticated {
			http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// RequireRole rejects callers that do not hold the given role.
func RequireRole(role models.UserRole, next http.HandlerFunc) http.HandlerFunc {
	return RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		if CallerFromContext(r.Context()).Role != role {
			http.Error(w, `{"error":"insufficient permissions"}`, http.StatusForbidden)
			return
		}
		next(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok && after != "" {
		return after, true
	}
	return "", false
}
