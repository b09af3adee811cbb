package middleware

import (
	"context"
	"net/http"
	"strings"

	"toolshare-backend/internal/security"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Auth validates the Bearer token on every request and stores the caller's
// user ID in the request context. Requests without a valid token never
// reach the handlers.
func Auth(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteError(w, http.StatusUnauthorized, ErrUnauthorized, "missing bearer token")
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, ErrUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// WebSocket clients cannot set headers from the browser, so the token
	// may arrive as a query parameter instead.
	return r.URL.Query().Get("token")
}

// UserID returns the authenticated user ID stored by Auth, or "" when the
// request did not pass through it.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
