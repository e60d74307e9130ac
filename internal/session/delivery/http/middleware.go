package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pixelpour/storefront/internal/session"
	"github.com/pixelpour/storefront/pkg/auth"
)

type contextKey string

const (
	// UserIDKey carries the authenticated shopper's id in the request context.
	UserIDKey contextKey = "user_id"
	// EmailKey carries the authenticated shopper's email.
	EmailKey contextKey = "email"
	// NameKey carries the authenticated shopper's display name.
	NameKey contextKey = "name"
)

// AuthMiddleware validates the bearer token and requires an active session.
// A valid token whose session was ended by logout is rejected; the shopper
// has to log in again.
func AuthMiddleware(sessions *session.Manager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondMiddlewareError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondMiddlewareError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			respondMiddlewareError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		if !sessions.Authenticated(claims.UserID) {
			respondMiddlewareError(w, http.StatusUnauthorized, "Session expired, please login again")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, EmailKey, claims.Email)
		ctx = context.WithValue(ctx, NameKey, claims.Name)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// UserID extracts the authenticated shopper's id from the request context.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}

func respondMiddlewareError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
