package middleware

import (
	"context"
	"net/http"
	"strings"

	"ecourse/internal/logger"
	"ecourse/internal/util"
)

// Injected key type to avoid context collisions
type contextKey string

const UserContextKey = contextKey("user")

// AuthMiddleware rejects requests without a valid bearer token and embeds the
// caller's user id into the request context.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logger.New()
			userID, ok := bearerUserID(r, jwtSecret)
			if !ok {
				logger.Error().Msg("Missing or invalid authorization header")
				http.Error(w, "Unauthorized: missing or invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), UserContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware embeds the caller's user id when a valid bearer
// token is present and lets the request through anonymously otherwise. Used
// on public subtrees whose responses are shaped by the viewer's identity.
func OptionalAuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := bearerUserID(r, jwtSecret); ok {
				r = r.WithContext(context.WithValue(r.Context(), UserContextKey, userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerUserID(r *http.Request, jwtSecret string) (int64, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}
	claims, err := util.ValidateJWT(parts[1], jwtSecret)
	if err != nil {
		return 0, false
	}
	userID, err := util.UserIDFromClaims(claims)
	if err != nil {
		return 0, false
	}
	return userID, true
}
