package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/chorehub/chorehub/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// UsernameKey is the context key for the authenticated username.
	UsernameKey contextKey = "username"

	identityRecorderKey contextKey = "identity_recorder"
)

// identityRecorder carries the authenticated identity back out to
// middleware that wrapped the chain before authentication ran. The mux
// dispatches on a derived request, so context values set by RequireAuth
// are invisible to outer middleware; the shared recorder is not.
type identityRecorder struct {
	userID string
}

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetUsername extracts the username from the context.
// Returns empty string if not found.
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(UsernameKey).(string)
	return username
}

// WithUser returns a context carrying the authenticated identity.
// Exposed so tests can call handlers and services as a known user.
func WithUser(ctx context.Context, userID, username string) context.Context {
	if rec, ok := ctx.Value(identityRecorderKey).(*identityRecorder); ok {
		rec.userID = userID
	}
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, UsernameKey, username)
}

// bearerToken pulls the token out of an Authorization header.
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

// RequireAuth returns middleware that validates JWT bearer tokens and
// rejects unauthenticated requests. On success the user ID and
// username are added to the request context.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Validate(token)
			if err != nil {
				http.Error(w, auth.ErrInvalidToken.Error(), http.StatusUnauthorized)
				return
			}

			ctx := WithUser(r.Context(), claims.UserID, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that attaches the identity when a
// valid token is present but lets unauthenticated requests through.
// Useful for endpoints with different behavior for signed-in users.
func OptionalAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, err := bearerToken(r); err == nil {
				if claims, err := jwtManager.Validate(token); err == nil {
					r = r.WithContext(WithUser(r.Context(), claims.UserID, claims.Username))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
