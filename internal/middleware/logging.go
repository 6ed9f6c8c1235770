package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging returns middleware that logs every request with its method,
// path, authenticated user (if any), status and duration.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		ident := &identityRecorder{}
		r = r.WithContext(context.WithValue(r.Context(), identityRecorderKey, ident))

		next.ServeHTTP(rec, r)

		duration := time.Since(start).Milliseconds()
		userID := ident.userID // empty on unauthenticated routes
		if rec.status >= http.StatusBadRequest {
			slog.Warn("Request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"user_id", userID,
				"duration_ms", duration,
			)
		} else {
			slog.Info("Request ok",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"user_id", userID,
				"duration_ms", duration,
			)
		}
	})
}
