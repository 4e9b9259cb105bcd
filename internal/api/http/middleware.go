package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/logger"
	"roomledger-backend/internal/security"
)

type contextKey string

const actorKey contextKey = "actor"

// AuthMiddleware validates the Bearer token and stores the actor in the
// request context. Every route behind it sees a valid actor.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, domain.NewUnauthorized("missing bearer token"))
				return
			}
			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, domain.NewUnauthorized("invalid or expired token"))
				return
			}
			actor := domain.Actor{ID: claims.UserID, Role: domain.Role(claims.Role)}
			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// actorFrom returns the actor stored by AuthMiddleware. The zero actor is
// returned for unauthenticated routes; handlers behind the middleware can
// rely on it being set.
func actorFrom(r *http.Request) domain.Actor {
	actor, _ := r.Context().Value(actorKey).(domain.Actor)
	return actor
}

// LoggingMiddleware logs one line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
