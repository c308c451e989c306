package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"resourcehub-backend/internal/logger"
	"resourcehub-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "user_claims"

// authMiddleware verifies the Bearer access token and stashes the claims
// in the request context.
func authMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "missing or malformed Authorization header", "unauthorized")
				return
			}
			claims, err := tokens.VerifyToken(strings.TrimPrefix(header, "Bearer "), security.TokenTypeAccess)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// callerID extracts the authenticated user's ID. Routes behind
// authMiddleware can rely on the claims being present.
func callerID(r *http.Request) int32 {
	claims, _ := r.Context().Value(claimsKey).(*security.UserClaims)
	if claims == nil {
		return 0
	}
	return claims.UserID
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
