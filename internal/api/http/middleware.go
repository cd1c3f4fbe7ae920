package http

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/pkg/cache"
	"equiprent-backend/internal/security"
)

// TokenVerifier abstracts the identity provider. The local JWT manager and
// the Firebase verifier both satisfy it.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*security.UserClaims, error)
}

// LocalVerifier adapts the JWT token manager to the TokenVerifier contract.
// Only access tokens authenticate requests.
type LocalVerifier struct {
	Tokens security.TokenManager
}

func (v LocalVerifier) Verify(_ context.Context, token string) (*security.UserClaims, error) {
	claims, err := v.Tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Type != security.TokenTypeAccess {
		return nil, security.ErrInvalidToken
	}
	return claims, nil
}

// Authenticate rejects requests without a valid bearer token and attaches
// the verified claims to the request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing bearer token",
				})
				return
			}
			claims, err := verifier.Verify(r.Context(), strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole guards a route behind a role claim.
func RequireRole(role domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil || claims.Role != string(role) {
				writeJSON(w, http.StatusForbidden, errorResponse{
					Code:    http.StatusForbidden,
					Message: "insufficient permissions",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter caps requests per client IP using a counter with a rolling
// window in the cache backend. The increment is a single atomic operation,
// so concurrent requests cannot slip past the limit between a read and a
// write; the first increment of a window arms the expiry.
func RateLimiter(client cache.Client, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip
			ctx := r.Context()

			count, err := client.Incr(ctx, key)
			if err != nil {
				// The limiter never takes the API down with it.
				logger.Warn("rate limiter unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				if err := client.Expire(ctx, key, window); err != nil {
					logger.Warn("rate limiter expiry failed", "error", err)
				}
			}

			if count > int64(limit) {
				writeJSON(w, http.StatusTooManyRequests, errorResponse{
					Code:    http.StatusTooManyRequests,
					Message: "rate limit exceeded",
				})
				return
			}

			remaining := limit - int(count)
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs every request with its status and duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.HTTPRequest(r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
