package http

import (
	"context"

	"equiprent-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "user_claims"

// ContextWithClaims attaches verified claims to the request context.
func ContextWithClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext returns the verified claims, or nil on unauthenticated
// requests.
func ClaimsFromContext(ctx context.Context) *security.UserClaims {
	claims, _ := ctx.Value(claimsContextKey).(*security.UserClaims)
	return claims
}

// ActorFromContext returns an audit identity for the request: the email when
// present, otherwise the user id.
func ActorFromContext(ctx context.Context) string {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return ""
	}
	if claims.Email != "" {
		return claims.Email
	}
	return claims.UserID
}
