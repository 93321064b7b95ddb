package utils

import (
	"context"

	"movie-ticket/internal/data/entity"
)

type contextKey string

const principalKey contextKey = "principal"

// SetPrincipalContext attaches the authenticated principal to ctx.
func SetPrincipalContext(ctx context.Context, principal entity.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// GetPrincipalFromContext returns the principal set by the auth middleware.
func GetPrincipalFromContext(ctx context.Context) (entity.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(entity.Principal)
	return principal, ok
}
