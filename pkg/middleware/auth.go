package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"movie-ticket/internal/data/entity"
	"movie-ticket/internal/usecase"
	"movie-ticket/pkg/utils"

	"go.uber.org/zap"
)

// Gate is the access-control surface the middleware needs.
type Gate interface {
	Authenticate(ctx context.Context, credential string) (entity.Principal, error)
	AuthorizeAdmin(principal entity.Principal) error
}

// BearerToken extracts the credential from an "Authorization: Bearer <token>" header.
// It returns "" when the header is absent or malformed.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticate resolves the bearer credential into a principal stored on the request context.
func Authenticate(gate Gate, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := gate.Authenticate(r.Context(), BearerToken(r))
			if err != nil {
				writeGateError(w, logger, r, err)
				return
			}

			ctx := utils.SetPrincipalContext(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin requires the principal set by Authenticate to be an administrator.
func Admin(gate Gate, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, _ := utils.GetPrincipalFromContext(r.Context())

			if err := gate.AuthorizeAdmin(principal); err != nil {
				writeGateError(w, logger, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeGateError(w http.ResponseWriter, logger *zap.Logger, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, err.Error())
	case errors.Is(err, usecase.ErrForbidden):
		logger.Warn("Forbidden request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		utils.ResponseForbidden(w, err.Error())
	default:
		logger.Error("Access check failed", zap.Error(err), zap.String("path", r.URL.Path))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
