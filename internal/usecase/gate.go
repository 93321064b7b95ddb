package usecase

import (
	"context"
	"fmt"

	"movie-ticket/internal/data/entity"
	"movie-ticket/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenVerifier decodes a bearer credential into the user id it was issued for.
type TokenVerifier interface {
	Verify(raw string) (uuid.UUID, error)
}

// Gate authenticates bearer credentials and authorizes actions on resources.
// Every Authorize* check requires a principal previously resolved by Authenticate.
type Gate struct {
	users  repository.UserRepository
	tokens TokenVerifier
	log    *zap.Logger
}

func NewGate(users repository.UserRepository, tokens TokenVerifier, log *zap.Logger) *Gate {
	return &Gate{
		users:  users,
		tokens: tokens,
		log:    log.With(zap.String("service", "gate")),
	}
}

// Authenticate resolves credential to the current stored user. The role is read
// from the user record, so a demoted admin loses access immediately.
func (g *Gate) Authenticate(ctx context.Context, credential string) (entity.Principal, error) {
	if credential == "" {
		return entity.Principal{}, unauthenticated("Not authorized, no token")
	}

	userID, err := g.tokens.Verify(credential)
	if err != nil {
		g.log.Debug("Token verification failed", zap.Error(err))
		return entity.Principal{}, unauthenticated("Not authorized, token failed")
	}

	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		return entity.Principal{}, fmt.Errorf("load principal %s: %w", userID, err)
	}
	if user == nil {
		g.log.Warn("Token subject no longer exists", zap.String("user_id", userID.String()))
		return entity.Principal{}, unauthenticated("Not authorized, user not found")
	}

	return user.Principal(), nil
}

// AuthorizeAdmin permits only admin principals.
func (g *Gate) AuthorizeAdmin(principal entity.Principal) error {
	if !resolved(principal) {
		return unauthenticated("Authentication required")
	}
	if principal.IsAdmin() {
		return nil
	}

	g.log.Warn("Admin access denied", zap.String("user_id", principal.ID.String()))
	return forbidden("Admin access required")
}

// AuthorizeOwnerOrAdmin permits the owner identified by ownerID, or any admin.
func (g *Gate) AuthorizeOwnerOrAdmin(principal entity.Principal, ownerID uuid.UUID) error {
	if !resolved(principal) {
		return unauthenticated("Authentication required")
	}
	if principal.IsAdmin() || principal.ID == ownerID {
		return nil
	}

	g.log.Warn("Ownership check denied",
		zap.String("user_id", principal.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)
	return forbidden("Access denied")
}

func resolved(p entity.Principal) bool {
	return p.ID != uuid.Nil && (p.Role == entity.RoleUser || p.Role == entity.RoleAdmin)
}
