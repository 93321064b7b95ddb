package usecase

import (
	"context"
	"fmt"

	"movie-ticket/internal/data/entity"
	"movie-ticket/internal/data/repository"
	"movie-ticket/internal/dto/response"

	"go.uber.org/zap"
)

type UserService interface {
	GetAllUsers(ctx context.Context, principal entity.Principal) ([]response.UserResponse, error)
	GetUserByID(ctx context.Context, principal entity.Principal, userID string) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	gate     *Gate
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, gate *Gate, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		gate:     gate,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetAllUsers(ctx context.Context, principal entity.Principal) ([]response.UserResponse, error) {
	if err := us.gate.AuthorizeAdmin(principal); err != nil {
		return nil, err
	}

	users, err := us.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	us.log.Info("Users retrieved", zap.Int("count", len(users)))
	return userResponses, nil
}

// GetUserByID resolves the record first, so an unknown id is NotFound even for
// a caller who could not have read it.
func (us *userService) GetUserByID(ctx context.Context, principal entity.Principal, userID string) (*response.UserResponse, error) {
	if !resolved(principal) {
		return nil, unauthenticated("Authentication required")
	}

	id, ok := parseID(userID)
	if !ok {
		return nil, notFound("User not found")
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	if user == nil {
		return nil, notFound("User not found")
	}

	if err := us.gate.AuthorizeOwnerOrAdmin(principal, user.ID); err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}
