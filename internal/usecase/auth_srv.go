package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-ticket/internal/data/entity"
	"movie-ticket/internal/data/repository"
	"movie-ticket/internal/dto/request"
	"movie-ticket/internal/dto/response"
	"movie-ticket/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenIssuer signs a bearer credential for a user.
type TokenIssuer interface {
	Issue(userID uuid.UUID, role string) (string, time.Time, error)
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Me(ctx context.Context, principal entity.Principal) (*response.UserResponse, error)
	SeedAdmin(ctx context.Context, name, email, password string) (bool, error)
}

type authService struct {
	repo       *repository.Repository
	tokens     TokenIssuer
	bcryptCost int
	log        *zap.Logger
	now        func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	tokens TokenIssuer,
	bcryptCost int,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        log.With(zap.String("service", "auth")),
		now:        time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, invalidInput("Validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Check email is not taken
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existingUser != nil {
		return nil, invalidInput("Email already registered")
	}

	// 3. Create the user; self-registration never grants admin
	user, err := s.createUser(ctx, req.Name, req.Email, req.Password, entity.RoleUser)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, invalidInput("Email already registered")
		}
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, invalidInput("Validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("email", req.Email))
		return nil, unauthenticated("Invalid email or password")
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

func (s *authService) Me(ctx context.Context, principal entity.Principal) (*response.UserResponse, error) {
	if !resolved(principal) {
		return nil, unauthenticated("Authentication required")
	}

	user, err := s.repo.User.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, notFound("User not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// SeedAdmin creates the administrator account unless a user with email exists.
// It reports whether a user was created.
func (s *authService) SeedAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, invalidInput("Admin email and password are required")
	}

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("check admin email: %w", err)
	}
	if existing != nil {
		s.log.Info("Admin user already exists", zap.String("email", email))
		return false, nil
	}

	user, err := s.createUser(ctx, strings.TrimSpace(name), email, password, entity.RoleAdmin)
	if err != nil {
		return false, err
	}

	s.log.Info("Admin user created",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)
	return true, nil
}

func (s *authService) createUser(ctx context.Context, name, email, password string, role entity.Role) (*entity.User, error) {
	hashedPassword, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *authService) issue(user *entity.User) (*response.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &response.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      response.UserToResponse(user),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
