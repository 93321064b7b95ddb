package usecase_test

import (
	"context"
	"testing"
	"time"

	"movie-ticket/internal/data/entity"
	"movie-ticket/internal/data/repository"
	"movie-ticket/internal/data/repository/repotest"
	"movie-ticket/internal/dto/request"
	"movie-ticket/internal/usecase"
	"movie-ticket/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const duneShowtime = "2025-01-01T18:00:00Z"

type fixture struct {
	ctx     context.Context
	repo    *repository.Repository
	store   *repotest.Store
	tokens  *utils.TokenManager
	service *usecase.Service

	admin entity.Principal
	alice entity.Principal
	bob   entity.Principal
}

func setup(t *testing.T) *fixture {
	return setupWith(t, true)
}

func setupWith(t *testing.T, strictAmount bool) *fixture {
	t.Helper()

	repo, store := repotest.NewRepository()
	config := &utils.Config{
		Security: utils.SecurityConfig{BcryptCost: bcrypt.MinCost},
		Booking:  utils.BookingConfig{StrictAmount: strictAmount},
	}
	tokens := utils.NewTokenManager("test-secret", time.Hour)

	f := &fixture{
		ctx:     context.Background(),
		repo:    repo,
		store:   store,
		tokens:  tokens,
		service: usecase.NewService(repo, config, tokens, zap.NewNop()),
	}
	f.admin = f.addUser(t, "Admin", "admin@movieticket.com", entity.RoleAdmin)
	f.alice = f.addUser(t, "Alice", "alice@example.com", entity.RoleUser)
	f.bob = f.addUser(t, "Bob", "bob@example.com", entity.RoleUser)
	return f
}

func (f *fixture) addUser(t *testing.T, name, email string, role entity.Role) entity.Principal {
	t.Helper()

	now := time.Now().UTC()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         name,
		Email:        email,
		PasswordHash: "unused",
		Role:         role,
	}
	require.NoError(t, f.repo.User.Create(f.ctx, user))
	return user.Principal()
}

func (f *fixture) createDune(t *testing.T) string {
	t.Helper()

	price := 12.0
	movie, err := f.service.Movie.CreateMovie(f.ctx, f.admin, &request.MovieRequest{
		Title:     "Dune",
		Showtimes: []string{duneShowtime},
		Price:     &price,
	})
	require.NoError(t, err)
	return movie.ID
}

func ptr[T any](v T) *T {
	return &v
}
