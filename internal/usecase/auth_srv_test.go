package usecase_test

import (
	"testing"

	"movie-ticket/internal/data/entity"
	"movie-ticket/internal/dto/request"
	"movie-ticket/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	f := setup(t)

	registered, err := f.service.Auth.Register(f.ctx, &request.RegisterRequest{
		Name:     "Dana",
		Email:    "  Dana@Example.com ",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "dana@example.com", registered.User.Email)
	assert.Equal(t, entity.RoleUser, registered.User.Role)

	t.Run("token authenticates the new user", func(t *testing.T) {
		principal, err := f.service.Gate.Authenticate(f.ctx, registered.Token)
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, principal.ID.String())
	})

	t.Run("password is stored hashed", func(t *testing.T) {
		stored, err := f.repo.User.FindByEmail(f.ctx, "dana@example.com")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.NotEqual(t, "secret1", stored.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := f.service.Auth.Register(f.ctx, &request.RegisterRequest{Name: "D2", Email: "dana@example.com", Password: "secret2"})
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	})

	t.Run("invalid fields", func(t *testing.T) {
		_, err := f.service.Auth.Register(f.ctx, &request.RegisterRequest{Name: "E", Email: "nope", Password: "secret1"})
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)

		_, err = f.service.Auth.Register(f.ctx, &request.RegisterRequest{Name: "E", Email: "e@example.com", Password: "123"})
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	})

	t.Run("login", func(t *testing.T) {
		resp, err := f.service.Auth.Login(f.ctx, &request.LoginRequest{Email: "DANA@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, resp.User.ID)
	})

	t.Run("wrong password or unknown email", func(t *testing.T) {
		_, err := f.service.Auth.Login(f.ctx, &request.LoginRequest{Email: "dana@example.com", Password: "wrong!"})
		assert.ErrorIs(t, err, usecase.ErrUnauthenticated)

		_, err = f.service.Auth.Login(f.ctx, &request.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, usecase.ErrUnauthenticated)
	})

	t.Run("me", func(t *testing.T) {
		principal, err := f.service.Gate.Authenticate(f.ctx, registered.Token)
		require.NoError(t, err)

		me, err := f.service.Auth.Me(f.ctx, principal)
		require.NoError(t, err)
		assert.Equal(t, "Dana", me.Name)
	})
}

func TestSeedAdmin(t *testing.T) {
	f := setup(t)

	created, err := f.service.Auth.SeedAdmin(f.ctx, "Root", "root@movieticket.com", "rootpass")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.service.Auth.SeedAdmin(f.ctx, "Root", "ROOT@movieticket.com", "other")
	require.NoError(t, err)
	assert.False(t, created)

	resp, err := f.service.Auth.Login(f.ctx, &request.LoginRequest{Email: "root@movieticket.com", Password: "rootpass"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.User.Role)

	_, err = f.service.Auth.SeedAdmin(f.ctx, "Root", "", "x")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}
