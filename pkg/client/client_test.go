package client_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"movie-ticket/internal/data/repository/repotest"
	"movie-ticket/internal/dto/request"
	"movie-ticket/internal/dto/response"
	"movie-ticket/internal/wire"
	"movie-ticket/pkg/client"
	"movie-ticket/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func setup(t *testing.T) (*client.Client, *client.Session) {
	t.Helper()

	repo, _ := repotest.NewRepository()
	config := &utils.Config{
		App:      utils.AppConfig{CORSOrigin: "http://localhost:8080"},
		Security: utils.SecurityConfig{BcryptCost: bcrypt.MinCost},
		Booking:  utils.BookingConfig{StrictAmount: true},
	}
	app := wire.Wiring(repo, config, utils.NewTokenManager("test-secret", time.Hour), zap.NewNop())

	_, err := app.Service.Auth.SeedAdmin(t.Context(), "Admin", "admin@movieticket.com", "adminpass")
	require.NoError(t, err)

	server := httptest.NewServer(app.Router)
	t.Cleanup(server.Close)

	c := client.New(server.URL, client.WithHTTPClient(server.Client()))
	admin, err := c.Login(t.Context(), request.LoginRequest{Email: "admin@movieticket.com", Password: "adminpass"})
	require.NoError(t, err)
	return c, admin
}

func TestClientFlow(t *testing.T) {
	c, admin := setup(t)
	ctx := context.Background()

	price := 12.0
	movie, err := c.CreateMovie(ctx, admin, request.MovieRequest{
		Title:     "Dune",
		Showtimes: []string{"2025-01-01T18:00:00Z"},
		Price:     &price,
	})
	require.NoError(t, err)

	movies, err := c.ListMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)

	user, err := c.Signup(ctx, request.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, user.User())
	assert.Equal(t, "Alice", user.User().Name)

	booking, err := c.CreateBooking(ctx, user, request.CreateBookingRequest{
		Movie:    movie.ID,
		Showtime: "2025-01-01T18:00:00Z",
		Seats:    []string{"A1", "A2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 24.0, booking.Amount)

	mine, err := c.MyBookings(ctx, user)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	got, err := c.GetBooking(ctx, admin, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	t.Run("ticket qrcode", func(t *testing.T) {
		png, err := c.BookingQRCode(ctx, user, booking.ID)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

		_, err = c.BookingQRCode(ctx, user, "missing")
		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})

	t.Run("delete movie", func(t *testing.T) {
		extra, err := c.CreateMovie(ctx, admin, request.MovieRequest{Title: "Arrival", Price: &price})
		require.NoError(t, err)
		require.NoError(t, c.DeleteMovie(ctx, admin, extra.ID))
	})

	t.Run("forbidden keeps the session", func(t *testing.T) {
		_, err := c.AllBookings(ctx, user)
		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
		assert.False(t, errors.Is(err, client.ErrUnauthorized))
		assert.True(t, user.Active())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := c.GetMovie(ctx, "missing")
		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.NotEmpty(t, apiErr.Message)
	})

	t.Run("logout clears the credential", func(t *testing.T) {
		user.Clear()
		assert.False(t, user.Active())
		assert.Nil(t, user.User())

		_, err := c.MyBookings(ctx, user)
		assert.ErrorIs(t, err, client.ErrUnauthorized)
	})
}

func TestClientClearsSessionOn401(t *testing.T) {
	c, _ := setup(t)

	stale := client.NewSession("expired-or-forged", response.UserResponse{Name: "Ghost"})
	_, err := c.MyBookings(t.Context(), stale)
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, stale.Active())
}
