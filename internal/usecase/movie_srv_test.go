package usecase_test

import (
	"context"
	"testing"
	"time"

	"movie-ticket/internal/data/entity"
	"movie-ticket/internal/data/repository"
	"movie-ticket/internal/dto/request"
	"movie-ticket/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMovie(t *testing.T) {
	f := setup(t)

	t.Run("admin creates a movie", func(t *testing.T) {
		movie, err := f.service.Movie.CreateMovie(f.ctx, f.admin, &request.MovieRequest{
			Title:       "  Dune ",
			Description: ptr("Spice"),
			Showtimes:   []string{"2025-01-01T20:00:00+02:00"},
			Price:       ptr(12.0),
		})
		require.NoError(t, err)

		assert.Equal(t, "Dune", movie.Title)
		assert.Equal(t, 12.0, movie.Price)
		require.Len(t, movie.Showtimes, 1)
		assert.True(t, movie.Showtimes[0].Equal(time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC)))

		got, err := f.service.Movie.GetMovieByID(f.ctx, movie.ID)
		require.NoError(t, err)
		assert.Equal(t, movie, got)
	})

	t.Run("non-admin is forbidden and nothing is stored", func(t *testing.T) {
		before := f.store.MovieCount()

		_, err := f.service.Movie.CreateMovie(f.ctx, f.alice, &request.MovieRequest{Title: "X", Price: ptr(1.0)})
		assert.ErrorIs(t, err, usecase.ErrForbidden)
		assert.Equal(t, before, f.store.MovieCount())
	})

	t.Run("forbidden wins over invalid input", func(t *testing.T) {
		_, err := f.service.Movie.CreateMovie(f.ctx, f.alice, &request.MovieRequest{})
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("missing title or price", func(t *testing.T) {
		_, err := f.service.Movie.CreateMovie(f.ctx, f.admin, &request.MovieRequest{Price: ptr(1.0)})
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)

		_, err = f.service.Movie.CreateMovie(f.ctx, f.admin, &request.MovieRequest{Title: "   ", Price: ptr(1.0)})
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)

		_, err = f.service.Movie.CreateMovie(f.ctx, f.admin, &request.MovieRequest{Title: "No price"})
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := f.service.Movie.CreateMovie(f.ctx, f.admin, &request.MovieRequest{Title: "Cheap", Price: ptr(-1.0)})
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	})

	t.Run("zero price and no showtimes are valid", func(t *testing.T) {
		movie, err := f.service.Movie.CreateMovie(f.ctx, f.admin, &request.MovieRequest{Title: "Free", Price: ptr(0.0)})
		require.NoError(t, err)
		assert.Equal(t, 0.0, movie.Price)
		assert.NotNil(t, movie.Showtimes)
		assert.Empty(t, movie.Showtimes)
	})

	t.Run("malformed showtime", func(t *testing.T) {
		_, err := f.service.Movie.CreateMovie(f.ctx, f.admin, &request.MovieRequest{
			Title:     "Bad",
			Price:     ptr(1.0),
			Showtimes: []string{"tomorrow evening"},
		})
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	})
}

func TestGetMovies(t *testing.T) {
	f := setup(t)

	movies, err := f.service.Movie.GetMovies(f.ctx)
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)

	first := f.createDune(t)
	time.Sleep(2 * time.Millisecond)
	second, err := f.service.Movie.CreateMovie(f.ctx, f.admin, &request.MovieRequest{Title: "Arrival", Price: ptr(9.5)})
	require.NoError(t, err)

	movies, err = f.service.Movie.GetMovies(f.ctx)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, second.ID, movies[0].ID)
	assert.Equal(t, first, movies[1].ID)
}

func TestGetMovieByID(t *testing.T) {
	f := setup(t)

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.service.Movie.GetMovieByID(f.ctx, uuid.NewString())
		assert.ErrorIs(t, err, usecase.ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := f.service.Movie.GetMovieByID(f.ctx, "12345")
		assert.ErrorIs(t, err, usecase.ErrNotFound)
	})
}

func TestUpdateMovie(t *testing.T) {
	f := setup(t)
	id := f.createDune(t)

	t.Run("only supplied fields change", func(t *testing.T) {
		movie, err := f.service.Movie.UpdateMovie(f.ctx, f.admin, id, &request.MovieUpdateRequest{Price: ptr(15.0)})
		require.NoError(t, err)
		assert.Equal(t, "Dune", movie.Title)
		assert.Equal(t, 15.0, movie.Price)
		assert.Len(t, movie.Showtimes, 1)
	})

	t.Run("zero price and empty showtimes are real updates", func(t *testing.T) {
		movie, err := f.service.Movie.UpdateMovie(f.ctx, f.admin, id, &request.MovieUpdateRequest{
			Price:     ptr(0.0),
			Showtimes: &[]string{},
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, movie.Price)
		assert.Empty(t, movie.Showtimes)

		stored, err := f.service.Movie.GetMovieByID(f.ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 0.0, stored.Price)
	})

	t.Run("non-admin", func(t *testing.T) {
		_, err := f.service.Movie.UpdateMovie(f.ctx, f.bob, id, &request.MovieUpdateRequest{Title: ptr("Hacked")})
		assert.ErrorIs(t, err, usecase.ErrForbidden)

		stored, err := f.service.Movie.GetMovieByID(f.ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Dune", stored.Title)
	})

	t.Run("unknown movie", func(t *testing.T) {
		_, err := f.service.Movie.UpdateMovie(f.ctx, f.admin, uuid.NewString(), &request.MovieUpdateRequest{Title: ptr("Ghost")})
		assert.ErrorIs(t, err, usecase.ErrNotFound)
	})

	t.Run("invalid fields", func(t *testing.T) {
		_, err := f.service.Movie.UpdateMovie(f.ctx, f.admin, id, &request.MovieUpdateRequest{Price: ptr(-3.0)})
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)

		_, err = f.service.Movie.UpdateMovie(f.ctx, f.admin, id, &request.MovieUpdateRequest{Title: ptr("")})
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)

		_, err = f.service.Movie.UpdateMovie(f.ctx, f.admin, id, &request.MovieUpdateRequest{Showtimes: &[]string{"soon"}})
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	})
}

// vanishingMovies deletes the row just before the write, as a concurrent
// DELETE landing between the lookup and the update would.
type vanishingMovies struct {
	repository.MovieRepository
}

func (v vanishingMovies) Update(ctx context.Context, movie *entity.Movie) (bool, error) {
	if _, err := v.MovieRepository.Delete(ctx, movie.ID); err != nil {
		return false, err
	}
	return v.MovieRepository.Update(ctx, movie)
}

func TestUpdateMovieDeletedConcurrently(t *testing.T) {
	f := setup(t)
	id := f.createDune(t)
	f.repo.Movie = vanishingMovies{f.repo.Movie}

	_, err := f.service.Movie.UpdateMovie(f.ctx, f.admin, id, &request.MovieUpdateRequest{Price: ptr(15.0)})
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	assert.Equal(t, 0, f.store.MovieCount())
}

func TestDeleteMovie(t *testing.T) {
	f := setup(t)
	id := f.createDune(t)

	err := f.service.Movie.DeleteMovie(f.ctx, f.alice, id)
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	require.NoError(t, f.service.Movie.DeleteMovie(f.ctx, f.admin, id))

	_, err = f.service.Movie.GetMovieByID(f.ctx, id)
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	err = f.service.Movie.DeleteMovie(f.ctx, f.admin, id)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}
