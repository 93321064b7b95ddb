package usecase

import (
	"context"
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

type MovieService interface {
	GetMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, principal entity.Principal, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, principal entity.Principal, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, principal entity.Principal, movieID string) error
}

type movieService struct {
	repo *repository.Repository
	gate *Gate
	log  *zap.Logger
	now  func() time.Time
}

func NewMovieService(repo *repository.Repository, gate *Gate, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		gate: gate,
		log:  log.With(zap.String("service", "movie")),
		now:  time.Now,
	}
}

func (s *movieService) GetMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	s.log.Debug("Movies retrieved", zap.Int("count", len(movies)))
	return movieResponses, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, principal entity.Principal, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := s.gate.AuthorizeAdmin(principal); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, invalidInput("Validation failed: %s", utils.FormatValidationErrors(errs))
	}

	showtimes, err := parseShowtimes(req.Showtimes)
	if err != nil {
		return nil, invalidInput("Invalid showtime: showtimes must be RFC 3339 timestamps")
	}

	now := s.now().UTC()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       strings.TrimSpace(req.Title),
		Poster:      trimmed(req.Poster),
		Description: trimmed(req.Description),
		Showtimes:   showtimes,
		Price:       *req.Price,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
		zap.String("admin_id", principal.ID.String()),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, principal entity.Principal, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if err := s.gate.AuthorizeAdmin(principal); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, invalidInput("Validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, invalidInput("Validation failed: title must not be blank")
	}

	var showtimes []time.Time
	if req.Showtimes != nil {
		parsed, err := parseShowtimes(*req.Showtimes)
		if err != nil {
			return nil, invalidInput("Invalid showtime: showtimes must be RFC 3339 timestamps")
		}
		showtimes = parsed
	}

	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	// Presence, not truthiness: an empty poster or a zero price is a real update.
	if req.Title != nil {
		movie.Title = strings.TrimSpace(*req.Title)
	}
	if req.Poster != nil {
		movie.Poster = trimmed(req.Poster)
	}
	if req.Description != nil {
		movie.Description = trimmed(req.Description)
	}
	if req.Price != nil {
		movie.Price = *req.Price
	}
	if req.Showtimes != nil {
		movie.Showtimes = showtimes
	}
	movie.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Movie.Update(ctx, movie)
	if err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}
	if !updated {
		return nil, notFound("Movie not found")
	}

	s.log.Info("Movie updated",
		zap.String("movie_id", movie.ID.String()),
		zap.String("admin_id", principal.ID.String()),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, principal entity.Principal, movieID string) error {
	if err := s.gate.AuthorizeAdmin(principal); err != nil {
		return err
	}

	id, ok := parseID(movieID)
	if !ok {
		return notFound("Movie not found")
	}

	deleted, err := s.repo.Movie.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if !deleted {
		return notFound("Movie not found")
	}

	s.log.Info("Movie deleted",
		zap.String("movie_id", movieID),
		zap.String("admin_id", principal.ID.String()),
	)
	return nil
}

func (s *movieService) findMovie(ctx context.Context, movieID string) (*entity.Movie, error) {
	id, ok := parseID(movieID)
	if !ok {
		return nil, notFound("Movie not found")
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	if movie == nil {
		return nil, notFound("Movie not found")
	}

	return movie, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
