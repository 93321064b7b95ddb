package response

import (
	"time"

	"movie-ticket/internal/data/entity"
)

type MovieResponse struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Poster      *string     `json:"poster,omitempty"`
	Description *string     `json:"description,omitempty"`
	Showtimes   []time.Time `json:"showtimes"`
	Price       float64     `json:"price"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// MovieSummary is the expansion of a booking's movie.
type MovieSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Poster      *string `json:"poster,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	showtimes := movie.Showtimes
	if showtimes == nil {
		showtimes = []time.Time{}
	}

	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Poster:      movie.Poster,
		Description: movie.Description,
		Showtimes:   showtimes,
		Price:       movie.Price,
		CreatedAt:   movie.CreatedAt,
		UpdatedAt:   movie.UpdatedAt,
	}
}

func MovieToSummary(movie *entity.Movie) *MovieSummary {
	if movie == nil {
		return nil
	}
	return &MovieSummary{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Poster:      movie.Poster,
		Description: movie.Description,
	}
}
