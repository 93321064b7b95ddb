package wire

import (
	"movie-ticket/internal/adaptor"
	"movie-ticket/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	gate middleware.Gate,
	log *zap.Logger,
) {
	r.Route("/api/movies", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", movieHandler.GetMovies)
		r.Get("/{id}", movieHandler.GetMovieByID)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(gate, log)) // Must be authenticated
			r.Use(middleware.Admin(gate, log))        // Must be admin

			r.Post("/", movieHandler.CreateMovie)
			r.Put("/{id}", movieHandler.UpdateMovie)
			r.Delete("/{id}", movieHandler.DeleteMovie)
		})
	})
}
