package wire

import (
	"movie-ticket/internal/adaptor"
	"movie-ticket/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	gate middleware.Gate,
	log *zap.Logger,
) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.Authenticate(gate, log))

		r.With(middleware.Admin(gate, log)).Get("/", userHandler.GetAllUsers)
		r.Get("/{id}", userHandler.GetUserByID)
	})
}
