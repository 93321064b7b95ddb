package usecase

import (
	"movie-ticket/internal/data/repository"
	"movie-ticket/pkg/utils"

	"go.uber.org/zap"
)

// Tokens issues credentials at login and verifies them on every request.
type Tokens interface {
	TokenIssuer
	TokenVerifier
}

type Service struct {
	Gate    *Gate
	Auth    AuthService
	User    UserService
	Movie   MovieService
	Booking BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, tokens Tokens, log *zap.Logger) *Service {
	gate := NewGate(repo.User, tokens, log)

	return &Service{
		Gate:    gate,
		Auth:    NewAuthService(repo, tokens, config.Security.BcryptCost, log),
		User:    NewUserService(repo.User, gate, log),
		Movie:   NewMovieService(repo, gate, log),
		Booking: NewBookingService(repo, gate, BookingOptions{StrictAmount: config.Booking.StrictAmount}, log),
	}
}
