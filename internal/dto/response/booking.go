package response

import (
	"time"

	"movie-ticket/internal/data/entity"
)

// BookingResponse carries the owner and movie expanded inline. MovieID and
// UserID stay available when the referenced record no longer exists.
type BookingResponse struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	User      *UserSummary         `json:"user"`
	MovieID   string               `json:"movie_id"`
	Movie     *MovieSummary        `json:"movie"`
	Showtime  time.Time            `json:"showtime"`
	Seats     []string             `json:"seats"`
	Amount    float64              `json:"amount"`
	Status    entity.BookingStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking, user *UserSummary, movie *MovieSummary) BookingResponse {
	return BookingResponse{
		ID:        booking.ID.String(),
		UserID:    booking.UserID.String(),
		User:      user,
		MovieID:   booking.MovieID.String(),
		Movie:     movie,
		Showtime:  booking.Showtime,
		Seats:     booking.Seats,
		Amount:    booking.Amount,
		Status:    booking.Status,
		CreatedAt: booking.CreatedAt,
	}
}
