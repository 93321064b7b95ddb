package wire

import (
	"movie-ticket/internal/adaptor"
	"movie-ticket/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	gate middleware.Gate,
	log *zap.Logger,
) {
	r.Route("/api/bookings", func(r chi.Router) {
		// every booking route requires authentication
		r.Use(middleware.Authenticate(gate, log))

		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/my", bookingHandler.GetMyBookings)
		r.With(middleware.Admin(gate, log)).Get("/all", bookingHandler.GetAllBookings)

		// ownership is checked by the service after the booking is found
		r.Get("/{id}", bookingHandler.GetBookingByID)
		r.Get("/{id}/qrcode", bookingHandler.GetBookingQRCode)
	})
}
