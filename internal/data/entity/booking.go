package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus converts the stored textual status back into a BookingStatus.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(s); status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("unknown booking status %q", s)
	}
}

type Booking struct {
	Base
	UserID   uuid.UUID     `db:"user_id"`
	MovieID  uuid.UUID     `db:"movie_id"`
	Showtime time.Time     `db:"showtime"`
	Seats    []string      `db:"seats"`
	Amount   float64       `db:"amount"`
	Status   BookingStatus `db:"status"`
}
