package request

type CreateBookingRequest struct {
	Movie    string   `json:"movie" validate:"required"`
	Showtime string   `json:"showtime" validate:"required"`
	Seats    []string `json:"seats" validate:"required,min=1,dive,notblank"`
	Amount   *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
}
