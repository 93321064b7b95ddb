package request

type MovieRequest struct {
	Title       string   `json:"title" validate:"required,notblank,max=200"`
	Poster      *string  `json:"poster,omitempty"`
	Description *string  `json:"description,omitempty"`
	Showtimes   []string `json:"showtimes,omitempty"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
}

// MovieUpdateRequest uses pointers so that a field supplied as an empty or
// zero value is distinguishable from one that was not supplied at all.
type MovieUpdateRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,notblank,max=200"`
	Poster      *string   `json:"poster,omitempty"`
	Description *string   `json:"description,omitempty"`
	Showtimes   *[]string `json:"showtimes,omitempty"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
}
