package entity

import (
	"time"
)

type Movie struct {
	Base
	Title       string      `db:"title"`
	Poster      *string     `db:"poster"`
	Description *string     `db:"description"`
	Showtimes   []time.Time `db:"showtimes"`
	Price       float64     `db:"price"`
}

// HasShowtime reports whether t matches one of the movie's showtimes by instant.
func (m *Movie) HasShowtime(t time.Time) bool {
	for _, st := range m.Showtimes {
		if st.Equal(t) {
			return true
		}
	}
	return false
}
