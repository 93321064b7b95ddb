package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stored instants keep millisecond precision so equality survives a round trip
// through the store and through JSON clients.
const showtimePrecision = time.Millisecond

func parseShowtime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse showtime %q: %w", s, err)
	}
	return normalizeInstant(t), nil
}

func parseShowtimes(values []string) ([]time.Time, error) {
	showtimes := make([]time.Time, 0, len(values))
	for _, v := range values {
		t, err := parseShowtime(v)
		if err != nil {
			return nil, err
		}
		showtimes = append(showtimes, t)
	}
	return showtimes, nil
}

func normalizeInstant(t time.Time) time.Time {
	return t.UTC().Truncate(showtimePrecision)
}

// parseID treats a malformed id like an id with no record.
func parseID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
