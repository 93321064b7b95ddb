package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"movie-ticket/internal/data/entity"
	"movie-ticket/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var bookingCols = []string{"id", "user_id", "movie_id", "showtime", "seats", "amount", "status", "created_at", "updated_at"}

func TestBookingRepositoryCreate(t *testing.T) {
	mock := setupMock(t)
	repo := repository.NewBookingRepository(mock, zap.NewNop())

	now := time.Now().UTC()
	booking := &entity.Booking{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:   uuid.New(),
		MovieID:  uuid.New(),
		Showtime: time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC),
		Seats:    []string{"A1", "A2"},
		Amount:   24,
		Status:   entity.BookingStatusConfirmed,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(booking.ID, booking.UserID, booking.MovieID, booking.Showtime,
			[]string{"A1", "A2"}, 24.0, "confirmed", now, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), booking))
}

func TestBookingRepositoryFindByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock := setupMock(t)
		repo := repository.NewBookingRepository(mock, zap.NewNop())

		jakarta := time.FixedZone("WIB", 7*3600)
		showtime := time.Date(2025, 1, 2, 1, 0, 0, 0, jakarta)
		mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows(bookingCols).
				AddRow(id, uuid.New(), uuid.New(), showtime, []string{"B4"}, 12.0, "confirmed", now, now))

		booking, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, booking)
		assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)
		assert.Equal(t, []string{"B4"}, booking.Seats)
		assert.Equal(t, time.UTC, booking.Showtime.Location())
		assert.True(t, booking.Showtime.Equal(showtime))
	})

	t.Run("missing", func(t *testing.T) {
		mock := setupMock(t)
		repo := repository.NewBookingRepository(mock, zap.NewNop())

		mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		booking, err := repo.FindByID(ctx, id)
		assert.NoError(t, err)
		assert.Nil(t, booking)
	})

	t.Run("unknown status", func(t *testing.T) {
		mock := setupMock(t)
		repo := repository.NewBookingRepository(mock, zap.NewNop())

		mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows(bookingCols).
				AddRow(id, uuid.New(), uuid.New(), now, []string{"B4"}, 12.0, "refunded", now, now))

		booking, err := repo.FindByID(ctx, id)
		assert.Error(t, err)
		assert.Nil(t, booking)
	})
}

func TestBookingRepositoryListings(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	older := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	first, second := uuid.New(), uuid.New()

	rows := func() *pgxmock.Rows {
		return pgxmock.NewRows(bookingCols).
			AddRow(first, userID, uuid.New(), newer, []string{"A1"}, 12.0, "confirmed", newer, newer).
			AddRow(second, userID, uuid.New(), older, []string{"A2"}, 12.0, "pending", older, older)
	}

	t.Run("by user newest first", func(t *testing.T) {
		mock := setupMock(t)
		repo := repository.NewBookingRepository(mock, zap.NewNop())

		mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE user_id = $1 ORDER BY created_at DESC, id DESC")).
			WithArgs(userID).
			WillReturnRows(rows())

		bookings, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, bookings, 2)
		assert.Equal(t, first, bookings[0].ID)
		assert.Equal(t, second, bookings[1].ID)
		assert.Equal(t, entity.BookingStatusPending, bookings[1].Status)
	})

	t.Run("all newest first", func(t *testing.T) {
		mock := setupMock(t)
		repo := repository.NewBookingRepository(mock, zap.NewNop())

		mock.ExpectQuery(regexp.QuoteMeta("FROM bookings ORDER BY created_at DESC, id DESC")).
			WillReturnRows(rows())

		bookings, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, bookings, 2)
		assert.Equal(t, first, bookings[0].ID)
	})

	t.Run("no bookings", func(t *testing.T) {
		mock := setupMock(t)
		repo := repository.NewBookingRepository(mock, zap.NewNop())

		mock.ExpectQuery(regexp.QuoteMeta("FROM bookings ORDER BY created_at DESC, id DESC")).
			WillReturnRows(pgxmock.NewRows(bookingCols))

		bookings, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, bookings)
	})
}
