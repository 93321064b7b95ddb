package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"movie-ticket/internal/data/entity"
	"movie-ticket/internal/data/repository"
	"movie-ticket/internal/dto/request"
	"movie-ticket/internal/dto/response"
	"movie-ticket/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// amountTolerance absorbs float rounding when comparing a supplied amount to seats x price.
const amountTolerance = 0.005

type BookingService interface {
	CreateBooking(ctx context.Context, principal entity.Principal, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetMyBookings(ctx context.Context, principal entity.Principal) ([]response.BookingResponse, error)
	GetAllBookings(ctx context.Context, principal entity.Principal) ([]response.BookingResponse, error)
	GetBookingByID(ctx context.Context, principal entity.Principal, bookingID string) (*response.BookingResponse, error)
	GetBookingQRCode(ctx context.Context, principal entity.Principal, bookingID string) ([]byte, error)
}

type BookingOptions struct {
	// StrictAmount rejects a supplied amount that differs from seats x price.
	// When false the supplied amount is stored as-is.
	StrictAmount bool
}

type bookingService struct {
	repo *repository.Repository
	gate *Gate
	opts BookingOptions
	log  *zap.Logger
	now  func() time.Time
}

func NewBookingService(repo *repository.Repository, gate *Gate, opts BookingOptions, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		gate: gate,
		opts: opts,
		log:  log.With(zap.String("service", "booking")),
		now:  time.Now,
	}
}

// CreateBooking books seats for the caller. The owner is always the caller;
// seat labels are not checked against other bookings.
func (s *bookingService) CreateBooking(ctx context.Context, principal entity.Principal, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := s.gate.AuthorizeOwnerOrAdmin(principal, principal.ID); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, invalidInput("Please provide all required fields (%s)", utils.FormatValidationErrors(errs))
	}

	movieID, ok := parseID(req.Movie)
	if !ok {
		return nil, notFound("Movie not found")
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie for booking: %w", err)
	}
	if movie == nil {
		return nil, notFound("Movie not found")
	}

	showtime, err := parseShowtime(req.Showtime)
	if err != nil || !movie.HasShowtime(showtime) {
		s.log.Warn("Booking rejected: showtime not offered",
			zap.String("movie_id", movie.ID.String()),
			zap.String("showtime", req.Showtime),
		)
		return nil, invalidInput("Invalid showtime for this movie")
	}

	seats := make([]string, len(req.Seats))
	for i, seat := range req.Seats {
		seats[i] = strings.TrimSpace(seat)
	}

	amount, err := s.resolveAmount(req.Amount, len(seats), movie.Price)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:   principal.ID,
		MovieID:  movie.ID,
		Showtime: showtime,
		Seats:    seats,
		Amount:   amount,
		Status:   entity.BookingStatusConfirmed,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", principal.ID.String()),
		zap.String("movie_id", movie.ID.String()),
		zap.Int("seat_count", len(seats)),
		zap.Float64("amount", amount),
	)

	resp := response.BookingToResponse(booking, response.PrincipalToSummary(principal), response.MovieToSummary(movie))
	return &resp, nil
}

func (s *bookingService) resolveAmount(supplied *float64, seatCount int, price float64) (float64, error) {
	computed := float64(seatCount) * price
	if supplied == nil {
		return computed, nil
	}

	if s.opts.StrictAmount && math.Abs(*supplied-computed) > amountTolerance {
		s.log.Warn("Booking rejected: amount mismatch",
			zap.Float64("supplied", *supplied),
			zap.Float64("expected", computed),
		)
		return 0, invalidInput("Amount %.2f does not match %d seat(s) x %.2f", *supplied, seatCount, price)
	}

	return *supplied, nil
}

func (s *bookingService) GetMyBookings(ctx context.Context, principal entity.Principal) ([]response.BookingResponse, error) {
	if err := s.gate.AuthorizeOwnerOrAdmin(principal, principal.ID); err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	movies, err := s.expandMovies(ctx, bookings)
	if err != nil {
		return nil, err
	}

	owner := response.PrincipalToSummary(principal)
	result := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		result[i] = response.BookingToResponse(booking, owner, response.MovieToSummary(movies[booking.MovieID]))
	}

	return result, nil
}

func (s *bookingService) GetAllBookings(ctx context.Context, principal entity.Principal) ([]response.BookingResponse, error) {
	if err := s.gate.AuthorizeAdmin(principal); err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all bookings: %w", err)
	}

	movies, err := s.expandMovies(ctx, bookings)
	if err != nil {
		return nil, err
	}

	users, err := s.expandUsers(ctx, bookings)
	if err != nil {
		return nil, err
	}

	result := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		result[i] = response.BookingToResponse(booking,
			response.UserToSummary(users[booking.UserID]),
			response.MovieToSummary(movies[booking.MovieID]),
		)
	}

	s.log.Info("All bookings retrieved",
		zap.Int("count", len(result)),
		zap.String("admin_id", principal.ID.String()),
	)
	return result, nil
}

// GetBookingByID checks existence before ownership, so an unknown id is always NotFound.
func (s *bookingService) GetBookingByID(ctx context.Context, principal entity.Principal, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findAuthorized(ctx, principal, bookingID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, booking.MovieID)
	if err != nil {
		return nil, fmt.Errorf("expand booking movie: %w", err)
	}

	owner, err := s.repo.User.FindByID(ctx, booking.UserID)
	if err != nil {
		return nil, fmt.Errorf("expand booking owner: %w", err)
	}

	resp := response.BookingToResponse(booking, response.UserToSummary(owner), response.MovieToSummary(movie))
	return &resp, nil
}

// GetBookingQRCode renders the booking's ticket as a PNG QR code.
func (s *bookingService) GetBookingQRCode(ctx context.Context, principal entity.Principal, bookingID string) ([]byte, error) {
	booking, err := s.findAuthorized(ctx, principal, bookingID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, booking.MovieID)
	if err != nil {
		return nil, fmt.Errorf("expand booking movie: %w", err)
	}

	png, err := utils.GenerateQRCode(ticketPayload(booking, movie))
	if err != nil {
		return nil, fmt.Errorf("generate ticket qr code: %w", err)
	}

	return png, nil
}

func (s *bookingService) findAuthorized(ctx context.Context, principal entity.Principal, bookingID string) (*entity.Booking, error) {
	if !resolved(principal) {
		return nil, unauthenticated("Authentication required")
	}

	id, ok := parseID(bookingID)
	if !ok {
		return nil, notFound("Booking not found")
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking by id: %w", err)
	}
	if booking == nil {
		return nil, notFound("Booking not found")
	}

	if err := s.gate.AuthorizeOwnerOrAdmin(principal, booking.UserID); err != nil {
		return nil, err
	}

	return booking, nil
}

func (s *bookingService) expandMovies(ctx context.Context, bookings []*entity.Booking) (map[uuid.UUID]*entity.Movie, error) {
	ids := uniqueIDs(bookings, func(b *entity.Booking) uuid.UUID { return b.MovieID })

	movies, err := s.repo.Movie.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("expand booking movies: %w", err)
	}

	byID := make(map[uuid.UUID]*entity.Movie, len(movies))
	for _, movie := range movies {
		byID[movie.ID] = movie
	}
	return byID, nil
}

func (s *bookingService) expandUsers(ctx context.Context, bookings []*entity.Booking) (map[uuid.UUID]*entity.User, error) {
	ids := uniqueIDs(bookings, func(b *entity.Booking) uuid.UUID { return b.UserID })

	users, err := s.repo.User.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("expand booking owners: %w", err)
	}

	byID := make(map[uuid.UUID]*entity.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	return byID, nil
}

func uniqueIDs(bookings []*entity.Booking, key func(*entity.Booking) uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(bookings))
	ids := make([]uuid.UUID, 0, len(bookings))
	for _, b := range bookings {
		id := key(b)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func ticketPayload(booking *entity.Booking, movie *entity.Movie) string {
	title := "(movie removed)"
	if movie != nil {
		title = movie.Title
	}

	return fmt.Sprintf("booking:%s\nmovie:%s\nshowtime:%s\nseats:%s",
		booking.ID.String(),
		title,
		booking.Showtime.Format(time.RFC3339),
		strings.Join(booking.Seats, ","),
	)
}
