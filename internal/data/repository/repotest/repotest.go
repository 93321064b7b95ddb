// Package repotest provides in-memory repositories for tests of the layers
// above the store. They follow the pgx repositories' contracts: (nil, nil)
// on not-found, newest-first listings, ErrDuplicateEmail on a taken email.
package repotest

import (
	"bytes"
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"movie-ticket/internal/data/entity"
	"movie-ticket/internal/data/repository"

	"github.com/google/uuid"
)

// Store is the shared state behind the three fake repositories.
type Store struct {
	mu       sync.Mutex
	users    map[uuid.UUID]entity.User
	movies   map[uuid.UUID]entity.Movie
	bookings map[uuid.UUID]entity.Booking

	// Err, when set, is returned by every repository call.
	Err error
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]entity.User),
		movies:   make(map[uuid.UUID]entity.Movie),
		bookings: make(map[uuid.UUID]entity.Booking),
	}
}

// Repository returns a repository.Repository backed by s.
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:    &userRepo{s},
		Movie:   &movieRepo{s},
		Booking: &bookingRepo{s},
	}
}

// NewRepository is shorthand for NewStore().Repository().
func NewRepository() (*repository.Repository, *Store) {
	s := NewStore()
	return s.Repository(), s
}

func (s *Store) MovieCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movies)
}

func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func newestFirst(a, b entity.Base) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) > 0
}

// ------------- users -------------

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	users := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			users = append(users, &u)
		}
	}
	return users, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) FindAll(ctx context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	users := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool { return newestFirst(users[i].Base, users[j].Base) })
	return users, nil
}

// ------------- movies -------------

type movieRepo struct{ s *Store }

func cloneMovie(m entity.Movie) *entity.Movie {
	m.Showtimes = slices.Clone(m.Showtimes)
	return &m
}

func (r *movieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.movies[movie.ID] = *cloneMovie(*movie)
	return nil
}

func (r *movieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	m, ok := r.s.movies[id]
	if !ok {
		return nil, nil
	}
	return cloneMovie(m), nil
}

func (r *movieRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	movies := make([]*entity.Movie, 0, len(ids))
	for _, id := range ids {
		if m, ok := r.s.movies[id]; ok {
			movies = append(movies, cloneMovie(m))
		}
	}
	return movies, nil
}

func (r *movieRepo) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	movies := make([]*entity.Movie, 0, len(r.s.movies))
	for _, m := range r.s.movies {
		movies = append(movies, cloneMovie(m))
	}
	sort.Slice(movies, func(i, j int) bool { return newestFirst(movies[i].Base, movies[j].Base) })
	return movies, nil
}

func (r *movieRepo) Update(ctx context.Context, movie *entity.Movie) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	if _, ok := r.s.movies[movie.ID]; !ok {
		return false, nil
	}
	r.s.movies[movie.ID] = *cloneMovie(*movie)
	return true, nil
}

func (r *movieRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	if _, ok := r.s.movies[id]; !ok {
		return false, nil
	}
	delete(r.s.movies, id)
	return true, nil
}

// ------------- bookings -------------

type bookingRepo struct{ s *Store }

func cloneBooking(b entity.Booking) *entity.Booking {
	b.Seats = slices.Clone(b.Seats)
	return &b
}

func (r *bookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.bookings[booking.ID] = *cloneBooking(*booking)
	return nil
}

func (r *bookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return cloneBooking(b), nil
}

func (r *bookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	return r.list(func(b entity.Booking) bool { return b.UserID == userID })
}

func (r *bookingRepo) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	return r.list(func(entity.Booking) bool { return true })
}

func (r *bookingRepo) list(keep func(entity.Booking) bool) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	bookings := make([]*entity.Booking, 0)
	for _, b := range r.s.bookings {
		if keep(b) {
			bookings = append(bookings, cloneBooking(b))
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return newestFirst(bookings[i].Base, bookings[j].Base) })
	return bookings, nil
}
