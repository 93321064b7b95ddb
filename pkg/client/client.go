// Package client is a Go client for the movie-ticket HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"movie-ticket/internal/dto/request"
	"movie-ticket/internal/dto/response"
)

// ErrUnauthorized is wrapped by the APIError returned for a 401 answer.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is returned for every non-2xx answer.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ------------- Auth -------------

// Signup registers a user and returns a session for it.
func (c *Client) Signup(ctx context.Context, req request.RegisterRequest) (*Session, error) {
	var out response.AuthResponse
	if err := c.do(ctx, nil, http.MethodPost, "/api/auth/signup", req, &out); err != nil {
		return nil, err
	}
	return NewSession(out.Token, out.User), nil
}

// Login signs in and returns a session for the user.
func (c *Client) Login(ctx context.Context, req request.LoginRequest) (*Session, error) {
	var out response.AuthResponse
	if err := c.do(ctx, nil, http.MethodPost, "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	return NewSession(out.Token, out.User), nil
}

func (c *Client) Me(ctx context.Context, s *Session) (*response.UserResponse, error) {
	var out response.UserResponse
	if err := c.do(ctx, s, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ------------- Movies -------------

func (c *Client) ListMovies(ctx context.Context) ([]response.MovieResponse, error) {
	var out []response.MovieResponse
	if err := c.do(ctx, nil, http.MethodGet, "/api/movies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMovie(ctx context.Context, id string) (*response.MovieResponse, error) {
	var out response.MovieResponse
	if err := c.do(ctx, nil, http.MethodGet, "/api/movies/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateMovie(ctx context.Context, s *Session, req request.MovieRequest) (*response.MovieResponse, error) {
	var out response.MovieResponse
	if err := c.do(ctx, s, http.MethodPost, "/api/movies", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMovie(ctx context.Context, s *Session, id string, req request.MovieUpdateRequest) (*response.MovieResponse, error) {
	var out response.MovieResponse
	if err := c.do(ctx, s, http.MethodPut, "/api/movies/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMovie(ctx context.Context, s *Session, id string) error {
	return c.do(ctx, s, http.MethodDelete, "/api/movies/"+url.PathEscape(id), nil, nil)
}

// ------------- Bookings -------------

func (c *Client) CreateBooking(ctx context.Context, s *Session, req request.CreateBookingRequest) (*response.BookingResponse, error) {
	var out response.BookingResponse
	if err := c.do(ctx, s, http.MethodPost, "/api/bookings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyBookings(ctx context.Context, s *Session) ([]response.BookingResponse, error) {
	var out []response.BookingResponse
	if err := c.do(ctx, s, http.MethodGet, "/api/bookings/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AllBookings(ctx context.Context, s *Session) ([]response.BookingResponse, error) {
	var out []response.BookingResponse
	if err := c.do(ctx, s, http.MethodGet, "/api/bookings/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBooking(ctx context.Context, s *Session, id string) (*response.BookingResponse, error) {
	var out response.BookingResponse
	if err := c.do(ctx, s, http.MethodGet, "/api/bookings/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BookingQRCode returns the booking's ticket as a PNG image.
func (c *Client) BookingQRCode(ctx context.Context, s *Session, id string) ([]byte, error) {
	resp, err := c.send(ctx, s, http.MethodGet, "/api/bookings/"+url.PathEscape(id)+"/qrcode", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	png, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read qrcode: %w", err)
	}
	return png, nil
}

// ------------- Users -------------

func (c *Client) ListUsers(ctx context.Context, s *Session) ([]response.UserResponse, error) {
	var out []response.UserResponse
	if err := c.do(ctx, s, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, s *Session, id string) (*response.UserResponse, error) {
	var out response.UserResponse
	if err := c.do(ctx, s, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends one request and decodes a JSON answer into out when out is non-nil.
func (c *Client) do(ctx context.Context, s *Session, method, path string, in, out any) error {
	resp, err := c.send(ctx, s, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// send performs the request and returns a 2xx response for the caller to
// close. A non-nil session attaches its credential; a 401 answer clears that
// session before the error is returned.
func (c *Client) send(ctx context.Context, s *Session, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := s.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusUnauthorized && s != nil {
			s.Clear()
		}
		return nil, decodeAPIError(resp)
	}
	return resp, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	}
	return apiErr
}
