package client

import (
	"sync"

	"movie-ticket/internal/dto/response"
)

// Session holds the credential of one signed-in user. It is passed explicitly
// to every call that needs authentication and is cleared on logout or on any
// 401 answer from the server.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *response.UserResponse
}

func NewSession(token string, user response.UserResponse) *Session {
	return &Session{token: token, user: &user}
}

// Set replaces the session's credential and user.
func (s *Session) Set(token string, user response.UserResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = &user
}

// Clear forgets the credential. It is the logout operation.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the signed-in user, or nil after Clear.
func (s *Session) User() *response.UserResponse {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Active() bool {
	return s.Token() != ""
}
