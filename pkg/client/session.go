package client

import (
	"context"
	"errors"
	"sync"
)

type View string

const (
	ViewHome  View = "home"
	ViewLogin View = "login"
)

// Navigator is told which view to show after a session transition.
type Navigator func(View)

// Session tracks the signed-in identity for a UI. It starts signed out and only
// becomes signed in through Login or a Restore confirmed by the server.
type Session struct {
	client   *Client
	navigate Navigator

	mu      sync.RWMutex
	user    *User
	loading bool
	err     string
}

func NewSession(c *Client, navigate Navigator) *Session {
	if navigate == nil {
		navigate = func(View) {}
	}
	return &Session{client: c, navigate: navigate}
}

// CurrentUser returns a copy of the signed-in identity, or nil.
func (s *Session) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Error is the message of the last failed login, empty after a success.
func (s *Session) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Session) begin() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

// Login keeps the previous identity when the attempt fails.
func (s *Session) Login(ctx context.Context, username, password string) error {
	s.begin()

	res, err := s.client.Login(ctx, username, password)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.err = humanMessage(err)
		s.mu.Unlock()
		return err
	}
	user := res.User
	s.user = &user
	s.err = ""
	s.mu.Unlock()

	s.navigate(ViewHome)
	return nil
}

// Logout always clears the local identity; the server error, if any, is returned.
func (s *Session) Logout(ctx context.Context) error {
	s.begin()

	err := s.client.Logout(ctx)

	s.mu.Lock()
	s.loading = false
	s.user = nil
	s.mu.Unlock()

	s.navigate(ViewLogin)
	return err
}

// Restore adopts a stored token if the server still recognises it.
func (s *Session) Restore(ctx context.Context, token string) error {
	if token == "" {
		s.navigate(ViewLogin)
		return errors.New("client: no stored session")
	}

	s.begin()
	s.client.SetToken(token)
	user, err := s.client.Me(ctx)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.user = nil
		s.mu.Unlock()
		s.client.SetToken("")
		s.navigate(ViewLogin)
		return err
	}
	s.user = user
	s.mu.Unlock()

	s.navigate(ViewHome)
	return nil
}

func humanMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Unable to reach the server. Please try again."
}
