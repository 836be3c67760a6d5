// Package session holds the authenticated state of one dashboard user. The
// session is an explicit value injected where needed; nothing reads it
// through a global.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vtnguyen/storeboard/internal/api"
	"github.com/vtnguyen/storeboard/internal/app/model"
)

// data is the exact persisted shape. Only tokens and the profile are
// stored; anything else is derived.
type data struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         *model.User `json:"user,omitempty"`
}

// Session is the file-backed auth state. A zero-value file or a missing
// file both mean guest. Session implements api.TokenSource.
type Session struct {
	path string

	mu   sync.Mutex
	data data
}

// Open loads the session file at path, treating a missing file as a guest
// session.
func Open(path string) (*Session, error) {
	s := &Session{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	return s, nil
}

// Login authenticates through the API and persists the returned tokens and
// profile.
func (s *Session) Login(ctx context.Context, client *api.Client, email, password string) (*model.User, error) {
	result, err := client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.data = data{
		AccessToken:  result.Tokens.Access,
		RefreshToken: result.Tokens.Refresh,
		User:         &result.User,
	}
	err = s.saveLocked()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &result.User, nil
}

// Logout drops the persisted state, returning to guest.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// AccessToken returns the stored access token, empty for guests. This
// satisfies api.TokenSource.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.AccessToken
}

// User returns the stored profile, nil for guests.
func (s *Session) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.User
}

// CurrentUserID returns the logged-in user's id, nil for guests. Review
// edit and delete affordances key off this; the backend still enforces
// ownership.
func (s *Session) CurrentUserID() *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.User == nil {
		return nil
	}
	id := s.data.User.ID
	return &id
}

// Authenticated reports whether a non-expired access token is present. The
// expiry check reads the claim without verifying the signature; the token
// is opaque client-side and verification is the backend's.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	token := s.data.AccessToken
	s.mu.Unlock()
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		// No exp claim: let the backend reject it if stale.
		return true
	}
	return exp.After(time.Now())
}

func (s *Session) saveLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
