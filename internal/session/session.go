// Package session ties a logged-in user and their wishlist to a token.
// A session starts at login and is deleted at logout; nothing about it
// outlives that window.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Rohit6800/UniStay/internal/models"
	"github.com/Rohit6800/UniStay/internal/wishlist"
	"github.com/google/uuid"
)

var (
	ErrNoSession    = errors.New("session not found")
	ErrInvalidLogin = errors.New("name, a valid email and a role are required")

	// ErrUnauthenticated is the caller-facing error for a request that
	// needs a session and has none
	ErrUnauthenticated = errors.New("authentication required")
)

// Session is the per-login state of one user
type Session struct {
	ID        string        `json:"id"`
	User      models.User   `json:"user"`
	Wishlist  *wishlist.Set `json:"wishlist"`
	CreatedAt time.Time     `json:"createdAt"`
}

// IsStudent reports whether the session belongs to a student
func (s *Session) IsStudent() bool {
	return s != nil && s.User.Role == models.RoleStudent
}

// IsDealer reports whether the session belongs to a dealer
func (s *Session) IsDealer() bool {
	return s != nil && s.User.Role == models.RoleDealer
}

// Store persists sessions between requests
type Store interface {
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// Update applies fn to the stored session atomically and returns the
	// result. The session keeps its expiry. fn may run more than once.
	Update(ctx context.Context, id string, fn func(*Session)) (*Session, error)
}

// Manager creates, resolves and ends sessions
type Manager struct {
	store  Store
	tokens *Tokens
	ttl    time.Duration
}

// NewManager creates a Manager issuing tokens valid for ttl
func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{
		store:  store,
		tokens: NewTokens(secret, ttl),
		ttl:    ttl,
	}
}

// Login starts a session for a new user identity and returns its token
func (m *Manager) Login(ctx context.Context, req models.LoginRequest) (*Session, string, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || !req.Role.Valid() {
		return nil, "", ErrInvalidLogin
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", ErrInvalidLogin
	}

	s := &Session{
		ID: uuid.NewString(),
		User: models.User{
			ID:    uuid.NewString(),
			Role:  req.Role,
			Name:  name,
			Email: email,
		},
		Wishlist:  wishlist.New(),
		CreatedAt: time.Now().UTC(),
	}
	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		return nil, "", fmt.Errorf("failed to save session: %w", err)
	}

	token, err := m.tokens.Issue(s)
	if err != nil {
		return nil, "", err
	}
	return s, token, nil
}

// Resolve returns the live session a token refers to
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := m.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	s, err := m.store.Load(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if s.User.ID != claims.Subject {
		return nil, ErrNoSession
	}
	if s.Wishlist == nil {
		s.Wishlist = wishlist.New()
	}
	return s, nil
}

// Logout ends the session
func (m *Manager) Logout(ctx context.Context, s *Session) error {
	if err := m.store.Delete(ctx, s.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ToggleWishlist flips listingID in the stored wishlist and refreshes s from
// the store. Toggles from other requests on the same session are kept.
// It returns whether the listing is saved afterwards.
func (m *Manager) ToggleWishlist(ctx context.Context, s *Session, listingID string) (bool, error) {
	var saved bool
	fresh, err := m.store.Update(ctx, s.ID, func(cur *Session) {
		if cur.Wishlist == nil {
			cur.Wishlist = wishlist.New()
		}
		saved = cur.Wishlist.Toggle(listingID)
	})
	if err != nil {
		return false, fmt.Errorf("failed to save wishlist: %w", err)
	}
	s.Wishlist = fresh.Wishlist
	return saved, nil
}
