package session

import (
	"context"
	"errors"
	"time"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
)

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("session: not found")

// Session is the server-side record behind one dashboard token. The remote
// access token never leaves the server; the refresh token is stored only as
// a bcrypt hash.
type Session struct {
	ID               string      `json:"id"`
	AccessToken      string      `json:"accessToken"`
	RefreshTokenHash string      `json:"refreshTokenHash"`
	User             *model.User `json:"user"`
	CreatedAt        time.Time   `json:"createdAt"`
	LastSeenAt       time.Time   `json:"lastSeenAt"`
}

// Store persists operator sessions keyed by session id.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
