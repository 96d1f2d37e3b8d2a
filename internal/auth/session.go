// Package auth guards the admin API: a shared-secret login issues bearer
// tokens backed by an expiring session store.
package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrSessionNotFound is returned for unknown, revoked or expired tokens.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidPassword is returned when the admin secret does not match.
	ErrInvalidPassword = errors.New("invalid credentials")
)

// Session is an authenticated admin session. Tokens are stored only as
// their SHA-256 hash.
type Session struct {
	TokenHash string    `json:"token_hash"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	LastSeen  time.Time `json:"last_seen"`
}

// Expired reports whether s is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionStore issues and validates admin bearer tokens. Implementations
// evict an expired session when they observe it.
type SessionStore interface {
	Create(ctx context.Context, ttl time.Duration) (token string, s *Session, err error)
	Validate(ctx context.Context, token string) (*Session, error)
	Touch(ctx context.Context, token string) error
	Revoke(ctx context.Context, token string) error
}
