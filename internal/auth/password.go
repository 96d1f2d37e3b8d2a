package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordChecker compares login attempts against the configured admin
// secret. Only the bcrypt hash is kept after construction.
type PasswordChecker struct {
	hash []byte
}

// NewPasswordChecker hashes secret with bcrypt's default cost.
func NewPasswordChecker(secret string) (*PasswordChecker, error) {
	return NewPasswordCheckerCost(secret, bcrypt.DefaultCost)
}

// NewPasswordCheckerCost hashes secret with the given bcrypt cost.
func NewPasswordCheckerCost(secret string, cost int) (*PasswordChecker, error) {
	if secret == "" {
		return nil, fmt.Errorf("admin password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &PasswordChecker{hash: hash}, nil
}

// Check returns ErrInvalidPassword unless password matches.
func (p *PasswordChecker) Check(password string) error {
	if password == "" {
		return ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword(p.hash, []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
