// Package auth implements the local password gate. The hash lives in the
// singleton ledger row; an empty hash means no password has been set yet.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type HashStore interface {
	PasswordHash() (string, error)
	SetPasswordHash(hash string) error
}

// Gate verifies and updates the app password.
type Gate struct {
	store HashStore
}

func NewGate(s HashStore) *Gate {
	return &Gate{store: s}
}

// Configured reports whether a password has been set.
func (g *Gate) Configured() (bool, error) {
	hash, err := g.store.PasswordHash()
	if err != nil {
		return false, err
	}
	return hash != "", nil
}

// SetPassword hashes and stores a new password. Empty passwords are
// rejected at this boundary so nothing downstream sees them.
func (g *Gate) SetPassword(password string) error {
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return g.store.SetPasswordHash(string(hash))
}

// Check reports whether password matches the stored hash.
func (g *Gate) Check(password string) bool {
	hash, err := g.store.PasswordHash()
	if err != nil || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
