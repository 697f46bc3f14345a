package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// RemainingSeconds returns the yearly allowance counter. A missing row is
// treated as "not yet initialized" and re-seeded with the default allowance.
func (s *Store) RemainingSeconds() (int64, error) {
	var secs int64
	err := s.db.QueryRow(`SELECT remaining_seconds FROM ledger WHERE id = 1`).Scan(&secs)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := s.db.Exec(`INSERT OR IGNORE INTO ledger (id) VALUES (1)`); err != nil {
			return InitialAllowanceSeconds, fmt.Errorf("seed ledger: %w", err)
		}
		return InitialAllowanceSeconds, nil
	}
	if err != nil {
		return InitialAllowanceSeconds, fmt.Errorf("read ledger: %w", err)
	}
	return secs, nil
}

// SetRemainingSeconds overwrites the allowance counter.
func (s *Store) SetRemainingSeconds(secs int64) error {
	_, err := s.db.Exec(`UPDATE ledger SET remaining_seconds = ? WHERE id = 1`, secs)
	if err != nil {
		return fmt.Errorf("set remaining seconds: %w", err)
	}
	return nil
}

// AdjustRemainingSeconds applies a relative change to the allowance counter.
func (s *Store) AdjustRemainingSeconds(delta int64) error {
	_, err := s.db.Exec(`UPDATE ledger SET remaining_seconds = remaining_seconds + ? WHERE id = 1`, delta)
	if err != nil {
		return fmt.Errorf("adjust remaining seconds: %w", err)
	}
	return nil
}

// PasswordHash returns the stored bcrypt hash, empty until a password is set.
func (s *Store) PasswordHash() (string, error) {
	var hash string
	err := s.db.QueryRow(`SELECT password_hash FROM ledger WHERE id = 1`).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read password hash: %w", err)
	}
	return hash, nil
}

func (s *Store) SetPasswordHash(hash string) error {
	_, err := s.db.Exec(`UPDATE ledger SET password_hash = ? WHERE id = 1`, hash)
	if err != nil {
		return fmt.Errorf("set password hash: %w", err)
	}
	return nil
}
