package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SessionRepository persists the advisory authenticated flag in the
// single-row session_state table. Implements the session package's Store.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a SessionRepository over the connection.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Authenticated reads the persisted flag. A missing row reads as false.
func (r *SessionRepository) Authenticated() (bool, error) {
	var flag bool
	err := r.db.Get(&flag, "SELECT authenticated FROM session_state WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read session flag: %w", err)
	}
	return flag, nil
}

// SetAuthenticated upserts the flag into the singleton row.
func (r *SessionRepository) SetAuthenticated(v bool) error {
	query := `
		INSERT INTO session_state (id, authenticated, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET authenticated = excluded.authenticated, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.Exec(query, v); err != nil {
		return fmt.Errorf("failed to persist session flag: %w", err)
	}
	return nil
}
