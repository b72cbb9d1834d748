package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
)

// CookieRepository persists the server's session cookies as an opaque
// JSON blob in the single-row session_cookies table. The client never
// inspects the values; it only replays them. Implements the services
// package's CookieStore.
type CookieRepository struct {
	db *sqlx.DB
}

// NewCookieRepository creates a CookieRepository over the connection.
func NewCookieRepository(db *sqlx.DB) *CookieRepository {
	return &CookieRepository{db: db}
}

// storedCookie is the serialized subset of a cookie the jar needs back.
type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Domain  string    `json:"domain,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// Load reads the persisted cookies. No row means no cookies.
func (r *CookieRepository) Load() ([]*http.Cookie, error) {
	var blob string
	err := r.db.Get(&blob, "SELECT cookies FROM session_cookies WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cookies: %w", err)
	}

	var stored []storedCookie
	if err := json.Unmarshal([]byte(blob), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode cookies: %w", err)
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		cookies = append(cookies, &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
		})
	}
	return cookies, nil
}

// Save replaces the persisted blob with the jar's current cookies.
func (r *CookieRepository) Save(cookies []*http.Cookie) error {
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
		})
	}

	blob, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode cookies: %w", err)
	}

	query := `
		INSERT INTO session_cookies (id, cookies, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET cookies = excluded.cookies, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.Exec(query, string(blob)); err != nil {
		return fmt.Errorf("failed to persist cookies: %w", err)
	}
	return nil
}

// Clear removes the persisted cookies, used on logout.
func (r *CookieRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM session_cookies WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}
	return nil
}
