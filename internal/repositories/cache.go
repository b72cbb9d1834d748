package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/connectbase/cbx/internal/models"
	"github.com/jmoiron/sqlx"
)

// PageCacheRepository keeps the last good contact page per (page, query)
// so the CLI can show something when the server is unreachable. Strictly
// a fallback; the cache is never consulted while fetches succeed.
type PageCacheRepository struct {
	db *sqlx.DB
}

// NewPageCacheRepository creates a PageCacheRepository over the connection.
func NewPageCacheRepository(db *sqlx.DB) *PageCacheRepository {
	return &PageCacheRepository{db: db}
}

// Put stores the page payload, replacing any previous entry for the key.
func (r *PageCacheRepository) Put(page int, query string, payload models.ContactPage) error {
	blob, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode page: %w", err)
	}

	stmt := `
		INSERT INTO page_cache (page, query, payload, fetched_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(page, query) DO UPDATE SET payload = excluded.payload, fetched_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.Exec(stmt, page, query, string(blob)); err != nil {
		return fmt.Errorf("failed to cache page: %w", err)
	}
	return nil
}

// Get retrieves a cached page. The second return is false on a miss.
func (r *PageCacheRepository) Get(page int, query string) (models.ContactPage, bool, error) {
	var empty models.ContactPage

	var blob string
	err := r.db.Get(&blob, "SELECT payload FROM page_cache WHERE page = ? AND query = ?", page, query)
	if errors.Is(err, sql.ErrNoRows) {
		return empty, false, nil
	}
	if err != nil {
		return empty, false, fmt.Errorf("failed to read cached page: %w", err)
	}

	var cached models.ContactPage
	if err := json.Unmarshal([]byte(blob), &cached); err != nil {
		return empty, false, fmt.Errorf("failed to decode cached page: %w", err)
	}
	return cached, true, nil
}

// Clear drops every cached page, used on logout so the next account does
// not see the previous account's contacts.
func (r *PageCacheRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM page_cache"); err != nil {
		return fmt.Errorf("failed to clear page cache: %w", err)
	}
	return nil
}
