package repositories

import "github.com/jmoiron/sqlx"

// Stores bundles the three local stores over one database handle.
type Stores struct {
	Session *SessionRepository
	Cookies *CookieRepository
	Pages   *PageCacheRepository
}

// NewStores creates all repositories over the given connection.
func NewStores(db *sqlx.DB) *Stores {
	return &Stores{
		Session: NewSessionRepository(db),
		Cookies: NewCookieRepository(db),
		Pages:   NewPageCacheRepository(db),
	}
}
