// Package repositories persists the client's local state in SQLite.
//
// Three stores live here: the advisory session flag that survives
// restarts, the opaque cookie blob the gateway replays on startup, and a
// cache of the last good contact page per (page, query) so the list has
// something to show when the server is unreachable. All three are
// single-purpose tables written through sqlx.
package repositories
