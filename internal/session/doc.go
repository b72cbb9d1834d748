// Package session tracks whether the client believes it holds a live
// server session, and decides which views that belief permits.
//
// The real credential is an httpOnly cookie the client never reads; the
// [Session] state is an advisory mirror of it, persisted locally so a
// restarted client lands on the right view. The server remains the
// authority: any request can still come back 401/403, which flows into
// [Session.AuthRejected] through the gateway's auth-failure hook.
package session
