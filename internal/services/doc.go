// Package services implements the HTTP layer between the client and the ConnectBase backend.
//
// The [Gateway] is the single request pipeline every call flows through: it
// owns the cookie jar carrying the opaque session credential, attaches a
// request ID to every call, rate-limits outgoing requests, and intercepts
// unauthorized/forbidden responses globally so individual call sites never
// special-case them.
//
// Typed services sit on top of the gateway:
//   - [AuthService] : login, logout, registration, password flows, /auth/me
//   - [ContactService] : paginated listing, search, CRUD, CSV import/export
//
// Both are consumed through the [AuthAPI] and [ContactAPI] interfaces so the
// TUI, the CLI commands, and the list controller can be tested against
// doubles.
package services
