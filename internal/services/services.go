// package services defines the API surface consumed by the CLI and TUI
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/connectbase/cbx/internal/models"
	"github.com/connectbase/cbx/internal/shared"
)

// AuthAPI defines the authentication operations exposed by the backend.
type AuthAPI interface {
	// Login authenticates with email and password. On success the server
	// sets the httpOnly session cookies; the response body is ignored
	// beyond its status.
	Login(ctx context.Context, email, password string) error

	// Logout asks the server to clear the session cookies. Best-effort:
	// callers drop their local session state even when this fails.
	Logout(ctx context.Context) error

	// Register creates a new user account with an optional profile image.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// ForgotPassword requests an out-of-band reset code for the email.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword redeems a reset code for a new password.
	ResetPassword(ctx context.Context, email, code, newPassword string) error

	// ChangePassword rotates the logged-in user's password.
	ChangePassword(ctx context.Context, oldPassword, newPassword, verificationCode string) error

	// CurrentUser fetches the cookie-authenticated user's profile.
	CurrentUser(ctx context.Context) (*models.User, error)
}

// ContactAPI defines the contact collection operations exposed by the backend.
type ContactAPI interface {
	// List fetches one page of the unfiltered contact collection.
	List(ctx context.Context, page, size int) (models.ContactPage, error)

	// Search fetches one page of the collection filtered by query.
	Search(ctx context.Context, query string, page, size int) (models.ContactPage, error)

	// Get fetches a single contact by its server-assigned ID.
	Get(ctx context.Context, id int64) (*models.Contact, error)

	// Create submits a full record, with an optional attached image.
	Create(ctx context.Context, params ContactParams) (*models.Contact, error)

	// Update submits changed fields for an existing record.
	Update(ctx context.Context, id int64, params ContactParams) (*models.Contact, error)

	// PatchImage uploads a replacement image for an existing record.
	PatchImage(ctx context.Context, id int64, image FilePart) (*models.Contact, error)

	// Delete removes a record. Irreversible; callers must confirm first.
	Delete(ctx context.Context, id int64) error

	// Export fetches the full collection as a CSV stream.
	Export(ctx context.Context) ([]byte, error)

	// Import uploads a CSV file, returning the server's summary message.
	Import(ctx context.Context, filename string, data []byte) (string, error)
}

// RegisterParams carries the registration form fields.
type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Gender    string
	Password  string
	Image     *FilePart
}

// ContactParams carries the contact form fields for create and update.
type ContactParams struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Title     string
	Image     *FilePart
}

// Fields returns the multipart form fields for the params.
func (p ContactParams) Fields() map[string]string {
	return map[string]string{
		"firstName": p.FirstName,
		"lastName":  p.LastName,
		"email":     p.Email,
		"phone":     p.Phone,
		"title":     p.Title,
	}
}

// Envelope is the backend's uniform response wrapper.
//
// The backend emits slightly different envelope constructors; decoding keys
// only off message and data, which every variant carries.
type Envelope struct {
	Message string          `json:"message"`
	Success *bool           `json:"success,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// decodeEnvelope parses a response body into an [Envelope].
func decodeEnvelope(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// DecodeData unmarshals the envelope's nested payload into v.
// Reports a missing or null payload so callers can fall back explicitly.
func (e *Envelope) DecodeData(v any) error {
	if len(e.Data) == 0 || bytes.Equal(e.Data, []byte("null")) {
		return fmt.Errorf("%w: missing data payload", shared.ErrMalformedEnvelope)
	}
	return json.Unmarshal(e.Data, v)
}

// errorMessage extracts the server's error message from a body, or returns
// the fallback when the body carries no decodable envelope.
func errorMessage(body []byte, fallback string) string {
	env, err := decodeEnvelope(body)
	if err != nil || env.Message == "" {
		return fallback
	}
	return env.Message
}
