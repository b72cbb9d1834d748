// Authentication operations against the ConnectBase /auth endpoints
package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/connectbase/cbx/internal/models"
	"github.com/connectbase/cbx/internal/shared"
)

var _ AuthAPI = (*AuthService)(nil)

// AuthService implements [AuthAPI] over the [Gateway].
type AuthService struct {
	gw     *Gateway
	logger *log.Logger
}

// NewAuthService creates an AuthService backed by the given gateway.
func NewAuthService(gw *Gateway, logger *log.Logger) *AuthService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &AuthService{gw: gw, logger: logger}
}

// SetLogger replaces the service's logger.
func (s *AuthService) SetLogger(logger *log.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Login authenticates with the form-encoded login endpoint. The session
// credential arrives as httpOnly cookies captured by the gateway's jar; the
// response body is ignored beyond its status.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", shared.ErrInvalidInput)
	}

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	if _, err := s.gw.PostForm(ctx, "/auth/login", form); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	s.logger.Info("login successful", "email", email)
	return nil
}

// Logout asks the server to expire the session cookies.
func (s *AuthService) Logout(ctx context.Context) error {
	if _, err := s.gw.Post(ctx, "/auth/logout", nil); err != nil {
		return err
	}
	return nil
}

// Register creates a new account via the multipart registration endpoint.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	fields := map[string]string{
		"firstName": params.FirstName,
		"lastName":  params.LastName,
		"email":     params.Email,
		"phone":     params.Phone,
		"gender":    params.Gender,
		"password":  params.Password,
	}

	var files []FilePart
	if params.Image != nil {
		files = append(files, *params.Image)
	}

	resp, err := s.gw.PostMultipart(ctx, "/auth/register", fields, files...)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedEnvelope, err)
	}

	var user models.User
	if err := env.DecodeData(&user); err != nil {
		return nil, err
	}

	s.logger.Info("registration successful", "email", user.Email)
	return &user, nil
}

// ForgotPassword requests a reset code for the email. The arguments travel
// as query parameters with no body, matching the backend's request mapping.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", shared.ErrInvalidInput)
	}

	query := url.Values{}
	query.Set("email", email)

	_, err := s.gw.Post(ctx, "/auth/forgot-password", query)
	return err
}

// ResetPassword redeems the out-of-band code for a new password.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if email == "" || code == "" || newPassword == "" {
		return fmt.Errorf("%w: email, code and new password are required", shared.ErrInvalidInput)
	}

	query := url.Values{}
	query.Set("email", email)
	query.Set("code", code)
	query.Set("newPassword", newPassword)

	_, err := s.gw.Post(ctx, "/auth/reset-password", query)
	return err
}

// ChangePassword rotates the logged-in user's password via the JSON endpoint.
// The verification code is optional; the server demands it for some accounts.
func (s *AuthService) ChangePassword(ctx context.Context, oldPassword, newPassword, verificationCode string) error {
	if oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: old and new passwords are required", shared.ErrInvalidInput)
	}

	body := struct {
		OldPassword      string `json:"oldPassword"`
		NewPassword      string `json:"newPassword"`
		VerificationCode string `json:"verificationCode,omitempty"`
	}{oldPassword, newPassword, verificationCode}

	_, err := s.gw.PostJSON(ctx, "/auth/change-password", body)
	return err
}

// CurrentUser fetches the cookie-authenticated user's profile from /auth/me.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	resp, err := s.gw.Get(ctx, "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedEnvelope, err)
	}

	var user models.User
	if err := env.DecodeData(&user); err != nil {
		return nil, err
	}

	return &user, nil
}
