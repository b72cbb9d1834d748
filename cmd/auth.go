package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/connectbase/cbx/internal/services"
	"github.com/connectbase/cbx/internal/session"
	"github.com/connectbase/cbx/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin authenticates against the backend and marks the local session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	if err := r.auth.Login(ctx, email, password); err != nil {
		return err
	}

	r.sess.LoginSucceeded()
	return r.writePlain("✓ Logged in as %s\n", email)
}

// AuthLogout clears the local session, then asks the server to expire the
// cookies. The local state clears even when the server call fails.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	r.sess.Logout()

	if r.stores != nil {
		if err := r.stores.Cookies.Clear(); err != nil {
			r.logger.Warn("failed to clear stored cookies", "error", err)
		}
		if err := r.stores.Pages.Clear(); err != nil {
			r.logger.Warn("failed to clear page cache", "error", err)
		}
	}

	if err := r.auth.Logout(ctx); err != nil {
		r.logger.Warn("server logout failed", "error", err)
	}

	return r.writePlain("✓ Logged out\n")
}

// AuthRegister creates a new account, with an optional profile image.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	params := services.RegisterParams{
		FirstName: cmd.String("first-name"),
		LastName:  cmd.String("last-name"),
		Email:     cmd.String("email"),
		Phone:     cmd.String("phone"),
		Gender:    cmd.String("gender"),
		Password:  cmd.String("password"),
	}

	if imagePath := cmd.String("image"); imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return fmt.Errorf("failed to read image file: %w", err)
		}
		params.Image = &services.FilePart{Field: "image", Name: filepath.Base(imagePath), Content: data}
	}

	user, err := r.auth.Register(ctx, params)
	if err != nil {
		return err
	}

	r.sess.LoginSucceeded()
	return r.writePlain("✓ Registered %s\n", user.Email)
}

// AuthForgotPassword requests a reset code for the given email.
func (r *Runner) AuthForgotPassword(ctx context.Context, cmd *cli.Command) error {
	email := cmd.StringArg("email")
	if email == "" {
		return fmt.Errorf("%w: email argument is required", shared.ErrMissingArgument)
	}

	if err := r.auth.ForgotPassword(ctx, email); err != nil {
		return err
	}
	return r.writePlain("✓ Reset code sent to %s\n", email)
}

// AuthResetPassword redeems a reset code for a new password.
func (r *Runner) AuthResetPassword(ctx context.Context, cmd *cli.Command) error {
	err := r.auth.ResetPassword(ctx, cmd.String("email"), cmd.String("code"), cmd.String("new-password"))
	if err != nil {
		return err
	}
	return r.writePlain("✓ Password reset\n")
}

// AuthChangePassword rotates the logged-in account's password.
func (r *Runner) AuthChangePassword(ctx context.Context, cmd *cli.Command) error {
	err := r.auth.ChangePassword(ctx, cmd.String("old"), cmd.String("new"), cmd.String("code"))
	if err != nil {
		return err
	}
	return r.writePlain("✓ Password changed\n")
}

// AuthStatus reports the local advisory state and verifies it against the
// server. The two can disagree: the server is the authority.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.sess.Authenticated() {
		r.writePlain("Local session: authenticated\n")
	} else {
		r.writePlain("Local session: anonymous\n")
	}

	user, err := r.auth.CurrentUser(ctx)
	if err != nil {
		if r.sess.State() == session.Anonymous {
			r.writePlain("Server session: not authenticated\n")
			return nil
		}
		return err
	}

	return r.writePlain("Server session: authenticated as %s\n", user.Email)
}
