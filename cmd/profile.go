package main

import (
	"context"

	"github.com/connectbase/cbx/internal/formatter"
	"github.com/urfave/cli/v3"
)

// ProfileShow fetches and prints the logged-in user's account details.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	user, err := r.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return r.writePlain("%s", formatter.UserToText(*user))
}
