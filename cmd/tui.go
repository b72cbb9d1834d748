package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/connectbase/cbx/internal/shared"
	"github.com/connectbase/cbx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for contact management.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.auth == nil || r.contacts == nil {
		return fmt.Errorf("%w: API services not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/cbx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, ui.ModelOpts{
		Auth:      r.auth,
		Contacts:  r.contacts,
		Session:   r.sess,
		ExportDir: r.config.Export.Directory,
		Logger:    fileLogger,
	})
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
