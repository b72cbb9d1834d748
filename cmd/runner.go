package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/connectbase/cbx/internal/models"
	"github.com/connectbase/cbx/internal/repositories"
	"github.com/connectbase/cbx/internal/services"
	"github.com/connectbase/cbx/internal/session"
	"github.com/connectbase/cbx/internal/shared"
	"github.com/connectbase/cbx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	gateway  *services.Gateway
	auth     services.AuthAPI
	contacts services.ContactAPI
	sess     *session.Session
	stores   *repositories.Stores
	logger   *log.Logger
	output   io.Writer
	input    io.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Gateway  *services.Gateway
	Auth     services.AuthAPI
	Contacts services.ContactAPI
	Session  *session.Session
	Stores   *repositories.Stores
	Logger   *log.Logger
	Output   io.Writer
	Input    io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Session == nil {
		opts.Session = session.New(nil, opts.Logger)
	}

	return &Runner{
		config:   opts.Config,
		gateway:  opts.Gateway,
		auth:     opts.Auth,
		contacts: opts.Contacts,
		sess:     opts.Session,
		stores:   opts.Stores,
		logger:   opts.Logger,
		output:   opts.Output,
		input:    opts.Input,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, contactsCommand, profileCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger on the runner and its services, used by
// the TUI to keep log lines off the rendered terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	if logger == nil {
		return
	}
	r.logger = logger
	if r.gateway != nil {
		r.gateway.SetLogger(logger)
	}
	if svc, ok := r.auth.(*services.AuthService); ok {
		svc.SetLogger(logger)
	}
	if svc, ok := r.contacts.(*services.ContactService); ok {
		svc.SetLogger(logger)
	}
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// confirm prompts for a yes/no answer on the runner's input. Anything but
// an explicit yes declines.
func (r *Runner) confirm(prompt string) bool {
	r.writePlain("%s [y/N]: ", prompt)

	reader := bufio.NewReader(r.input)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// fetchPage runs one list/search fetch and maintains the local page
// cache: successes are written through, and an unreachable server falls
// back to the cached copy with a warning.
func (r *Runner) fetchPage(ctx context.Context, page int, query string) (models.ContactPage, error) {
	var result models.ContactPage
	var err error

	if query == "" {
		result, err = r.contacts.List(ctx, page, tasks.PageSize)
	} else {
		result, err = r.contacts.Search(ctx, query, page, tasks.PageSize)
	}

	if err == nil {
		if r.stores != nil {
			if cacheErr := r.stores.Pages.Put(page, query, result); cacheErr != nil {
				r.logger.Debug("failed to cache page", "error", cacheErr)
			}
		}
		return result, nil
	}

	if errors.Is(err, shared.ErrServiceUnavailable) && r.stores != nil {
		if cached, ok, cacheErr := r.stores.Pages.Get(page, query); cacheErr == nil && ok {
			r.logger.Warn("server unreachable, showing cached page", "error", err)
			r.writePlain("(offline: showing last known results)\n")
			return cached, nil
		}
	}

	return result, err
}