package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/connectbase/cbx/internal/formatter"
	"github.com/connectbase/cbx/internal/services"
	"github.com/connectbase/cbx/internal/shared"
	"github.com/connectbase/cbx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ContactsList prints one page of the collection, searched or unfiltered.
func (r *Runner) ContactsList(ctx context.Context, cmd *cli.Command) error {
	page := int(cmd.Int("page"))
	query := cmd.String("query")

	result, err := r.fetchPage(ctx, page, query)
	if err != nil {
		return err
	}

	switch {
	case cmd.Bool("csv"):
		data, err := formatter.PageToCSV(result)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	case cmd.Bool("markdown"):
		return r.writePlain("%s", formatter.PageToMarkdown(result))
	default:
		return r.writePlain("%s", formatter.PageToText(result))
	}
}

// ContactsGet prints a single contact's detail.
func (r *Runner) ContactsGet(ctx context.Context, cmd *cli.Command) error {
	id, err := contactIDArg(cmd)
	if err != nil {
		return err
	}

	contact, err := r.contacts.Get(ctx, id)
	if err != nil {
		return err
	}
	return r.writePlain("%s", formatter.ContactToText(*contact))
}

// ContactsCreate creates a contact and shows the refreshed first page,
// per the refetch policy for creation.
func (r *Runner) ContactsCreate(ctx context.Context, cmd *cli.Command) error {
	params, err := contactParams(cmd)
	if err != nil {
		return err
	}

	contact, err := r.contacts.Create(ctx, params)
	if err != nil {
		return err
	}

	r.writePlain("✓ Created %s (id %d)\n\n", contact.FullName(), contact.ID)
	return r.refetchAfter(ctx, tasks.MutationCreate, 0, "")
}

// ContactsUpdate updates a contact by ID.
func (r *Runner) ContactsUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := contactIDArg(cmd)
	if err != nil {
		return err
	}

	params, err := contactParams(cmd)
	if err != nil {
		return err
	}

	contact, err := r.contacts.Update(ctx, id, params)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Updated %s\n", contact.FullName())
}

// ContactsDelete removes a contact after an explicit confirmation. The
// --yes flag stands in for the prompt in scripts.
func (r *Runner) ContactsDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := contactIDArg(cmd)
	if err != nil {
		return err
	}

	if !cmd.Bool("yes") {
		if !r.confirm(fmt.Sprintf("Delete contact %d? This cannot be undone.", id)) {
			return r.writePlain("Aborted.\n")
		}
	}

	if err := r.contacts.Delete(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted contact %d\n", id)
}

// ContactsImage replaces a contact's image from a local file.
func (r *Runner) ContactsImage(ctx context.Context, cmd *cli.Command) error {
	id, err := contactIDArg(cmd)
	if err != nil {
		return err
	}

	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path argument is required", shared.ErrMissingArgument)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image file: %w", err)
	}

	part := services.FilePart{Field: "image", Name: filepath.Base(path), Content: data}
	contact, err := r.contacts.PatchImage(ctx, id, part)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Image updated: %s\n", contact.Image)
}

// ContactsExport downloads the collection and saves it as contacts.csv.
func (r *Runner) ContactsExport(ctx context.Context, cmd *cli.Command) error {
	data, err := r.contacts.Export(ctx)
	if err != nil {
		return err
	}

	dir := cmd.String("output")
	if dir == "" {
		dir = r.config.Export.Directory
	}

	path, err := formatter.SaveExport(dir, data)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Exported to %s\n", path)
}

// ContactsImport uploads a CSV and prints the server's summary verbatim,
// then shows the refreshed first page.
func (r *Runner) ContactsImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path argument is required", shared.ErrMissingArgument)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	message, err := r.contacts.Import(ctx, filepath.Base(path), data)
	if err != nil {
		return err
	}

	r.writePlain("%s\n\n", message)
	return r.refetchAfter(ctx, tasks.MutationImport, 0, "")
}

// refetchAfter applies the mutation's refetch policy and renders the
// resulting page, so the CLI shows the same post-mutation state the TUI
// would.
func (r *Runner) refetchAfter(ctx context.Context, m tasks.Mutation, page int, query string) error {
	switch tasks.PolicyFor(m) {
	case tasks.RefetchFirstPage:
		page = 0
	case tasks.RefetchNone:
		return nil
	}

	result, err := r.fetchPage(ctx, page, query)
	if err != nil {
		r.logger.Warn("failed to refresh contact list", "error", err)
		return nil
	}
	return r.writePlain("%s", formatter.PageToText(result))
}

func contactIDArg(cmd *cli.Command) (int64, error) {
	raw := cmd.StringArg("id")
	if raw == "" {
		return 0, fmt.Errorf("%w: id argument is required", shared.ErrMissingArgument)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be a number, got %q", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

func contactParams(cmd *cli.Command) (services.ContactParams, error) {
	params := services.ContactParams{
		FirstName: cmd.String("first-name"),
		LastName:  cmd.String("last-name"),
		Email:     cmd.String("email"),
		Phone:     cmd.String("phone"),
		Title:     cmd.String("title"),
	}

	if imagePath := cmd.String("image"); imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return params, fmt.Errorf("failed to read image file: %w", err)
		}
		params.Image = &services.FilePart{Field: "image", Name: filepath.Base(imagePath), Content: data}
	}

	return params, nil
}
