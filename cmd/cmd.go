// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for local state.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the local database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Log out and clear the local session",
				Action: r.AuthLogout,
			},
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "first-name", Usage: "First name", Required: true},
					&cli.StringFlag{Name: "last-name", Usage: "Last name", Required: true},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email", Required: true},
					&cli.StringFlag{Name: "phone", Usage: "Phone number"},
					&cli.StringFlag{Name: "gender", Usage: "Gender"},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password", Required: true},
					&cli.StringFlag{Name: "image", Usage: "Path to a profile image"},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "forgot-password",
				Usage: "Request a password reset code by email",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "email"},
				},
				Action: r.AuthForgotPassword,
			},
			{
				Name:  "reset-password",
				Usage: "Redeem a reset code for a new password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "code", Usage: "Reset code from the email", Required: true},
					&cli.StringFlag{Name: "new-password", Usage: "New password", Required: true},
				},
				Action: r.AuthResetPassword,
			},
			{
				Name:  "change-password",
				Usage: "Change the logged-in account's password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "old", Usage: "Current password", Required: true},
					&cli.StringFlag{Name: "new", Usage: "New password", Required: true},
					&cli.StringFlag{Name: "code", Usage: "Verification code, when the server demands one"},
				},
				Action: r.AuthChangePassword,
			},
			{
				Name:   "status",
				Usage:  "Show the local session state and verify it with the server",
				Action: r.AuthStatus,
			},
		},
	}
}

// contactsCommand handles contact collection operations
func contactsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "contacts",
		Aliases: []string{"c"},
		Usage:   "Manage contacts",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List one page of contacts",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "page", Usage: "Zero-based page number", Value: 0},
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Search term"},
					&cli.BoolFlag{Name: "markdown", Usage: "Render as a Markdown table"},
					&cli.BoolFlag{Name: "csv", Usage: "Render as CSV"},
				},
				Action: r.ContactsList,
			},
			{
				Name:  "get",
				Usage: "Show a single contact",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.ContactsGet,
			},
			{
				Name:  "create",
				Usage: "Create a contact",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "first-name", Usage: "First name", Required: true},
					&cli.StringFlag{Name: "last-name", Usage: "Last name"},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email"},
					&cli.StringFlag{Name: "phone", Usage: "Phone number"},
					&cli.StringFlag{Name: "title", Usage: "Job title"},
					&cli.StringFlag{Name: "image", Usage: "Path to an image file"},
				},
				Action: r.ContactsCreate,
			},
			{
				Name:  "update",
				Usage: "Update a contact",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "first-name", Usage: "First name"},
					&cli.StringFlag{Name: "last-name", Usage: "Last name"},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email"},
					&cli.StringFlag{Name: "phone", Usage: "Phone number"},
					&cli.StringFlag{Name: "title", Usage: "Job title"},
					&cli.StringFlag{Name: "image", Usage: "Path to an image file"},
				},
				Action: r.ContactsUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete a contact (asks for confirmation)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
				},
				Action: r.ContactsDelete,
			},
			{
				Name:  "image",
				Usage: "Replace a contact's image",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "path"},
				},
				Action: r.ContactsImage,
			},
			{
				Name:  "export",
				Usage: "Download the full collection as contacts.csv",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Directory to save into"},
				},
				Action: r.ContactsExport,
			},
			{
				Name:  "import",
				Usage: "Upload a CSV of contacts",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.ContactsImport,
			},
		},
	}
}

// profileCommand handles the logged-in user's account
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Show the logged-in user's profile",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Display account details from the server",
				Action: r.ProfileShow,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive contact management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive contact manager",
		Action:  r.TUI,
	}
}
