// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI mirrors the web client's screens:
//  1. [LandingView] : Entry point with login/signup shortcuts
//  2. [AuthView] : Email and password login form
//  3. [ContactListView] : Paginated, searchable contact list
//  4. [ContactFormView] : Create or edit a contact
//  5. [ConfirmDeleteView] : Explicit confirmation gate before deletion
//  6. [ContactDetailView] : Single contact with image replacement
//  7. [ProfileView] : The logged-in user's account
//
// The [Model] implements bubbletea's standard Init/Update/View pattern. All
// network work runs inside tea.Cmd closures so the single-threaded update
// loop never blocks; results come back as typed messages. Navigation runs
// through the session route guard, so protected views bounce to the auth
// form whenever the session is anonymous.
//
// Keyboard navigation uses vim-style bindings (j/k, h/l, enter, esc, y/n, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
