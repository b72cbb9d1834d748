package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/connectbase/cbx/internal/formatter"
	"github.com/connectbase/cbx/internal/models"
	"github.com/connectbase/cbx/internal/services"
	"github.com/connectbase/cbx/internal/session"
	"github.com/connectbase/cbx/internal/shared"
	"github.com/connectbase/cbx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LandingView ViewState = iota
	AuthView
	ContactListView
	ContactFormView
	ConfirmDeleteView
	ContactDetailView
	ProfileView
)

// toast is the transient status line shown under the active view.
type toast struct {
	id   int
	text string
	err  bool
}

// ModelOpts carries the dependencies for [NewModel].
type ModelOpts struct {
	Auth      services.AuthAPI
	Contacts  services.ContactAPI
	Session   *session.Session
	ExportDir string
	Logger    *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	auth       services.AuthAPI
	contacts   services.ContactAPI
	sess       *session.Session
	controller *tasks.ListController
	logger     *log.Logger
	exportDir  string

	width  int
	height int
	keys   keyMap
	help   help.Model

	contactList list.Model
	listReady   bool
	searchInput textinput.Model
	searching   bool

	emailInput    textinput.Model
	passwordInput textinput.Model
	authFocus     int

	form contactForm

	detail       *models.Contact
	image        models.ImageState
	imageInput   textinput.Model
	editingImage bool

	pendingDelete *models.Contact
	user          *models.User

	toast    toast
	toastSeq int
}

// NewModel creates a new TUI model with the provided dependencies. The
// initial view follows the route guard: a restored session lands on the
// contact list, everyone else on the landing screen.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	search := textinput.New()
	search.Placeholder = "Search contacts..."
	search.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	imageInput := textinput.New()
	imageInput.Placeholder = "path to image file"

	m := &Model{
		ctx:           ctx,
		view:          LandingView,
		auth:          opts.Auth,
		contacts:      opts.Contacts,
		sess:          opts.Session,
		controller:    tasks.NewListController(opts.Contacts, logger),
		logger:        logger,
		exportDir:     opts.ExportDir,
		keys:          newKeyMap(),
		help:          help.New(),
		searchInput:   search,
		emailInput:    email,
		passwordInput: password,
		form:          newContactForm(),
		imageInput:    imageInput,
	}

	if session.Resolve(m.sess.State(), session.RouteContacts).Allow {
		m.view = ContactListView
	}
	return m
}

// Init issues the initial page fetch when the session allows the list.
func (m *Model) Init() tea.Cmd {
	if m.view == ContactListView {
		return m.fetchCmd(m.controller.Mount())
	}
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listReady {
			m.contactList.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LandingView:
			return m.handleLandingKeys(msg)
		case AuthView:
			return m.handleAuthKeys(msg)
		case ContactListView:
			return m.handleListKeys(msg)
		case ContactFormView:
			return m.handleFormKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		case ContactDetailView:
			return m.handleDetailKeys(msg)
		case ProfileView:
			return m.handleProfileKeys(msg)
		}

	case pageFetchedMsg:
		return m.handlePageFetched(msg)

	case debounceElapsedMsg:
		if spec, ok := m.controller.QueryElapsed(msg.token); ok {
			return m, m.fetchCmd(spec)
		}
		return m, nil

	case toastClearMsg:
		if msg.id == m.toast.id {
			m.toast = toast{}
		}
		return m, nil

	case loginResultMsg:
		if msg.err != nil {
			return m, m.showToast(fmt.Sprintf("Login failed: %v", msg.err), true)
		}
		m.sess.LoginSucceeded()
		m.passwordInput.SetValue("")
		m.view = ContactListView
		return m, m.fetchCmd(m.controller.Mount())

	case logoutDoneMsg:
		if msg.err != nil {
			m.logger.Warn("server logout failed", "error", msg.err)
		}
		return m, m.showToast("Logged out.", false)

	case userFetchedMsg:
		if msg.err != nil {
			return m.handleRequestError(msg.err)
		}
		m.user = msg.user
		return m, nil

	case contactFetchedMsg:
		if msg.err != nil {
			return m.handleRequestError(msg.err)
		}
		m.detail = msg.contact
		m.image = models.CommittedImage(msg.contact.Image)
		m.editingImage = false
		m.view = ContactDetailView
		return m, nil

	case contactSavedMsg:
		if msg.err != nil {
			// Keep the form and its data so nothing typed is lost.
			return m, m.showToast(fmt.Sprintf("Save failed: %v", msg.err), true)
		}
		m.view = ContactListView
		spec, _ := m.controller.AfterMutation(msg.mutation)
		return m, tea.Batch(
			m.showToast(fmt.Sprintf("Saved %s.", msg.contact.FullName()), false),
			m.fetchCmd(spec),
		)

	case contactDeletedMsg:
		m.pendingDelete = nil
		m.view = ContactListView
		if msg.err != nil {
			return m.handleRequestError(msg.err)
		}
		spec, _ := m.controller.AfterMutation(tasks.MutationDelete)
		return m, tea.Batch(
			m.showToast("Contact deleted.", false),
			m.fetchCmd(spec),
		)

	case exportDoneMsg:
		if msg.err != nil {
			return m, m.showToast(fmt.Sprintf("Export failed: %v", msg.err), true)
		}
		return m, m.showToast(fmt.Sprintf("Exported to %s.", msg.path), false)

	case imagePatchedMsg:
		if msg.err != nil {
			m.image = m.image.Rollback()
			return m, m.showToast(fmt.Sprintf("Image upload failed: %v", msg.err), true)
		}
		m.image = m.image.Commit(msg.contact.Image)
		if m.detail != nil {
			m.detail.Image = msg.contact.Image
		}
		return m, m.showToast("Image updated.", false)
	}

	return m.updateInputs(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case LandingView:
		return m.renderLanding()
	case AuthView:
		return m.renderAuth()
	case ContactListView:
		return m.renderList()
	case ContactFormView:
		return m.renderForm()
	case ConfirmDeleteView:
		return m.renderConfirm()
	case ContactDetailView:
		return m.renderDetail()
	case ProfileView:
		return m.renderProfile()
	default:
		return ""
	}
}

// navigate runs the route guard and switches to the resulting view.
func (m *Model) navigate(route session.Route) tea.Cmd {
	decision := session.Resolve(m.sess.State(), route)
	if !decision.Allow {
		route = decision.Redirect
	}

	switch route {
	case session.RouteContacts:
		m.view = ContactListView
		return m.fetchCmd(m.controller.Refresh())
	case session.RouteProfile:
		m.view = ProfileView
		return m.fetchUserCmd()
	case session.RouteAuth:
		m.view = AuthView
		m.authFocus = 0
		m.emailInput.Focus()
		m.passwordInput.Blur()
		return textinput.Blink
	default:
		m.view = LandingView
		return nil
	}
}

// handleRequestError routes a failed request's error: an expired session
// bounces to the auth form, everything else becomes a toast.
func (m *Model) handleRequestError(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, shared.ErrSessionExpired) {
		m.sess.AuthRejected()
		cmd := m.navigate(session.RouteAuth)
		return m, tea.Batch(cmd, m.showToast("Session expired. Please log in again.", true))
	}
	return m, m.showToast(err.Error(), true)
}

func (m *Model) handlePageFetched(msg pageFetchedMsg) (tea.Model, tea.Cmd) {
	result := m.controller.Apply(msg.spec, msg.page, msg.err)

	switch result.Status {
	case tasks.Stale:
		return m, nil

	case tasks.Emptied:
		m.setListItems(models.ContactPage{})
		return m, m.showToast(result.Message, true)

	case tasks.Failed:
		if errors.Is(msg.err, shared.ErrSessionExpired) {
			return m.handleRequestError(msg.err)
		}
		// Previous page stays on screen; only announce the failure.
		return m, m.showToast(result.Message, true)
	}

	m.setListItems(msg.page)
	return m, nil
}

func (m *Model) setListItems(page models.ContactPage) {
	items := make([]list.Item, len(page.Content))
	for i, c := range page.Content {
		items[i] = contactItem{contact: c}
	}

	if !m.listReady {
		m.contactList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.contactList.Title = "Contacts"
		m.contactList.SetShowHelp(false)
		m.contactList.SetFilteringEnabled(false)
		m.contactList.SetSize(m.width-4, m.height-10)
		m.listReady = true
		return
	}
	m.contactList.SetItems(items)
}

func (m *Model) handleLandingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "l", "enter":
		return m, m.navigate(session.RouteAuth)
	}
	return m, nil
}

func (m *Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = LandingView
		return m, nil
	case "tab", "shift+tab":
		m.authFocus = (m.authFocus + 1) % 2
		if m.authFocus == 0 {
			m.emailInput.Focus()
			m.passwordInput.Blur()
		} else {
			m.emailInput.Blur()
			m.passwordInput.Focus()
		}
		return m, textinput.Blink
	case "enter":
		if m.authFocus == 0 {
			m.authFocus = 1
			m.emailInput.Blur()
			m.passwordInput.Focus()
			return m, textinput.Blink
		}
		return m, m.loginCmd(m.emailInput.Value(), m.passwordInput.Value())
	}

	var cmd tea.Cmd
	if m.authFocus == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case "left", "h":
		if spec, ok := m.controller.PrevPage(); ok {
			return m, m.fetchCmd(spec)
		}
		return m, nil
	case "right", "l":
		if spec, ok := m.controller.NextPage(); ok {
			return m, m.fetchCmd(spec)
		}
		return m, nil
	case "r":
		return m, m.fetchCmd(m.controller.Refresh())
	case "n":
		m.form = newContactForm()
		m.view = ContactFormView
		return m, textinput.Blink
	case "e":
		if c, ok := m.selectedContact(); ok {
			m.form = newContactForm()
			m.form.load(c)
			m.view = ContactFormView
			return m, textinput.Blink
		}
		return m, nil
	case "d":
		if c, ok := m.selectedContact(); ok {
			m.pendingDelete = &c
			m.view = ConfirmDeleteView
		}
		return m, nil
	case "x":
		return m, m.exportCmd()
	case "p":
		return m, m.navigate(session.RouteProfile)
	case "L":
		// Local state clears first; the server call is best-effort.
		m.sess.Logout()
		m.view = LandingView
		return m, m.logoutCmd()
	case "enter":
		if c, ok := m.selectedContact(); ok {
			return m, m.fetchContactCmd(c.ID)
		}
		return m, nil
	}

	if m.listReady {
		var cmd tea.Cmd
		m.contactList, cmd = m.contactList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if value := m.searchInput.Value(); value != before {
		token := m.controller.EditQuery(value)
		return m, tea.Batch(cmd, m.scheduleDebounce(token))
	}
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		if m.pendingDelete != nil {
			return m, m.deleteCmd(m.pendingDelete.ID)
		}
		m.view = ContactListView
		return m, nil
	case "n", "esc", "q":
		// Cancelled: no request is issued and the list stays as it was.
		m.pendingDelete = nil
		m.view = ContactListView
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingImage {
		switch msg.String() {
		case "esc":
			m.editingImage = false
			m.imageInput.Blur()
			return m, nil
		case "enter":
			path := m.imageInput.Value()
			m.editingImage = false
			m.imageInput.Blur()
			if path == "" || m.detail == nil {
				return m, nil
			}
			// Optimistic: show the local path as a preview immediately.
			m.image = m.image.Begin(path)
			return m, m.patchImageCmd(m.detail.ID, path)
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.imageInput, cmd = m.imageInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ContactListView
		return m, nil
	case "i":
		m.editingImage = true
		m.imageInput.SetValue("")
		m.imageInput.Focus()
		return m, textinput.Blink
	case "e":
		if m.detail != nil {
			m.form = newContactForm()
			m.form.load(*m.detail)
			m.view = ContactFormView
			return m, textinput.Blink
		}
		return m, nil
	case "d":
		if m.detail != nil {
			m.pendingDelete = m.detail
			m.view = ConfirmDeleteView
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleProfileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m, m.navigate(session.RouteContacts)
	}
	return m, nil
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ContactListView:
		if m.searching {
			m.searchInput, cmd = m.searchInput.Update(msg)
		} else if m.listReady {
			m.contactList, cmd = m.contactList.Update(msg)
		}
	case AuthView:
		if m.authFocus == 0 {
			m.emailInput, cmd = m.emailInput.Update(msg)
		} else {
			m.passwordInput, cmd = m.passwordInput.Update(msg)
		}
	}
	return m, cmd
}

func (m *Model) selectedContact() (models.Contact, bool) {
	if !m.listReady {
		return models.Contact{}, false
	}
	if item, ok := m.contactList.SelectedItem().(contactItem); ok {
		return item.contact, true
	}
	return models.Contact{}, false
}

// showToast replaces the status line and schedules its dismissal. The id
// keeps an earlier timer from clearing a newer toast.
func (m *Model) showToast(text string, isErr bool) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toast = toast{id: id, text: text, err: isErr}
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return toastClearMsg{id: id}
	})
}

func (m *Model) scheduleDebounce(token uint64) tea.Cmd {
	return tea.Tick(tasks.DebounceInterval, func(time.Time) tea.Msg {
		return debounceElapsedMsg{token: token}
	})
}

func (m *Model) fetchCmd(spec tasks.FetchSpec) tea.Cmd {
	return func() tea.Msg {
		page, err := m.controller.Fetch(m.ctx, spec)
		return pageFetchedMsg{spec: spec, page: page, err: err}
	}
}

func (m *Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		return loginResultMsg{err: m.auth.Login(m.ctx, email, password)}
	}
}

func (m *Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: m.auth.Logout(m.ctx)}
	}
}

func (m *Model) fetchUserCmd() tea.Cmd {
	return func() tea.Msg {
		user, err := m.auth.CurrentUser(m.ctx)
		return userFetchedMsg{user: user, err: err}
	}
}

func (m *Model) fetchContactCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		contact, err := m.contacts.Get(m.ctx, id)
		return contactFetchedMsg{contact: contact, err: err}
	}
}

func (m *Model) saveContactCmd(params services.ContactParams, editID *int64) tea.Cmd {
	return func() tea.Msg {
		if editID != nil {
			contact, err := m.contacts.Update(m.ctx, *editID, params)
			return contactSavedMsg{contact: contact, mutation: tasks.MutationUpdate, err: err}
		}
		contact, err := m.contacts.Create(m.ctx, params)
		return contactSavedMsg{contact: contact, mutation: tasks.MutationCreate, err: err}
	}
}

func (m *Model) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		return contactDeletedMsg{id: id, err: m.contacts.Delete(m.ctx, id)}
	}
}

func (m *Model) exportCmd() tea.Cmd {
	return func() tea.Msg {
		data, err := m.contacts.Export(m.ctx)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path, err := formatter.SaveExport(m.exportDir, data)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m *Model) patchImageCmd(id int64, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return imagePatchedMsg{err: err}
		}
		part := services.FilePart{Field: "image", Name: filepath.Base(path), Content: data}
		contact, err := m.contacts.PatchImage(m.ctx, id, part)
		return imagePatchedMsg{contact: contact, err: err}
	}
}
