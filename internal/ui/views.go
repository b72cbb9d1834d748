package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/connectbase/cbx/internal/formatter"
	"github.com/connectbase/cbx/internal/tasks"
)

func (m *Model) renderLanding() string {
	title := styles.title.Render("ConnectBase")
	body := "Manage your contacts from the terminal.\n"

	loginKey := key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log in"))
	helpView := m.help.ShortHelpView([]key.Binding{loginKey, m.keys.quit})

	return fmt.Sprintf("%s\n%s\n%s%s", title, body, m.toastLine(), helpView)
}

func (m *Model) renderAuth() string {
	title := styles.title.Render("Log in")

	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(m.emailInput.View() + "\n")
	b.WriteString(m.passwordInput.View() + "\n\n")

	submitKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))
	helpView := m.help.ShortHelpView([]key.Binding{submitKey, m.keys.back, m.keys.quit})

	return fmt.Sprintf("%s%s%s", b.String(), m.toastLine(), helpView)
}

func (m *Model) renderList() string {
	var b strings.Builder

	if m.searching || m.searchInput.Value() != "" {
		b.WriteString(m.searchInput.View() + "\n")
	}

	if m.listReady {
		b.WriteString(m.contactList.View() + "\n")
	} else {
		b.WriteString("Loading contacts...\n")
	}

	if page := m.controller.Current(); !page.Empty() {
		from, to, total := page.RangeLabel(tasks.PageSize)
		b.WriteString(styles.help.Render(fmt.Sprintf(
			"Showing %d to %d of %d contacts (page %d of %d)",
			from, to, total, page.Number+1, page.TotalPages)) + "\n")
	} else if m.listReady {
		b.WriteString(styles.help.Render("No contacts found.") + "\n")
	}

	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.search, m.keys.create, m.keys.edit, m.keys.delete,
		m.keys.prev, m.keys.next, m.keys.export, m.keys.profile, m.keys.quit,
	})

	return fmt.Sprintf("%s%s%s", b.String(), m.toastLine(), helpView)
}

func (m *Model) renderForm() string {
	heading := "New contact"
	if m.form.editing() {
		heading = "Edit contact"
	}
	title := styles.title.Render(heading)

	var b strings.Builder
	b.WriteString(title + "\n")
	for _, in := range m.form.inputs {
		b.WriteString(in.View() + "\n")
	}
	b.WriteString("\n")

	saveKey := key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save"))
	helpView := m.help.ShortHelpView([]key.Binding{saveKey, m.keys.back, m.keys.quit})

	return fmt.Sprintf("%s%s%s", b.String(), m.toastLine(), helpView)
}

func (m *Model) renderConfirm() string {
	name := ""
	if m.pendingDelete != nil {
		name = m.pendingDelete.FullName()
	}

	title := styles.warn.Render(fmt.Sprintf("Delete '%s'?", name))
	body := "This cannot be undone.\n"

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})

	return fmt.Sprintf("%s\n%s\n%s%s", title, body, m.toastLine(), helpView)
}

func (m *Model) renderDetail() string {
	if m.detail == nil {
		return "No contact selected.\n"
	}

	title := styles.title.Render(m.detail.FullName())

	display := *m.detail
	display.Image = m.image.URL()

	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(formatter.ContactToText(display))
	if m.image.Pending() {
		b.WriteString(styles.warn.Render("(image upload in progress)") + "\n")
	}

	if m.editingImage {
		b.WriteString("\n" + m.imageInput.View() + "\n")
	}
	b.WriteString("\n")

	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.edit, m.keys.delete, m.keys.image, m.keys.back, m.keys.quit,
	})

	return fmt.Sprintf("%s%s%s", b.String(), m.toastLine(), helpView)
}

func (m *Model) renderProfile() string {
	title := styles.title.Render("Profile")

	var b strings.Builder
	b.WriteString(title + "\n")
	if m.user != nil {
		b.WriteString(formatter.UserToText(*m.user))
	} else {
		b.WriteString("Loading profile...\n")
	}
	b.WriteString("\n")

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})

	return fmt.Sprintf("%s%s%s", b.String(), m.toastLine(), helpView)
}

// toastLine renders the transient status line, empty when no toast shows.
func (m *Model) toastLine() string {
	if m.toast.text == "" {
		return ""
	}
	if m.toast.err {
		return styles.err.Render(m.toast.text) + "\n\n"
	}
	return styles.ok.Render(m.toast.text) + "\n\n"
}
