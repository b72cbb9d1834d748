package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/connectbase/cbx/internal/models"
	"github.com/connectbase/cbx/internal/services"
)

// form field indices, in display order.
const (
	fieldFirstName = iota
	fieldLastName
	fieldEmail
	fieldPhone
	fieldTitle
	fieldCount
)

// contactForm holds the create/edit inputs. The same form serves both
// flows; editID distinguishes them.
type contactForm struct {
	inputs []textinput.Model
	focus  int
	editID *int64
}

func newContactForm() contactForm {
	placeholders := [fieldCount]string{"first name", "last name", "email", "phone", "title"}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 128
		inputs[i] = in
	}
	inputs[fieldFirstName].Focus()

	return contactForm{inputs: inputs}
}

// load pre-fills the form with an existing contact for editing.
func (f *contactForm) load(c models.Contact) {
	id := c.ID
	f.editID = &id
	f.inputs[fieldFirstName].SetValue(c.FirstName)
	f.inputs[fieldLastName].SetValue(c.LastName)
	f.inputs[fieldEmail].SetValue(c.Email)
	f.inputs[fieldPhone].SetValue(c.Phone)
	f.inputs[fieldTitle].SetValue(c.Title)
}

func (f *contactForm) params() services.ContactParams {
	return services.ContactParams{
		FirstName: f.inputs[fieldFirstName].Value(),
		LastName:  f.inputs[fieldLastName].Value(),
		Email:     f.inputs[fieldEmail].Value(),
		Phone:     f.inputs[fieldPhone].Value(),
		Title:     f.inputs[fieldTitle].Value(),
	}
}

func (f *contactForm) editing() bool {
	return f.editID != nil
}

func (f *contactForm) setFocus(i int) tea.Cmd {
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return textinput.Blink
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		// Abandoning the form discards nothing server-side.
		m.view = ContactListView
		return m, nil
	case "tab", "down":
		return m, m.form.setFocus((m.form.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m, m.form.setFocus((m.form.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if m.form.focus < fieldCount-1 {
			return m, m.form.setFocus(m.form.focus + 1)
		}
		return m, m.saveContactCmd(m.form.params(), m.form.editID)
	case "ctrl+s":
		return m, m.saveContactCmd(m.form.params(), m.form.editID)
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}
