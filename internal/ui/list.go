package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/connectbase/cbx/internal/models"
)

var _ list.Item = contactItem{}

// contactItem wraps [models.Contact] to implement [list.Item].
type contactItem struct {
	contact models.Contact
}

func (i contactItem) FilterValue() string { return i.contact.FullName() }
func (i contactItem) Title() string       { return i.contact.FullName() }
func (i contactItem) Description() string {
	desc := i.contact.Email
	if i.contact.Title != "" {
		desc = fmt.Sprintf("%s • %s", i.contact.Title, desc)
	}
	if i.contact.Phone != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.contact.Phone)
	}
	return desc
}
