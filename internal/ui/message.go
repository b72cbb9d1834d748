package ui

import (
	"github.com/connectbase/cbx/internal/models"
	"github.com/connectbase/cbx/internal/tasks"
)

// pageFetchedMsg carries a contact page response back to the update loop,
// still stamped with the spec it was issued under.
type pageFetchedMsg struct {
	spec tasks.FetchSpec
	page models.ContactPage
	err  error
}

// debounceElapsedMsg signals the end of a search quiet period. The token
// ties it to the keystroke that scheduled it; a later keystroke makes it
// a no-op.
type debounceElapsedMsg struct {
	token uint64
}

// toastClearMsg dismisses the status toast if it is still the one that
// scheduled the timer.
type toastClearMsg struct {
	id int
}

type loginResultMsg struct {
	err error
}

type logoutDoneMsg struct {
	err error
}

type userFetchedMsg struct {
	user *models.User
	err  error
}

type contactFetchedMsg struct {
	contact *models.Contact
	err     error
}

// contactSavedMsg reports a create or update round trip.
type contactSavedMsg struct {
	contact  *models.Contact
	mutation tasks.Mutation
	err      error
}

type contactDeletedMsg struct {
	id  int64
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

// imagePatchedMsg reports the image upload behind an optimistic preview.
type imagePatchedMsg struct {
	contact *models.Contact
	err     error
}
