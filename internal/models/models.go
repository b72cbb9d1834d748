// package models defines the data model for the ConnectBase terminal client
package models

import "time"

// Contact represents a single contact record owned by the authenticated user.
//
// The ID is server-assigned and immutable; it is required for update, delete
// and image-patch operations. All other fields are optional display data.
type Contact struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Title     string     `json:"title"`
	Image     string     `json:"image"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// FullName returns the contact's display name.
func (c Contact) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// User represents the authenticated user's profile as returned by /auth/me.
type User struct {
	ID         int64      `json:"id"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Gender     string     `json:"gender"`
	ProfilePic string     `json:"profilePic"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// ContactPage is one page of the contacts collection as the server reports it.
//
// Number is zero-based. An empty Content with TotalPages == 0 is the valid
// "no results" state. Pages are replaced wholesale on every successful fetch,
// never patched incrementally.
type ContactPage struct {
	Content       []Contact `json:"content"`
	TotalPages    int       `json:"totalPages"`
	TotalElements int       `json:"totalElements"`
	Number        int       `json:"number"`
}

// Empty reports whether the page holds no records.
func (p ContactPage) Empty() bool {
	return len(p.Content) == 0
}

// RangeLabel returns the "Showing X to Y of Z" bounds for the page,
// given the requested page size.
func (p ContactPage) RangeLabel(size int) (from, to, total int) {
	if len(p.Content) == 0 {
		return 0, 0, p.TotalElements
	}
	from = p.Number*size + 1
	to = min((p.Number+1)*size, p.TotalElements)
	return from, to, p.TotalElements
}

// HasNext reports whether a later page exists.
func (p ContactPage) HasNext() bool {
	return p.Number < p.TotalPages-1
}

// HasPrev reports whether an earlier page exists.
func (p ContactPage) HasPrev() bool {
	return p.Number > 0
}
