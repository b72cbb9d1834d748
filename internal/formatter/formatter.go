// package formatter renders contact data for terminal output and files
// (plain text, Markdown, CSV).
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/connectbase/cbx/internal/models"
	"github.com/connectbase/cbx/internal/tasks"
)

// ExportFilename is the fixed name the exported collection is saved under.
const ExportFilename = "contacts.csv"

// PageToText renders one contact page as aligned plain text with the
// "Showing X to Y of Z" summary line.
func PageToText(page models.ContactPage) string {
	var buf bytes.Buffer

	if page.Empty() {
		buf.WriteString("No contacts found.\n")
		return buf.String()
	}

	for _, c := range page.Content {
		buf.WriteString(fmt.Sprintf("%-6d %-28s %-28s %s\n", c.ID, c.FullName(), c.Email, c.Phone))
	}

	from, to, total := page.RangeLabel(tasks.PageSize)
	buf.WriteString(fmt.Sprintf("\nShowing %d to %d of %d contacts (page %d of %d)\n",
		from, to, total, page.Number+1, page.TotalPages))

	return buf.String()
}

// PageToMarkdown renders one contact page as a Markdown table.
func PageToMarkdown(page models.ContactPage) string {
	var buf bytes.Buffer

	buf.WriteString("| ID | Name | Email | Phone | Title |\n")
	buf.WriteString("|---|---|---|---|---|\n")
	for _, c := range page.Content {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			c.ID, c.FullName(), c.Email, c.Phone, c.Title))
	}

	from, to, total := page.RangeLabel(tasks.PageSize)
	buf.WriteString(fmt.Sprintf("\nShowing %d to %d of %d contacts\n", from, to, total))

	return buf.String()
}

// PageToCSV renders one contact page as CSV with a header row.
func PageToCSV(page models.ContactPage) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "First Name", "Last Name", "Email", "Phone", "Title"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, c := range page.Content {
		record := []string{
			strconv.FormatInt(c.ID, 10),
			c.FirstName,
			c.LastName,
			c.Email,
			c.Phone,
			c.Title,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ContactToText renders a single contact's full detail.
func ContactToText(c models.Contact) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("ID:    %d\n", c.ID))
	buf.WriteString(fmt.Sprintf("Name:  %s\n", c.FullName()))
	if c.Title != "" {
		buf.WriteString(fmt.Sprintf("Title: %s\n", c.Title))
	}
	buf.WriteString(fmt.Sprintf("Email: %s\n", c.Email))
	buf.WriteString(fmt.Sprintf("Phone: %s\n", c.Phone))
	if c.Image != "" {
		buf.WriteString(fmt.Sprintf("Image: %s\n", c.Image))
	}
	if c.CreatedAt != nil {
		buf.WriteString(fmt.Sprintf("Added: %s\n", c.CreatedAt.Format("2006-01-02")))
	}

	return buf.String()
}

// UserToText renders the logged-in user's profile.
func UserToText(u models.User) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Name:   %s %s\n", u.FirstName, u.LastName))
	buf.WriteString(fmt.Sprintf("Email:  %s\n", u.Email))
	if u.Phone != "" {
		buf.WriteString(fmt.Sprintf("Phone:  %s\n", u.Phone))
	}
	if u.Gender != "" {
		buf.WriteString(fmt.Sprintf("Gender: %s\n", u.Gender))
	}
	if u.ProfilePic != "" {
		buf.WriteString(fmt.Sprintf("Photo:  %s\n", u.ProfilePic))
	}

	return buf.String()
}

// SaveExport writes the server's CSV export into dir as contacts.csv and
// returns the written path.
func SaveExport(dir string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, ExportFilename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
