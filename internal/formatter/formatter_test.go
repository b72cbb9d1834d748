package formatter

import (
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/connectbase/cbx/internal/models"
	tu "github.com/connectbase/cbx/internal/testing"
)

func samplePage() models.ContactPage {
	return models.ContactPage{
		Content: []models.Contact{
			{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "555-0100", Title: "Engineer"},
			{ID: 2, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Phone: "555-0101", Title: "Admiral"},
		},
		TotalPages:    3,
		TotalElements: 25,
		Number:        0,
	}
}

func TestPageToText(t *testing.T) {
	t.Run("Lists Contacts With Summary Line", func(t *testing.T) {
		out := PageToText(samplePage())

		if !strings.Contains(out, "Ada Lovelace") {
			t.Errorf("expected contact name in output:\n%s", out)
		}
		if !strings.Contains(out, "Showing 1 to 2 of 25 contacts (page 1 of 3)") {
			t.Errorf("expected summary line in output:\n%s", out)
		}
	})

	t.Run("Empty Page", func(t *testing.T) {
		out := PageToText(models.ContactPage{})
		if !strings.Contains(out, "No contacts found") {
			t.Errorf("expected empty-state message, got:\n%s", out)
		}
	})
}

func TestPageToMarkdown(t *testing.T) {
	out := PageToMarkdown(samplePage())

	if !strings.Contains(out, "| 1 | Ada Lovelace | ada@example.com | 555-0100 | Engineer |") {
		t.Errorf("expected table row in output:\n%s", out)
	}
	if !strings.Contains(out, "| ID | Name | Email | Phone | Title |") {
		t.Errorf("expected header row in output:\n%s", out)
	}
}

func TestPageToCSV(t *testing.T) {
	data, err := PageToCSV(samplePage())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output should be valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus two rows, got %d", len(records))
	}
	if records[0][1] != "First Name" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][1] != "Ada" || records[2][1] != "Grace" {
		t.Errorf("unexpected rows: %v", records[1:])
	}
}

func TestContactToText(t *testing.T) {
	c := samplePage().Content[0]
	out := ContactToText(c)

	for _, want := range []string{"Ada Lovelace", "ada@example.com", "Engineer"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	t.Run("Omits Empty Fields", func(t *testing.T) {
		out := ContactToText(models.Contact{ID: 3, FirstName: "Solo"})
		if strings.Contains(out, "Title:") || strings.Contains(out, "Image:") {
			t.Errorf("expected empty fields to be omitted:\n%s", out)
		}
	})
}

func TestUserToText(t *testing.T) {
	out := UserToText(models.User{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"})
	if !strings.Contains(out, "Jane Doe") || !strings.Contains(out, "jane@example.com") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestSaveExport(t *testing.T) {
	t.Run("Writes contacts.csv", func(t *testing.T) {
		dir := t.TempDir()

		path, err := SaveExport(dir, []byte("ID,First Name\n1,Ada\n"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if filepath.Base(path) != ExportFilename {
			t.Errorf("expected %s, got %s", ExportFilename, path)
		}

		tu.AssertFileExists(t, path)
		if got := tu.MustReadFile(t, path); !strings.Contains(got, "Ada") {
			t.Errorf("unexpected file content: %q", got)
		}
	})

	t.Run("Creates Missing Directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "exports")

		path, err := SaveExport(dir, []byte("data"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, path)
	})
}
