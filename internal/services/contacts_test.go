package services_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/connectbase/cbx/internal/services"
	"github.com/connectbase/cbx/internal/shared"
)

const pageEnvelope = `{
	"message": "Contacts retrieved",
	"success": true,
	"data": {
		"content": [
			{"id": 1, "firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "phone": "555-0100", "title": "Engineer"}
		],
		"totalPages": 3,
		"totalElements": 25,
		"number": 0
	},
	"timestamp": "2026-08-28T10:00:00Z"
}`

func newContactFixture(t *testing.T, handler http.Handler) *services.ContactService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gw := newTestGateway(t, server.URL, nil)
	return services.NewContactService(gw, nil)
}

func TestContactService(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		t.Run("Decodes Page Envelope", func(t *testing.T) {
			svc := newContactFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/contacts" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				q := r.URL.Query()
				if q.Get("page") != "0" || q.Get("size") != "10" {
					t.Errorf("unexpected paging params: %s", r.URL.RawQuery)
				}
				w.Write([]byte(pageEnvelope))
			}))

			page, err := svc.List(context.Background(), 0, 10)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if page.TotalPages != 3 || page.TotalElements != 25 || page.Number != 0 {
				t.Errorf("unexpected page metadata: %+v", page)
			}
			if len(page.Content) != 1 || page.Content[0].FullName() != "Ada Lovelace" {
				t.Errorf("unexpected page content: %+v", page.Content)
			}
		})

		t.Run("Missing Data Payload", func(t *testing.T) {
			svc := newContactFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"message": "ok", "success": true}`))
			}))

			_, err := svc.List(context.Background(), 0, 10)
			if !errors.Is(err, shared.ErrMalformedEnvelope) {
				t.Errorf("expected ErrMalformedEnvelope, got %v", err)
			}
		})

		t.Run("Non-JSON Body", func(t *testing.T) {
			svc := newContactFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>gateway error</html>"))
			}))

			_, err := svc.List(context.Background(), 0, 10)
			if !errors.Is(err, shared.ErrMalformedEnvelope) {
				t.Errorf("expected ErrMalformedEnvelope, got %v", err)
			}
		})
	})

	t.Run("Search Sends Query Term", func(t *testing.T) {
		svc := newContactFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/contacts/search" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.URL.Query().Get("query") != "ali" {
				t.Errorf("expected query=ali, got %s", r.URL.RawQuery)
			}
			w.Write([]byte(pageEnvelope))
		}))

		if _, err := svc.Search(context.Background(), "ali", 0, 10); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Get", func(t *testing.T) {
		svc := newContactFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/contact/42" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Write([]byte(`{"message": "ok", "data": {"id": 42, "firstName": "Ada"}}`))
		}))

		contact, err := svc.Get(context.Background(), 42)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if contact.ID != 42 {
			t.Errorf("unexpected contact: %+v", contact)
		}
	})

	t.Run("Create", func(t *testing.T) {
		svc := newContactFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/api/contact/create" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("expected multipart form: %v", err)
			}
			if r.FormValue("firstName") != "Grace" {
				t.Errorf("expected firstName field, got %s", r.FormValue("firstName"))
			}
			w.Write([]byte(`{"message": "created", "data": {"id": 9, "firstName": "Grace"}}`))
		}))

		contact, err := svc.Create(context.Background(), services.ContactParams{FirstName: "Grace", LastName: "Hopper"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if contact.ID != 9 {
			t.Errorf("unexpected contact: %+v", contact)
		}
	})

	t.Run("Update Uses PUT By ID", func(t *testing.T) {
		svc := newContactFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/api/update-contact/9" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			w.Write([]byte(`{"message": "updated", "data": {"id": 9, "title": "Admiral"}}`))
		}))

		contact, err := svc.Update(context.Background(), 9, services.ContactParams{Title: "Admiral"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if contact.Title != "Admiral" {
			t.Errorf("unexpected contact: %+v", contact)
		}
	})

	t.Run("PatchImage Sends Only The File", func(t *testing.T) {
		svc := newContactFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/api/update-contact/9" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("expected multipart form: %v", err)
			}
			if len(r.MultipartForm.Value) != 0 {
				t.Errorf("expected no text fields, got %v", r.MultipartForm.Value)
			}
			if _, _, err := r.FormFile("image"); err != nil {
				t.Errorf("expected image file: %v", err)
			}
			w.Write([]byte(`{"message": "updated", "data": {"id": 9, "image": "http://cdn/9.png"}}`))
		}))

		contact, err := svc.PatchImage(context.Background(), 9, services.FilePart{Field: "image", Name: "new.png", Content: []byte{1}})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if contact.Image != "http://cdn/9.png" {
			t.Errorf("unexpected image URL: %s", contact.Image)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		svc := newContactFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete || r.URL.Path != "/api/delete-contact/9" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			w.Write([]byte(`{"message": "Contact deleted successfully"}`))
		}))

		if err := svc.Delete(context.Background(), 9); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Export Returns Raw Bytes", func(t *testing.T) {
		csv := []byte("firstName,lastName\nAda,Lovelace\n")
		svc := newContactFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/contacts/export" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "text/csv")
			w.Write(csv)
		}))

		data, err := svc.Export(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !bytes.Equal(data, csv) {
			t.Errorf("expected raw CSV body, got %q", data)
		}
	})

	t.Run("Import", func(t *testing.T) {
		t.Run("Returns Server Summary", func(t *testing.T) {
			svc := newContactFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := r.ParseMultipartForm(1 << 20); err != nil {
					t.Fatalf("expected multipart form: %v", err)
				}
				if _, header, err := r.FormFile("file"); err != nil || header.Filename != "contacts.csv" {
					t.Errorf("expected uploaded file under field 'file', got %v", err)
				}
				w.Write([]byte(`{"message": "Imported 12 contacts", "success": true}`))
			}))

			msg, err := svc.Import(context.Background(), "contacts.csv", []byte("a,b\n"))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if msg != "Imported 12 contacts" {
				t.Errorf("expected server summary verbatim, got %q", msg)
			}
		})

		t.Run("Validation Failure Surfaces Message", func(t *testing.T) {
			svc := newContactFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"message": "row 3: missing email", "success": false}`))
			}))

			_, err := svc.Import(context.Background(), "contacts.csv", []byte("a,b\n"))
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Fatalf("expected ErrAPIRequest, got %v", err)
			}
			if got := err.Error(); !bytes.Contains([]byte(got), []byte("row 3: missing email")) {
				t.Errorf("expected validation message verbatim, got %q", got)
			}
		})
	})
}
