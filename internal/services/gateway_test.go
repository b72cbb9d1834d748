package services_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/connectbase/cbx/internal/services"
	"github.com/connectbase/cbx/internal/shared"
	tu "github.com/connectbase/cbx/internal/testing"
)

func newTestGateway(t *testing.T, serverURL string, store services.CookieStore) *services.Gateway {
	t.Helper()
	gw, err := services.NewGateway(services.GatewayOpts{BaseURL: serverURL, Cookies: store})
	if err != nil {
		t.Fatalf("failed to create gateway: %v", err)
	}
	return gw
}

func TestGateway(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("Defaults", func(t *testing.T) {
			gw, err := services.NewGateway(services.GatewayOpts{})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if gw.TestBaseURL().String() != "http://localhost:8080" {
				t.Errorf("expected default base URL, got %s", gw.TestBaseURL())
			}
			if gw.TestClient().Jar == nil {
				t.Error("expected a cookie jar to be installed")
			}
		})

		t.Run("Invalid Base URL", func(t *testing.T) {
			if _, err := services.NewGateway(services.GatewayOpts{BaseURL: "http://bad url\x00"}); err == nil {
				t.Error("expected error for invalid base URL")
			}
		})

		t.Run("Loads Persisted Cookies", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if c, err := r.Cookie("accessToken"); err != nil || c.Value != "tok-123" {
					t.Errorf("expected persisted cookie to be replayed, got %v", r.Cookies())
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			store := &tu.MemoryCookieStore{Cookies: []*http.Cookie{{Name: "accessToken", Value: "tok-123"}}}
			gw := newTestGateway(t, server.URL, store)

			if _, err := gw.Get(context.Background(), "/auth/me", nil); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("Attaches Request ID And Query", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("X-Request-ID") == "" {
					t.Error("expected X-Request-ID header")
				}
				if r.URL.Query().Get("page") != "2" {
					t.Errorf("expected page=2, got %s", r.URL.RawQuery)
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			gw := newTestGateway(t, server.URL, nil)
			query := url.Values{}
			query.Set("page", "2")

			if _, err := gw.Get(context.Background(), "/api/contacts", query); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Network Failure Is Service Unavailable", func(t *testing.T) {
			gw := newTestGateway(t, "http://example.com", nil)
			gw.TestClient().Transport = tu.NewMockRoundTripper(nil, errors.New("connection refused"))

			_, err := gw.Get(context.Background(), "/api/contacts", nil)
			if !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			gw := newTestGateway(t, "http://example.com", nil)
			gw.TestClient().Transport = tu.NewMockRoundTripper(&http.Response{
				StatusCode: http.StatusOK,
				Body:       &tu.FCloser{},
				Header:     http.Header{},
			}, nil)

			_, err := gw.Get(context.Background(), "/api/contacts", nil)
			if err == nil || !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected read failure, got %v", err)
			}
		})
	})

	t.Run("Authorization Failure", func(t *testing.T) {
		for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
			t.Run(http.StatusText(status), func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(status)
				}))
				defer server.Close()

				hookFired := 0
				gw := newTestGateway(t, server.URL, nil)
				gw.OnAuthFailure(func() { hookFired++ })

				_, err := gw.Get(context.Background(), "/api/contacts", nil)
				if !errors.Is(err, shared.ErrSessionExpired) {
					t.Errorf("expected ErrSessionExpired, got %v", err)
				}
				if hookFired != 1 {
					t.Errorf("expected hook to fire once, fired %d times", hookFired)
				}
			})
		}

		t.Run("No Hook Registered", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer server.Close()

			gw := newTestGateway(t, server.URL, nil)
			if _, err := gw.Get(context.Background(), "/api/contacts", nil); !errors.Is(err, shared.ErrSessionExpired) {
				t.Errorf("expected ErrSessionExpired, got %v", err)
			}
		})
	})

	t.Run("Error Message Surfacing", func(t *testing.T) {
		t.Run("Envelope Message", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"message": "email already taken", "success": false}`))
			}))
			defer server.Close()

			gw := newTestGateway(t, server.URL, nil)
			_, err := gw.Get(context.Background(), "/api/contacts", nil)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Fatalf("expected ErrAPIRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), "email already taken") {
				t.Errorf("expected server message verbatim, got %v", err)
			}
		})

		t.Run("Generic Message Without Envelope", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("boom"))
			}))
			defer server.Close()

			gw := newTestGateway(t, server.URL, nil)
			_, err := gw.Get(context.Background(), "/api/contacts", nil)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Fatalf("expected ErrAPIRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), "Internal Server Error") {
				t.Errorf("expected generic status text, got %v", err)
			}
		})
	})

	t.Run("PostForm", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
				t.Errorf("expected form content type, got %s", ct)
			}
			if err := r.ParseForm(); err != nil {
				t.Fatalf("failed to parse form: %v", err)
			}
			if r.PostForm.Get("email") != "jane@example.com" {
				t.Errorf("expected form email, got %s", r.PostForm.Get("email"))
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		gw := newTestGateway(t, server.URL, nil)
		form := url.Values{}
		form.Set("email", "jane@example.com")
		form.Set("password", "secret")

		if _, err := gw.PostForm(context.Background(), "/auth/login", form); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("PostJSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %s", ct)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		gw := newTestGateway(t, server.URL, nil)
		if _, err := gw.PostJSON(context.Background(), "/auth/change-password", map[string]string{"oldPassword": "a"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Multipart", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("failed to parse multipart form: %v", err)
			}
			if r.FormValue("firstName") != "John" {
				t.Errorf("expected firstName field, got %s", r.FormValue("firstName"))
			}
			if _, ok := r.MultipartForm.Value["title"]; ok {
				t.Error("empty fields should be omitted from the form")
			}
			file, header, err := r.FormFile("image")
			if err != nil {
				t.Fatalf("expected image file: %v", err)
			}
			defer file.Close()
			if header.Filename != "avatar.png" {
				t.Errorf("expected filename avatar.png, got %s", header.Filename)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		gw := newTestGateway(t, server.URL, nil)
		fields := map[string]string{"firstName": "John", "title": ""}
		file := services.FilePart{Field: "image", Name: "avatar.png", Content: []byte{0x89, 0x50}}

		if _, err := gw.PostMultipart(context.Background(), "/api/contact/create", fields, file); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Cookie Persistence", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.SetCookie(w, &http.Cookie{Name: "accessToken", Value: "fresh", Path: "/"})
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		store := &tu.MemoryCookieStore{}
		gw := newTestGateway(t, server.URL, store)

		if _, err := gw.Post(context.Background(), "/auth/login", nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if store.Saves == 0 {
			t.Error("expected cookies to be persisted after the response")
		}
		found := false
		for _, c := range store.Cookies {
			if c.Name == "accessToken" && c.Value == "fresh" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected accessToken in store, got %v", store.Cookies)
		}
	})

	t.Run("With Canceled Context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		gw := newTestGateway(t, server.URL, nil)
		if _, err := gw.Get(ctx, "/api/contacts", nil); err == nil {
			t.Error("expected error for canceled context")
		}
	})
}
