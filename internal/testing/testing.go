// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/connectbase/cbx/internal/models"
	"github.com/connectbase/cbx/internal/services"
)

// MockContactAPI is a test double for [services.ContactAPI].
// Each operation delegates to its function field when set and records calls.
type MockContactAPI struct {
	ListFunc   func(ctx context.Context, page, size int) (models.ContactPage, error)
	SearchFunc func(ctx context.Context, query string, page, size int) (models.ContactPage, error)
	Calls      []string
}

func (m *MockContactAPI) List(ctx context.Context, page, size int) (models.ContactPage, error) {
	m.Calls = append(m.Calls, "list")
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, size)
	}
	return models.ContactPage{}, nil
}

func (m *MockContactAPI) Search(ctx context.Context, query string, page, size int) (models.ContactPage, error) {
	m.Calls = append(m.Calls, "search")
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, page, size)
	}
	return models.ContactPage{}, nil
}

func (m *MockContactAPI) Get(ctx context.Context, id int64) (*models.Contact, error) {
	m.Calls = append(m.Calls, "get")
	return &models.Contact{ID: id}, nil
}

func (m *MockContactAPI) Create(ctx context.Context, params services.ContactParams) (*models.Contact, error) {
	m.Calls = append(m.Calls, "create")
	return &models.Contact{ID: 1, FirstName: params.FirstName, LastName: params.LastName}, nil
}

func (m *MockContactAPI) Update(ctx context.Context, id int64, params services.ContactParams) (*models.Contact, error) {
	m.Calls = append(m.Calls, "update")
	return &models.Contact{ID: id, FirstName: params.FirstName, LastName: params.LastName}, nil
}

func (m *MockContactAPI) PatchImage(ctx context.Context, id int64, image services.FilePart) (*models.Contact, error) {
	m.Calls = append(m.Calls, "patch-image")
	return &models.Contact{ID: id}, nil
}

func (m *MockContactAPI) Delete(ctx context.Context, id int64) error {
	m.Calls = append(m.Calls, "delete")
	return nil
}

func (m *MockContactAPI) Export(ctx context.Context) ([]byte, error) {
	m.Calls = append(m.Calls, "export")
	return []byte("id,firstName\n"), nil
}

func (m *MockContactAPI) Import(ctx context.Context, filename string, data []byte) (string, error) {
	m.Calls = append(m.Calls, "import")
	return "Imported 0 contacts", nil
}

// MockAuthAPI is a test double for [services.AuthAPI].
type MockAuthAPI struct {
	LoginErr  error
	LogoutErr error
	UserFunc  func(ctx context.Context) (*models.User, error)
	Calls     []string
}

func (m *MockAuthAPI) Login(ctx context.Context, email, password string) error {
	m.Calls = append(m.Calls, "login")
	return m.LoginErr
}

func (m *MockAuthAPI) Logout(ctx context.Context) error {
	m.Calls = append(m.Calls, "logout")
	return m.LogoutErr
}

func (m *MockAuthAPI) Register(ctx context.Context, params services.RegisterParams) (*models.User, error) {
	m.Calls = append(m.Calls, "register")
	return &models.User{Email: params.Email}, nil
}

func (m *MockAuthAPI) ForgotPassword(ctx context.Context, email string) error {
	m.Calls = append(m.Calls, "forgot-password")
	return nil
}

func (m *MockAuthAPI) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	m.Calls = append(m.Calls, "reset-password")
	return nil
}

func (m *MockAuthAPI) ChangePassword(ctx context.Context, oldPassword, newPassword, verificationCode string) error {
	m.Calls = append(m.Calls, "change-password")
	return nil
}

func (m *MockAuthAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	m.Calls = append(m.Calls, "current-user")
	if m.UserFunc != nil {
		return m.UserFunc(ctx)
	}
	return &models.User{Email: "jane@example.com"}, nil
}

// MemoryCookieStore is an in-memory [services.CookieStore].
type MemoryCookieStore struct {
	Cookies []*http.Cookie
	LoadErr error
	SaveErr error
	Saves   int
}

func (s *MemoryCookieStore) Load() ([]*http.Cookie, error) {
	return s.Cookies, s.LoadErr
}

func (s *MemoryCookieStore) Save(cookies []*http.Cookie) error {
	s.Saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Cookies = cookies
	return nil
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
