// Contact collection operations against the ConnectBase /api endpoints
package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/connectbase/cbx/internal/models"
	"github.com/connectbase/cbx/internal/shared"
)

var _ ContactAPI = (*ContactService)(nil)

// ContactService implements [ContactAPI] over the [Gateway].
type ContactService struct {
	gw     *Gateway
	logger *log.Logger
}

// NewContactService creates a ContactService backed by the given gateway.
func NewContactService(gw *Gateway, logger *log.Logger) *ContactService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ContactService{gw: gw, logger: logger}
}

// SetLogger replaces the service's logger.
func (s *ContactService) SetLogger(logger *log.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// List fetches one page of the unfiltered collection.
func (s *ContactService) List(ctx context.Context, page, size int) (models.ContactPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	return s.fetchPage(ctx, "/api/contacts", query)
}

// Search fetches one page of the collection filtered by the query string.
func (s *ContactService) Search(ctx context.Context, q string, page, size int) (models.ContactPage, error) {
	query := url.Values{}
	query.Set("query", q)
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	return s.fetchPage(ctx, "/api/contacts/search", query)
}

// fetchPage performs the shared envelope → page decode for List and Search.
// A body that decodes but lacks the nested page payload is reported as
// [shared.ErrMalformedEnvelope]; the list controller maps that to an empty
// page rather than surfacing a crash.
func (s *ContactService) fetchPage(ctx context.Context, path string, query url.Values) (models.ContactPage, error) {
	var empty models.ContactPage

	resp, err := s.gw.Get(ctx, path, query)
	if err != nil {
		return empty, err
	}

	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return empty, fmt.Errorf("%w: %v", shared.ErrMalformedEnvelope, err)
	}

	var page models.ContactPage
	if err := env.DecodeData(&page); err != nil {
		return empty, err
	}

	return page, nil
}

// Get fetches a single contact by ID.
func (s *ContactService) Get(ctx context.Context, id int64) (*models.Contact, error) {
	resp, err := s.gw.Get(ctx, fmt.Sprintf("/api/contact/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeContact(resp.Body)
}

// Create submits a full record payload as multipart, allowing an attached image.
func (s *ContactService) Create(ctx context.Context, params ContactParams) (*models.Contact, error) {
	var files []FilePart
	if params.Image != nil {
		files = append(files, *params.Image)
	}

	resp, err := s.gw.PostMultipart(ctx, "/api/contact/create", params.Fields(), files...)
	if err != nil {
		return nil, err
	}

	contact, err := decodeContact(resp.Body)
	if err != nil {
		return nil, err
	}

	s.logger.Info("contact created", "id", contact.ID)
	return contact, nil
}

// Update submits the changed fields for the record with the given ID.
func (s *ContactService) Update(ctx context.Context, id int64, params ContactParams) (*models.Contact, error) {
	var files []FilePart
	if params.Image != nil {
		files = append(files, *params.Image)
	}

	resp, err := s.gw.PutMultipart(ctx, fmt.Sprintf("/api/update-contact/%d", id), params.Fields(), files...)
	if err != nil {
		return nil, err
	}

	return decodeContact(resp.Body)
}

// PatchImage uploads only a replacement image for the record, leaving the
// other fields untouched. The caller drives the optimistic preview and its
// rollback through [models.ImageState].
func (s *ContactService) PatchImage(ctx context.Context, id int64, image FilePart) (*models.Contact, error) {
	resp, err := s.gw.PutMultipart(ctx, fmt.Sprintf("/api/update-contact/%d", id), nil, image)
	if err != nil {
		return nil, err
	}

	return decodeContact(resp.Body)
}

// Delete removes the record with the given ID. Irreversible.
func (s *ContactService) Delete(ctx context.Context, id int64) error {
	if _, err := s.gw.Delete(ctx, fmt.Sprintf("/api/delete-contact/%d", id)); err != nil {
		return err
	}

	s.logger.Info("contact deleted", "id", id)
	return nil
}

// Export fetches the whole collection as a CSV stream. Read-only; no refetch
// of the displayed page follows.
func (s *ContactService) Export(ctx context.Context) ([]byte, error) {
	resp, err := s.gw.Get(ctx, "/api/contacts/export", nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Import uploads a CSV file. The server's summary or validation message is
// returned verbatim.
func (s *ContactService) Import(ctx context.Context, filename string, data []byte) (string, error) {
	file := FilePart{Field: "file", Name: filename, Content: data}

	resp, err := s.gw.PostMultipart(ctx, "/api/contacts/import", nil, file)
	if err != nil {
		return "", err
	}

	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrMalformedEnvelope, err)
	}
	return env.Message, nil
}

// decodeContact parses an envelope-wrapped contact record.
func decodeContact(body []byte) (*models.Contact, error) {
	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedEnvelope, err)
	}

	var contact models.Contact
	if err := env.DecodeData(&contact); err != nil {
		return nil, err
	}
	return &contact, nil
}
