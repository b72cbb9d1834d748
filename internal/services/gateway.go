// HTTP client gateway wrapping all calls to the ConnectBase backend
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/connectbase/cbx/internal/shared"
	"golang.org/x/time/rate"
)

// CookieStore persists the session cookies opaquely between runs.
//
// The credential is a server-managed httpOnly token; the client stores and
// replays it without ever interpreting its contents.
type CookieStore interface {
	Load() ([]*http.Cookie, error)
	Save(cookies []*http.Cookie) error
}

// FilePart is a binary attachment for a multipart request.
type FilePart struct {
	Field   string
	Name    string
	Content []byte
}

// Response represents a raw backend response with status and body.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Gateway is the single configured request pipeline for all backend calls.
//
// Every call attaches the session cookie jar and a generated X-Request-ID,
// waits on the client-side rate limiter, and persists the jar through the
// optional [CookieStore]. Responses with an unauthorized or forbidden status
// invoke the registered auth-failure hook exactly once and short-circuit the
// caller with [shared.ErrSessionExpired]; all other errors pass through.
type Gateway struct {
	baseURL       *url.URL
	client        *http.Client
	limiter       *rate.Limiter
	logger        *log.Logger
	cookies       CookieStore
	onAuthFailure func()
}

// GatewayOpts contains configuration options for creating a Gateway.
type GatewayOpts struct {
	BaseURL           string
	Client            *http.Client
	RequestsPerSecond int
	Logger            *log.Logger
	Cookies           CookieStore
}

// NewGateway creates a Gateway for the given base origin.
//
// The client gains a cookie jar if it has none; previously persisted cookies
// are loaded into the jar for the base origin.
func NewGateway(opts GatewayOpts) (*Gateway, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:8080"
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base URL: %v", shared.ErrInvalidConfig, err)
	}

	if opts.Client == nil {
		opts.Client = &http.Client{}
	}
	if opts.Client.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		opts.Client.Jar = jar
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.RequestsPerSecond)
	}

	g := &Gateway{
		baseURL: base,
		client:  opts.Client,
		limiter: limiter,
		logger:  opts.Logger,
		cookies: opts.Cookies,
	}

	if g.cookies != nil {
		if saved, err := g.cookies.Load(); err != nil {
			g.logger.Warnf("failed to load saved cookies: %v", err)
		} else if len(saved) > 0 {
			g.client.Jar.SetCookies(base, saved)
		}
	}

	return g, nil
}

// SetLogger replaces the gateway's logger, used by the TUI to redirect
// logging away from the rendered terminal.
func (g *Gateway) SetLogger(logger *log.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// OnAuthFailure registers the hook invoked when any response comes back
// unauthorized or forbidden. Typically wired to the session state machine.
func (g *Gateway) OnAuthFailure(fn func()) {
	g.onAuthFailure = fn
}

// Get performs a GET request to the specified path with optional query parameters.
func (g *Gateway) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	req, err := g.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return g.do(req)
}

// Post performs a POST request with an empty body and optional query parameters.
//
// The forgot-password and reset-password endpoints carry their arguments in
// the query string with no body.
func (g *Gateway) Post(ctx context.Context, path string, query url.Values) (*Response, error) {
	req, err := g.newRequest(ctx, http.MethodPost, path, query, nil)
	if err != nil {
		return nil, err
	}
	return g.do(req)
}

// PostForm performs a POST request with a URL-encoded form body.
//
// Used by the legacy form-encoded login endpoint.
func (g *Gateway) PostForm(ctx context.Context, path string, form url.Values) (*Response, error) {
	req, err := g.newRequest(ctx, http.MethodPost, path, nil, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return g.do(req)
}

// PostJSON performs a POST request with a JSON body.
func (g *Gateway) PostJSON(ctx context.Context, path string, body any) (*Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := g.newRequest(ctx, http.MethodPost, path, nil, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return g.do(req)
}

// PostMultipart performs a POST request with a multipart form body.
func (g *Gateway) PostMultipart(ctx context.Context, path string, fields map[string]string, files ...FilePart) (*Response, error) {
	return g.multipart(ctx, http.MethodPost, path, fields, files)
}

// PutMultipart performs a PUT request with a multipart form body.
func (g *Gateway) PutMultipart(ctx context.Context, path string, fields map[string]string, files ...FilePart) (*Response, error) {
	return g.multipart(ctx, http.MethodPut, path, fields, files)
}

// Delete performs a DELETE request to the specified path.
func (g *Gateway) Delete(ctx context.Context, path string) (*Response, error) {
	req, err := g.newRequest(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return g.do(req)
}

func (g *Gateway) multipart(ctx context.Context, method, path string, fields map[string]string, files []FilePart) (*Response, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for field, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(field, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", field, err)
		}
	}

	for _, file := range files {
		part, err := writer.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file %s: %w", file.Field, err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, fmt.Errorf("failed to write form file %s: %w", file.Field, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := g.newRequest(ctx, method, path, nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return g.do(req)
}

func (g *Gateway) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	fullURL := g.baseURL.String() + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Request-ID", shared.GenerateID())
	return req, nil
}

// do executes the request, reads the body, persists cookies, and applies the
// gateway's global error handling.
func (g *Gateway) do(req *http.Request) (*Response, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}
	}

	g.logger.Debug("request", "method", req.Method, "path", req.URL.Path, "id", req.Header.Get("X-Request-ID"))

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if g.cookies != nil {
		if err := g.cookies.Save(g.client.Jar.Cookies(g.baseURL)); err != nil {
			g.logger.Warnf("failed to persist cookies: %v", err)
		}
	}

	out := &Response{StatusCode: resp.StatusCode, Headers: resp.Header, Body: body}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		g.logger.Warn("authorization rejected", "status", resp.StatusCode, "path", req.URL.Path)
		if g.onAuthFailure != nil {
			g.onAuthFailure()
		}
		return out, fmt.Errorf("%w: status %d", shared.ErrSessionExpired, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		msg := errorMessage(body, http.StatusText(resp.StatusCode))
		return out, fmt.Errorf("%w: %s", shared.ErrAPIRequest, msg)
	}

	return out, nil
}
