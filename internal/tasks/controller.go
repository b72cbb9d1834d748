package tasks

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/connectbase/cbx/internal/models"
	"github.com/connectbase/cbx/internal/services"
	"github.com/connectbase/cbx/internal/shared"
)

// FetchSpec describes one fetch the controller has issued. The generation
// ties the eventual response back to the issue order.
type FetchSpec struct {
	Gen   uint64
	Page  int
	Query string
}

// ApplyStatus classifies the outcome of applying a fetch response.
type ApplyStatus int

const (
	// Applied means the response replaced the displayed page.
	Applied ApplyStatus = iota
	// Stale means a newer fetch was issued; the response was discarded.
	Stale
	// Emptied means the response body was unusable and the list was
	// cleared rather than left showing data of unknown vintage.
	Emptied
	// Failed means the fetch failed and the previous page was retained.
	Failed
)

// ApplyResult is the controller's verdict on one response, with a
// user-facing message for the failure cases.
type ApplyResult struct {
	Status  ApplyStatus
	Message string
}

// ListController owns the contact list's paging and search state. It
// never performs I/O on its own: callers ask it what to fetch, run the
// fetch, and hand the response back to [ListController.Apply].
type ListController struct {
	mu     sync.Mutex
	api    services.ContactAPI
	logger *log.Logger
	size   int

	gen     uint64
	page    int
	query   string
	current models.ContactPage

	pendingQuery string
	queryToken   uint64
}

// NewListController creates a controller with the fixed page size.
func NewListController(api services.ContactAPI, logger *log.Logger) *ListController {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ListController{api: api, logger: logger, size: PageSize}
}

// Mount issues the initial fetch for page zero, unfiltered.
func (c *ListController) Mount() FetchSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issue(0, "")
}

// Current returns the page most recently applied.
func (c *ListController) Current() models.ContactPage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// PageIndex returns the zero-based page the controller last requested.
func (c *ListController) PageIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Query returns the committed search string. Empty means unfiltered.
func (c *ListController) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// GoToPage issues an immediate fetch for the given page. Page navigation
// is not debounced; only query edits are. Returns false for a page that
// is out of range.
func (c *ListController) GoToPage(page int) (FetchSpec, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if page < 0 {
		return FetchSpec{}, false
	}
	if total := c.current.TotalPages; total > 0 && page >= total {
		return FetchSpec{}, false
	}
	return c.issue(page, c.query), true
}

// NextPage issues a fetch for the following page when one exists.
func (c *ListController) NextPage() (FetchSpec, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.current.HasNext() {
		return FetchSpec{}, false
	}
	return c.issue(c.page+1, c.query), true
}

// PrevPage issues a fetch for the preceding page when one exists.
func (c *ListController) PrevPage() (FetchSpec, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.page == 0 {
		return FetchSpec{}, false
	}
	return c.issue(c.page-1, c.query), true
}

// EditQuery records a keystroke in the search box and returns a token for
// the debounce timer. Each edit invalidates the previous token, so rapid
// typing coalesces into the single fetch whose timer survives the quiet
// period. Nothing is fetched until [ListController.QueryElapsed] confirms
// the token.
func (c *ListController) EditQuery(q string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pendingQuery = q
	c.queryToken++
	return c.queryToken
}

// QueryElapsed reports the end of a quiet period. If the token is still
// the latest, the pending query is committed and a fetch for page zero is
// issued: a new search always restarts from the first page.
func (c *ListController) QueryElapsed(token uint64) (FetchSpec, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.queryToken {
		return FetchSpec{}, false
	}
	return c.issue(0, c.pendingQuery), true
}

// AfterMutation consults the refetch policy and issues the follow-up
// fetch the mutation requires, if any.
func (c *ListController) AfterMutation(m Mutation) (FetchSpec, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch PolicyFor(m) {
	case RefetchFirstPage:
		return c.issue(0, c.query), true
	case RefetchCurrentPage:
		return c.issue(c.page, c.query), true
	default:
		return FetchSpec{}, false
	}
}

// Refresh reissues the current page and query.
func (c *ListController) Refresh() FetchSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issue(c.page, c.query)
}

// Fetch performs the network call for a spec. Safe to run off the event
// loop; the result must come back through [ListController.Apply].
func (c *ListController) Fetch(ctx context.Context, spec FetchSpec) (models.ContactPage, error) {
	if spec.Query == "" {
		return c.api.List(ctx, spec.Page, c.size)
	}
	return c.api.Search(ctx, spec.Query, spec.Page, c.size)
}

// Apply hands a fetch response back to the controller. Responses from
// superseded generations are discarded regardless of arrival order. A
// malformed body clears the list; any other failure keeps the previous
// page on screen.
func (c *ListController) Apply(spec FetchSpec, page models.ContactPage, err error) ApplyResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if spec.Gen != c.gen {
		c.logger.Debug("discarding stale fetch", "gen", spec.Gen, "latest", c.gen)
		return ApplyResult{Status: Stale}
	}

	if err != nil {
		if errors.Is(err, shared.ErrMalformedEnvelope) {
			c.logger.Error("unusable contact page response", "error", err)
			c.current = models.ContactPage{}
			return ApplyResult{Status: Emptied, Message: "Could not read the server's response."}
		}
		c.logger.Error("contact page fetch failed", "error", err)
		return ApplyResult{Status: Failed, Message: err.Error()}
	}

	c.current = page
	return ApplyResult{Status: Applied}
}

// issue stamps a new generation and records the requested page and query.
// Callers hold the mutex.
func (c *ListController) issue(page int, query string) FetchSpec {
	c.gen++
	c.page = page
	c.query = query
	return FetchSpec{Gen: c.gen, Page: page, Query: query}
}
