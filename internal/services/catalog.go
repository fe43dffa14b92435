// Catalog synchronizer: searchable, incrementally-paginated course list.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/ebaadraheem/skillmorph-cli/internal/models"
	"github.com/ebaadraheem/skillmorph-cli/internal/shared"
)

// SearchRecorder persists committed search queries. Recording is
// best-effort; failures never block a fetch.
type SearchRecorder interface {
	Record(query string) error
}

// CatalogService owns the paginated course collection for one
// (user context, search query) pair at a time.
//
// Fetches are serialized by the fetching guard, so pages land in request
// order. A [CatalogService.Reset] supersedes any in-flight fetch: results
// are tagged with the generation they were issued under and discarded
// silently when a reset has moved the state on.
type CatalogService struct {
	gateway  *Gateway
	recorder SearchRecorder
	logger   *log.Logger

	mu       sync.Mutex
	gen      uint64
	userID   string
	query    string
	items    []models.Course
	seen     map[int]struct{}
	nextPage int
	hasMore  bool
	fetching bool
	lastErr  error
	total    int
}

// CatalogSnapshot is a copy of the observable collection state.
type CatalogSnapshot struct {
	UserID    string
	Query     string
	Items     []models.Course
	NextPage  int
	HasMore   bool
	Fetching  bool
	LastError error
	Total     int
}

// NewCatalogService creates a synchronizer in its initial state for the
// anonymous user and an empty query. recorder may be nil.
func NewCatalogService(gateway *Gateway, recorder SearchRecorder, logger *log.Logger) *CatalogService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	c := &CatalogService{
		gateway:  gateway,
		recorder: recorder,
		logger:   logger,
	}
	c.Reset(models.AnonymousUserID, "")
	return c
}

// Reset clears the collection to its initial lifecycle values for a new
// (user context, search query) pair. Any fetch still in flight for the
// prior pair will find its generation stale and be discarded on arrival.
func (c *CatalogService) Reset(userID, query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.userID = userID
	c.query = strings.TrimSpace(query)
	c.items = nil
	c.seen = make(map[int]struct{})
	c.nextPage = 1
	c.hasMore = true
	c.fetching = false
	c.lastErr = nil
	c.total = 0
}

// FetchNextPage requests the page at the current cursor and merges the
// result. It is a no-op while a fetch is in flight or when the collection
// is exhausted, so two immediate calls produce exactly one network request.
//
// Page 1 replaces the items wholesale (a re-fetch after reset); later pages
// append, skipping any id already present. On failure the cursor, items and
// hasMore are left untouched so the same page can be retried, and the error
// is surfaced via the snapshot's LastError rather than returned.
func (c *CatalogService) FetchNextPage(ctx context.Context) {
	c.mu.Lock()
	if c.fetching || !c.hasMore {
		c.mu.Unlock()
		return
	}
	c.fetching = true
	gen := c.gen
	page := c.nextPage
	userID := c.userID
	query := c.query
	c.mu.Unlock()

	result, err := c.fetchPage(ctx, page, userID, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		// Superseded by a reset; the new state owns the fetching flag.
		c.logger.Debug("discarding stale page", "page", page, "query", query)
		return
	}

	c.fetching = false

	if err != nil {
		c.lastErr = err
		c.logger.Warn("page fetch failed", "page", page, "error", err)
		return
	}

	if page == 1 {
		c.items = nil
		c.seen = make(map[int]struct{})
	}

	for _, course := range result.Items {
		if _, dup := c.seen[course.ID]; dup {
			continue
		}
		c.seen[course.ID] = struct{}{}
		c.items = append(c.items, course)
	}

	c.hasMore = result.HasMore
	c.total = result.TotalCount
	c.nextPage = page + 1
	c.lastErr = nil
}

// Search commits a new query: reset plus a page-1 fetch. This is always a
// fresh server round-trip, never a client-side filter over loaded pages.
func (c *CatalogService) Search(ctx context.Context, query string) {
	c.mu.Lock()
	userID := c.userID
	c.mu.Unlock()

	c.Reset(userID, query)

	if q := strings.TrimSpace(query); q != "" && c.recorder != nil {
		if err := c.recorder.Record(q); err != nil {
			c.logger.Warn("failed to record search", "error", err)
		}
	}

	c.FetchNextPage(ctx)
}

// SetUser rebinds the collection to a new user context, resetting it when
// the context actually changed.
func (c *CatalogService) SetUser(userID string) {
	c.mu.Lock()
	changed := c.userID != userID
	query := c.query
	c.mu.Unlock()

	if changed {
		c.Reset(userID, query)
	}
}

// Suggest returns loaded courses whose title contains the prefix,
// case-insensitively. Purely client-side; no network effect.
func (c *CatalogService) Suggest(prefix string) []models.Course {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var matches []models.Course
	for _, course := range c.items {
		if strings.Contains(strings.ToLower(course.Title), prefix) {
			matches = append(matches, course)
		}
	}
	return matches
}

// Snapshot returns a copy of the observable state for rendering.
func (c *CatalogService) Snapshot() CatalogSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]models.Course, len(c.items))
	copy(items, c.items)

	return CatalogSnapshot{
		UserID:    c.userID,
		Query:     c.query,
		Items:     items,
		NextPage:  c.nextPage,
		HasMore:   c.hasMore,
		Fetching:  c.fetching,
		LastError: c.lastErr,
		Total:     c.total,
	}
}

func (c *CatalogService) fetchPage(ctx context.Context, page int, userID, query string) (*models.CatalogPage, error) {
	params := url.Values{}
	params.Set("page", fmt.Sprintf("%d", page))
	params.Set("userId", userID)
	if query != "" {
		params.Set("search", query)
	}

	resp, err := c.gateway.Get(ctx, "/catalog?"+params.Encode(), "")
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		msg := resp.ErrField()
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrAPIRequest, msg)
	}

	var result models.CatalogPage
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode catalog page: %v", shared.ErrAPIRequest, err)
	}

	if !result.Success {
		return nil, fmt.Errorf("%w: catalog reported failure", shared.ErrAPIRequest)
	}

	return &result, nil
}
