package dashboard

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/sbdiallo/stockboard/internal/domain/models"
	"github.com/sbdiallo/stockboard/pkg/clients/inventory"
)

const (
	fetchItemsFailedMsg = "Failed to fetch items"
	deleteItemFailedMsg = "Failed to delete item"
)

// ListCoordinator owns the item list view state: the query (search text,
// category filter, page), the fetched page of items and its pagination
// metadata, and the last refresh token it has acted on.
//
// Every mutator refetches. A generation counter tags each outgoing query so
// that a response is applied only when no newer fetch has been issued since;
// late responses from an abandoned query are discarded instead of clobbering
// the current view.
type ListCoordinator struct {
	client     inventory.Client
	invalidate func() uint64
	logger     *zap.Logger

	mu         sync.Mutex
	search     string
	category   models.Category
	page       int
	totalPages int
	refresh    uint64
	loaded     bool
	items      []models.Item
	errMsg     string
	pending    bool
	gen        uint64
}

// ListState is a point-in-time copy of the list view state, safe to render.
type ListState struct {
	Items      []models.Item
	Search     string
	Category   models.Category
	Page       int
	TotalPages int
	CanPrev    bool
	CanNext    bool
	Err        string
	Pending    bool
}

// NewListCoordinator wires a list coordinator. invalidate is called after a
// successful delete to bump the shared refresh token; it returns the new
// token value.
func NewListCoordinator(client inventory.Client, invalidate func() uint64, logger *zap.Logger) *ListCoordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListCoordinator{
		client:     client,
		invalidate: invalidate,
		logger:     logger,
		page:       1,
		totalPages: 1,
	}
}

// Sync refetches when the refresh token changed since the last applied fetch,
// or when nothing was fetched yet. Query state is left as-is: a mutation
// elsewhere must not reset the user's filters.
func (c *ListCoordinator) Sync(ctx context.Context, token uint64) {
	c.mu.Lock()
	if c.loaded && token == c.refresh {
		c.mu.Unlock()
		return
	}
	c.refresh = token
	c.loaded = true
	c.mu.Unlock()

	c.refetch(ctx)
}

// SetSearch updates the search text. A changed value resets the page to 1 and
// refetches; an unchanged value is a no-op (use SubmitSearch to force).
func (c *ListCoordinator) SetSearch(ctx context.Context, search string) {
	c.mu.Lock()
	if search == c.search {
		c.mu.Unlock()
		return
	}
	c.search = search
	c.page = 1
	c.mu.Unlock()

	c.refetch(ctx)
}

// SubmitSearch applies the search text and refetches at page 1 even when the
// text is unchanged.
func (c *ListCoordinator) SubmitSearch(ctx context.Context, search string) {
	c.mu.Lock()
	c.search = search
	c.page = 1
	c.mu.Unlock()

	c.refetch(ctx)
}

// SetCategory updates the category filter, resetting the page to 1. An empty
// category means no filter.
func (c *ListCoordinator) SetCategory(ctx context.Context, category models.Category) {
	c.mu.Lock()
	if category == c.category {
		c.mu.Unlock()
		return
	}
	c.category = category
	c.page = 1
	c.mu.Unlock()

	c.refetch(ctx)
}

// NextPage advances one page, clamped to the last known page count.
func (c *ListCoordinator) NextPage(ctx context.Context) {
	c.step(ctx, 1)
}

// PrevPage goes back one page, clamped at page 1.
func (c *ListCoordinator) PrevPage(ctx context.Context) {
	c.step(ctx, -1)
}

func (c *ListCoordinator) step(ctx context.Context, delta int) {
	c.mu.Lock()
	target := clampPage(c.page+delta, c.totalPages)
	if target == c.page {
		c.mu.Unlock()
		return
	}
	c.page = target
	c.mu.Unlock()

	c.refetch(ctx)
}

// Delete removes an item after explicit confirmation. Without confirmation
// nothing happens: no network call, no state change. On success the shared
// refresh token is bumped and exactly one refetch runs with the current query
// state; the deleted row is never spliced out locally so the displayed page
// cannot drift from the server-side pagination counts. On failure the
// displayed state is left untouched and a user-displayable error is returned.
func (c *ListCoordinator) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return nil
	}

	if err := c.client.DeleteItem(ctx, id); err != nil {
		c.logger.Warn("item delete failed", zap.String("item_id", id), zap.Error(err))
		return errors.New(inventory.ErrorMessage(err, deleteItemFailedMsg))
	}

	token := c.invalidate()
	c.Sync(ctx, token)
	return nil
}

// Snapshot returns a copy of the current list state.
func (c *ListCoordinator) Snapshot() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]models.Item, len(c.items))
	copy(items, c.items)

	return ListState{
		Items:      items,
		Search:     c.search,
		Category:   c.category,
		Page:       c.page,
		TotalPages: c.totalPages,
		CanPrev:    c.page > 1,
		CanNext:    c.page < c.totalPages,
		Err:        c.errMsg,
		Pending:    c.pending,
	}
}

// refetch issues a fetch for the current query state. When the response
// leaves the page outside the new page range (filters narrowed the result
// set, or the last item of the last page was deleted) the page is corrected
// and fetched once more.
func (c *ListCoordinator) refetch(ctx context.Context) {
	for attempt := 0; attempt < 2; attempt++ {
		if !c.fetchOnce(ctx) {
			return
		}
	}
}

// fetchOnce runs one fetch and reports whether a corrective refetch is
// needed.
func (c *ListCoordinator) fetchOnce(ctx context.Context) bool {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	query := inventory.ListQuery{
		Search:   c.search,
		Category: c.category,
		Page:     c.page,
		Limit:    models.PageSize,
	}
	c.pending = true
	c.mu.Unlock()

	page, err := c.client.ListItems(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		// A newer fetch was issued while this one was in flight; its result
		// is authoritative, ours is stale.
		c.logger.Debug("discarding stale list response", zap.Int("page", query.Page), zap.String("search", query.Search))
		return false
	}
	c.pending = false

	if err != nil {
		// Keep the last successfully fetched page so the user retains
		// context on a transient failure.
		c.errMsg = fetchItemsFailedMsg
		c.logger.Warn("item list fetch failed", zap.Error(err))
		return false
	}

	c.errMsg = ""
	c.items = page.Items
	c.totalPages = page.Pages
	if c.totalPages < 1 {
		c.totalPages = 1
	}

	if c.page > c.totalPages {
		c.page = c.totalPages
		return true
	}
	if len(page.Items) == 0 && c.page > 1 {
		// The page emptied underneath us, e.g. the last item on the last
		// page was deleted. Step back once.
		c.page--
		return true
	}

	return false
}

func clampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
