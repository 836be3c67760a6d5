package browse

import (
	"context"
	"sync"

	"github.com/vtnguyen/storeboard/internal/api"
	"github.com/vtnguyen/storeboard/internal/app/model"
)

// ItemBrowser drives the catalog item page.
type ItemBrowser struct {
	client  *api.Client
	browser Browser[model.Item]

	mu       sync.Mutex
	term     string
	search   string
	category string
	isActive *bool
	page     int
	limit    int
}

// NewItemBrowser creates a browser for the item catalog.
func NewItemBrowser(client *api.Client, limit int) *ItemBrowser {
	return &ItemBrowser{client: client, page: 1, limit: limit}
}

// Load fetches the current page, routing to the search endpoint when any
// filter is active.
func (b *ItemBrowser) Load(ctx context.Context) error {
	b.mu.Lock()
	params := api.ItemSearchParams{
		Search:   b.search,
		Category: b.category,
		IsActive: b.isActive,
		Page:     b.page,
		Limit:    b.limit,
	}
	b.mu.Unlock()

	if params.HasFilters() {
		return b.browser.Load(ctx, func(ctx context.Context) (*api.Page[model.Item], error) {
			return b.client.SearchItems(ctx, params)
		})
	}
	list := api.ItemListParams{Page: params.Page, Limit: params.Limit}
	return b.browser.Load(ctx, func(ctx context.Context) (*api.Page[model.Item], error) {
		return b.client.ListItems(ctx, list)
	})
}

// ItemFilters is the whole filter state at once, for seeding a browser
// before the first Load.
type ItemFilters struct {
	Search   string
	Category string
	IsActive *bool
}

// SetFilters replaces the filter state without fetching and resets to
// page 1. Call Load afterwards.
func (b *ItemBrowser) SetFilters(f ItemFilters) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.term = f.Search
	b.search = f.Search
	b.category = f.Category
	b.isActive = f.IsActive
	b.page = 1
}

// SetTerm records the free-text term without fetching.
func (b *ItemBrowser) SetTerm(term string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.term = term
}

// SubmitSearch applies the pending term, resets to page 1 and fetches.
func (b *ItemBrowser) SubmitSearch(ctx context.Context) error {
	b.mu.Lock()
	b.search = b.term
	b.page = 1
	b.mu.Unlock()
	return b.Load(ctx)
}

// SetCategory applies the category filter and refetches from page 1.
func (b *ItemBrowser) SetCategory(ctx context.Context, category string) error {
	b.mu.Lock()
	b.category = category
	b.page = 1
	b.mu.Unlock()
	return b.Load(ctx)
}

// SetActive applies the tri-state status filter and refetches from page 1.
func (b *ItemBrowser) SetActive(ctx context.Context, active *bool) error {
	b.mu.Lock()
	b.isActive = active
	b.page = 1
	b.mu.Unlock()
	return b.Load(ctx)
}

// NextPage advances one page; it is a no-op without a next page link.
func (b *ItemBrowser) NextPage(ctx context.Context) error {
	if !b.browser.HasNext() {
		return nil
	}
	b.mu.Lock()
	b.page++
	b.mu.Unlock()
	return b.Load(ctx)
}

// PreviousPage goes back one page; it is a no-op on page 1.
func (b *ItemBrowser) PreviousPage(ctx context.Context) error {
	b.mu.Lock()
	if b.page <= 1 {
		b.mu.Unlock()
		return nil
	}
	b.page--
	b.mu.Unlock()
	return b.Load(ctx)
}

// Reload refetches the current page after a create, update or delete.
func (b *ItemBrowser) Reload(ctx context.Context) error {
	return b.Load(ctx)
}

// Page returns the 1-based page number.
func (b *ItemBrowser) Page() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

func (b *ItemBrowser) Results() []model.Item { return b.browser.Results() }
func (b *ItemBrowser) State() State          { return b.browser.State() }
func (b *ItemBrowser) Err() error            { return b.browser.Err() }
func (b *ItemBrowser) Count() int64          { return b.browser.Count() }
func (b *ItemBrowser) HasNext() bool         { return b.browser.HasNext() }
func (b *ItemBrowser) HasPrevious() bool     { return b.browser.HasPrevious() }

// Retry replays the last fetch after a failure.
func (b *ItemBrowser) Retry(ctx context.Context) error { return b.browser.Retry(ctx) }
