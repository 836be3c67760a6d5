package browse

import (
	"context"
	"sync"

	"github.com/vtnguyen/storeboard/internal/api"
	"github.com/vtnguyen/storeboard/internal/app/model"
	"github.com/vtnguyen/storeboard/pkg/geo"
)

// InventoryBrowser drives the inventory page. Beyond the usual list/search
// split it supports a nearby mode scoped to a captured position and radius.
type InventoryBrowser struct {
	client  *api.Client
	locator *geo.Locator
	browser Browser[model.Inventory]

	mu            sync.Mutex
	term          string
	itemName      string
	category      string
	availableOnly *bool
	storeID       *int64
	nearby        bool
	radiusKm      float64
	position      *geo.Position
	page          int
	limit         int
}

// NewInventoryBrowser creates a browser for inventory records.
func NewInventoryBrowser(client *api.Client, locator *geo.Locator, limit int) *InventoryBrowser {
	return &InventoryBrowser{client: client, locator: locator, page: 1, limit: limit}
}

// Load fetches the current page. Nearby mode routes to the location-scoped
// endpoint; otherwise any active filter routes to the search endpoint.
func (b *InventoryBrowser) Load(ctx context.Context) error {
	b.mu.Lock()
	if b.nearby && b.position != nil {
		params := api.NearbyInventoryParams{
			Latitude:  b.position.Latitude,
			Longitude: b.position.Longitude,
			RadiusKm:  b.radiusKm,
			Category:  b.category,
			ItemName:  b.itemName,
			Page:      b.page,
			Limit:     b.limit,
		}
		b.mu.Unlock()
		return b.browser.Load(ctx, func(ctx context.Context) (*api.Page[model.Inventory], error) {
			return b.client.NearbyInventory(ctx, params)
		})
	}

	params := api.InventorySearchParams{
		ItemName:      b.itemName,
		Category:      b.category,
		AvailableOnly: b.availableOnly,
		StoreID:       b.storeID,
		Page:          b.page,
		Limit:         b.limit,
	}
	b.mu.Unlock()

	if params.HasFilters() {
		return b.browser.Load(ctx, func(ctx context.Context) (*api.Page[model.Inventory], error) {
			return b.client.SearchInventory(ctx, params)
		})
	}
	list := api.InventoryListParams{Page: params.Page, Limit: params.Limit}
	return b.browser.Load(ctx, func(ctx context.Context) (*api.Page[model.Inventory], error) {
		return b.client.ListInventory(ctx, list)
	})
}

// InventoryFilters is the whole filter state at once, for seeding a
// browser before the first Load.
type InventoryFilters struct {
	ItemName      string
	Category      string
	AvailableOnly *bool
	StoreID       *int64
}

// SetFilters replaces the filter state without fetching and resets to
// page 1. Call Load afterwards.
func (b *InventoryBrowser) SetFilters(f InventoryFilters) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.term = f.ItemName
	b.itemName = f.ItemName
	b.category = f.Category
	b.availableOnly = f.AvailableOnly
	b.storeID = f.StoreID
	b.page = 1
}

// SetTerm records the pending item-name term without fetching.
func (b *InventoryBrowser) SetTerm(term string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.term = term
}

// SubmitSearch applies the pending term, resets to page 1 and fetches.
func (b *InventoryBrowser) SubmitSearch(ctx context.Context) error {
	b.mu.Lock()
	b.itemName = b.term
	b.page = 1
	b.mu.Unlock()
	return b.Load(ctx)
}

// SetCategory applies the category filter and refetches from page 1.
func (b *InventoryBrowser) SetCategory(ctx context.Context, category string) error {
	b.mu.Lock()
	b.category = category
	b.page = 1
	b.mu.Unlock()
	return b.Load(ctx)
}

// SetAvailableOnly applies the tri-state availability filter and refetches
// from page 1.
func (b *InventoryBrowser) SetAvailableOnly(ctx context.Context, available *bool) error {
	b.mu.Lock()
	b.availableOnly = available
	b.page = 1
	b.mu.Unlock()
	return b.Load(ctx)
}

// SetStore scopes the page to one store and refetches from page 1. nil
// clears the scope.
func (b *InventoryBrowser) SetStore(ctx context.Context, storeID *int64) error {
	b.mu.Lock()
	b.storeID = storeID
	b.page = 1
	b.mu.Unlock()
	return b.Load(ctx)
}

// EnableNearby captures the position and switches to the location-scoped
// endpoint with the given radius. On capture failure nearby mode stays off
// and the error is returned for display via geo.FailureMessage.
func (b *InventoryBrowser) EnableNearby(ctx context.Context, radiusKm float64) error {
	pos, err := b.locator.Locate(ctx)
	if err != nil {
		b.mu.Lock()
		b.nearby = false
		b.mu.Unlock()
		return err
	}

	b.mu.Lock()
	b.position = &pos
	b.nearby = true
	b.radiusKm = radiusKm
	b.page = 1
	b.mu.Unlock()
	return b.Load(ctx)
}

// DisableNearby returns to the regular list/search endpoints.
func (b *InventoryBrowser) DisableNearby(ctx context.Context) error {
	b.mu.Lock()
	b.nearby = false
	b.page = 1
	b.mu.Unlock()
	return b.Load(ctx)
}

// Nearby reports whether the location-scoped mode is active.
func (b *InventoryBrowser) Nearby() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nearby
}

// NextPage advances one page; it is a no-op without a next page link.
func (b *InventoryBrowser) NextPage(ctx context.Context) error {
	if !b.browser.HasNext() {
		return nil
	}
	b.mu.Lock()
	b.page++
	b.mu.Unlock()
	return b.Load(ctx)
}

// PreviousPage goes back one page; it is a no-op on page 1.
func (b *InventoryBrowser) PreviousPage(ctx context.Context) error {
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
func (b *InventoryBrowser) Reload(ctx context.Context) error {
	return b.Load(ctx)
}

// Page returns the 1-based page number.
func (b *InventoryBrowser) Page() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

func (b *InventoryBrowser) Results() []model.Inventory { return b.browser.Results() }
func (b *InventoryBrowser) State() State               { return b.browser.State() }
func (b *InventoryBrowser) Err() error                 { return b.browser.Err() }
func (b *InventoryBrowser) Count() int64               { return b.browser.Count() }
func (b *InventoryBrowser) HasNext() bool              { return b.browser.HasNext() }
func (b *InventoryBrowser) HasPrevious() bool          { return b.browser.HasPrevious() }

// Retry replays the last fetch after a failure.
func (b *InventoryBrowser) Retry(ctx context.Context) error { return b.browser.Retry(ctx) }
