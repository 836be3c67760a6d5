package browse

import (
	"context"
	"sync"

	"github.com/vtnguyen/storeboard/internal/api"
	"github.com/vtnguyen/storeboard/internal/app/model"
	"github.com/vtnguyen/storeboard/pkg/geo"
)

// StoreRow is a store plus the display-only distance from the captured
// position. DistanceKm is nil when nearby sorting is off or the store has
// no coordinates.
type StoreRow struct {
	model.Store
	DistanceKm *float64
}

// StoreBrowser drives the store page: free-text search submitted
// explicitly, closed-enum filters applied immediately, optional nearby
// sorting backed by a position capture.
type StoreBrowser struct {
	client  *api.Client
	locator *geo.Locator
	browser Browser[model.Store]

	mu         sync.Mutex
	term       string // pending free text, applied on SubmitSearch
	search     string // submitted free text
	district   string
	storeType  string
	isActive   *bool
	itemFilter string
	sortNearby bool
	position   *geo.Position
	page       int
	limit      int
}

// NewStoreBrowser creates a browser. limit <= 0 falls back to the backend
// default page size.
func NewStoreBrowser(client *api.Client, locator *geo.Locator, limit int) *StoreBrowser {
	return &StoreBrowser{client: client, locator: locator, page: 1, limit: limit}
}

func (b *StoreBrowser) paramsLocked() api.StoreSearchParams {
	params := api.StoreSearchParams{
		Search:        b.search,
		District:      b.district,
		StoreType:     b.storeType,
		IsActive:      b.isActive,
		InventoryItem: b.itemFilter,
		Page:          b.page,
		Limit:         b.limit,
	}
	if b.sortNearby && b.position != nil {
		lat, lng := b.position.Latitude, b.position.Longitude
		sort := true
		params.Latitude = &lat
		params.Longitude = &lng
		params.SortByDistance = &sort
	}
	return params
}

// Load fetches the current page. The plain list endpoint serves unfiltered
// browsing; any active filter routes to the search endpoint.
func (b *StoreBrowser) Load(ctx context.Context) error {
	b.mu.Lock()
	params := b.paramsLocked()
	b.mu.Unlock()

	if params.HasFilters() {
		return b.browser.Load(ctx, func(ctx context.Context) (*api.Page[model.Store], error) {
			return b.client.SearchStores(ctx, params)
		})
	}
	list := api.StoreListParams{Page: params.Page, Limit: params.Limit}
	return b.browser.Load(ctx, func(ctx context.Context) (*api.Page[model.Store], error) {
		return b.client.ListStores(ctx, list)
	})
}

// StoreFilters is the whole filter state at once, for seeding a browser
// from saved or flag-derived state before the first Load.
type StoreFilters struct {
	Search        string
	District      string
	StoreType     string
	IsActive      *bool
	AvailableItem string
}

// SetFilters replaces the filter state without fetching and resets to
// page 1. Call Load afterwards.
func (b *StoreBrowser) SetFilters(f StoreFilters) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.term = f.Search
	b.search = f.Search
	b.district = f.District
	b.storeType = f.StoreType
	b.isActive = f.IsActive
	b.itemFilter = f.AvailableItem
	b.page = 1
}

// SetTerm records the free-text term without fetching. SubmitSearch applies
// it.
func (b *StoreBrowser) SetTerm(term string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.term = term
}

// SubmitSearch applies the pending term, resets to page 1 and fetches.
func (b *StoreBrowser) SubmitSearch(ctx context.Context) error {
	b.mu.Lock()
	b.search = b.term
	b.page = 1
	b.mu.Unlock()
	return b.Load(ctx)
}

// SetDistrict applies the district filter and refetches from page 1.
func (b *StoreBrowser) SetDistrict(ctx context.Context, district string) error {
	b.mu.Lock()
	b.district = district
	b.page = 1
	b.mu.Unlock()
	return b.Load(ctx)
}

// SetStoreType applies the brand filter and refetches from page 1.
func (b *StoreBrowser) SetStoreType(ctx context.Context, storeType string) error {
	b.mu.Lock()
	b.storeType = storeType
	b.page = 1
	b.mu.Unlock()
	return b.Load(ctx)
}

// SetActive applies the tri-state status filter and refetches from page 1.
// nil means both active and inactive stores.
func (b *StoreBrowser) SetActive(ctx context.Context, active *bool) error {
	b.mu.Lock()
	b.isActive = active
	b.page = 1
	b.mu.Unlock()
	return b.Load(ctx)
}

// SetAvailableItem filters to stores stocking the named item and refetches
// from page 1.
func (b *StoreBrowser) SetAvailableItem(ctx context.Context, item string) error {
	b.mu.Lock()
	b.itemFilter = item
	b.page = 1
	b.mu.Unlock()
	return b.Load(ctx)
}

// ToggleNearby turns distance sorting on or off. Turning it on captures the
// position first; on capture failure the toggle stays off and the error is
// returned for display via geo.FailureMessage.
func (b *StoreBrowser) ToggleNearby(ctx context.Context, on bool) error {
	if !on {
		b.mu.Lock()
		b.sortNearby = false
		b.page = 1
		b.mu.Unlock()
		return b.Load(ctx)
	}

	pos, err := b.locator.Locate(ctx)
	if err != nil {
		b.mu.Lock()
		b.sortNearby = false
		b.mu.Unlock()
		return err
	}

	b.mu.Lock()
	b.position = &pos
	b.sortNearby = true
	b.page = 1
	b.mu.Unlock()
	return b.Load(ctx)
}

// SortNearby reports whether distance sorting is active.
func (b *StoreBrowser) SortNearby() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sortNearby
}

// NextPage advances one page; it is a no-op without a next page link.
func (b *StoreBrowser) NextPage(ctx context.Context) error {
	if !b.browser.HasNext() {
		return nil
	}
	b.mu.Lock()
	b.page++
	b.mu.Unlock()
	return b.Load(ctx)
}

// PreviousPage goes back one page; it is a no-op on page 1.
func (b *StoreBrowser) PreviousPage(ctx context.Context) error {
	b.mu.Lock()
	if b.page <= 1 {
		b.mu.Unlock()
		return nil
	}
	b.page--
	b.mu.Unlock()
	return b.Load(ctx)
}

// Reload refetches the current page with the active filters, used after a
// create, update or delete so the page stays consistent with its filters.
func (b *StoreBrowser) Reload(ctx context.Context) error {
	return b.Load(ctx)
}

// Rows returns the current page with display distances attached when
// nearby sorting is on.
func (b *StoreBrowser) Rows() []StoreRow {
	b.mu.Lock()
	sortNearby, position := b.sortNearby, b.position
	b.mu.Unlock()

	stores := b.browser.Results()
	rows := make([]StoreRow, 0, len(stores))
	for _, store := range stores {
		row := StoreRow{Store: store}
		if sortNearby && position != nil && store.Latitude != nil && store.Longitude != nil {
			km := geo.RoundKm(geo.Distance(position.Latitude, position.Longitude, *store.Latitude, *store.Longitude))
			row.DistanceKm = &km
		}
		rows = append(rows, row)
	}
	return rows
}

// Page returns the 1-based page number.
func (b *StoreBrowser) Page() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

func (b *StoreBrowser) State() State      { return b.browser.State() }
func (b *StoreBrowser) Err() error        { return b.browser.Err() }
func (b *StoreBrowser) Count() int64      { return b.browser.Count() }
func (b *StoreBrowser) HasNext() bool     { return b.browser.HasNext() }
func (b *StoreBrowser) HasPrevious() bool { return b.browser.HasPrevious() }

// Retry replays the last fetch after a failure.
func (b *StoreBrowser) Retry(ctx context.Context) error { return b.browser.Retry(ctx) }
