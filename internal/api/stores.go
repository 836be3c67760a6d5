package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vtnguyen/storeboard/internal/app/model"
)

// StoreListParams filters the plain store list endpoint.
type StoreListParams struct {
	Search   string
	District string
	Status   string
	Page     int
	Limit    int
}

func (p StoreListParams) Values() url.Values {
	v := url.Values{}
	setString(v, "search", p.Search)
	setString(v, "district", p.District)
	setString(v, "status", p.Status)
	setInt(v, "page", p.Page)
	setInt(v, "limit", p.Limit)
	return v
}

// StoreSearchParams drives the advanced search endpoint. Every field is
// optional and omitted when unset.
type StoreSearchParams struct {
	Search         string
	District       string
	StoreType      string
	IsActive       *bool
	InventoryItem  string
	Latitude       *float64
	Longitude      *float64
	RadiusKm       *float64
	SortByDistance *bool
	Page           int
	Limit          int
}

func (p StoreSearchParams) Values() url.Values {
	v := url.Values{}
	setString(v, "search", p.Search)
	setString(v, "district", p.District)
	setString(v, "store_type", p.StoreType)
	setBool(v, "is_active", p.IsActive)
	setString(v, "inventory_item", p.InventoryItem)
	setFloat(v, "latitude", p.Latitude)
	setFloat(v, "longitude", p.Longitude)
	setFloat(v, "radius_km", p.RadiusKm)
	setBool(v, "sort_by_distance", p.SortByDistance)
	setInt(v, "page", p.Page)
	setInt(v, "limit", p.Limit)
	return v
}

// HasFilters reports whether any filter beyond paging is active, which is
// what routes a fetch to the search endpoint instead of the list endpoint.
func (p StoreSearchParams) HasFilters() bool {
	return p.Search != "" || p.District != "" || p.StoreType != "" ||
		p.IsActive != nil || p.InventoryItem != "" ||
		(p.Latitude != nil && p.Longitude != nil)
}

// ListStores fetches a page from the plain list endpoint.
func (c *Client) ListStores(ctx context.Context, params StoreListParams) (*Page[model.Store], error) {
	var page Page[model.Store]
	if err := c.get(ctx, "/stores/", params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchStores fetches a page from the advanced search endpoint.
func (c *Client) SearchStores(ctx context.Context, params StoreSearchParams) (*Page[model.Store], error) {
	var page Page[model.Store]
	if err := c.get(ctx, "/stores/search/", params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetStore fetches a single store.
func (c *Client) GetStore(ctx context.Context, id int64) (*model.Store, error) {
	var store model.Store
	if err := c.get(ctx, fmt.Sprintf("/stores/%d/", id), nil, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

// CreateStore creates a store from the write payload.
func (c *Client) CreateStore(ctx context.Context, payload model.StoreWrite) (*model.Store, error) {
	var store model.Store
	if err := c.post(ctx, "/stores/", payload, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

// UpdateStore replaces a store.
func (c *Client) UpdateStore(ctx context.Context, id int64, payload model.StoreWrite) (*model.Store, error) {
	var store model.Store
	if err := c.put(ctx, fmt.Sprintf("/stores/%d/", id), payload, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

// DeleteStore deletes a store. The endpoint exists even though the latest
// store page wires no control to it.
func (c *Client) DeleteStore(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/stores/%d/", id))
}

// StoreLocations fetches the lightweight location list for map rendering.
func (c *Client) StoreLocations(ctx context.Context) ([]model.StoreLocation, error) {
	var locations []model.StoreLocation
	if err := c.get(ctx, "/stores/locations/", nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}
