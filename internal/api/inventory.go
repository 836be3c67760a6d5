package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vtnguyen/storeboard/internal/app/model"
)

// InventoryListParams filters the plain inventory list endpoint.
type InventoryListParams struct {
	StoreID *int64
	Page    int
	Limit   int
}

func (p InventoryListParams) Values() url.Values {
	v := url.Values{}
	setID(v, "store", p.StoreID)
	setInt(v, "page", p.Page)
	setInt(v, "limit", p.Limit)
	return v
}

// InventorySearchParams drives the inventory search endpoint.
type InventorySearchParams struct {
	ItemName      string
	Category      string
	AvailableOnly *bool
	StoreID       *int64
	Page          int
	Limit         int
}

func (p InventorySearchParams) Values() url.Values {
	v := url.Values{}
	setString(v, "item_name", p.ItemName)
	setString(v, "category", p.Category)
	setBool(v, "available_only", p.AvailableOnly)
	setID(v, "store", p.StoreID)
	setInt(v, "page", p.Page)
	setInt(v, "limit", p.Limit)
	return v
}

// HasFilters reports whether the search endpoint should be used.
func (p InventorySearchParams) HasFilters() bool {
	return p.ItemName != "" || p.Category != "" || p.AvailableOnly != nil || p.StoreID != nil
}

// NearbyInventoryParams drives the location-scoped inventory endpoint.
// Latitude, longitude and radius are mandatory there.
type NearbyInventoryParams struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	Category  string
	ItemName  string
	Page      int
	Limit     int
}

func (p NearbyInventoryParams) Values() url.Values {
	v := url.Values{}
	lat, lng, radius := p.Latitude, p.Longitude, p.RadiusKm
	setFloat(v, "latitude", &lat)
	setFloat(v, "longitude", &lng)
	setFloat(v, "radius_km", &radius)
	setString(v, "category", p.Category)
	setString(v, "item_name", p.ItemName)
	setInt(v, "page", p.Page)
	setInt(v, "limit", p.Limit)
	return v
}

// ListInventory fetches a page of inventory records.
func (c *Client) ListInventory(ctx context.Context, params InventoryListParams) (*Page[model.Inventory], error) {
	var page Page[model.Inventory]
	if err := c.get(ctx, "/inventory/", params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchInventory fetches a page from the inventory search endpoint.
func (c *Client) SearchInventory(ctx context.Context, params InventorySearchParams) (*Page[model.Inventory], error) {
	var page Page[model.Inventory]
	if err := c.get(ctx, "/inventory/search/", params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// NearbyInventory fetches inventory around a position.
func (c *Client) NearbyInventory(ctx context.Context, params NearbyInventoryParams) (*Page[model.Inventory], error) {
	var page Page[model.Inventory]
	if err := c.get(ctx, "/inventory/nearby/", params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetInventory fetches a single inventory record.
func (c *Client) GetInventory(ctx context.Context, id int64) (*model.Inventory, error) {
	var record model.Inventory
	if err := c.get(ctx, fmt.Sprintf("/inventory/%d/", id), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateInventory creates an inventory record. The backend enforces the
// one-record-per-(store, item) invariant; violations come back as
// ErrConflict or field errors.
func (c *Client) CreateInventory(ctx context.Context, payload model.InventoryWrite) (*model.Inventory, error) {
	var record model.Inventory
	if err := c.post(ctx, "/inventory/", payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateInventory replaces an inventory record.
func (c *Client) UpdateInventory(ctx context.Context, id int64, payload model.InventoryWrite) (*model.Inventory, error) {
	var record model.Inventory
	if err := c.put(ctx, fmt.Sprintf("/inventory/%d/", id), payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteInventory deletes an inventory record.
func (c *Client) DeleteInventory(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/inventory/%d/", id))
}

type availableItemsBody struct {
	Items []string `json:"items"`
}

// AvailableItems lists the distinct item names usable as the
// "has this inventory item" store filter.
func (c *Client) AvailableItems(ctx context.Context) ([]string, error) {
	var body availableItemsBody
	if err := c.get(ctx, "/inventory/available-items/", nil, &body); err != nil {
		return nil, err
	}
	return body.Items, nil
}
