package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vtnguyen/storeboard/internal/app/model"
)

// ItemListParams filters the plain item list endpoint.
type ItemListParams struct {
	Search string
	Page   int
	Limit  int
}

func (p ItemListParams) Values() url.Values {
	v := url.Values{}
	setString(v, "search", p.Search)
	setInt(v, "page", p.Page)
	setInt(v, "limit", p.Limit)
	return v
}

// ItemSearchParams drives the item search endpoint.
type ItemSearchParams struct {
	Search   string
	Category string
	IsActive *bool
	Page     int
	Limit    int
}

func (p ItemSearchParams) Values() url.Values {
	v := url.Values{}
	setString(v, "search", p.Search)
	setString(v, "category", p.Category)
	setBool(v, "is_active", p.IsActive)
	setInt(v, "page", p.Page)
	setInt(v, "limit", p.Limit)
	return v
}

// HasFilters reports whether the search endpoint should be used.
func (p ItemSearchParams) HasFilters() bool {
	return p.Search != "" || p.Category != "" || p.IsActive != nil
}

// ListItems fetches a page of catalog items.
func (c *Client) ListItems(ctx context.Context, params ItemListParams) (*Page[model.Item], error) {
	var page Page[model.Item]
	if err := c.get(ctx, "/items/", params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchItems fetches a page from the item search endpoint.
func (c *Client) SearchItems(ctx context.Context, params ItemSearchParams) (*Page[model.Item], error) {
	var page Page[model.Item]
	if err := c.get(ctx, "/items/search/", params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetItem fetches a single item.
func (c *Client) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	var item model.Item
	if err := c.get(ctx, fmt.Sprintf("/items/%d/", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem creates a catalog item.
func (c *Client) CreateItem(ctx context.Context, payload model.ItemWrite) (*model.Item, error) {
	var item model.Item
	if err := c.post(ctx, "/items/", payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem replaces an item.
func (c *Client) UpdateItem(ctx context.Context, id int64, payload model.ItemWrite) (*model.Item, error) {
	var item model.Item
	if err := c.put(ctx, fmt.Sprintf("/items/%d/", id), payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem deletes an item.
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/items/%d/", id))
}
