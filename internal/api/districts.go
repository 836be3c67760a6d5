package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/vtnguyen/storeboard/internal/app/model"
)

// DistrictSearchParams drives the district search endpoint.
type DistrictSearchParams struct {
	Search       string
	City         string
	DistrictType string
	IsActive     *bool
	Page         int
	Limit        int
}

func (p DistrictSearchParams) Values() url.Values {
	v := url.Values{}
	setString(v, "search", p.Search)
	setString(v, "city", p.City)
	setString(v, "district_type", p.DistrictType)
	setBool(v, "is_active", p.IsActive)
	setInt(v, "page", p.Page)
	setInt(v, "limit", p.Limit)
	return v
}

// ListDistricts fetches a page of districts.
func (c *Client) ListDistricts(ctx context.Context, page, limit int) (*Page[model.District], error) {
	v := url.Values{}
	setInt(v, "page", page)
	setInt(v, "limit", limit)
	var result Page[model.District]
	if err := c.get(ctx, "/districts/", v, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchDistricts fetches a page from the district search endpoint.
func (c *Client) SearchDistricts(ctx context.Context, params DistrictSearchParams) (*Page[model.District], error) {
	var result Page[model.District]
	if err := c.get(ctx, "/districts/search/", params.Values(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetDistrict fetches a single district.
func (c *Client) GetDistrict(ctx context.Context, id int64) (*model.District, error) {
	var district model.District
	if err := c.get(ctx, fmt.Sprintf("/districts/%d/", id), nil, &district); err != nil {
		return nil, err
	}
	return &district, nil
}

// LookupDistrictByCoordinates resolves the district and city containing the
// given point. Unlike the address lookup, a failure here is user-visible.
func (c *Client) LookupDistrictByCoordinates(ctx context.Context, latitude, longitude float64) (*model.DistrictLookup, error) {
	v := url.Values{}
	v.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	v.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))

	var lookup model.DistrictLookup
	if err := c.get(ctx, "/districts/lookup-by-coordinates/", v, &lookup); err != nil {
		return nil, err
	}
	return &lookup, nil
}
