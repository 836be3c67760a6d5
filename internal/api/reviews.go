package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/vtnguyen/storeboard/internal/app/model"
)

// ListStoreReviews fetches a page of reviews for one store.
func (c *Client) ListStoreReviews(ctx context.Context, storeID int64, page, limit int) (*Page[model.Review], error) {
	v := url.Values{}
	v.Set("store", strconv.FormatInt(storeID, 10))
	setInt(v, "page", page)
	setInt(v, "limit", limit)

	var result Page[model.Review]
	if err := c.get(ctx, "/reviews/", v, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateReview posts a new review.
func (c *Client) CreateReview(ctx context.Context, payload model.ReviewWrite) (*model.Review, error) {
	var review model.Review
	if err := c.post(ctx, "/reviews/", payload, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// UpdateReview replaces a review. The backend enforces that only the
// reviewer may do this.
func (c *Client) UpdateReview(ctx context.Context, id int64, payload model.ReviewWrite) (*model.Review, error) {
	var review model.Review
	if err := c.put(ctx, fmt.Sprintf("/reviews/%d/", id), payload, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview deletes a review.
func (c *Client) DeleteReview(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/reviews/%d/", id))
}
