package api

import (
	"context"

	"github.com/vtnguyen/storeboard/internal/app/model"
)

// GetAnalytics fetches the aggregate dashboard snapshot.
func (c *Client) GetAnalytics(ctx context.Context) (*model.AnalyticsSnapshot, error) {
	var snapshot model.AnalyticsSnapshot
	if err := c.get(ctx, "/analytics/", nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
