// Package scheduler refreshes the analytics snapshot in the background so
// the watch view always has a recent copy without hammering the backend.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vtnguyen/storeboard/internal/api"
	"github.com/vtnguyen/storeboard/internal/app/model"
	"github.com/vtnguyen/storeboard/pkg/logger"
)

const refreshTimeout = 30 * time.Second

// AnalyticsScheduler periodically fetches the analytics snapshot and keeps
// the latest successful one.
type AnalyticsScheduler struct {
	cron   *cron.Cron
	client *api.Client
	spec   string

	mu        sync.RWMutex
	snapshot  *model.AnalyticsSnapshot
	fetchedAt time.Time
}

// NewAnalyticsScheduler creates a scheduler with the given cron spec, e.g.
// "@every 1m" for the watch view.
func NewAnalyticsScheduler(client *api.Client, spec string) *AnalyticsScheduler {
	return &AnalyticsScheduler{
		cron:   cron.New(),
		client: client,
		spec:   spec,
	}
}

// Start refreshes once immediately, then on the cron schedule.
func (s *AnalyticsScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.refresh)
	if err != nil {
		logger.Error("Failed to add cron job for analytics refresh", err)
		return err
	}

	s.refresh()
	s.cron.Start()
	logger.Info("Analytics scheduler started", map[string]interface{}{"spec": s.spec})
	return nil
}

// Stop halts the schedule. The last snapshot stays readable.
func (s *AnalyticsScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Analytics scheduler stopped")
}

// Snapshot returns the latest successful snapshot and when it was fetched.
// It returns nil before the first successful refresh.
func (s *AnalyticsScheduler) Snapshot() (*model.AnalyticsSnapshot, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.fetchedAt
}

func (s *AnalyticsScheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	snapshot, err := s.client.GetAnalytics(ctx)
	if err != nil {
		// Keep the previous snapshot; the watch view shows its age.
		logger.Error("Failed to refresh analytics snapshot", err)
		return
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	logger.Debug("Analytics snapshot refreshed", map[string]interface{}{
		"total_stores": snapshot.TotalStores,
	})
}
