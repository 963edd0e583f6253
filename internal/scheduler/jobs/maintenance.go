package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/breakout/internal/cache"
	"github.com/wonny/breakout/pkg/logger"
)

// defaultPurgeSchedule runs early Sunday mornings.
const defaultPurgeSchedule = "0 0 3 * * 0"

// CachePurgeJob deletes expired disk-cache entries
type CachePurgeJob struct {
	store    *cache.Store
	schedule string
	logger   *logger.Logger
}

// NewCachePurgeJob creates a new cache purge job. An empty schedule
// falls back to the built-in default.
func NewCachePurgeJob(store *cache.Store, schedule string, log *logger.Logger) *CachePurgeJob {
	if schedule == "" {
		schedule = defaultPurgeSchedule
	}
	return &CachePurgeJob{
		store:    store,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *CachePurgeJob) Name() string {
	return "cache_purge"
}

// Schedule returns the cron schedule expression
func (j *CachePurgeJob) Schedule() string {
	return j.schedule
}

// Run executes the cache purge
func (j *CachePurgeJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting scheduled cache purge")

	count, err := j.store.PurgeExpired()
	if err != nil {
		return fmt.Errorf("purge cache: %w", err)
	}

	if count > 0 {
		j.logger.WithField("removed", count).Info("Cache purge completed")
	}

	return nil
}
