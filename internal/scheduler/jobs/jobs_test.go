package jobs

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/breakout/internal/cache"
	"github.com/wonny/breakout/internal/ingestion"
	"github.com/wonny/breakout/internal/scheduler"
	"github.com/wonny/breakout/internal/settings"
	"github.com/wonny/breakout/internal/tracking"
	"github.com/wonny/breakout/internal/watchlist"
	"github.com/wonny/breakout/pkg/config"
	"github.com/wonny/breakout/pkg/logger"
)

var (
	_ scheduler.Job = (*RefreshJob)(nil)
	_ scheduler.Job = (*CachePurgeJob)(nil)
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "test", LogLevel: "error", LogFormat: "json"})
}

func newSampleManager(t *testing.T) *ingestion.Manager {
	t.Helper()
	log := testLogger()
	monitor := ingestion.NewHealthMonitor()

	primary, err := ingestion.NewFailover("primary", monitor, log, ingestion.NewSample())
	require.NoError(t, err)
	themes, err := ingestion.NewFailover("themes", monitor, log, ingestion.NewSample())
	require.NoError(t, err)

	store := cache.NewStore(t.TempDir(), time.Hour, log)
	return ingestion.NewManager(primary, themes, store, nil, monitor, log)
}

func TestRefreshJobCapturesSnapshot(t *testing.T) {
	log := testLogger()
	dataDir := t.TempDir()
	weights := settings.NewWeightStore(filepath.Join(dataDir, "weights.json"), log)
	store := tracking.NewFileStore(filepath.Join(dataDir, "runs.json"), log)
	tracker := tracking.NewTracker(store, log)

	job := NewRefreshJob(newSampleManager(t), weights, tracker, watchlist.Default(), "", log)
	assert.Equal(t, "data_refresh", job.Name())
	assert.Equal(t, defaultRefreshSchedule, job.Schedule())

	require.NoError(t, job.Run(context.Background()))

	history, err := tracker.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Len(t, history[0].Entries, 3)

	top := history[0].Entries[0]
	assert.Equal(t, 1, top.Rank)
	require.NotNil(t, top.RecordedPrice, "sample prices should be captured")
	require.NotNil(t, top.TargetPrice)
}

func TestRefreshJobHonorsScheduleOverride(t *testing.T) {
	log := testLogger()
	job := NewRefreshJob(nil, nil, nil, watchlist.Default(), "0 30 18 * * 1-5", log)

	assert.Equal(t, "0 30 18 * * 1-5", job.Schedule())
}

func TestCachePurgeJob(t *testing.T) {
	log := testLogger()
	dir := t.TempDir()

	// TTL 1ns: 쓰는 즉시 만료
	store := cache.NewStore(dir, time.Nanosecond, log)
	require.NoError(t, store.Set("indicators", "CLS", map[string]string{"k": "v"}))
	require.NoError(t, store.Set("prices", "CLS", map[string]string{"k": "v"}))

	job := NewCachePurgeJob(store, "", log)
	assert.Equal(t, "cache_purge", job.Name())
	assert.Equal(t, defaultPurgeSchedule, job.Schedule())

	require.NoError(t, job.Run(context.Background()))

	_, ok := store.FetchedAt("indicators", "CLS")
	assert.False(t, ok, "expired entries are removed from disk")
	_, ok = store.FetchedAt("prices", "CLS")
	assert.False(t, ok)
}

func TestJobsRegisterWithScheduler(t *testing.T) {
	log := testLogger()
	s := scheduler.New(log)

	store := cache.NewStore(t.TempDir(), time.Hour, log)
	require.NoError(t, s.AddJob(NewCachePurgeJob(store, "", log)))

	dataDir := t.TempDir()
	weights := settings.NewWeightStore(filepath.Join(dataDir, "weights.json"), log)
	tracker := tracking.NewTracker(tracking.NewFileStore(filepath.Join(dataDir, "runs.json"), log), log)
	require.NoError(t, s.AddJob(NewRefreshJob(newSampleManager(t), weights, tracker, watchlist.Default(), "", log)))

	assert.Equal(t, []string{"cache_purge", "data_refresh"}, s.GetAllJobs())
}
