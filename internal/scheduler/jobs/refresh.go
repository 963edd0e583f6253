package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/internal/ingestion"
	"github.com/wonny/breakout/internal/scoring"
	"github.com/wonny/breakout/internal/settings"
	"github.com/wonny/breakout/internal/tracking"
	"github.com/wonny/breakout/internal/watchlist"
	"github.com/wonny/breakout/pkg/logger"
)

// defaultRefreshSchedule runs before US pre-market, daily.
const defaultRefreshSchedule = "0 0 6 * * *"

// RefreshJob re-fetches the watch universe, re-ranks it and appends a
// ranking snapshot so performance tracking accrues without manual runs
// ⭐ SSOT: 정기 데이터 갱신은 이 Job에서만
type RefreshJob struct {
	manager  *ingestion.Manager
	weights  *settings.WeightStore
	tracker  *tracking.Tracker
	watch    *watchlist.Watchlist
	schedule string
	logger   *logger.Logger
}

// NewRefreshJob creates a new refresh job. An empty schedule falls
// back to the built-in default.
func NewRefreshJob(manager *ingestion.Manager, weights *settings.WeightStore, tracker *tracking.Tracker, watch *watchlist.Watchlist, schedule string, log *logger.Logger) *RefreshJob {
	if schedule == "" {
		schedule = defaultRefreshSchedule
	}
	return &RefreshJob{
		manager:  manager,
		weights:  weights,
		tracker:  tracker,
		watch:    watch,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "data_refresh"
}

// Schedule returns the cron schedule expression
func (j *RefreshJob) Schedule() string {
	return j.schedule
}

// Run executes the refresh: force-fetch, rank, snapshot
func (j *RefreshJob) Run(ctx context.Context) error {
	tickers := j.watch.Symbols()
	j.logger.WithField("tickers", len(tickers)).Info("Starting scheduled data refresh")

	companies, err := j.manager.RefreshMany(ctx, tickers)
	if err != nil {
		return fmt.Errorf("refresh watch universe: %w", err)
	}

	indicators := make([]contracts.CompanyIndicators, 0, len(companies))
	prices := make(tracking.PriceLookup, len(companies))
	for _, company := range companies {
		indicators = append(indicators, company.Indicators)
		if company.Prices != nil {
			prices[company.Ticker] = company.Prices
		}
	}

	engine := scoring.NewEngine(j.weights.Load(), j.logger)
	scores := engine.Rank(indicators)

	snapshot, err := j.tracker.Capture(ctx, scores, prices)
	if err != nil {
		return fmt.Errorf("capture refresh snapshot: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"snapshot": snapshot.ID,
		"entries":  len(snapshot.Entries),
	}).Info("Scheduled refresh completed")

	return nil
}
