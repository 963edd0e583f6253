package commands

import (
	"context"
	"fmt"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/internal/ingestion"
	"github.com/wonny/breakout/internal/settings"
	"github.com/wonny/breakout/internal/tracking"
	"github.com/wonny/breakout/internal/watchlist"
	"github.com/wonny/breakout/pkg/config"
	"github.com/wonny/breakout/pkg/database"
	"github.com/wonny/breakout/pkg/logger"
	"github.com/wonny/breakout/pkg/redis"
)

// runtime bundles the long-lived dependencies every command wires the
// same way: config → logger → provider manager → stores.
// ⭐ SSOT: CLI 의존성 조립은 initRuntime() 한 곳에서만
type runtime struct {
	cfg     *config.Config
	log     *logger.Logger
	manager *ingestion.Manager
	watch   *watchlist.Watchlist
	weights *settings.WeightStore
	prefs   *settings.PreferencesStore
	tracker *tracking.Tracker

	db          *database.DB  // nil when snapshots are file-backed
	redisClient *redis.Client // nil when Redis is disabled or unreachable
}

func initRuntime(ctx context.Context) (*runtime, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Settings stores. 환경변수가 auto로 남겨둔 데이터 모드는
	// 저장된 선호 설정이 정할 수 있다.
	weights := settings.NewWeightStore(cfg.WeightsPath(), log)
	prefs := settings.NewPreferencesStore(cfg.PreferencesPath(), log)
	if p := prefs.Load(); cfg.DataMode == config.DataModeAuto && p.DataMode != "" && p.DataMode != config.DataModeAuto {
		cfg.DataMode = p.DataMode
	}

	// 4. Build the provider manager (live chain or embedded samples)
	manager, redisClient, err := ingestion.BuildManager(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("build data manager: %w", err)
	}

	// 5. Load the watch universe
	watch, err := watchlist.LoadOrDefault(cfg.WatchlistPath)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}

	// 6. Snapshot store: PostgreSQL when DATABASE_URL is set, JSON file otherwise
	var (
		repo contracts.SnapshotRepository
		db   *database.DB
	)
	if cfg.Database.URL != "" {
		db, err = database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		store, err := tracking.NewPostgresStore(ctx, db, log)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("init snapshot store: %w", err)
		}
		repo = store
	} else {
		repo = tracking.NewFileStore(cfg.SnapshotHistoryPath(), log)
	}

	tracker := tracking.NewTracker(repo, log)

	return &runtime{
		cfg:         cfg,
		log:         log,
		manager:     manager,
		watch:       watch,
		weights:     weights,
		prefs:       prefs,
		tracker:     tracker,
		db:          db,
		redisClient: redisClient,
	}, nil
}

// Close releases the backing connections (no-op for file-backed runs).
func (r *runtime) Close() {
	if r.db != nil {
		r.db.Close()
	}
	if r.redisClient != nil {
		_ = r.redisClient.Close()
	}
}

// defaultUniverse resolves the ranking universe when no tickers were
// given: an explicit watchlist file wins, otherwise the tracked tickers
// from preferences, otherwise the built-in trio.
func (r *runtime) defaultUniverse() []string {
	if r.cfg.WatchlistPath == "" {
		if tracked := r.prefs.Load().TrackedTickers; len(tracked) > 0 {
			return tracked
		}
	}
	return r.watch.Symbols()
}

// universeIndicators fetches indicators for the watch universe, skipping
// tickers whose providers fail. Explicit tickers override the watchlist.
func (r *runtime) universeIndicators(ctx context.Context, tickers []string) ([]contracts.CompanyIndicators, []ingestion.CompanyData, error) {
	if len(tickers) == 0 {
		tickers = r.defaultUniverse()
	}
	companies := r.manager.Companies(ctx, tickers)
	if len(companies) == 0 {
		return nil, nil, fmt.Errorf("no data available for universe %v", tickers)
	}
	indicators := make([]contracts.CompanyIndicators, 0, len(companies))
	for _, c := range companies {
		indicators = append(indicators, c.Indicators)
	}
	return indicators, companies, nil
}
