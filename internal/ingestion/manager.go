package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/wonny/breakout/internal/cache"
	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/config"
	"github.com/wonny/breakout/pkg/httputil"
	"github.com/wonny/breakout/pkg/logger"
	"github.com/wonny/breakout/pkg/redis"
)

const (
	cacheNamespaceIndicators = "indicators"
	cacheNamespacePrices     = "prices"

	// 3년 일봉 요청 한도
	priceSeriesLimit = 365 * 3
)

// CompanyData is one company's fetch result: scored indicators plus the
// daily price history when a provider could serve it.
type CompanyData struct {
	Ticker     string                      `json:"ticker"`
	Indicators contracts.CompanyIndicators `json:"indicators"`
	Prices     *contracts.PricePayload     `json:"prices,omitempty"`
}

// Manager coordinates provider chains and the cache layers for company
// data. Reads go redis → disk cache → provider; writes fill both
// caches.
//
// ⭐ SSOT: 종목 데이터 수집/캐싱 조율은 여기서만 한다.
type Manager struct {
	primary Provider
	themes  Provider // 보조 신호 소스 (없으면 nil)
	cache   *cache.Store
	redis   *redis.Cache // 없으면 nil
	monitor *HealthMonitor
	logger  *logger.Logger
}

// NewManager assembles a manager from its collaborators. themes and
// redisCache may be nil.
func NewManager(primary, themes Provider, store *cache.Store, redisCache *redis.Cache, monitor *HealthMonitor, log *logger.Logger) *Manager {
	return &Manager{
		primary: primary,
		themes:  themes,
		cache:   store,
		redis:   redisCache,
		monitor: monitor,
		logger:  log,
	}
}

// Company returns cached data for ticker, fetching from providers on a
// miss. name overrides the display name when non-empty.
func (m *Manager) Company(ctx context.Context, ticker, name string) (CompanyData, error) {
	return m.fetch(ctx, ticker, name, false)
}

// Refresh bypasses the caches and refetches ticker from providers.
func (m *Manager) Refresh(ctx context.Context, ticker, name string) (CompanyData, error) {
	return m.fetch(ctx, ticker, name, true)
}

// RefreshMany force-refreshes every ticker, failing on the first
// provider error.
func (m *Manager) RefreshMany(ctx context.Context, tickers []string) ([]CompanyData, error) {
	results := make([]CompanyData, 0, len(tickers))
	for _, ticker := range tickers {
		data, err := m.Refresh(ctx, ticker, "")
		if err != nil {
			return nil, fmt.Errorf("refresh %s: %w", ticker, err)
		}
		results = append(results, data)
	}
	return results, nil
}

// Companies fetches tickers cache-first. Companies that fail are
// logged and skipped so one bad symbol cannot sink a ranking run.
func (m *Manager) Companies(ctx context.Context, tickers []string) []CompanyData {
	results := make([]CompanyData, 0, len(tickers))
	for _, ticker := range tickers {
		data, err := m.Company(ctx, ticker, "")
		if err != nil {
			m.logger.WithFields(map[string]interface{}{
				"ticker": ticker,
				"error":  err.Error(),
			}).Warn("Skipping company, fetch failed")
			continue
		}
		results = append(results, data)
	}
	return results
}

// LatestClose returns the most recent close for ticker, cache-first.
func (m *Manager) LatestClose(ctx context.Context, ticker string) (float64, bool) {
	data, err := m.Company(ctx, ticker, "")
	if err != nil || data.Prices == nil {
		return 0, false
	}
	return data.Prices.LatestClose()
}

// ProviderHealth reports per-provider success/failure records.
func (m *Manager) ProviderHealth() []ProviderStatus {
	if m.monitor == nil {
		return nil
	}
	return m.monitor.Statuses()
}

// CacheStore exposes the disk cache for maintenance jobs.
func (m *Manager) CacheStore() *cache.Store {
	return m.cache
}

func (m *Manager) fetch(ctx context.Context, ticker, name string, force bool) (CompanyData, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return CompanyData{}, fmt.Errorf("ticker is required")
	}

	indicators, err := m.indicators(ctx, ticker, name, force)
	if err != nil {
		return CompanyData{}, err
	}

	return CompanyData{
		Ticker:     ticker,
		Indicators: indicators,
		Prices:     m.prices(ctx, ticker, force),
	}, nil
}

func (m *Manager) indicators(ctx context.Context, ticker, name string, force bool) (contracts.CompanyIndicators, error) {
	var cached contracts.CompanyIndicators
	if !force {
		if m.redis != nil {
			if found, err := m.redis.Get(ctx, redis.IndicatorsKey(ticker), &cached); err == nil && found {
				return cached, nil
			}
		}
		found, err := m.cache.Get(cacheNamespaceIndicators, ticker, &cached)
		if err != nil {
			m.logger.WithError(err).WithField("ticker", ticker).Warn("Indicator cache read failed")
		} else if found {
			return cached, nil
		}
	}

	fundamentals, err := m.primary.Fundamentals(ctx, ticker)
	if err != nil {
		return contracts.CompanyIndicators{}, fmt.Errorf("fetch fundamentals for %s: %w", ticker, err)
	}
	indicators := NewTransformer(ticker, name).Build(fundamentals, m.aggregateMetadata(ctx, ticker, fundamentals))

	if err := m.cache.Set(cacheNamespaceIndicators, ticker, indicators); err != nil {
		m.logger.WithError(err).WithField("ticker", ticker).Warn("Indicator cache write failed")
	}
	if m.redis != nil {
		if err := m.redis.Set(ctx, redis.IndicatorsKey(ticker), indicators, redis.TTLIndicators); err != nil {
			m.logger.WithError(err).WithField("ticker", ticker).Warn("Redis indicator write failed")
		}
	}
	return indicators, nil
}

// prices returns the daily history for ticker, or nil when no provider
// can serve it. 가격 이력이 없어도 랭킹은 계속 진행한다.
func (m *Manager) prices(ctx context.Context, ticker string, force bool) *contracts.PricePayload {
	var cached contracts.PricePayload
	if !force {
		if m.redis != nil {
			if found, err := m.redis.Get(ctx, redis.PricesKey(ticker, "1day"), &cached); err == nil && found {
				return &cached
			}
		}
		found, err := m.cache.Get(cacheNamespacePrices, ticker, &cached)
		if err != nil {
			m.logger.WithError(err).WithField("ticker", ticker).Warn("Price cache read failed")
		} else if found {
			return &cached
		}
	}

	payload, err := m.primary.PriceSeries(ctx, ticker, priceSeriesLimit)
	if err != nil {
		m.logger.WithFields(map[string]interface{}{
			"ticker": ticker,
			"error":  err.Error(),
		}).Warn("Price history unavailable")
		return nil
	}

	if err := m.cache.Set(cacheNamespacePrices, ticker, payload); err != nil {
		m.logger.WithError(err).WithField("ticker", ticker).Warn("Price cache write failed")
	}
	if m.redis != nil {
		if err := m.redis.Set(ctx, redis.PricesKey(ticker, "1day"), payload, redis.TTLPrices); err != nil {
			m.logger.WithError(err).WithField("ticker", ticker).Warn("Redis price write failed")
		}
	}
	return &payload
}

// metadataKeys are the auxiliary signals merged from the themes
// provider, with the primary payload filling gaps.
var metadataKeys = []string{
	"themeAlignment",
	"strategicInvestorScore",
	"evToEbitdaVsPeers",
	"priceMomentum",
	"consolidationScore",
	"avgDollarVolume",
	"drawdown1Y",
}

// aggregateMetadata merges auxiliary signals that may live outside the
// primary provider. A themes-provider failure degrades to the primary
// payload instead of failing the company.
func (m *Manager) aggregateMetadata(ctx context.Context, ticker string, primary Fundamentals) Fundamentals {
	meta := Fundamentals{}

	var themes Fundamentals
	if m.themes != nil {
		fetched, err := m.themes.Fundamentals(ctx, ticker)
		if err != nil {
			m.logger.WithFields(map[string]interface{}{
				"ticker": ticker,
				"error":  err.Error(),
			}).Warn("Themes provider unavailable, metadata degraded")
		} else {
			themes = fetched
		}
	}

	for _, key := range metadataKeys {
		if v, ok := themes.lookup([]string{key}); ok {
			meta[key] = v
			continue
		}
		if v, ok := primary.lookup([]string{key}); ok {
			meta[key] = v
		}
	}

	// 섹터/업종은 테마 프로바이더 프로필이 1순위. FMP는 플랫 키,
	// 샘플은 profile 아래에 둔다.
	if sector := themes.Str(themes.Str("", "sector"), "profile", "sector"); sector != "" {
		meta["sector"] = sector
	}
	if industry := themes.Str(themes.Str("", "industry"), "profile", "industry"); industry != "" {
		meta["industry"] = industry
	}
	return meta
}

// BuildManager wires provider chains, the disk cache, and the optional
// Redis layer according to the configured data mode. The Redis client
// is returned alongside the manager (nil when unreachable) so callers
// can close it and expose its health.
//
// ⭐ SSOT: 데이터 소스 조립은 여기서만 한다.
func BuildManager(cfg *config.Config, log *logger.Logger) (*Manager, *redis.Client, error) {
	monitor := NewHealthMonitor()
	store := cache.NewStore(cfg.CacheDir(), cfg.CacheTTL, log)

	var redisCache *redis.Cache
	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing with disk cache only")
		redisClient = nil
	} else if redisClient.Enabled() {
		redisCache = redis.NewCache(redisClient, "breakout")
	}

	if cfg.UseSampleData() {
		sample := NewSample()
		primary, err := NewFailover("primary", monitor, log, sample)
		if err != nil {
			return nil, nil, err
		}
		themes, err := NewFailover("themes", monitor, log, sample)
		if err != nil {
			return nil, nil, err
		}
		log.Info("📦 Sample data mode active (no API tokens required)")
		return NewManager(primary, themes, store, redisCache, monitor, log), redisClient, nil
	}

	var primaryProviders []Provider
	if cfg.Finnhub.Token != "" {
		primaryProviders = append(primaryProviders, NewFinnhub(cfg.Finnhub, httputil.New(cfg, log), log))
	}
	if cfg.TwelveData.Token != "" {
		primaryProviders = append(primaryProviders, NewTwelveData(cfg.TwelveData, httputil.New(cfg, log), log))
	}
	if len(primaryProviders) == 0 {
		return nil, nil, fmt.Errorf("live data mode requires FINNHUB_TOKEN or TWELVE_DATA_TOKEN")
	}
	primary, err := NewFailover("primary", monitor, log, primaryProviders...)
	if err != nil {
		return nil, nil, err
	}

	var themes Provider
	if cfg.FMP.Token != "" {
		chain, err := NewFailover("themes", monitor, log, NewFMP(cfg.FMP, httputil.New(cfg, log), log))
		if err != nil {
			return nil, nil, err
		}
		themes = chain
	}

	log.WithFields(map[string]interface{}{
		"primary": primary.Labels(),
		"themes":  themes != nil,
	}).Info("🌐 Live data mode active")

	return NewManager(primary, themes, store, redisCache, monitor, log), redisClient, nil
}
