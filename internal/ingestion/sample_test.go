package ingestion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/breakout/internal/cache"
)

func TestSampleFundamentals(t *testing.T) {
	provider := NewSample()

	payload, err := provider.Fundamentals(context.Background(), "cls")
	require.NoError(t, err)

	assert.InDelta(t, 0.17, payload.Float(0, "growth", "threeYearRevenueCagr"), 1e-9)
	assert.InDelta(t, 0.32, payload.Float(0, "operational", "backlogGrowth"), 1e-9)
	assert.InDelta(t, 0.85, payload.Float(0, "themeAlignment"), 1e-9)
	assert.Equal(t, "Celestica Inc.", payload.Str("", "profile", "companyName"))
	assert.Equal(t, "Technology", payload.Str("", "profile", "sector"))
}

func TestSampleUnknownTickerFallsBackToCLS(t *testing.T) {
	provider := NewSample()

	payload, err := provider.Fundamentals(context.Background(), "ZZZ")
	require.NoError(t, err)
	assert.Equal(t, "Celestica Inc.", payload.Str("", "profile", "companyName"))

	prices, err := provider.PriceSeries(context.Background(), "ZZZ", 365)
	require.NoError(t, err)
	require.NotEmpty(t, prices.Candles)
	assert.InDelta(t, 8.2, prices.Candles[0].Close, 1e-9)
}

func TestSamplePriceSeriesShape(t *testing.T) {
	provider := NewSample()

	payload, err := provider.PriceSeries(context.Background(), "CLS", 365)
	require.NoError(t, err)
	assert.Equal(t, "CLS", payload.Symbol)
	require.Len(t, payload.Candles, 20)

	// 2022-01-01부터 30일 간격
	assert.Equal(t, "2022-01-01", payload.Candles[0].Date)
	assert.Equal(t, "2022-01-31", payload.Candles[1].Date)

	first, err := time.Parse("2006-01-02", payload.Candles[0].Date)
	require.NoError(t, err)
	second, err := time.Parse("2006-01-02", payload.Candles[1].Date)
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, second.Sub(first))

	latest, ok := payload.LatestClose()
	require.True(t, ok)
	assert.InDelta(t, 52.7, latest, 1e-9)
}

func TestSamplePriceSeriesHonorsLimit(t *testing.T) {
	provider := NewSample()

	payload, err := provider.PriceSeries(context.Background(), "SMCI", 5)
	require.NoError(t, err)
	require.Len(t, payload.Candles, 5)
	assert.InDelta(t, 40.0, payload.Candles[0].Close, 1e-9)
	assert.InDelta(t, 52.0, payload.Candles[4].Close, 1e-9)
}

func TestSampleTickers(t *testing.T) {
	assert.Equal(t, []string{"CLS", "NVST", "SMCI"}, SampleTickers())
}

// 샘플 모드는 전체 파이프라인(메타데이터 병합 포함)을 통과해도
// 직접 로드한 샘플 지표와 같아야 한다.
func TestSampleThroughManagerMatchesDataset(t *testing.T) {
	sample := NewSample()
	monitor := NewHealthMonitor()
	primary, err := NewFailover("primary", monitor, testLogger(), sample)
	require.NoError(t, err)
	themes, err := NewFailover("themes", monitor, testLogger(), sample)
	require.NoError(t, err)

	store := cache.NewStore(t.TempDir(), time.Hour, testLogger())
	manager := NewManager(primary, themes, store, nil, monitor, testLogger())

	data, err := manager.Company(context.Background(), "cls", "")
	require.NoError(t, err)

	got := data.Indicators
	assert.Equal(t, "CLS", got.Ticker)
	assert.Equal(t, "Celestica Inc.", got.Name)
	assert.Equal(t, "Technology", got.Sector)
	assert.Equal(t, "Electronic Components", got.Industry)

	assert.InDelta(t, 0.17, got.Growth.RevenueCAGR3Y, 1e-9)
	require.NotNil(t, got.Growth.BacklogGrowth)
	assert.InDelta(t, 0.32, *got.Growth.BacklogGrowth, 1e-9)

	assert.InDelta(t, 0.85, got.Catalysts.ThemeAlignment, 1e-9)
	require.NotNil(t, got.Catalysts.StrategicInvestorPresent)
	assert.InDelta(t, 0.3, *got.Catalysts.StrategicInvestorPresent, 1e-9)

	assert.InDelta(t, -1.5, got.Valuation.EVToEBITDAVsPeers, 1e-9)
	assert.InDelta(t, 0.22, got.Valuation.PriceMomentum, 1e-9)
	assert.InDelta(t, 0.6, got.Valuation.ConsolidationScore, 1e-9)

	assert.InDelta(t, 4.5e7, got.Risk.AvgDailyDollarVolume, 1)
	assert.InDelta(t, 0.2, got.Risk.Drawdown1Y, 1e-9)

	require.NotNil(t, data.Prices)
	latest, ok := data.Prices.LatestClose()
	require.True(t, ok)
	assert.InDelta(t, 52.7, latest, 1e-9)

	// 헬스 모니터에도 성공이 기록된다 (primary가 먼저 호출된다)
	statuses := manager.ProviderHealth()
	require.Len(t, statuses, 2)
	assert.Equal(t, "primary:sample", statuses[0].Name)
	assert.Equal(t, "themes:sample", statuses[1].Name)
	assert.EqualValues(t, 2, statuses[0].SuccessCount, "fundamentals + price series")
}
