package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformerBuildFullPayload(t *testing.T) {
	meta := Fundamentals{
		"themeAlignment":         0.85,
		"strategicInvestorScore": 0.3,
		"evToEbitdaVsPeers":      -1.5,
		"priceMomentum":          0.22,
		"consolidationScore":     0.6,
		"avgDollarVolume":        4.5e7,
		"drawdown1Y":             0.2,
		"sector":                 "Technology",
		"industry":               "Electronic Components",
	}

	got := NewTransformer("cls", "").Build(sampleFundamentals["CLS"], meta)

	assert.Equal(t, "CLS", got.Ticker)
	assert.Equal(t, "Celestica Inc.", got.Name)

	assert.InDelta(t, 0.17, got.Growth.RevenueCAGR3Y, 1e-9)
	assert.InDelta(t, 0.05, got.Growth.RevenueAcceleration, 1e-9)
	assert.InDelta(t, 0.04, got.Growth.EBITMarginTrend, 1e-9)
	assert.InDelta(t, 0.08, got.Growth.FCFMarginTrend, 1e-9)
	require.NotNil(t, got.Growth.BacklogGrowth)
	assert.InDelta(t, 0.32, *got.Growth.BacklogGrowth, 1e-9)

	assert.InDelta(t, 0.19, got.Quality.ROIC, 1e-9)
	assert.InDelta(t, 1.1, got.Quality.NetDebtToEBITDA, 1e-9)
	assert.InDelta(t, 10.0, got.Quality.InterestCoverage, 1e-9)

	assert.InDelta(t, 0.85, got.Catalysts.ThemeAlignment, 1e-9)
	assert.InDelta(t, 0.18, got.Catalysts.EarningsRevisionTrend, 1e-9)
	require.NotNil(t, got.Catalysts.StrategicInvestorPresent)
	assert.InDelta(t, 0.3, *got.Catalysts.StrategicInvestorPresent, 1e-9)

	assert.InDelta(t, 0.9, got.Valuation.PEGRatio, 1e-9)
	assert.InDelta(t, -1.5, got.Valuation.EVToEBITDAVsPeers, 1e-9)
	assert.InDelta(t, 0.22, got.Valuation.PriceMomentum, 1e-9)

	assert.InDelta(t, 4.2e9, got.Risk.MarketCap, 1)
	assert.InDelta(t, 4.5e7, got.Risk.AvgDailyDollarVolume, 1)
	assert.InDelta(t, 0.32, got.Risk.Volatility3Y, 1e-9)

	assert.Equal(t, "Technology", got.Sector)
	assert.Equal(t, "Electronic Components", got.Industry)
	assert.Equal(t, "Technology", got.Metadata["sector"])
	assert.Equal(t, "Electronic Components", got.Metadata["industry"])
}

func TestTransformerDefaultsOnEmptyPayload(t *testing.T) {
	got := NewTransformer("zzz", "").Build(Fundamentals{}, nil)

	assert.Equal(t, "ZZZ", got.Ticker)
	assert.Equal(t, "ZZZ", got.Name, "name should fall back to the ticker")

	assert.Zero(t, got.Growth.RevenueCAGR3Y)
	assert.Nil(t, got.Growth.BacklogGrowth)

	// 누락 지표는 문서화된 보수적 기본값을 받는다
	assert.InDelta(t, 3.0, got.Quality.NetDebtToEBITDA, 1e-9)
	assert.Zero(t, got.Quality.InterestCoverage)
	assert.InDelta(t, 2.0, got.Valuation.PEGRatio, 1e-9)
	assert.InDelta(t, 1.0, got.Risk.Beta, 1e-9)
	assert.InDelta(t, 0.3, got.Risk.Volatility3Y, 1e-9)
	assert.InDelta(t, 0.2, got.Risk.Drawdown1Y, 1e-9)

	assert.Zero(t, got.Catalysts.ThemeAlignment)
	assert.Nil(t, got.Catalysts.StrategicInvestorPresent)

	assert.Empty(t, got.Sector)
	assert.Empty(t, got.Industry)
	assert.Nil(t, got.Metadata)
}

func TestTransformerExplicitNameWins(t *testing.T) {
	got := NewTransformer("CLS", "Custom Label").Build(sampleFundamentals["CLS"], nil)
	assert.Equal(t, "Custom Label", got.Name)
}

func TestTransformerNilPayloads(t *testing.T) {
	got := NewTransformer("abc", "").Build(nil, nil)
	assert.Equal(t, "ABC", got.Ticker)
	assert.InDelta(t, 3.0, got.Quality.NetDebtToEBITDA, 1e-9)
}

func TestTransformerCoercesQuotedNumbers(t *testing.T) {
	// 일부 벤더는 숫자를 문자열로 내려준다
	fundamentals := Fundamentals{
		"growth": map[string]interface{}{"threeYearRevenueCagr": "0.21"},
		"risk":   map[string]interface{}{"beta": "1.35"},
	}

	got := NewTransformer("QTD", "").Build(fundamentals, nil)

	assert.InDelta(t, 0.21, got.Growth.RevenueCAGR3Y, 1e-9)
	assert.InDelta(t, 1.35, got.Risk.Beta, 1e-9)
}

func TestTransformerSectorFallsBackToPrimaryProfile(t *testing.T) {
	fundamentals := Fundamentals{
		"profile": map[string]interface{}{
			"sector":   "Industrials",
			"industry": "Machinery",
		},
	}

	got := NewTransformer("MCH", "").Build(fundamentals, Fundamentals{})

	assert.Equal(t, "Industrials", got.Sector)
	assert.Equal(t, "Machinery", got.Industry)
	assert.Equal(t, "Industrials", got.Metadata["sector"])
}

func TestTransformerMetadataSectorWinsOverProfile(t *testing.T) {
	fundamentals := Fundamentals{
		"profile": map[string]interface{}{"sector": "Industrials"},
	}
	meta := Fundamentals{"sector": "Technology"}

	got := NewTransformer("MIX", "").Build(fundamentals, meta)

	assert.Equal(t, "Technology", got.Sector)
}
