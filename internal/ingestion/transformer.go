package ingestion

import (
	"strings"

	"github.com/wonny/breakout/internal/contracts"
)

// Transformer translates a raw fundamentals payload plus aggregated
// metadata into the normalized indicator contract. Missing branches
// fall back to conservative defaults rather than failing the company.
//
// ⭐ SSOT: 벤더 응답 → 지표 변환은 여기서만 수행한다.
type Transformer struct {
	ticker string
	name   string
}

// NewTransformer creates a transformer for one company. name may be
// empty; the profile name or the ticker is used instead.
func NewTransformer(ticker, name string) *Transformer {
	return &Transformer{ticker: strings.ToUpper(ticker), name: name}
}

// Build assembles the indicator set from the primary fundamentals and
// the aggregated metadata map.
func (t *Transformer) Build(fundamentals, meta Fundamentals) contracts.CompanyIndicators {
	if fundamentals == nil {
		fundamentals = Fundamentals{}
	}
	if meta == nil {
		meta = Fundamentals{}
	}

	growth := contracts.GrowthMetrics{
		RevenueCAGR3Y:       fundamentals.Float(0, "growth", "threeYearRevenueCagr"),
		RevenueAcceleration: fundamentals.Float(0, "growth", "revenueGrowth"),
		EBITMarginTrend:     fundamentals.Float(0, "profitability", "ebitMargin"),
		FCFMarginTrend:      fundamentals.Float(0, "profitability", "freeCashFlowMargin"),
		BacklogGrowth:       fundamentals.Optional("operational", "backlogGrowth"),
	}

	quality := contracts.QualityMetrics{
		ROIC:      fundamentals.Float(0, "profitability", "roic"),
		ROICTrend: fundamentals.Float(0, "trend", "roic"),
		// 레버리지 누락은 보수적으로 3.0x 처리
		NetDebtToEBITDA:    fundamentals.Float(3.0, "leverage", "netDebtToEbitda"),
		InterestCoverage:   fundamentals.Float(0, "leverage", "interestCoverage"),
		AssetTurnoverTrend: fundamentals.Float(0, "trend", "assetTurnover"),
	}

	catalysts := contracts.CatalystMetrics{
		ThemeAlignment:           meta.Float(0, "themeAlignment"),
		EarningsRevisionTrend:    fundamentals.Float(0, "sentiment", "earningsRevision"),
		InsiderActivityScore:     fundamentals.Float(0, "sentiment", "insiderActivity"),
		StrategicInvestorPresent: meta.Optional("strategicInvestorScore"),
	}

	valuation := contracts.ValuationMetrics{
		// PEG 누락은 중립(2.0)으로 간주
		PEGRatio:           fundamentals.Float(2.0, "valuation", "pegRatio"),
		EVToEBITDAVsPeers:  meta.Float(0, "evToEbitdaVsPeers"),
		FreeCashFlowYield:  fundamentals.Float(0, "valuation", "fcfYield"),
		PriceMomentum:      meta.Float(0, "priceMomentum"),
		ConsolidationScore: meta.Float(0, "consolidationScore"),
	}

	risk := contracts.RiskMetrics{
		MarketCap:            fundamentals.Float(0, "size", "marketCap"),
		AvgDailyDollarVolume: meta.Float(0, "avgDollarVolume"),
		Beta:                 fundamentals.Float(1.0, "risk", "beta"),
		Volatility3Y:         fundamentals.Float(0.3, "risk", "volatility3Y"),
		Drawdown1Y:           meta.Float(0.2, "drawdown1Y"),
	}

	sector := meta.Str(fundamentals.Str("", "profile", "sector"), "sector")
	industry := meta.Str(fundamentals.Str("", "profile", "industry"), "industry")

	var metadata map[string]string
	if sector != "" || industry != "" {
		metadata = make(map[string]string, 2)
		if sector != "" {
			metadata["sector"] = sector
		}
		if industry != "" {
			metadata["industry"] = industry
		}
	}

	return contracts.CompanyIndicators{
		Ticker:    t.ticker,
		Name:      t.resolveName(fundamentals),
		Growth:    growth,
		Quality:   quality,
		Catalysts: catalysts,
		Valuation: valuation,
		Risk:      risk,
		Sector:    sector,
		Industry:  industry,
		Metadata:  metadata,
	}
}

// resolveName prefers the explicit name, then the profile name, then
// the ticker itself.
func (t *Transformer) resolveName(fundamentals Fundamentals) string {
	if t.name != "" {
		return t.name
	}
	if profileName := fundamentals.Str("", "profile", "companyName"); profileName != "" {
		return profileName
	}
	return t.ticker
}
