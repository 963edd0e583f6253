package contracts

// CompanyIndicators is the full indicator set one company carries into scoring
// ⭐ SSOT: 스코어링 입력 지표 구조는 여기서만 정의
type CompanyIndicators struct {
	Ticker    string           `json:"ticker"`
	Name      string           `json:"name"`
	Growth    GrowthMetrics    `json:"growth"`
	Quality   QualityMetrics   `json:"quality"`
	Catalysts CatalystMetrics  `json:"catalysts"`
	Valuation ValuationMetrics `json:"valuation"`
	Risk      RiskMetrics      `json:"risk"`

	Sector   string            `json:"sector,omitempty"`   // GICS 섹터
	Industry string            `json:"industry,omitempty"` // 세부 업종
	Metadata map[string]string `json:"metadata,omitempty"` // 보조 지표 (provider 원본 키)
}

// GrowthMetrics captures revenue and cash-flow expansion
type GrowthMetrics struct {
	RevenueCAGR3Y       float64  `json:"revenue_cagr_3y"`      // 3년 매출 CAGR
	RevenueAcceleration float64  `json:"revenue_acceleration"` // 최근 성장률 - 3년 CAGR
	EBITMarginTrend     float64  `json:"ebit_margin_trend"`
	FCFMarginTrend      float64  `json:"fcf_margin"`
	BacklogGrowth       *float64 `json:"backlog_growth,omitempty"` // 수주잔고 증가율 (없으면 nil)
}

// QualityMetrics captures balance-sheet strength and capital efficiency
type QualityMetrics struct {
	ROIC               float64 `json:"roic"`
	ROICTrend          float64 `json:"roic_trend"`
	NetDebtToEBITDA    float64 `json:"net_debt_to_ebitda"` // 순부채/EBITDA
	InterestCoverage   float64 `json:"interest_coverage"`  // 이자보상배율
	AssetTurnoverTrend float64 `json:"asset_turnover_trend"`
}

// CatalystMetrics captures forward-looking demand and sentiment signals
type CatalystMetrics struct {
	ThemeAlignment           float64  `json:"theme_alignment"` // 구조적 테마 부합도 0~1
	EarningsRevisionTrend    float64  `json:"earnings_revision_trend"`
	InsiderActivityScore     float64  `json:"insider_activity_score"`
	StrategicInvestorPresent *float64 `json:"strategic_investor_presence,omitempty"` // 전략적 투자자 점수 (없으면 nil)
}

// ValuationMetrics captures price-versus-fundamentals measures
type ValuationMetrics struct {
	PEGRatio           float64 `json:"peg_ratio"`
	EVToEBITDAVsPeers  float64 `json:"ev_to_ebitda_vs_peers"` // 피어 대비 할증(+)/할인(-) 배수
	FreeCashFlowYield  float64 `json:"free_cash_flow_yield"`
	PriceMomentum      float64 `json:"price_momentum"` // 6개월 상대 모멘텀
	ConsolidationScore float64 `json:"consolidation_score"`
}

// RiskMetrics captures tradability and downside exposure
type RiskMetrics struct {
	MarketCap            float64 `json:"market_cap"`                   // 시가총액 (USD)
	AvgDailyDollarVolume float64 `json:"avg_daily_dollar_volume"`      // 일평균 거래대금 (USD)
	Beta                 float64 `json:"beta"`
	Volatility3Y         float64 `json:"volatility_3y"` // 연환산 변동성
	Drawdown1Y           float64 `json:"drawdown_1y"`   // 1년 최대 낙폭 (양수)
}

// SectorUnclassified buckets companies with no sector information
const SectorUnclassified = "Unclassified"

// SectorLabel resolves the sector used for allocation grouping:
// explicit field first, then provider metadata, then the unclassified bucket.
func (c CompanyIndicators) SectorLabel() string {
	if c.Sector != "" {
		return c.Sector
	}
	if s, ok := c.Metadata["sector"]; ok && s != "" {
		return s
	}
	return SectorUnclassified
}

// DisplayName returns the company name, falling back to the ticker.
func (c CompanyIndicators) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Ticker
}

// IndexIndicators keys companies by ticker for joins against scores.
// Duplicate tickers keep the last record.
func IndexIndicators(companies []CompanyIndicators) map[string]CompanyIndicators {
	indexed := make(map[string]CompanyIndicators, len(companies))
	for _, company := range companies {
		indexed[company.Ticker] = company
	}
	return indexed
}

// Float wraps a literal as an optional metric value.
func Float(v float64) *float64 { return &v }

// FloatOr resolves an optional metric, mapping absence to fallback.
func FloatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
