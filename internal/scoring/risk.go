package scoring

import (
	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/logger"
)

// RiskScorer scores tradability and downside exposure.
// Higher scores mean a SAFER profile, so the composite can blend it
// with the same orientation as the other factors.
// ⭐ SSOT: 리스크 팩터 점수 계산은 여기서만
type RiskScorer struct {
	logger *logger.Logger
}

// NewRiskScorer creates a new risk scorer
func NewRiskScorer(log *logger.Logger) *RiskScorer {
	return &RiskScorer{logger: log}
}

// Score maps risk metrics onto [0, 1].
//
// Market cap below $300M contributes nothing, $10B+ saturates.
// Daily dollar volume below $5M contributes nothing, $50M+ saturates.
// Beta, volatility and drawdown run inverted.
func (s *RiskScorer) Score(ticker string, m contracts.RiskMetrics) float64 {
	components := []component{
		{"market_cap", SmoothStep(m.MarketCap, 3e8, 1e10), 0.25},
		{"liquidity", SmoothStep(m.AvgDailyDollarVolume, 5e6, 5e7), 0.25},
		{"beta", InverseSmoothStep(m.Beta, 0.8, 1.6), 0.20},
		{"volatility", InverseSmoothStep(m.Volatility3Y, 0.2, 0.6), 0.20},
		{"drawdown", InverseSmoothStep(m.Drawdown1Y, 0.15, 0.45), 0.10},
	}

	score := weightedAverage(components)

	s.logger.WithFields(componentFields(ticker, components, score)).Debug("Calculated risk score")

	return score
}
