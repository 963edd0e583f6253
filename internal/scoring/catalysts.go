package scoring

import (
	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/logger"
)

// CatalystScorer scores forward-looking demand and sentiment signals
// ⭐ SSOT: 촉매 팩터 점수 계산은 여기서만
type CatalystScorer struct {
	logger *logger.Logger
}

// NewCatalystScorer creates a new catalyst scorer
func NewCatalystScorer(log *logger.Logger) *CatalystScorer {
	return &CatalystScorer{logger: log}
}

// Score maps catalyst metrics onto [0, 1].
//
// Theme alignment dominates: structural demand exposure below 0.2
// contributes nothing, 0.9+ saturates. An unknown strategic investor
// presence contributes zero but keeps its weight.
func (s *CatalystScorer) Score(ticker string, m contracts.CatalystMetrics) float64 {
	components := []component{
		{"theme", SmoothStep(m.ThemeAlignment, 0.2, 0.9), 0.35},
		{"earnings_revision", SmoothStep(m.EarningsRevisionTrend, 0.0, 0.25), 0.30},
		{"insider", SmoothStep(m.InsiderActivityScore, 0.0, 0.7), 0.20},
		{"strategic", strategicScore(m.StrategicInvestorPresent), 0.15},
	}

	score := weightedAverage(components)

	s.logger.WithFields(componentFields(ticker, components, score)).Debug("Calculated catalyst score")

	return score
}

func strategicScore(presence *float64) float64 {
	if presence == nil {
		return 0.0
	}
	return SmoothStep(*presence, 0.0, 0.5)
}
