package scoring

import (
	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/logger"
)

// QualityScorer scores balance-sheet strength and capital efficiency
// ⭐ SSOT: 퀄리티 팩터 점수 계산은 여기서만
type QualityScorer struct {
	logger *logger.Logger
}

// NewQualityScorer creates a new quality scorer
func NewQualityScorer(log *logger.Logger) *QualityScorer {
	return &QualityScorer{logger: log}
}

// Score maps quality metrics onto [0, 1].
//
// ROIC below 8% contributes nothing, 25%+ saturates.
// Leverage and coverage run inverted: net debt above 2.5x EBITDA
// zeroes the leverage component.
func (s *QualityScorer) Score(ticker string, m contracts.QualityMetrics) float64 {
	components := []component{
		{"roic", SmoothStep(m.ROIC, 0.08, 0.25), 0.30},
		{"roic_trend", SmoothStep(m.ROICTrend, 0.0, 0.06), 0.20},
		{"leverage", InverseSmoothStep(m.NetDebtToEBITDA, 0.0, 2.5), 0.20},
		{"coverage", SmoothStep(m.InterestCoverage, 4.0, 15.0), 0.20},
		{"asset_turnover", SmoothStep(m.AssetTurnoverTrend, 0.0, 0.15), 0.10},
	}

	score := weightedAverage(components)

	s.logger.WithFields(componentFields(ticker, components, score)).Debug("Calculated quality score")

	return score
}
