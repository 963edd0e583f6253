package scoring

import (
	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/logger"
)

// GrowthScorer scores revenue and cash-flow expansion
// ⭐ SSOT: 성장 팩터 점수 계산은 여기서만
type GrowthScorer struct {
	logger *logger.Logger
}

// NewGrowthScorer creates a new growth scorer
func NewGrowthScorer(log *logger.Logger) *GrowthScorer {
	return &GrowthScorer{logger: log}
}

// Score maps growth metrics onto [0, 1].
//
// Revenue CAGR below 8% contributes nothing, 35%+ saturates.
// Acceleration rewards growth outpacing the 3-year trend.
// A missing backlog contributes zero but keeps its weight, so
// companies without disclosed backlog rank below equal peers.
func (s *GrowthScorer) Score(ticker string, m contracts.GrowthMetrics) float64 {
	components := []component{
		{"revenue_cagr", SmoothStep(m.RevenueCAGR3Y, 0.08, 0.35), 0.32},
		{"acceleration", SmoothStep(m.RevenueAcceleration, 0.0, 0.12), 0.22},
		{"ebit_trend", SmoothStep(m.EBITMarginTrend, 0.0, 0.08), 0.18},
		{"fcf_margin", SmoothStep(m.FCFMarginTrend, 0.05, 0.20), 0.18},
		{"backlog", backlogScore(m.BacklogGrowth), 0.10},
	}

	score := weightedAverage(components)

	s.logger.WithFields(componentFields(ticker, components, score)).Debug("Calculated growth score")

	return score
}

func backlogScore(backlog *float64) float64 {
	if backlog == nil {
		return 0.0
	}
	return SmoothStep(*backlog, 0.0, 0.25)
}
