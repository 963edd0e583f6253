package scoring

import (
	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/logger"
)

// ValuationScorer scores price-versus-fundamentals measures
// ⭐ SSOT: 밸류에이션 팩터 점수 계산은 여기서만
type ValuationScorer struct {
	logger *logger.Logger
}

// NewValuationScorer creates a new valuation scorer
func NewValuationScorer(log *logger.Logger) *ValuationScorer {
	return &ValuationScorer{logger: log}
}

// Score maps valuation metrics onto [0, 1].
//
// PEG runs inverted: 0.5 or cheaper scores full, 2.0+ scores zero.
// EV/EBITDA versus peers spans -2x (discount) to +3x (premium).
// Momentum and consolidation reward a primed technical setup rather
// than pure cheapness.
func (s *ValuationScorer) Score(ticker string, m contracts.ValuationMetrics) float64 {
	components := []component{
		{"peg", InverseSmoothStep(m.PEGRatio, 0.5, 2.0), 0.25},
		{"ev_ebitda_vs_peers", InverseSmoothStep(m.EVToEBITDAVsPeers, -2.0, 3.0), 0.20},
		{"fcf_yield", SmoothStep(m.FreeCashFlowYield, 0.0, 0.06), 0.20},
		{"momentum", SmoothStep(m.PriceMomentum, 0.0, 0.30), 0.20},
		{"consolidation", SmoothStep(m.ConsolidationScore, 0.2, 0.8), 0.15},
	}

	score := weightedAverage(components)

	s.logger.WithFields(componentFields(ticker, components, score)).Debug("Calculated valuation score")

	return score
}
