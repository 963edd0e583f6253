package scoring

import (
	"sort"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/logger"
)

// Engine runs the five factor scorers and ranks the results
// ⭐ SSOT: 종합 스코어링 파이프라인은 여기서만
type Engine struct {
	growth    *GrowthScorer
	quality   *QualityScorer
	catalysts *CatalystScorer
	valuation *ValuationScorer
	risk      *RiskScorer
	weights   contracts.WeightConfig
	logger    *logger.Logger
}

// NewEngine wires the five factor scorers under one weight config.
func NewEngine(weights contracts.WeightConfig, log *logger.Logger) *Engine {
	return &Engine{
		growth:    NewGrowthScorer(log),
		quality:   NewQualityScorer(log),
		catalysts: NewCatalystScorer(log),
		valuation: NewValuationScorer(log),
		risk:      NewRiskScorer(log),
		weights:   weights,
		logger:    log,
	}
}

// Weights returns the engine's weight config (un-normalized, as given).
func (e *Engine) Weights() contracts.WeightConfig {
	return e.weights
}

// Evaluate scores one company across all five factors.
func (e *Engine) Evaluate(company contracts.CompanyIndicators) contracts.ScoreBreakdown {
	breakdown := contracts.ScoreBreakdown{
		Ticker:    company.Ticker,
		Name:      company.DisplayName(),
		Growth:    e.growth.Score(company.Ticker, company.Growth),
		Quality:   e.quality.Score(company.Ticker, company.Quality),
		Catalysts: e.catalysts.Score(company.Ticker, company.Catalysts),
		Valuation: e.valuation.Score(company.Ticker, company.Valuation),
		Risk:      e.risk.Score(company.Ticker, company.Risk),
	}
	breakdown = breakdown.WithWeights(e.weights)

	e.logger.WithFields(map[string]interface{}{
		"ticker":    breakdown.Ticker,
		"growth":    breakdown.Growth,
		"quality":   breakdown.Quality,
		"catalysts": breakdown.Catalysts,
		"valuation": breakdown.Valuation,
		"risk":      breakdown.Risk,
		"composite": breakdown.Composite(),
	}).Debug("Evaluated company")

	return breakdown
}

// EvaluateAll scores every company, preserving input order.
func (e *Engine) EvaluateAll(companies []contracts.CompanyIndicators) []contracts.ScoreBreakdown {
	breakdowns := make([]contracts.ScoreBreakdown, 0, len(companies))
	for _, company := range companies {
		breakdowns = append(breakdowns, e.Evaluate(company))
	}
	return breakdowns
}

// Rank scores every company and sorts by composite, best first.
// Equal composites keep their input order.
func (e *Engine) Rank(companies []contracts.CompanyIndicators) []contracts.ScoreBreakdown {
	breakdowns := e.EvaluateAll(companies)

	sort.SliceStable(breakdowns, func(i, j int) bool {
		return breakdowns[i].Composite() > breakdowns[j].Composite()
	})

	e.logger.WithFields(map[string]interface{}{
		"count": len(breakdowns),
	}).Info("Ranked companies")

	return breakdowns
}
