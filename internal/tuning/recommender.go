package tuning

import (
	"math"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/internal/risk"
	"github.com/wonny/breakout/pkg/logger"
)

// Recommender derives weight suggestions from realized returns
// ⭐ SSOT: 가중치 튜닝 로직은 여기서만
type Recommender struct {
	logger *logger.Logger
}

// NewRecommender creates a new weight recommender
func NewRecommender(log *logger.Logger) *Recommender {
	return &Recommender{logger: log}
}

// Recommend correlates factor scores with backtested CAGR and
// proposes weights proportional to the positive correlations.
// Negative correlations are clipped to zero rather than shorted.
//
// Returns nil when the data carries no usable signal: empty inputs,
// no ticker overlap, or realized returns that are all zero.
func (r *Recommender) Recommend(scores []contracts.ScoreBreakdown, results []contracts.BacktestResult) *contracts.WeightOptimization {
	if len(scores) == 0 || len(results) == 0 {
		return nil
	}

	// 중복 티커는 마지막 결과가 우선
	cagrByTicker := make(map[string]float64, len(results))
	for _, result := range results {
		cagrByTicker[result.Ticker] = result.CAGR
	}

	var growth, quality, catalysts, valuation, riskFactor, realized []float64
	for _, score := range scores {
		cagr, ok := cagrByTicker[score.Ticker]
		if !ok {
			continue
		}
		growth = append(growth, score.Growth)
		quality = append(quality, score.Quality)
		catalysts = append(catalysts, score.Catalysts)
		valuation = append(valuation, score.Valuation)
		riskFactor = append(riskFactor, score.Risk)
		realized = append(realized, cagr)
	}
	if len(realized) == 0 {
		r.logger.Warn("No overlap between scores and backtest results")
		return nil
	}

	signal := 0.0
	for _, cagr := range realized {
		signal += math.Abs(cagr)
	}
	if signal == 0 {
		r.logger.Warn("Realized returns are all zero, nothing to tune against")
		return nil
	}

	correlations := map[string]float64{
		"growth":    risk.Correlation(growth, realized),
		"quality":   risk.Correlation(quality, realized),
		"catalysts": risk.Correlation(catalysts, realized),
		"valuation": risk.Correlation(valuation, realized),
		"risk":      risk.Correlation(riskFactor, realized),
	}

	recommended := contracts.WeightConfig{
		Growth:    math.Max(correlations["growth"], 0),
		Quality:   math.Max(correlations["quality"], 0),
		Catalysts: math.Max(correlations["catalysts"], 0),
		Valuation: math.Max(correlations["valuation"], 0),
		Risk:      math.Max(correlations["risk"], 0),
	}.Normalized()

	r.logger.WithFields(map[string]interface{}{
		"samples":        len(realized),
		"growth_corr":    correlations["growth"],
		"quality_corr":   correlations["quality"],
		"catalysts_corr": correlations["catalysts"],
		"valuation_corr": correlations["valuation"],
		"risk_corr":      correlations["risk"],
	}).Info("Weight recommendation ready")

	return &contracts.WeightOptimization{
		Recommended:        recommended,
		FactorCorrelations: correlations,
	}
}
