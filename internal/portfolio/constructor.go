package portfolio

import (
	"fmt"
	"math"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/internal/risk"
	"github.com/wonny/breakout/pkg/logger"
)

// Constructor sizes scored companies into a fully-invested plan
// ⭐ SSOT: 포트폴리오 구성 로직은 여기서만
type Constructor struct {
	simulator *risk.Simulator
	scenarios []risk.ScenarioConfig
	logger    *logger.Logger
}

// NewConstructor creates a constructor running the default stress set.
func NewConstructor(simulator *risk.Simulator, log *logger.Logger) *Constructor {
	return &Constructor{
		simulator: simulator,
		scenarios: risk.DefaultScenarios(),
		logger:    log,
	}
}

// BuildPlan converts score breakdowns into sized positions.
// Scores without a matching indicator record are dropped. An empty
// join yields an empty plan, not an error.
func (c *Constructor) BuildPlan(scores []contracts.ScoreBreakdown, companies map[string]contracts.CompanyIndicators) contracts.PortfolioPlan {
	plan := contracts.PortfolioPlan{
		Suggestions:       make([]contracts.PositionSuggestion, 0, len(scores)),
		SectorAllocations: make(map[string]float64),
		Scenarios:         make([]contracts.StressScenario, 0),
	}

	// 1. Join scores to indicators and compute conviction-based raw weights
	type candidate struct {
		score   contracts.ScoreBreakdown
		company contracts.CompanyIndicators
		raw     float64
	}
	candidates := make([]candidate, 0, len(scores))
	for _, score := range scores {
		company, ok := companies[score.Ticker]
		if !ok {
			c.logger.WithField("ticker", score.Ticker).Warn("No indicator record for scored company, dropping")
			continue
		}
		candidates = append(candidates, candidate{
			score:   score,
			company: company,
			raw:     rawWeight(score, company.Risk),
		})
	}
	if len(candidates) == 0 {
		return plan
	}

	// 2. Normalize weights; nothing investable falls back to equal weighting
	total := 0.0
	for _, cand := range candidates {
		total += cand.raw
	}
	equalWeight := total <= 0

	// 3. Build suggestions, aggregates and simulation profiles in one pass
	profiles := make([]risk.PositionProfile, 0, len(candidates))
	sumSquares := 0.0
	for _, cand := range candidates {
		var weight float64
		if equalWeight {
			weight = 1.0 / float64(len(candidates))
		} else {
			weight = cand.raw / total
		}

		// 성장 + 촉매 점수 = 기대수익률 프록시
		potential := cand.score.Growth + cand.score.Catalysts

		name := cand.score.Name
		if name == "" {
			name = cand.company.DisplayName()
		}

		plan.Suggestions = append(plan.Suggestions, contracts.PositionSuggestion{
			Ticker:    cand.score.Ticker,
			Name:      name,
			Weight:    weight,
			Composite: cand.score.Composite(),
			Notes:     advisoryNotes(cand.company.Risk),
		})

		plan.ExpectedReturn += weight * potential
		plan.VolatilityProxy += weight * cand.company.Risk.Volatility3Y
		plan.SectorAllocations[cand.company.SectorLabel()] += weight
		sumSquares += weight * weight

		profiles = append(profiles, risk.PositionProfile{
			Ticker:         cand.score.Ticker,
			Weight:         weight,
			ExpectedReturn: potential,
			Volatility:     cand.company.Risk.Volatility3Y,
		})
	}
	plan.DiversificationIndex = 1.0 - sumSquares

	// 4. Stress the final weights
	for _, result := range c.simulator.RunAll(c.scenarios, profiles) {
		plan.Scenarios = append(plan.Scenarios, contracts.StressScenario{
			Name:           result.Scenario.Name,
			ExpectedReturn: result.MeanReturn,
			Volatility:     result.StdDev,
			ValueAtRisk:    result.ValueAtRisk,
			Notes:          scenarioNotes(result),
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"positions":       len(plan.Suggestions),
		"expected_return": plan.ExpectedReturn,
		"diversification": plan.DiversificationIndex,
	}).Info("Portfolio plan built")

	return plan
}

// rawWeight scales conviction by liquidity and volatility penalties.
// Thin tape (< $10M/day) and small caps (< $1B) both shrink the
// position; the two penalties stack.
func rawWeight(score contracts.ScoreBreakdown, m contracts.RiskMetrics) float64 {
	conviction := math.Max(score.Composite(), 0)

	penalty := 1.0
	if m.AvgDailyDollarVolume < 1e7 {
		penalty *= 0.7
	}
	if m.MarketCap < 1e9 {
		penalty *= 0.5
	}

	return conviction * penalty / math.Max(m.Volatility3Y, 0.15)
}

// advisoryNotes flags execution hazards for one position.
func advisoryNotes(m contracts.RiskMetrics) []string {
	notes := make([]string, 0, 3)
	if m.AvgDailyDollarVolume < 2e7 {
		notes = append(notes, "Thin liquidity - size carefully")
	}
	if m.Drawdown1Y > 0.35 {
		notes = append(notes, "High recent drawdown")
	}
	if m.Beta > 1.3 {
		notes = append(notes, "Elevated beta vs. market")
	}
	return notes
}

func scenarioNotes(result risk.SimulationResult) []string {
	return []string{
		fmt.Sprintf("return shift %.2fx", result.Scenario.ReturnShift),
		fmt.Sprintf("volatility %.2fx", result.Scenario.VolMultiple),
		fmt.Sprintf("%d draws", result.Draws),
	}
}
