package scoring

import (
	"math"
	"testing"

	"github.com/wonny/breakout/internal/contracts"
)

func TestEngineEvaluate(t *testing.T) {
	engine := NewEngine(contracts.DefaultWeightConfig(), newTestLogger())
	breakdown := engine.Evaluate(celesticaFixture())

	if breakdown.Ticker != "CLS" {
		t.Errorf("ticker = %q", breakdown.Ticker)
	}
	if breakdown.Name != "Celestica Inc." {
		t.Errorf("name = %q", breakdown.Name)
	}
	if breakdown.Weights == nil {
		t.Fatal("breakdown should carry the engine's weights")
	}

	// 모든 팩터 점수는 [0,1] 범위
	for factor, score := range map[string]float64{
		"growth":    breakdown.Growth,
		"quality":   breakdown.Quality,
		"catalysts": breakdown.Catalysts,
		"valuation": breakdown.Valuation,
		"risk":      breakdown.Risk,
	} {
		if score < 0 || score > 1 {
			t.Errorf("%s score %v out of [0,1]", factor, score)
		}
	}

	// Composite hand-derived from the five factor expectations
	wantComposite := 0.62430536
	if got := breakdown.Composite(); math.Abs(got-wantComposite) > scoreTolerance {
		t.Errorf("composite = %v, want %v", got, wantComposite)
	}
}

func TestEngineEvaluateNameFallback(t *testing.T) {
	engine := NewEngine(contracts.DefaultWeightConfig(), newTestLogger())

	bare := contracts.CompanyIndicators{Ticker: "XYZ"}
	breakdown := engine.Evaluate(bare)
	if breakdown.Name != "XYZ" {
		t.Errorf("name fallback = %q, want ticker", breakdown.Name)
	}
}

func TestEngineEvaluateAllPreservesOrder(t *testing.T) {
	engine := NewEngine(contracts.DefaultWeightConfig(), newTestLogger())

	companies := []contracts.CompanyIndicators{
		{Ticker: "AAA"},
		{Ticker: "BBB"},
		{Ticker: "CCC"},
	}

	breakdowns := engine.EvaluateAll(companies)
	if len(breakdowns) != 3 {
		t.Fatalf("got %d breakdowns", len(breakdowns))
	}
	for i, want := range []string{"AAA", "BBB", "CCC"} {
		if breakdowns[i].Ticker != want {
			t.Errorf("breakdowns[%d] = %q, want %q", i, breakdowns[i].Ticker, want)
		}
	}
}

func TestEngineRank(t *testing.T) {
	engine := NewEngine(contracts.DefaultWeightConfig(), newTestLogger())

	strong := celesticaFixture()
	strong.Ticker = "STRONG"

	weak := contracts.CompanyIndicators{Ticker: "WEAK"} // 모든 지표 0
	weak.Quality.NetDebtToEBITDA = 4.0
	weak.Risk.Beta = 2.0
	weak.Risk.Volatility3Y = 0.9

	ranked := engine.Rank([]contracts.CompanyIndicators{weak, strong})
	if ranked[0].Ticker != "STRONG" {
		t.Errorf("expected STRONG first, got %q", ranked[0].Ticker)
	}
	if ranked[0].Composite() <= ranked[1].Composite() {
		t.Error("ranking must be descending by composite")
	}
}

func TestEngineRankStableTies(t *testing.T) {
	engine := NewEngine(contracts.DefaultWeightConfig(), newTestLogger())

	first := celesticaFixture()
	first.Ticker = "FIRST"
	second := celesticaFixture()
	second.Ticker = "SECOND"

	ranked := engine.Rank([]contracts.CompanyIndicators{first, second})
	// 동점이면 입력 순서 유지
	if ranked[0].Ticker != "FIRST" || ranked[1].Ticker != "SECOND" {
		t.Errorf("tie order broken: %q, %q", ranked[0].Ticker, ranked[1].Ticker)
	}
}

func TestEngineRankRespondsToWeights(t *testing.T) {
	grower := contracts.CompanyIndicators{
		Ticker: "GROW",
		Growth: contracts.GrowthMetrics{
			RevenueCAGR3Y:       0.40,
			RevenueAcceleration: 0.20,
			EBITMarginTrend:     0.10,
			FCFMarginTrend:      0.25,
			BacklogGrowth:       contracts.Float(0.30),
		},
		Valuation: contracts.ValuationMetrics{PEGRatio: 3.0, EVToEBITDAVsPeers: 4.0},
	}
	value := contracts.CompanyIndicators{
		Ticker: "VALUE",
		Valuation: contracts.ValuationMetrics{
			PEGRatio:           0.4,
			EVToEBITDAVsPeers:  -2.5,
			FreeCashFlowYield:  0.07,
			PriceMomentum:      0.35,
			ConsolidationScore: 0.9,
		},
	}
	companies := []contracts.CompanyIndicators{grower, value}

	growthTilted := NewEngine(contracts.WeightConfig{Growth: 1.0}, newTestLogger())
	if got := growthTilted.Rank(companies)[0].Ticker; got != "GROW" {
		t.Errorf("growth-only weights should rank GROW first, got %q", got)
	}

	valueTilted := NewEngine(contracts.WeightConfig{Valuation: 1.0}, newTestLogger())
	if got := valueTilted.Rank(companies)[0].Ticker; got != "VALUE" {
		t.Errorf("valuation-only weights should rank VALUE first, got %q", got)
	}
}
