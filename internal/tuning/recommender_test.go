package tuning

import (
	"math"
	"testing"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/config"
	"github.com/wonny/breakout/pkg/logger"
)

const tolerance = 1e-9

func newTestRecommender() *Recommender {
	return NewRecommender(logger.New(&config.Config{Env: "test", LogLevel: "error", LogFormat: "json"}))
}

func TestRecommendPerfectGrowthSignal(t *testing.T) {
	// 성장 점수와 실현 CAGR이 완전히 정렬된 경우
	scores := []contracts.ScoreBreakdown{
		{Ticker: "A", Growth: 0.2, Quality: 0.5},
		{Ticker: "B", Growth: 0.5, Quality: 0.5},
		{Ticker: "C", Growth: 0.8, Quality: 0.5},
	}
	results := []contracts.BacktestResult{
		{Ticker: "A", CAGR: 0.05},
		{Ticker: "B", CAGR: 0.10},
		{Ticker: "C", CAGR: 0.15},
	}

	opt := newTestRecommender().Recommend(scores, results)
	if opt == nil {
		t.Fatal("expected a recommendation")
	}

	if math.Abs(opt.FactorCorrelations["growth"]-1.0) > tolerance {
		t.Errorf("growth correlation = %v, want 1.0", opt.FactorCorrelations["growth"])
	}
	// 상수 팩터는 상관계수 0 (NaN 처리)
	if opt.FactorCorrelations["quality"] != 0 {
		t.Errorf("quality correlation = %v, want 0", opt.FactorCorrelations["quality"])
	}
	if math.Abs(opt.Recommended.Growth-1.0) > tolerance {
		t.Errorf("recommended growth weight = %v, want 1.0", opt.Recommended.Growth)
	}
	if math.Abs(opt.Recommended.Total()-1.0) > tolerance {
		t.Errorf("recommended weights must sum to 1, got %v", opt.Recommended.Total())
	}
}

func TestRecommendBlendsPositiveCorrelations(t *testing.T) {
	scores := []contracts.ScoreBreakdown{
		{Ticker: "A", Growth: 0.2, Quality: 0.2},
		{Ticker: "B", Growth: 0.5, Quality: 0.8},
		{Ticker: "C", Growth: 0.8, Quality: 0.5},
	}
	results := []contracts.BacktestResult{
		{Ticker: "A", CAGR: 0.05},
		{Ticker: "B", CAGR: 0.10},
		{Ticker: "C", CAGR: 0.15},
	}

	opt := newTestRecommender().Recommend(scores, results)
	if opt == nil {
		t.Fatal("expected a recommendation")
	}

	// growth corr 1.0, quality corr 0.5 → 정규화하면 2:1
	if math.Abs(opt.FactorCorrelations["quality"]-0.5) > tolerance {
		t.Errorf("quality correlation = %v, want 0.5", opt.FactorCorrelations["quality"])
	}
	if math.Abs(opt.Recommended.Growth-2.0/3.0) > tolerance {
		t.Errorf("growth weight = %v, want 2/3", opt.Recommended.Growth)
	}
	if math.Abs(opt.Recommended.Quality-1.0/3.0) > tolerance {
		t.Errorf("quality weight = %v, want 1/3", opt.Recommended.Quality)
	}
}

func TestRecommendClipsNegativeCorrelations(t *testing.T) {
	scores := []contracts.ScoreBreakdown{
		{Ticker: "A", Growth: 0.2, Valuation: 0.8},
		{Ticker: "B", Growth: 0.5, Valuation: 0.5},
		{Ticker: "C", Growth: 0.8, Valuation: 0.2},
	}
	results := []contracts.BacktestResult{
		{Ticker: "A", CAGR: 0.05},
		{Ticker: "B", CAGR: 0.10},
		{Ticker: "C", CAGR: 0.15},
	}

	opt := newTestRecommender().Recommend(scores, results)
	if opt == nil {
		t.Fatal("expected a recommendation")
	}

	if math.Abs(opt.FactorCorrelations["valuation"]-(-1.0)) > tolerance {
		t.Errorf("valuation correlation = %v, want -1.0", opt.FactorCorrelations["valuation"])
	}
	// 역상관 팩터는 공매도하지 않고 0으로 클리핑
	if opt.Recommended.Valuation != 0 {
		t.Errorf("valuation weight = %v, want 0", opt.Recommended.Valuation)
	}
}

func TestRecommendEqualFallbackWhenNoCorrelations(t *testing.T) {
	// 모든 팩터가 상수면 상관계수가 전부 0 → 균등 가중치
	scores := []contracts.ScoreBreakdown{
		{Ticker: "A", Growth: 0.5, Quality: 0.5, Catalysts: 0.5, Valuation: 0.5, Risk: 0.5},
		{Ticker: "B", Growth: 0.5, Quality: 0.5, Catalysts: 0.5, Valuation: 0.5, Risk: 0.5},
	}
	results := []contracts.BacktestResult{
		{Ticker: "A", CAGR: 0.10},
		{Ticker: "B", CAGR: 0.20},
	}

	opt := newTestRecommender().Recommend(scores, results)
	if opt == nil {
		t.Fatal("expected a recommendation")
	}

	for name, weight := range map[string]float64{
		"growth":    opt.Recommended.Growth,
		"quality":   opt.Recommended.Quality,
		"catalysts": opt.Recommended.Catalysts,
		"valuation": opt.Recommended.Valuation,
		"risk":      opt.Recommended.Risk,
	} {
		if math.Abs(weight-0.2) > tolerance {
			t.Errorf("%s weight = %v, want 0.2", name, weight)
		}
	}
}

func TestRecommendNilPaths(t *testing.T) {
	recommender := newTestRecommender()

	scores := []contracts.ScoreBreakdown{{Ticker: "A", Growth: 0.5}}
	results := []contracts.BacktestResult{{Ticker: "A", CAGR: 0.1}}

	if got := recommender.Recommend(nil, results); got != nil {
		t.Error("empty scores should yield nil")
	}
	if got := recommender.Recommend(scores, nil); got != nil {
		t.Error("empty results should yield nil")
	}
	if got := recommender.Recommend(scores, []contracts.BacktestResult{{Ticker: "ZZZ", CAGR: 0.1}}); got != nil {
		t.Error("no ticker overlap should yield nil")
	}
	if got := recommender.Recommend(scores, []contracts.BacktestResult{{Ticker: "A", CAGR: 0}}); got != nil {
		t.Error("all-zero realized returns should yield nil")
	}
}

func TestRecommendDuplicateResultsLastWins(t *testing.T) {
	scores := []contracts.ScoreBreakdown{
		{Ticker: "A", Growth: 0.2},
		{Ticker: "B", Growth: 0.5},
		{Ticker: "C", Growth: 0.8},
	}
	results := []contracts.BacktestResult{
		{Ticker: "A", CAGR: 0.30}, // 이후 레코드로 교체됨
		{Ticker: "A", CAGR: 0.05},
		{Ticker: "B", CAGR: 0.10},
		{Ticker: "C", CAGR: 0.15},
	}

	opt := newTestRecommender().Recommend(scores, results)
	if opt == nil {
		t.Fatal("expected a recommendation")
	}

	// 마지막 A=0.05가 쓰였다면 성장 상관계수는 정확히 1.0
	if math.Abs(opt.FactorCorrelations["growth"]-1.0) > tolerance {
		t.Errorf("growth correlation = %v, want 1.0 (last result should win)", opt.FactorCorrelations["growth"])
	}
}
