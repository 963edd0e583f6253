package contracts

// PositionSuggestion is one sized position inside a portfolio plan
type PositionSuggestion struct {
	Ticker    string   `json:"ticker"`
	Name      string   `json:"name"`
	Weight    float64  `json:"weight"`    // 포트폴리오 비중 (합계 1.0)
	Composite float64  `json:"composite"` // 산출 시점의 종합 점수
	Notes     []string `json:"notes"`     // 리스크 주의사항
}

// StressScenario summarizes one Monte Carlo stress run over the plan
type StressScenario struct {
	Name           string   `json:"name"`
	ExpectedReturn float64  `json:"expected_return"` // 시뮬레이션 평균 수익률
	Volatility     float64  `json:"volatility"`      // 시뮬레이션 표준편차
	ValueAtRisk    float64  `json:"value_at_risk"`   // 5th percentile 수익률
	Notes          []string `json:"notes"`
}

// PortfolioPlan is the sized portfolio derived from ranked scores
// ⭐ SSOT: 포트폴리오 산출 결과 구조는 여기서만 정의
type PortfolioPlan struct {
	Suggestions          []PositionSuggestion `json:"suggestions"`
	ExpectedReturn       float64              `json:"expected_return"`
	VolatilityProxy      float64              `json:"volatility_proxy"`
	DiversificationIndex float64              `json:"diversification_index"` // 1 - Σw² (높을수록 분산)
	SectorAllocations    map[string]float64   `json:"sector_allocations"`
	Scenarios            []StressScenario     `json:"scenarios"`
}

// IsEmpty reports whether the plan holds no positions.
func (p PortfolioPlan) IsEmpty() bool {
	return len(p.Suggestions) == 0
}

// TotalWeight returns the sum of position weights (≈1.0 for non-empty plans).
func (p PortfolioPlan) TotalWeight() float64 {
	total := 0.0
	for _, s := range p.Suggestions {
		total += s.Weight
	}
	return total
}

// Position returns the suggestion for ticker, if present.
func (p PortfolioPlan) Position(ticker string) (PositionSuggestion, bool) {
	for _, s := range p.Suggestions {
		if s.Ticker == ticker {
			return s, true
		}
	}
	return PositionSuggestion{}, false
}
