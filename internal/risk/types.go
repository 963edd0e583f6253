package risk

// =============================================================================
// Scenario Simulation Types
// =============================================================================

// Simulation defaults
const (
	DefaultDraws = 2000
	DefaultSeed  = 42
)

// ScenarioConfig defines one stress case: multipliers applied to every
// position's expected return and volatility before sampling.
type ScenarioConfig struct {
	Name        string  `json:"name"`
	ReturnShift float64 `json:"return_shift"` // 기대수익률 배수
	VolMultiple float64 `json:"vol_multiple"` // 변동성 배수
}

// DefaultScenarios returns the standard stress set: the base case plus
// a demand slowdown and an overheating market.
func DefaultScenarios() []ScenarioConfig {
	return []ScenarioConfig{
		{Name: "Base case", ReturnShift: 1.0, VolMultiple: 1.0},
		{Name: "Growth slowdown", ReturnShift: 0.6, VolMultiple: 1.2},
		{Name: "Hyper-growth", ReturnShift: 1.4, VolMultiple: 0.9},
	}
}

// PositionProfile is one position's return/vol profile under its
// portfolio weight.
type PositionProfile struct {
	Ticker         string  `json:"ticker"`
	Weight         float64 `json:"weight"`
	ExpectedReturn float64 `json:"expected_return"` // 연간 기대수익률
	Volatility     float64 `json:"volatility"`      // 연환산 변동성
}

// SimulationResult summarizes the sampled portfolio return
// distribution for one scenario.
type SimulationResult struct {
	Scenario    ScenarioConfig `json:"scenario"`
	MeanReturn  float64        `json:"mean_return"`
	StdDev      float64        `json:"std_dev"`
	ValueAtRisk float64        `json:"value_at_risk"` // 5th percentile 수익률 (음수 = 손실)
	Draws       int            `json:"draws"`
}
