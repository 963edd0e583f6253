package contracts

// WeightConfig holds the factor weights blended into the composite score
// ⭐ SSOT: 팩터 가중치 정의는 여기서만
type WeightConfig struct {
	Growth    float64 `json:"growth"`
	Quality   float64 `json:"quality"`
	Catalysts float64 `json:"catalysts"`
	Valuation float64 `json:"valuation"`
	Risk      float64 `json:"risk"`
}

// DefaultWeightConfig returns the baseline growth-tilted preset.
func DefaultWeightConfig() WeightConfig {
	return WeightConfig{
		Growth:    0.32,
		Quality:   0.22,
		Catalysts: 0.18,
		Valuation: 0.18,
		Risk:      0.10,
	}
}

// Total returns the raw (un-normalized) weight sum.
func (w WeightConfig) Total() float64 {
	return w.Growth + w.Quality + w.Catalysts + w.Valuation + w.Risk
}

// Normalized returns a copy rescaled to sum to 1.0.
// A non-positive total falls back to five equal weights.
func (w WeightConfig) Normalized() WeightConfig {
	total := w.Total()
	if total <= 0 {
		const equal = 1.0 / 5.0
		return WeightConfig{Growth: equal, Quality: equal, Catalysts: equal, Valuation: equal, Risk: equal}
	}
	return WeightConfig{
		Growth:    w.Growth / total,
		Quality:   w.Quality / total,
		Catalysts: w.Catalysts / total,
		Valuation: w.Valuation / total,
		Risk:      w.Risk / total,
	}
}

// IsNormalized reports whether the weights already sum to ~1.0.
func (w WeightConfig) IsNormalized() bool {
	total := w.Total()
	return total > 0.999 && total < 1.001
}

// ScoreBreakdown holds the five factor scores for one company.
// The composite is always derived from Composite(), never stored,
// so a breakdown can be re-weighted after the fact.
// ⭐ SSOT: 종합 점수 계산은 Composite() 한 곳에서만
type ScoreBreakdown struct {
	Ticker    string        `json:"ticker"`
	Name      string        `json:"name"`
	Growth    float64       `json:"growth"`    // 0.0 ~ 1.0
	Quality   float64       `json:"quality"`   // 0.0 ~ 1.0
	Catalysts float64       `json:"catalysts"` // 0.0 ~ 1.0
	Valuation float64       `json:"valuation"` // 0.0 ~ 1.0
	Risk      float64       `json:"risk"`      // 0.0 ~ 1.0 (높을수록 리스크 양호)
	Weights   *WeightConfig `json:"weights,omitempty"`
}

// Composite blends the factor scores with the breakdown's weights
// (default preset when unset), normalized before the dot product.
func (s ScoreBreakdown) Composite() float64 {
	weights := DefaultWeightConfig()
	if s.Weights != nil {
		weights = *s.Weights
	}
	n := weights.Normalized()
	return s.Growth*n.Growth +
		s.Quality*n.Quality +
		s.Catalysts*n.Catalysts +
		s.Valuation*n.Valuation +
		s.Risk*n.Risk
}

// WithWeights returns a copy of the breakdown bound to the given weights.
func (s ScoreBreakdown) WithWeights(w WeightConfig) ScoreBreakdown {
	s.Weights = &w
	return s
}

// WeightOptimization is the outcome of correlating factor scores
// against realized backtest returns.
type WeightOptimization struct {
	Recommended        WeightConfig       `json:"recommended"`
	FactorCorrelations map[string]float64 `json:"factor_correlations"`
}
