package scoring

// SmoothStep maps value onto [0, 1] with linear interpolation between
// lower and upper. Values at or below lower score 0, values at or
// above upper score 1.
// ⭐ SSOT: 모든 팩터 정규화는 이 함수를 통해서만
func SmoothStep(value, lower, upper float64) float64 {
	if lower == upper {
		// Degenerate band: hard threshold at upper
		if value >= upper {
			return 1.0
		}
		return 0.0
	}
	return Clamp01((value - lower) / (upper - lower))
}

// InverseSmoothStep is the exact complement of SmoothStep, for
// metrics where lower raw values are better (leverage, beta, PEG).
func InverseSmoothStep(value, lower, upper float64) float64 {
	return 1.0 - SmoothStep(value, lower, upper)
}

// Clamp01 clamps v into [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// component is one named factor input with its blend weight.
// 슬라이스 순서 = 계산 순서 (맵 순회 비결정성 회피)
type component struct {
	name   string
	score  float64
	weight float64
}

// weightedAverage blends component scores by weight.
// A zero total weight yields 0.
func weightedAverage(components []component) float64 {
	total := 0.0
	weighted := 0.0
	for _, c := range components {
		total += c.weight
		weighted += c.score * c.weight
	}
	if total == 0 {
		return 0.0
	}
	return weighted / total
}

// componentFields flattens component scores into structured log fields.
func componentFields(ticker string, components []component, score float64) map[string]interface{} {
	fields := map[string]interface{}{
		"ticker": ticker,
		"score":  score,
	}
	for _, c := range components {
		fields[c.name] = c.score
	}
	return fields
}
