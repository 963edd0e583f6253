package risk

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// =============================================================================
// 통계 유틸리티 (gonum 래퍼 + 빈 입력 가드)
// =============================================================================

// Mean 평균 계산
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// StdDev 표본 표준편차 계산 (n-1 분모)
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

// Correlation 피어슨 상관계수
// 길이 불일치, 표본 부족, 분산 0 (NaN)은 모두 0으로 처리
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// Percentile p번째 백분위수 (선형 보간, 0 ≤ p ≤ 100)
// 정렬은 내부에서 수행하므로 입력은 변경되지 않음
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	idx := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	// 선형 보간
	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
