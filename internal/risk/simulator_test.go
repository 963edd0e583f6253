package risk

import (
	"math"
	"testing"

	"github.com/wonny/breakout/pkg/config"
	"github.com/wonny/breakout/pkg/logger"
)

func newTestLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "test", LogLevel: "error", LogFormat: "json"})
}

func singlePosition() []PositionProfile {
	return []PositionProfile{
		{Ticker: "CLS", Weight: 1.0, ExpectedReturn: 0.10, Volatility: 0.05},
	}
}

func TestSimulatorDefaults(t *testing.T) {
	sim := NewSimulator(0, 0, newTestLogger())
	if sim.Draws() != DefaultDraws {
		t.Errorf("Draws() = %d, want %d", sim.Draws(), DefaultDraws)
	}
}

func TestSimulatorDeterminism(t *testing.T) {
	base := ScenarioConfig{Name: "Base case", ReturnShift: 1.0, VolMultiple: 1.0}
	positions := singlePosition()

	first := NewSimulator(2000, 42, newTestLogger()).Run(base, positions)
	second := NewSimulator(2000, 42, newTestLogger()).Run(base, positions)

	// 동일 시드는 비트 단위로 동일한 결과를 내야 함
	if first.MeanReturn != second.MeanReturn || first.StdDev != second.StdDev || first.ValueAtRisk != second.ValueAtRisk {
		t.Errorf("same seed diverged: %+v vs %+v", first, second)
	}

	other := NewSimulator(2000, 7, newTestLogger()).Run(base, positions)
	if first.MeanReturn == other.MeanReturn {
		t.Error("different seeds should produce different samples")
	}
}

func TestSimulatorEmptyPositions(t *testing.T) {
	sim := NewSimulator(2000, 42, newTestLogger())
	result := sim.Run(ScenarioConfig{Name: "Base case", ReturnShift: 1.0, VolMultiple: 1.0}, nil)

	if result.MeanReturn != 0 || result.StdDev != 0 || result.ValueAtRisk != 0 {
		t.Errorf("empty positions should yield a zero result: %+v", result)
	}
	if result.Scenario.Name != "Base case" {
		t.Error("scenario label should survive the empty path")
	}
}

func TestSimulatorBaseCaseStatistics(t *testing.T) {
	sim := NewSimulator(2000, 42, newTestLogger())
	result := sim.Run(ScenarioConfig{Name: "Base case", ReturnShift: 1.0, VolMultiple: 1.0}, singlePosition())

	// 2000 draws around N(0.10, 0.05): sampling error stays well inside 0.01
	if math.Abs(result.MeanReturn-0.10) > 0.01 {
		t.Errorf("mean = %v, want ≈0.10", result.MeanReturn)
	}
	if math.Abs(result.StdDev-0.05) > 0.01 {
		t.Errorf("std = %v, want ≈0.05", result.StdDev)
	}
	if result.ValueAtRisk >= result.MeanReturn {
		t.Errorf("5th percentile %v should sit below the mean %v", result.ValueAtRisk, result.MeanReturn)
	}
	if result.Draws != 2000 {
		t.Errorf("draws = %d", result.Draws)
	}
}

func TestSimulatorScenarioShifts(t *testing.T) {
	sim := NewSimulator(2000, 42, newTestLogger())
	positions := singlePosition()

	base := sim.Run(ScenarioConfig{Name: "Base case", ReturnShift: 1.0, VolMultiple: 1.0}, positions)
	slowdown := sim.Run(ScenarioConfig{Name: "Growth slowdown", ReturnShift: 0.6, VolMultiple: 1.2}, positions)
	hyper := sim.Run(ScenarioConfig{Name: "Hyper-growth", ReturnShift: 1.4, VolMultiple: 0.9}, positions)

	if slowdown.MeanReturn >= base.MeanReturn {
		t.Errorf("slowdown mean %v should sit below base %v", slowdown.MeanReturn, base.MeanReturn)
	}
	if hyper.MeanReturn <= base.MeanReturn {
		t.Errorf("hyper-growth mean %v should sit above base %v", hyper.MeanReturn, base.MeanReturn)
	}

	// 같은 시드 = 같은 z 시퀀스이므로 표준편차는 배수 그대로 스케일됨
	if math.Abs(slowdown.StdDev-base.StdDev*1.2) > 1e-9 {
		t.Errorf("slowdown std %v, want exactly 1.2x base %v", slowdown.StdDev, base.StdDev)
	}
	if math.Abs(hyper.StdDev-base.StdDev*0.9) > 1e-9 {
		t.Errorf("hyper std %v, want exactly 0.9x base %v", hyper.StdDev, base.StdDev)
	}
}

func TestSimulatorNegativeExpectedReturnFloor(t *testing.T) {
	sim := NewSimulator(2000, 42, newTestLogger())
	positions := []PositionProfile{
		{Ticker: "BAD", Weight: 1.0, ExpectedReturn: -0.5, Volatility: 0.05},
	}

	result := sim.Run(ScenarioConfig{Name: "Base case", ReturnShift: 1.0, VolMultiple: 1.0}, positions)

	// 기대수익률은 0으로 바닥 처리: 평균은 0 근처여야 함
	if math.Abs(result.MeanReturn) > 0.01 {
		t.Errorf("floored mean = %v, want ≈0", result.MeanReturn)
	}
}

func TestSimulatorRunAll(t *testing.T) {
	sim := NewSimulator(500, 42, newTestLogger())
	results := sim.RunAll(DefaultScenarios(), singlePosition())

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	wantNames := []string{"Base case", "Growth slowdown", "Hyper-growth"}
	for i, want := range wantNames {
		if results[i].Scenario.Name != want {
			t.Errorf("results[%d] = %q, want %q", i, results[i].Scenario.Name, want)
		}
	}
}
