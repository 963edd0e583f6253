package contracts

import (
	"math"
	"testing"
)

func TestPortfolioPlanHelpers(t *testing.T) {
	empty := PortfolioPlan{}
	if !empty.IsEmpty() {
		t.Error("zero-value plan should be empty")
	}
	if empty.TotalWeight() != 0 {
		t.Error("empty plan total weight should be 0")
	}

	plan := PortfolioPlan{
		Suggestions: []PositionSuggestion{
			{Ticker: "CLS", Weight: 0.45},
			{Ticker: "SMCI", Weight: 0.35},
			{Ticker: "NVST", Weight: 0.20},
		},
	}

	if plan.IsEmpty() {
		t.Error("populated plan should not be empty")
	}
	if got := plan.TotalWeight(); math.Abs(got-1.0) > epsilon {
		t.Errorf("TotalWeight() = %f, want 1.0", got)
	}

	pos, ok := plan.Position("SMCI")
	if !ok || pos.Weight != 0.35 {
		t.Errorf("Position(SMCI) = %+v, %v", pos, ok)
	}
	if _, ok := plan.Position("AAPL"); ok {
		t.Error("unknown ticker should not resolve")
	}
}

func TestPricePayloadLatestClose(t *testing.T) {
	empty := PricePayload{Symbol: "CLS"}
	if _, ok := empty.LatestClose(); ok {
		t.Error("empty payload should have no latest close")
	}

	payload := PricePayload{
		Symbol: "CLS",
		Candles: []Candle{
			{Date: "2024-01-01", Close: 30.0},
			{Date: "2024-02-01", Close: 35.5},
		},
	}
	close, ok := payload.LatestClose()
	if !ok || close != 35.5 {
		t.Errorf("LatestClose() = %f, %v, want 35.5", close, ok)
	}
}

func TestRankingSnapshotHelpers(t *testing.T) {
	snapshot := RankingSnapshot{
		ID: "test-id",
		Entries: []SnapshotEntry{
			{Rank: 1, Ticker: "SMCI", Composite: 0.74},
			{Rank: 2, Ticker: "CLS", Composite: 0.66},
		},
	}

	entry, ok := snapshot.Entry("CLS")
	if !ok || entry.Rank != 2 {
		t.Errorf("Entry(CLS) = %+v, %v", entry, ok)
	}
	if _, ok := snapshot.Entry("NVST"); ok {
		t.Error("missing ticker should not resolve")
	}

	tickers := snapshot.Tickers()
	if len(tickers) != 2 || tickers[0] != "SMCI" || tickers[1] != "CLS" {
		t.Errorf("Tickers() = %v, want rank order", tickers)
	}
}
