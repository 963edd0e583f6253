package contracts

import "time"

// SnapshotEntry is one ranked company captured inside a snapshot
type SnapshotEntry struct {
	Rank          int           `json:"rank"` // 1-based
	Ticker        string        `json:"ticker"`
	Name          string        `json:"name"`
	Growth        float64       `json:"growth"`
	Quality       float64       `json:"quality"`
	Catalysts     float64       `json:"catalysts"`
	Valuation     float64       `json:"valuation"`
	Risk          float64       `json:"risk"`
	Composite     float64       `json:"composite"`
	Weights       *WeightConfig `json:"weights,omitempty"`
	RecordedPrice *float64      `json:"recorded_price"` // 캡처 시점 종가 (없으면 nil)
	TargetPrice   *float64      `json:"target_price"`   // 목표가 = 종가 × 2
}

// RankingSnapshot is one immutable capture of a full ranking run
// ⭐ SSOT: 랭킹 이력 구조는 여기서만 정의
type RankingSnapshot struct {
	ID        string          `json:"id"` // UUID
	CreatedAt time.Time       `json:"created_at"`
	Entries   []SnapshotEntry `json:"entries"`
}

// Entry returns the snapshot entry for ticker, if present.
func (s RankingSnapshot) Entry(ticker string) (SnapshotEntry, bool) {
	for _, e := range s.Entries {
		if e.Ticker == ticker {
			return e, true
		}
	}
	return SnapshotEntry{}, false
}

// Tickers returns the captured tickers in rank order.
func (s RankingSnapshot) Tickers() []string {
	tickers := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		tickers = append(tickers, e.Ticker)
	}
	return tickers
}

// SnapshotPerformance is one since-capture performance row for a
// previously snapshotted company.
type SnapshotPerformance struct {
	RunTimestamp       time.Time `json:"run_timestamp"` // 스냅샷 생성 시각
	Ticker             string    `json:"ticker"`
	Name               string    `json:"name"`
	RecordedPrice      *float64  `json:"recorded_price"`
	LatestPrice        *float64  `json:"latest_price"`
	ReturnSinceCapture *float64  `json:"return_since_capture"` // latest/recorded - 1
	TargetMet          bool      `json:"target_met"`           // 최신가 ≥ 목표가
	Composite          float64   `json:"composite"`
}
