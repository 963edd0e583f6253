package contracts

// Candle is one dated close inside a price series
type Candle struct {
	Date  string  `json:"date"` // "2006-01-02" 또는 RFC3339
	Close float64 `json:"close"`
}

// PricePayload is the provider-normalized daily price series for one symbol
// ⭐ SSOT: 가격 데이터 교환 형식은 여기서만 정의
type PricePayload struct {
	Symbol   string   `json:"symbol,omitempty"`
	Interval string   `json:"interval,omitempty"`
	Candles  []Candle `json:"candles"` // 과거 → 최신 순
}

// LatestClose returns the close of the most recent candle.
func (p PricePayload) LatestClose() (float64, bool) {
	if len(p.Candles) == 0 {
		return 0, false
	}
	return p.Candles[len(p.Candles)-1].Close, true
}

// BacktestResult summarizes a buy-and-hold replay of one price series
type BacktestResult struct {
	Ticker           string  `json:"ticker"`
	CumulativeReturn float64 `json:"cumulative_return"` // last/first - 1
	CAGR             float64 `json:"cagr"`              // 연환산 수익률
	MaxDrawdown      float64 `json:"max_drawdown"`      // 음수 (최대 낙폭)
}
