package ingestion

import (
	"context"
	"strings"
	"time"

	"github.com/wonny/breakout/internal/contracts"
)

// Sample is an offline provider serving deterministic demo data, so the
// full pipeline runs without any API token. Unknown tickers fall back
// to the CLS dataset.
//
// ⭐ SSOT: 샘플 데이터셋은 여기서만 정의한다.
type Sample struct{}

// NewSample creates the offline sample provider.
func NewSample() *Sample { return &Sample{} }

// Name implements Provider.
func (s *Sample) Name() string { return "sample" }

// Fundamentals implements Provider.
func (s *Sample) Fundamentals(_ context.Context, ticker string) (Fundamentals, error) {
	if data, ok := sampleFundamentals[strings.ToUpper(ticker)]; ok {
		return data, nil
	}
	return sampleFundamentals["CLS"], nil
}

// PriceSeries implements Provider. Candles start at 2022-01-01 and step
// 30 days, oldest first.
func (s *Sample) PriceSeries(_ context.Context, ticker string, limit int) (contracts.PricePayload, error) {
	ticker = strings.ToUpper(ticker)
	closes, ok := sampleCloses[ticker]
	if !ok {
		closes = sampleCloses["CLS"]
	}
	if limit > 0 && limit < len(closes) {
		closes = closes[:limit]
	}

	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]contracts.Candle, 0, len(closes))
	for i, c := range closes {
		candles = append(candles, contracts.Candle{
			Date:  start.AddDate(0, 0, 30*i).Format("2006-01-02"),
			Close: c,
		})
	}
	return contracts.PricePayload{Symbol: ticker, Interval: "1day", Candles: candles}, nil
}

// Celestica 류의 성장 브레이크아웃 셋업을 흉내낸 3종목 데이터.
var sampleFundamentals = map[string]Fundamentals{
	"CLS": {
		"growth": map[string]interface{}{"threeYearRevenueCagr": 0.17, "revenueGrowth": 0.05},
		"profitability": map[string]interface{}{
			"ebitMargin":         0.04,
			"freeCashFlowMargin": 0.08,
			"roic":               0.19,
		},
		"operational": map[string]interface{}{"backlogGrowth": 0.32},
		"trend":       map[string]interface{}{"roic": 0.05, "assetTurnover": 0.08},
		"leverage":    map[string]interface{}{"netDebtToEbitda": 1.1, "interestCoverage": 10.0},
		"sentiment":   map[string]interface{}{"earningsRevision": 0.18, "insiderActivity": 0.55},
		"valuation":   map[string]interface{}{"pegRatio": 0.9, "fcfYield": 0.05},
		"size":        map[string]interface{}{"marketCap": 4.2e9},
		"risk":        map[string]interface{}{"beta": 1.1, "volatility3Y": 0.32},
		"profile": map[string]interface{}{
			"companyName": "Celestica Inc.",
			"sector":      "Technology",
			"industry":    "Electronic Components",
		},
		"themeAlignment":         0.85,
		"strategicInvestorScore": 0.3,
		"evToEbitdaVsPeers":      -1.5,
		"priceMomentum":          0.22,
		"consolidationScore":     0.6,
		"avgDollarVolume":        4.5e7,
		"drawdown1Y":             0.2,
	},
	"NVST": {
		"growth": map[string]interface{}{"threeYearRevenueCagr": 0.09, "revenueGrowth": 0.03},
		"profitability": map[string]interface{}{
			"ebitMargin":         0.02,
			"freeCashFlowMargin": 0.07,
			"roic":               0.14,
		},
		"operational": map[string]interface{}{"backlogGrowth": 0.18},
		"trend":       map[string]interface{}{"roic": 0.03, "assetTurnover": 0.05},
		"leverage":    map[string]interface{}{"netDebtToEbitda": 1.8, "interestCoverage": 8.0},
		"sentiment":   map[string]interface{}{"earningsRevision": 0.1, "insiderActivity": 0.35},
		"valuation":   map[string]interface{}{"pegRatio": 1.1, "fcfYield": 0.045},
		"size":        map[string]interface{}{"marketCap": 6.5e9},
		"risk":        map[string]interface{}{"beta": 1.0, "volatility3Y": 0.28},
		"profile": map[string]interface{}{
			"companyName": "Envista Holdings",
			"sector":      "Healthcare",
			"industry":    "Medical Instruments",
		},
		"themeAlignment":         0.7,
		"strategicInvestorScore": 0.15,
		"evToEbitdaVsPeers":      -0.8,
		"priceMomentum":          0.15,
		"consolidationScore":     0.5,
		"avgDollarVolume":        2.2e7,
		"drawdown1Y":             0.25,
	},
	"SMCI": {
		"growth": map[string]interface{}{"threeYearRevenueCagr": 0.4, "revenueGrowth": 0.2},
		"profitability": map[string]interface{}{
			"ebitMargin":         0.07,
			"freeCashFlowMargin": 0.09,
			"roic":               0.23,
		},
		"operational": map[string]interface{}{"backlogGrowth": 0.45},
		"trend":       map[string]interface{}{"roic": 0.07, "assetTurnover": 0.12},
		"leverage":    map[string]interface{}{"netDebtToEbitda": -0.5, "interestCoverage": 20.0},
		"sentiment":   map[string]interface{}{"earningsRevision": 0.25, "insiderActivity": 0.4},
		"valuation":   map[string]interface{}{"pegRatio": 1.4, "fcfYield": 0.03},
		"size":        map[string]interface{}{"marketCap": 25e9},
		"risk":        map[string]interface{}{"beta": 1.45, "volatility3Y": 0.55},
		"profile": map[string]interface{}{
			"companyName": "Super Micro Computer",
			"sector":      "Technology",
			"industry":    "Computer Hardware",
		},
		"themeAlignment":         0.95,
		"strategicInvestorScore": 0.2,
		"evToEbitdaVsPeers":      1.0,
		"priceMomentum":          0.3,
		"consolidationScore":     0.35,
		"avgDollarVolume":        1.5e9,
		"drawdown1Y":             0.4,
	},
}

var sampleCloses = map[string][]float64{
	"CLS": {
		8.2, 8.5, 9.1, 9.5, 9.8, 10.4, 11.2, 12.1, 14.0, 16.5,
		18.2, 21.4, 24.8, 27.5, 29.3, 31.1, 35.0, 40.5, 46.2, 52.7,
	},
	"NVST": {
		42.0, 41.5, 40.2, 39.8, 40.1, 41.0, 41.8, 42.5, 43.0, 43.8,
		44.5, 45.2, 44.0, 43.0, 42.5, 41.8, 42.2, 43.5, 44.7, 45.8,
	},
	"SMCI": {
		40.0, 41.3, 43.6, 46.8, 52.0, 58.5, 64.2, 72.0, 83.5, 95.0,
		115.0, 140.0, 170.0, 205.0, 260.0, 320.0, 400.0, 520.0, 680.0, 820.0,
	},
}

// SampleTickers lists the tickers with first-class sample coverage.
func SampleTickers() []string { return []string{"CLS", "NVST", "SMCI"} }
