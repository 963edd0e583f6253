package backtest

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/logger"
)

// ErrNoCandles marks a payload with nothing to replay.
var ErrNoCandles = errors.New("no candles to backtest")

// dateFormats are the accepted candle date layouts, checked in order.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Engine replays a daily close series as one buy-and-hold position
// ⭐ SSOT: 백테스트 지표 계산은 여기서만
type Engine struct {
	logger *logger.Logger
}

// NewEngine creates a new backtest engine
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{logger: log}
}

// Run computes buy-and-hold metrics for one price series.
// Candles may arrive in any order; they are sorted by parsed date.
// An empty series or an unparseable date is a validation error.
func (e *Engine) Run(ticker string, payload contracts.PricePayload) (contracts.BacktestResult, error) {
	if len(payload.Candles) == 0 {
		return contracts.BacktestResult{}, fmt.Errorf("%s: %w", ticker, ErrNoCandles)
	}

	type tradingDay struct {
		date  time.Time
		close float64
	}
	days := make([]tradingDay, 0, len(payload.Candles))
	for _, candle := range payload.Candles {
		parsed, err := parseDate(candle.Date)
		if err != nil {
			return contracts.BacktestResult{}, fmt.Errorf("%s: %w", ticker, err)
		}
		days = append(days, tradingDay{date: parsed, close: candle.Close})
	}

	sort.SliceStable(days, func(i, j int) bool {
		return days[i].date.Before(days[j].date)
	})

	first := days[0]
	last := days[len(days)-1]
	result := contracts.BacktestResult{Ticker: ticker}

	if len(days) > 1 && first.close > 0 {
		result.CumulativeReturn = last.close/first.close - 1
	}

	// CAGR 연환산: 1개월 미만 구간은 1개월로 간주 (단기 수익률 과장 방지)
	years := last.date.Sub(first.date).Hours() / 24 / 365.25
	if years < 1.0/12.0 {
		years = 1.0 / 12.0
	}
	if first.close > 0 && last.close > 0 {
		result.CAGR = math.Pow(last.close/first.close, 1/years) - 1
	}

	// Max drawdown: 역대 고점 대비 최대 하락 폭 (음수)
	runningMax := first.close
	for _, day := range days {
		if day.close > runningMax {
			runningMax = day.close
		}
		if runningMax > 0 {
			if drawdown := day.close/runningMax - 1; drawdown < result.MaxDrawdown {
				result.MaxDrawdown = drawdown
			}
		}
	}

	e.logger.WithFields(map[string]interface{}{
		"ticker":       ticker,
		"candles":      len(days),
		"cumulative":   result.CumulativeReturn,
		"cagr":         result.CAGR,
		"max_drawdown": result.MaxDrawdown,
	}).Debug("Backtest complete")

	return result, nil
}

// RunAll replays every ticker independently, in sorted-ticker order.
// Invalid payloads are skipped with a warning, not propagated.
func (e *Engine) RunAll(payloads map[string]contracts.PricePayload) []contracts.BacktestResult {
	tickers := make([]string, 0, len(payloads))
	for ticker := range payloads {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	results := make([]contracts.BacktestResult, 0, len(payloads))
	for _, ticker := range tickers {
		result, err := e.Run(ticker, payloads[ticker])
		if err != nil {
			e.logger.WithError(err).WithField("ticker", ticker).Warn("Skipping unreplayable payload")
			continue
		}
		results = append(results, result)
	}

	e.logger.WithFields(map[string]interface{}{
		"requested": len(payloads),
		"completed": len(results),
	}).Info("Backtest batch complete")

	return results
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateFormats {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable candle date %q", value)
}
