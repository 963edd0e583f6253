package ingestion

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wonny/breakout/internal/contracts"
)

// Provider is a market data source. Implementations: Finnhub,
// TwelveData, FMP, Sample, and the Failover chain wrapping them.
type Provider interface {
	// Name identifies the provider in logs and health reports.
	Name() string

	// Fundamentals fetches the raw fundamentals payload for a ticker.
	Fundamentals(ctx context.Context, ticker string) (Fundamentals, error)

	// PriceSeries fetches up to limit daily candles, oldest first.
	PriceSeries(ctx context.Context, ticker string, limit int) (contracts.PricePayload, error)
}

// ProviderError is returned when a data provider rejects a request.
type ProviderError struct {
	Provider string
	Status   int
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s returned %d: %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// Fundamentals is a raw provider payload. Vendors disagree on shape,
// so access goes through path helpers that fall back to defaults
// instead of panicking on missing branches.
type Fundamentals map[string]interface{}

// Float walks the nested path and returns the numeric leaf, or def
// when the path is absent or not a number.
func (f Fundamentals) Float(def float64, path ...string) float64 {
	if v, ok := f.lookup(path); ok {
		if num, ok := asFloat(v); ok {
			return num
		}
	}
	return def
}

// Optional walks the nested path and returns a pointer to the numeric
// leaf, or nil when absent. 누락과 0을 구분해야 하는 지표용.
func (f Fundamentals) Optional(path ...string) *float64 {
	if v, ok := f.lookup(path); ok {
		if num, ok := asFloat(v); ok {
			return contracts.Float(num)
		}
	}
	return nil
}

// Str walks the nested path and returns the string leaf, or def.
func (f Fundamentals) Str(def string, path ...string) string {
	if v, ok := f.lookup(path); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return def
}

// Has reports whether the path exists with any value.
func (f Fundamentals) Has(path ...string) bool {
	_, ok := f.lookup(path)
	return ok
}

func (f Fundamentals) lookup(path []string) (interface{}, bool) {
	var node interface{} = map[string]interface{}(f)
	for _, key := range path {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, false
		}
		node, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// asFloat coerces JSON numerics. encoding/json decodes numbers as
// float64, but some vendors quote them as strings.
func asFloat(v interface{}) (float64, bool) {
	switch num := v.(type) {
	case float64:
		return num, true
	case int:
		return float64(num), true
	case string:
		if parsed, err := strconv.ParseFloat(num, 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
