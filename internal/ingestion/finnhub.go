package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/config"
	"github.com/wonny/breakout/pkg/httputil"
	"github.com/wonny/breakout/pkg/logger"
)

// Finnhub fetches fundamentals and candles from finnhub.io.
// ⭐ SSOT: Finnhub API 호출은 이 클라이언트에서만
type Finnhub struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	token      string
}

// NewFinnhub creates a Finnhub provider. The provider owns its HTTP
// client so the per-minute quota throttles only Finnhub calls.
func NewFinnhub(cfg config.ProviderConfig, httpClient *httputil.Client, log *logger.Logger) *Finnhub {
	return &Finnhub{
		httpClient: httpClient.WithRateLimiter(perMinuteLimiter(cfg.RequestsPerMinute)),
		logger:     log,
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
	}
}

// Name identifies the provider in logs and health reports.
func (p *Finnhub) Name() string {
	return "finnhub"
}

// Fundamentals fetches /stock/metric with metric=all.
func (p *Finnhub) Fundamentals(ctx context.Context, ticker string) (Fundamentals, error) {
	params := url.Values{}
	params.Set("symbol", ticker)
	params.Set("metric", "all")

	var payload Fundamentals
	if err := p.getJSON(ctx, "/stock/metric", params, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// finnhubCandles is the /stock/candle response: parallel arrays of
// closes and unix timestamps, oldest first.
type finnhubCandles struct {
	Closes     []float64 `json:"c"`
	Timestamps []int64   `json:"t"`
	Status     string    `json:"s"`
}

// PriceSeries fetches /stock/candle with daily resolution.
func (p *Finnhub) PriceSeries(ctx context.Context, ticker string, limit int) (contracts.PricePayload, error) {
	params := url.Values{}
	params.Set("symbol", ticker)
	params.Set("resolution", "D")
	params.Set("count", fmt.Sprintf("%d", limit))

	var raw finnhubCandles
	if err := p.getJSON(ctx, "/stock/candle", params, &raw); err != nil {
		return contracts.PricePayload{}, err
	}
	if raw.Status != "ok" {
		return contracts.PricePayload{}, &ProviderError{
			Provider: p.Name(),
			Message:  fmt.Sprintf("candle status %q for %s", raw.Status, ticker),
		}
	}

	n := len(raw.Closes)
	if len(raw.Timestamps) < n {
		n = len(raw.Timestamps)
	}
	candles := make([]contracts.Candle, 0, n)
	for i := 0; i < n; i++ {
		candles = append(candles, contracts.Candle{
			Date:  time.Unix(raw.Timestamps[i], 0).UTC().Format("2006-01-02"),
			Close: raw.Closes[i],
		})
	}

	return contracts.PricePayload{
		Symbol:   ticker,
		Interval: "1day",
		Candles:  candles,
	}, nil
}

// getJSON performs an authenticated GET and decodes the JSON body.
func (p *Finnhub) getJSON(ctx context.Context, path string, params url.Values, dest interface{}) error {
	params.Set("token", p.token)
	fullURL := fmt.Sprintf("%s%s?%s", p.baseURL, path, params.Encode())

	resp, err := p.httpClient.Get(ctx, fullURL)
	if err != nil {
		return fmt.Errorf("finnhub request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ProviderError{
			Provider: p.Name(),
			Status:   resp.StatusCode,
			Message:  path,
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode finnhub response: %w", err)
	}
	return nil
}

// perMinuteLimiter converts a requests-per-minute quota into a rate
// limiter. Non-positive quotas mean "no limit on our side".
func perMinuteLimiter(rpm int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
}
