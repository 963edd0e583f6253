package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/config"
	"github.com/wonny/breakout/pkg/httputil"
	"github.com/wonny/breakout/pkg/logger"
)

// TwelveData fetches fundamentals and time series from twelvedata.com.
// ⭐ SSOT: Twelve Data API 호출은 이 클라이언트에서만
type TwelveData struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	apiKey     string
}

// NewTwelveData creates a Twelve Data provider.
func NewTwelveData(cfg config.ProviderConfig, httpClient *httputil.Client, log *logger.Logger) *TwelveData {
	return &TwelveData{
		httpClient: httpClient.WithRateLimiter(perMinuteLimiter(cfg.RequestsPerMinute)),
		logger:     log,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.Token,
	}
}

// Name identifies the provider in logs and health reports.
func (p *TwelveData) Name() string {
	return "twelvedata"
}

// Fundamentals fetches /fundamentals for a ticker.
func (p *TwelveData) Fundamentals(ctx context.Context, ticker string) (Fundamentals, error) {
	params := url.Values{}
	params.Set("symbol", ticker)

	var payload Fundamentals
	if err := p.getJSON(ctx, "/fundamentals", params, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// twelveDataSeries is the /time_series response. Values arrive newest
// first, and closes are quoted as strings.
type twelveDataSeries struct {
	Values []struct {
		Datetime string `json:"datetime"`
		Close    string `json:"close"`
	} `json:"values"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// PriceSeries fetches /time_series with a daily interval. The vendor
// returns candles newest first, so the slice is reversed here to keep
// the oldest-first contract every consumer relies on.
func (p *TwelveData) PriceSeries(ctx context.Context, ticker string, limit int) (contracts.PricePayload, error) {
	params := url.Values{}
	params.Set("symbol", ticker)
	params.Set("interval", "1day")
	params.Set("outputsize", strconv.Itoa(limit))

	var raw twelveDataSeries
	if err := p.getJSON(ctx, "/time_series", params, &raw); err != nil {
		return contracts.PricePayload{}, err
	}
	if raw.Status != "" && raw.Status != "ok" {
		return contracts.PricePayload{}, &ProviderError{
			Provider: p.Name(),
			Message:  fmt.Sprintf("time_series status %q: %s", raw.Status, raw.Message),
		}
	}

	candles := make([]contracts.Candle, 0, len(raw.Values))
	for i := len(raw.Values) - 1; i >= 0; i-- {
		entry := raw.Values[i]
		closePrice, err := strconv.ParseFloat(entry.Close, 64)
		if err != nil {
			return contracts.PricePayload{}, fmt.Errorf("parse close %q for %s: %w", entry.Close, ticker, err)
		}
		candles = append(candles, contracts.Candle{
			Date:  entry.Datetime,
			Close: closePrice,
		})
	}

	return contracts.PricePayload{
		Symbol:   ticker,
		Interval: "1day",
		Candles:  candles,
	}, nil
}

// getJSON performs an authenticated GET and decodes the JSON body.
func (p *TwelveData) getJSON(ctx context.Context, path string, params url.Values, dest interface{}) error {
	params.Set("apikey", p.apiKey)
	fullURL := fmt.Sprintf("%s%s?%s", p.baseURL, path, params.Encode())

	resp, err := p.httpClient.Get(ctx, fullURL)
	if err != nil {
		return fmt.Errorf("twelvedata request failed: %w", err)
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
		return fmt.Errorf("decode twelvedata response: %w", err)
	}
	return nil
}
