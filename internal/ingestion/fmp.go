package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/config"
	"github.com/wonny/breakout/pkg/httputil"
	"github.com/wonny/breakout/pkg/logger"
)

// FMP is the Financial Modeling Prep client, used as the themes/metadata
// vendor (테마 부합도, 전략 투자자 점수 등 보조 신호).
//
// ⭐ SSOT: FMP API 호출은 이 클라이언트에서만 수행한다.
type FMP struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	apiKey     string
}

// NewFMP creates an FMP client with a per-minute rate limiter from cfg.
func NewFMP(cfg config.ProviderConfig, httpClient *httputil.Client, log *logger.Logger) *FMP {
	return &FMP{
		httpClient: httpClient.WithRateLimiter(perMinuteLimiter(cfg.RequestsPerMinute)),
		logger:     log,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.Token,
	}
}

// Name implements Provider.
func (f *FMP) Name() string { return "fmp" }

// Fundamentals fetches the company profile. FMP wraps the profile in a
// single-element JSON array, so the payload is unwrapped before use.
func (f *FMP) Fundamentals(ctx context.Context, ticker string) (Fundamentals, error) {
	var raw json.RawMessage
	if err := f.getJSON(ctx, "/profile/"+url.PathEscape(ticker), nil, &raw); err != nil {
		return nil, err
	}

	payload := bytes.TrimSpace(raw)
	if len(payload) > 0 && payload[0] == '[' {
		var items []Fundamentals
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, fmt.Errorf("decode fmp profile for %s: %w", ticker, err)
		}
		if len(items) == 0 {
			return nil, &ProviderError{Provider: "fmp", Message: fmt.Sprintf("empty profile for %s", ticker)}
		}
		return items[0], nil
	}

	var item Fundamentals
	if err := json.Unmarshal(payload, &item); err != nil {
		return nil, fmt.Errorf("decode fmp profile for %s: %w", ticker, err)
	}
	return item, nil
}

type fmpHistory struct {
	Symbol     string `json:"symbol"`
	Historical []struct {
		Date  string  `json:"date"`
		Close float64 `json:"close"`
	} `json:"historical"`
}

// PriceSeries fetches up to limit daily closes. The vendor returns the
// series newest first; candles are reversed to keep the oldest-first
// contract every consumer relies on.
func (f *FMP) PriceSeries(ctx context.Context, ticker string, limit int) (contracts.PricePayload, error) {
	params := url.Values{}
	params.Set("serietype", "line")
	params.Set("timeseries", fmt.Sprintf("%d", limit))

	var raw fmpHistory
	if err := f.getJSON(ctx, "/historical-price-full/"+url.PathEscape(ticker), params, &raw); err != nil {
		return contracts.PricePayload{}, err
	}
	if len(raw.Historical) == 0 {
		return contracts.PricePayload{}, &ProviderError{
			Provider: "fmp",
			Message:  fmt.Sprintf("no price history for %s", ticker),
		}
	}

	candles := make([]contracts.Candle, 0, len(raw.Historical))
	for i := len(raw.Historical) - 1; i >= 0; i-- {
		entry := raw.Historical[i]
		candles = append(candles, contracts.Candle{Date: entry.Date, Close: entry.Close})
	}

	f.logger.WithFields(map[string]interface{}{
		"ticker":  ticker,
		"candles": len(candles),
	}).Debug("FMP price series fetched")

	return contracts.PricePayload{
		Symbol:   raw.Symbol,
		Interval: "1day",
		Candles:  candles,
	}, nil
}

// getJSON performs an authenticated GET and decodes the JSON body.
func (f *FMP) getJSON(ctx context.Context, path string, params url.Values, dest interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", f.apiKey)
	fullURL := fmt.Sprintf("%s%s?%s", f.baseURL, path, params.Encode())

	resp, err := f.httpClient.Get(ctx, fullURL)
	if err != nil {
		return fmt.Errorf("fmp request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ProviderError{
			Provider: f.Name(),
			Status:   resp.StatusCode,
			Message:  path,
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode fmp response: %w", err)
	}
	return nil
}
