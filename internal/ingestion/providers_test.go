package ingestion

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/breakout/pkg/config"
	"github.com/wonny/breakout/pkg/httputil"
	"github.com/wonny/breakout/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "test", LogLevel: "error", LogFormat: "json"})
}

// testHTTPClient disables retries so error paths fail fast.
func testHTTPClient() *httputil.Client {
	return httputil.New(&config.Config{Env: "test", LogLevel: "error", LogFormat: "json"}, testLogger()).DisableRetry()
}

func testProviderConfig(baseURL string) config.ProviderConfig {
	return config.ProviderConfig{Token: "test-token", BaseURL: baseURL}
}

func TestFinnhubFundamentals(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/metric", r.URL.Path)
		assert.Equal(t, "CLS", r.URL.Query().Get("symbol"))
		assert.Equal(t, "all", r.URL.Query().Get("metric"))
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))
		fmt.Fprint(w, `{"growth":{"threeYearRevenueCagr":0.17},"risk":{"beta":1.1}}`)
	}))
	defer server.Close()

	provider := NewFinnhub(testProviderConfig(server.URL), testHTTPClient(), testLogger())

	payload, err := provider.Fundamentals(context.Background(), "CLS")
	require.NoError(t, err)
	assert.InDelta(t, 0.17, payload.Float(0, "growth", "threeYearRevenueCagr"), 1e-9)
	assert.InDelta(t, 1.1, payload.Float(0, "risk", "beta"), 1e-9)
}

func TestFinnhubPriceSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/candle", r.URL.Path)
		assert.Equal(t, "D", r.URL.Query().Get("resolution"))
		assert.Equal(t, "365", r.URL.Query().Get("count"))
		// 2024-01-01, 2024-01-02 (unix)
		fmt.Fprint(w, `{"c":[10.5,11.2],"t":[1704067200,1704153600],"s":"ok"}`)
	}))
	defer server.Close()

	provider := NewFinnhub(testProviderConfig(server.URL), testHTTPClient(), testLogger())

	payload, err := provider.PriceSeries(context.Background(), "CLS", 365)
	require.NoError(t, err)
	require.Len(t, payload.Candles, 2)
	assert.Equal(t, "2024-01-01", payload.Candles[0].Date)
	assert.InDelta(t, 10.5, payload.Candles[0].Close, 1e-9)
	assert.Equal(t, "2024-01-02", payload.Candles[1].Date)
	assert.Equal(t, "1day", payload.Interval)
}

func TestFinnhubPriceSeriesNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"s":"no_data"}`)
	}))
	defer server.Close()

	provider := NewFinnhub(testProviderConfig(server.URL), testHTTPClient(), testLogger())

	_, err := provider.PriceSeries(context.Background(), "ZZZ", 365)
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "finnhub", provErr.Provider)
}

func TestFinnhubRejectsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	provider := NewFinnhub(testProviderConfig(server.URL), testHTTPClient(), testLogger())

	_, err := provider.Fundamentals(context.Background(), "CLS")
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusForbidden, provErr.Status)
}

func TestTwelveDataPriceSeriesReversesToChronological(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/time_series", r.URL.Path)
		assert.Equal(t, "1day", r.URL.Query().Get("interval"))
		assert.Equal(t, "3", r.URL.Query().Get("outputsize"))
		assert.Equal(t, "test-token", r.URL.Query().Get("apikey"))
		// 벤더는 최신순으로 내려준다
		fmt.Fprint(w, `{"status":"ok","values":[
			{"datetime":"2024-01-03","close":"12.40"},
			{"datetime":"2024-01-02","close":"11.90"},
			{"datetime":"2024-01-01","close":"11.10"}
		]}`)
	}))
	defer server.Close()

	provider := NewTwelveData(testProviderConfig(server.URL), testHTTPClient(), testLogger())

	payload, err := provider.PriceSeries(context.Background(), "CLS", 3)
	require.NoError(t, err)
	require.Len(t, payload.Candles, 3)
	assert.Equal(t, "2024-01-01", payload.Candles[0].Date)
	assert.InDelta(t, 11.10, payload.Candles[0].Close, 1e-9)
	assert.Equal(t, "2024-01-03", payload.Candles[2].Date)

	latest, ok := payload.LatestClose()
	require.True(t, ok)
	assert.InDelta(t, 12.40, latest, 1e-9, "latest close must be the newest candle after reversal")
}

func TestTwelveDataPriceSeriesErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"error","message":"symbol not found"}`)
	}))
	defer server.Close()

	provider := NewTwelveData(testProviderConfig(server.URL), testHTTPClient(), testLogger())

	_, err := provider.PriceSeries(context.Background(), "NOPE", 10)
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "twelvedata", provErr.Provider)
	assert.Contains(t, provErr.Message, "symbol not found")
}

func TestTwelveDataPriceSeriesBadClose(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ok","values":[{"datetime":"2024-01-01","close":"n/a"}]}`)
	}))
	defer server.Close()

	provider := NewTwelveData(testProviderConfig(server.URL), testHTTPClient(), testLogger())

	_, err := provider.PriceSeries(context.Background(), "CLS", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse close")
}

func TestFMPFundamentalsUnwrapsArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/profile/CLS", r.URL.Path)
		assert.Equal(t, "test-token", r.URL.Query().Get("apikey"))
		// FMP는 프로필을 원소 1개짜리 배열로 감싼다
		fmt.Fprint(w, `[{"companyName":"Celestica Inc.","sector":"Technology","themeAlignment":0.85}]`)
	}))
	defer server.Close()

	provider := NewFMP(testProviderConfig(server.URL), testHTTPClient(), testLogger())

	payload, err := provider.Fundamentals(context.Background(), "CLS")
	require.NoError(t, err)
	assert.Equal(t, "Celestica Inc.", payload.Str("", "companyName"))
	assert.Equal(t, "Technology", payload.Str("", "sector"))
	assert.InDelta(t, 0.85, payload.Float(0, "themeAlignment"), 1e-9)
}

func TestFMPFundamentalsAcceptsBareObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"companyName":"Envista Holdings","sector":"Healthcare"}`)
	}))
	defer server.Close()

	provider := NewFMP(testProviderConfig(server.URL), testHTTPClient(), testLogger())

	payload, err := provider.Fundamentals(context.Background(), "NVST")
	require.NoError(t, err)
	assert.Equal(t, "Envista Holdings", payload.Str("", "companyName"))
}

func TestFMPFundamentalsEmptyArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	provider := NewFMP(testProviderConfig(server.URL), testHTTPClient(), testLogger())

	_, err := provider.Fundamentals(context.Background(), "ZZZ")
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "fmp", provErr.Provider)
	assert.Contains(t, provErr.Message, "empty profile")
}

func TestFMPPriceSeriesReversesHistorical(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/historical-price-full/CLS", r.URL.Path)
		assert.Equal(t, "line", r.URL.Query().Get("serietype"))
		assert.Equal(t, "2", r.URL.Query().Get("timeseries"))
		fmt.Fprint(w, `{"symbol":"CLS","historical":[
			{"date":"2024-01-02","close":11.9},
			{"date":"2024-01-01","close":11.1}
		]}`)
	}))
	defer server.Close()

	provider := NewFMP(testProviderConfig(server.URL), testHTTPClient(), testLogger())

	payload, err := provider.PriceSeries(context.Background(), "CLS", 2)
	require.NoError(t, err)
	assert.Equal(t, "CLS", payload.Symbol)
	require.Len(t, payload.Candles, 2)
	assert.Equal(t, "2024-01-01", payload.Candles[0].Date)
	assert.Equal(t, "2024-01-02", payload.Candles[1].Date)
}

func TestFMPPriceSeriesEmptyHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"symbol":"ZZZ"}`)
	}))
	defer server.Close()

	provider := NewFMP(testProviderConfig(server.URL), testHTTPClient(), testLogger())

	_, err := provider.PriceSeries(context.Background(), "ZZZ", 10)
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Contains(t, provErr.Message, "no price history")
}
