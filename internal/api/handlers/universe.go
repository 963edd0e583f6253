package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/internal/ingestion"
	"github.com/wonny/breakout/internal/watchlist"
)

// errEmptyUniverse is returned when no requested company could be resolved.
var errEmptyUniverse = errors.New("no companies could be resolved")

// Universe resolves API requests into company data. Requests may name
// tickers (fetched through ingestion), carry raw indicator records
// (scored as-is, no provider round trip), or name nothing, in which
// case the configured watch universe is used.
// ⭐ SSOT: API 요청 → 종목 데이터 해석은 여기서만
type Universe struct {
	manager *ingestion.Manager
	watch   *watchlist.Watchlist
}

// NewUniverse creates a request universe resolver.
func NewUniverse(manager *ingestion.Manager, watch *watchlist.Watchlist) *Universe {
	return &Universe{manager: manager, watch: watch}
}

// Company fetches a single company through ingestion.
func (u *Universe) Company(ctx context.Context, ticker string) (ingestion.CompanyData, error) {
	return u.manager.Company(ctx, ticker, "")
}

// LatestClose exposes the latest cached close for performance checks.
func (u *Universe) LatestClose(ctx context.Context, ticker string) (float64, bool) {
	return u.manager.LatestClose(ctx, ticker)
}

// Resolve returns company data for the request, in request order.
// Raw indicators take precedence over tickers.
func (u *Universe) Resolve(ctx context.Context, tickers []string, indicators []contracts.CompanyIndicators) ([]ingestion.CompanyData, error) {
	if len(indicators) > 0 {
		companies := make([]ingestion.CompanyData, 0, len(indicators))
		for _, ind := range indicators {
			ticker := strings.ToUpper(strings.TrimSpace(ind.Ticker))
			if ticker == "" {
				continue
			}
			ind.Ticker = ticker
			companies = append(companies, ingestion.CompanyData{Ticker: ticker, Indicators: ind})
		}
		if len(companies) == 0 {
			return nil, errEmptyUniverse
		}
		return companies, nil
	}

	if len(tickers) == 0 {
		tickers = u.watch.Symbols()
	}

	companies := u.manager.Companies(ctx, tickers)
	if len(companies) == 0 {
		return nil, errEmptyUniverse
	}
	return companies, nil
}

// indicatorsOf projects company data onto the indicator records.
func indicatorsOf(companies []ingestion.CompanyData) []contracts.CompanyIndicators {
	out := make([]contracts.CompanyIndicators, 0, len(companies))
	for _, c := range companies {
		out = append(out, c.Indicators)
	}
	return out
}

// indicatorsByTicker keys indicator records by ticker for portfolio sizing.
func indicatorsByTicker(companies []ingestion.CompanyData) map[string]contracts.CompanyIndicators {
	out := make(map[string]contracts.CompanyIndicators, len(companies))
	for _, c := range companies {
		out[c.Ticker] = c.Indicators
	}
	return out
}

// pricesByTicker collects the available price payloads.
func pricesByTicker(companies []ingestion.CompanyData) map[string]contracts.PricePayload {
	out := make(map[string]contracts.PricePayload, len(companies))
	for _, c := range companies {
		if c.Prices != nil {
			out[c.Ticker] = *c.Prices
		}
	}
	return out
}

// priceLookup collects price payloads in the shape the tracker expects.
func priceLookup(companies []ingestion.CompanyData) map[string]*contracts.PricePayload {
	out := make(map[string]*contracts.PricePayload, len(companies))
	for _, c := range companies {
		if c.Prices != nil {
			out[c.Ticker] = c.Prices
		}
	}
	return out
}

// decodeJSON parses an optional JSON request body. An empty body
// leaves dest at its zero value.
func decodeJSON(r *http.Request, dest interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
