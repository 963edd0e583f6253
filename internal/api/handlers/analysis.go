package handlers

import (
	"net/http"

	"github.com/wonny/breakout/internal/backtest"
	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/internal/scoring"
	"github.com/wonny/breakout/internal/settings"
	"github.com/wonny/breakout/internal/tuning"
	"github.com/wonny/breakout/pkg/logger"
)

// AnalysisHandler handles backtest and weight-tuning endpoints
// ⭐ SSOT: 분석 API 핸들러는 이 구조체에서만
type AnalysisHandler struct {
	universe    *Universe
	weights     *settings.WeightStore
	backtester  *backtest.Engine
	recommender *tuning.Recommender
	logger      *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(universe *Universe, weights *settings.WeightStore, backtester *backtest.Engine, recommender *tuning.Recommender, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		universe:    universe,
		weights:     weights,
		backtester:  backtester,
		recommender: recommender,
		logger:      log,
	}
}

// BacktestRequest names the tickers to replay. Empty means the watch
// universe.
type BacktestRequest struct {
	Tickers []string `json:"tickers,omitempty"`
}

// BacktestResponse carries per-ticker replay results
type BacktestResponse struct {
	Count   int                        `json:"count"`
	Results []contracts.BacktestResult `json:"results"`
}

// RunBacktests replays price history for the requested tickers
// POST /api/backtests
func (h *AnalysisHandler) RunBacktests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BacktestRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	companies, err := h.universe.Resolve(ctx, req.Tickers, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to resolve backtest universe")
		respondError(w, http.StatusBadRequest, "No companies could be resolved")
		return
	}

	payloads := pricesByTicker(companies)
	if len(payloads) == 0 {
		respondError(w, http.StatusBadRequest, "No price history available for the requested tickers")
		return
	}

	results := h.backtester.RunAll(payloads)

	respondJSON(w, http.StatusOK, BacktestResponse{
		Count:   len(results),
		Results: results,
	})
}

// TuneResponse pairs the recommendation with the weights it would replace
type TuneResponse struct {
	Current      contracts.WeightConfig        `json:"current"`
	Optimization *contracts.WeightOptimization `json:"optimization"`
	Samples      int                           `json:"samples"`
}

// TuneWeights correlates factor scores with realized returns
// POST /api/tuning
func (h *AnalysisHandler) TuneWeights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BacktestRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	companies, err := h.universe.Resolve(ctx, req.Tickers, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to resolve tuning universe")
		respondError(w, http.StatusBadRequest, "No companies could be resolved")
		return
	}

	weights := h.weights.Load()
	engine := scoring.NewEngine(weights, h.logger)
	scores := engine.Rank(indicatorsOf(companies))
	results := h.backtester.RunAll(pricesByTicker(companies))

	optimization := h.recommender.Recommend(scores, results)
	if optimization == nil {
		respondError(w, http.StatusUnprocessableEntity, "Not enough realized history to tune weights")
		return
	}

	respondJSON(w, http.StatusOK, TuneResponse{
		Current:      weights.Normalized(),
		Optimization: optimization,
		Samples:      len(results),
	})
}
