package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/internal/portfolio"
	"github.com/wonny/breakout/internal/scoring"
	"github.com/wonny/breakout/internal/settings"
	"github.com/wonny/breakout/pkg/logger"
)

// RankHandler handles scoring and portfolio endpoints
// ⭐ SSOT: 랭킹/포트폴리오 API 핸들러는 이 구조체에서만
type RankHandler struct {
	universe    *Universe
	weights     *settings.WeightStore
	constructor *portfolio.Constructor
	logger      *logger.Logger
}

// NewRankHandler creates a new rank handler
func NewRankHandler(universe *Universe, weights *settings.WeightStore, constructor *portfolio.Constructor, log *logger.Logger) *RankHandler {
	return &RankHandler{
		universe:    universe,
		weights:     weights,
		constructor: constructor,
		logger:      log,
	}
}

// RankRequest selects the companies to evaluate. All fields are
// optional: an empty request ranks the watch universe with the
// persisted weights.
type RankRequest struct {
	Tickers    []string                      `json:"tickers,omitempty"`
	Indicators []contracts.CompanyIndicators `json:"indicators,omitempty"`
	Weights    *contracts.WeightConfig       `json:"weights,omitempty"`
}

// RankResponse carries the ranked scores and the weights they used
type RankResponse struct {
	Count   int                        `json:"count"`
	Weights contracts.WeightConfig     `json:"weights"`
	Scores  []contracts.ScoreBreakdown `json:"scores"`
}

// Rank scores the requested companies and returns them ranked
// POST /api/rank
func (h *RankHandler) Rank(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RankRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	companies, err := h.universe.Resolve(ctx, req.Tickers, req.Indicators)
	if err != nil {
		h.logger.WithError(err).Error("Failed to resolve rank universe")
		respondError(w, http.StatusBadRequest, "No companies could be resolved")
		return
	}

	weights := h.resolveWeights(req.Weights)
	engine := scoring.NewEngine(weights, h.logger)
	scores := engine.Rank(indicatorsOf(companies))

	respondJSON(w, http.StatusOK, RankResponse{
		Count:   len(scores),
		Weights: weights.Normalized(),
		Scores:  scores,
	})
}

// GetCompany returns the full indicator and price payload for a ticker
// GET /api/companies/{ticker}
func (h *RankHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	company, err := h.universe.Company(ctx, ticker)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"ticker": ticker,
		}).Error("Failed to fetch company")
		respondError(w, http.StatusInternalServerError, "Failed to fetch company data")
		return
	}

	respondJSON(w, http.StatusOK, company)
}

// BuildPortfolio sizes a portfolio from the ranked companies
// POST /api/portfolio
func (h *RankHandler) BuildPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RankRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	companies, err := h.universe.Resolve(ctx, req.Tickers, req.Indicators)
	if err != nil {
		h.logger.WithError(err).Error("Failed to resolve portfolio universe")
		respondError(w, http.StatusBadRequest, "No companies could be resolved")
		return
	}

	weights := h.resolveWeights(req.Weights)
	engine := scoring.NewEngine(weights, h.logger)
	scores := engine.Rank(indicatorsOf(companies))

	plan := h.constructor.BuildPlan(scores, indicatorsByTicker(companies))

	respondJSON(w, http.StatusOK, plan)
}

// resolveWeights falls back to the persisted weights when the request
// carries none.
func (h *RankHandler) resolveWeights(override *contracts.WeightConfig) contracts.WeightConfig {
	if override != nil {
		return *override
	}
	return h.weights.Load()
}
