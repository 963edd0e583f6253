package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/internal/settings"
	"github.com/wonny/breakout/pkg/logger"
)

// WeightsHandler handles factor weight configuration endpoints
// ⭐ SSOT: 가중치 API 핸들러는 이 구조체에서만
type WeightsHandler struct {
	store  *settings.WeightStore
	logger *logger.Logger
}

// NewWeightsHandler creates a new weights handler
func NewWeightsHandler(store *settings.WeightStore, log *logger.Logger) *WeightsHandler {
	return &WeightsHandler{
		store:  store,
		logger: log,
	}
}

// WeightsResponse carries the configured and effective weights
type WeightsResponse struct {
	Weights    contracts.WeightConfig `json:"weights"`
	Normalized contracts.WeightConfig `json:"normalized"`
}

// Get returns the persisted factor weights
// GET /api/weights
func (h *WeightsHandler) Get(w http.ResponseWriter, r *http.Request) {
	weights := h.store.Load()

	respondJSON(w, http.StatusOK, WeightsResponse{
		Weights:    weights,
		Normalized: weights.Normalized(),
	})
}

// Update persists new factor weights
// PUT /api/weights
func (h *WeightsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var weights contracts.WeightConfig
	if err := json.NewDecoder(r.Body).Decode(&weights); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if weights.Growth < 0 || weights.Quality < 0 || weights.Catalysts < 0 || weights.Valuation < 0 || weights.Risk < 0 {
		respondError(w, http.StatusBadRequest, "Weights must be non-negative")
		return
	}

	if err := h.store.Save(weights); err != nil {
		h.logger.WithError(err).Error("Failed to save weights")
		respondError(w, http.StatusInternalServerError, "Failed to save weights")
		return
	}

	saved := h.store.Load()
	respondJSON(w, http.StatusOK, WeightsResponse{
		Weights:    saved,
		Normalized: saved.Normalized(),
	})
}

// Reset restores the default weight preset
// POST /api/weights/reset
func (h *WeightsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Reset(); err != nil {
		h.logger.WithError(err).Error("Failed to reset weights")
		respondError(w, http.StatusInternalServerError, "Failed to reset weights")
		return
	}

	weights := h.store.Load()
	respondJSON(w, http.StatusOK, WeightsResponse{
		Weights:    weights,
		Normalized: weights.Normalized(),
	})
}
