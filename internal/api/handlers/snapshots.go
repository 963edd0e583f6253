package handlers

import (
	"net/http"

	"github.com/wonny/breakout/internal/scoring"
	"github.com/wonny/breakout/internal/settings"
	"github.com/wonny/breakout/internal/tracking"
	"github.com/wonny/breakout/pkg/logger"
)

// SnapshotHandler handles ranking-history endpoints
// ⭐ SSOT: 스냅샷 API 핸들러는 이 구조체에서만
type SnapshotHandler struct {
	universe *Universe
	weights  *settings.WeightStore
	tracker  *tracking.Tracker
	logger   *logger.Logger
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(universe *Universe, weights *settings.WeightStore, tracker *tracking.Tracker, log *logger.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		universe: universe,
		weights:  weights,
		tracker:  tracker,
		logger:   log,
	}
}

// List returns all captured ranking snapshots, oldest first
// GET /api/snapshots
func (h *SnapshotHandler) List(w http.ResponseWriter, r *http.Request) {
	history, err := h.tracker.History(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load snapshot history")
		respondError(w, http.StatusInternalServerError, "Failed to load snapshot history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(history),
		"snapshots": history,
	})
}

// Capture ranks the requested companies and appends a snapshot
// POST /api/snapshots
func (h *SnapshotHandler) Capture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RankRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	companies, err := h.universe.Resolve(ctx, req.Tickers, req.Indicators)
	if err != nil {
		h.logger.WithError(err).Error("Failed to resolve snapshot universe")
		respondError(w, http.StatusBadRequest, "No companies could be resolved")
		return
	}

	weights := h.weights.Load()
	if req.Weights != nil {
		weights = *req.Weights
	}
	engine := scoring.NewEngine(weights, h.logger)
	scores := engine.Rank(indicatorsOf(companies))

	snapshot, err := h.tracker.Capture(ctx, scores, priceLookup(companies))
	if err != nil {
		h.logger.WithError(err).Error("Failed to capture snapshot")
		respondError(w, http.StatusInternalServerError, "Failed to capture snapshot")
		return
	}

	respondJSON(w, http.StatusCreated, snapshot)
}

// Performance compares captured entries against the latest closes
// GET /api/snapshots/performance
func (h *SnapshotHandler) Performance(w http.ResponseWriter, r *http.Request) {
	rows, err := h.tracker.Performance(r.Context(), h.universe.LatestClose)
	if err != nil {
		h.logger.WithError(err).Error("Failed to evaluate snapshot performance")
		respondError(w, http.StatusInternalServerError, "Failed to evaluate snapshot performance")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(rows),
		"rows":  rows,
	})
}
