package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wonny/breakout/internal/ingestion"
	"github.com/wonny/breakout/pkg/database"
	"github.com/wonny/breakout/pkg/logger"
	"github.com/wonny/breakout/pkg/redis"
)

// HealthHandler handles service and provider health endpoints
// ⭐ SSOT: 헬스 API 핸들러는 이 구조체에서만
type HealthHandler struct {
	db          *database.DB
	redisClient *redis.Client
	manager     *ingestion.Manager
	logger      *logger.Logger
}

// NewHealthHandler creates a new health handler. db and redisClient
// may be nil when the deployment runs without them.
func NewHealthHandler(db *database.DB, redisClient *redis.Client, manager *ingestion.Manager, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
		manager:     manager,
		logger:      log,
	}
}

// Health returns overall service health
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload := map[string]interface{}{
		"status":  "ok",
		"service": "breakout-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
	}

	if h.db != nil {
		status, err := h.db.HealthCheck(ctx)
		switch {
		case err != nil:
			payload["database"] = map[string]interface{}{"healthy": false, "error": err.Error()}
		default:
			payload["database"] = status
		}
	}

	if h.redisClient != nil && h.redisClient.Enabled() {
		redisStatus := map[string]interface{}{"healthy": true}
		if err := h.redisClient.Redis().Ping(ctx).Err(); err != nil {
			redisStatus["healthy"] = false
			redisStatus["error"] = err.Error()
		}
		payload["redis"] = redisStatus
	}

	respondJSON(w, http.StatusOK, payload)
}

// ProviderHealth returns per-provider fetch statistics
// GET /api/providers/health
func (h *HealthHandler) ProviderHealth(w http.ResponseWriter, r *http.Request) {
	statuses := h.manager.ProviderHealth()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(statuses),
		"providers": statuses,
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
