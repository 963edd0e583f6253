package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/breakout/internal/api/handlers"
	"github.com/wonny/breakout/pkg/logger"
)

// Handlers bundles the endpoint handlers the router mounts.
type Handlers struct {
	Health    *handlers.HealthHandler
	Rank      *handlers.RankHandler
	Analysis  *handlers.AnalysisHandler
	Weights   *handlers.WeightsHandler
	Snapshots *handlers.SnapshotHandler
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h Handlers, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", h.Health.Health).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Scoring and portfolio
	api.HandleFunc("/rank", h.Rank.Rank).Methods("POST")
	api.HandleFunc("/companies/{ticker}", h.Rank.GetCompany).Methods("GET")
	api.HandleFunc("/portfolio", h.Rank.BuildPortfolio).Methods("POST")

	// Analysis
	api.HandleFunc("/backtests", h.Analysis.RunBacktests).Methods("POST")
	api.HandleFunc("/tuning", h.Analysis.TuneWeights).Methods("POST")

	// Weight configuration
	api.HandleFunc("/weights", h.Weights.Get).Methods("GET")
	api.HandleFunc("/weights", h.Weights.Update).Methods("PUT")
	api.HandleFunc("/weights/reset", h.Weights.Reset).Methods("POST")

	// Ranking history
	api.HandleFunc("/snapshots", h.Snapshots.List).Methods("GET")
	api.HandleFunc("/snapshots", h.Snapshots.Capture).Methods("POST")
	api.HandleFunc("/snapshots/performance", h.Snapshots.Performance).Methods("GET")

	// Provider health
	api.HandleFunc("/providers/health", h.Health.ProviderHealth).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Call next handler
			next.ServeHTTP(w, r)

			// Log request
			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
