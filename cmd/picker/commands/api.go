package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/breakout/internal/api"
	"github.com/wonny/breakout/internal/api/handlers"
	"github.com/wonny/breakout/internal/backtest"
	"github.com/wonny/breakout/internal/portfolio"
	"github.com/wonny/breakout/internal/risk"
	"github.com/wonny/breakout/internal/tuning"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 랭킹/포트폴리오/백테스트 엔드포인트 제공
- 스냅샷 캡처 및 성과 조회 제공

Endpoints:
  GET  /health                    - Health check
  POST /api/rank                  - 랭킹 산출
  POST /api/portfolio             - 포트폴리오 구성안
  POST /api/backtests             - 백테스트 실행
  POST /api/tuning                - 가중치 튜닝
  GET  /api/weights               - 가중치 조회
  GET  /api/snapshots             - 스냅샷 목록

Example:
  go run ./cmd/picker api
  go run ./cmd/picker api --port 8090`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT 환경변수)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Breakout API Server ===")

	// 1. Build the shared runtime (config, logger, manager, stores)
	rt, err := initRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	// Override port if flag is set
	if apiPort != "" {
		rt.cfg.Port = apiPort
	}

	rt.log.WithFields(map[string]interface{}{
		"port": rt.cfg.Port,
		"env":  rt.cfg.Env,
	}).Info("Initializing API server")

	// 2. Create analysis engines
	simulator := risk.NewSimulator(0, 0, rt.log)
	constructor := portfolio.NewConstructor(simulator, rt.log)
	backtester := backtest.NewEngine(rt.log)
	recommender := tuning.NewRecommender(rt.log)

	// 3. Create handlers
	universe := handlers.NewUniverse(rt.manager, rt.watch)
	h := api.Handlers{
		Health:    handlers.NewHealthHandler(rt.db, rt.redisClient, rt.manager, rt.log),
		Rank:      handlers.NewRankHandler(universe, rt.weights, constructor, rt.log),
		Analysis:  handlers.NewAnalysisHandler(universe, rt.weights, backtester, recommender, rt.log),
		Weights:   handlers.NewWeightsHandler(rt.weights, rt.log),
		Snapshots: handlers.NewSnapshotHandler(universe, rt.weights, rt.tracker, rt.log),
	}

	// 4. Create router and server
	router := api.NewRouter(h, rt.log)
	server := api.New(rt.cfg, rt.log, router)

	// 5. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			rt.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	rt.log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", rt.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  POST /api/rank")
	fmt.Println("  GET  /api/companies/{ticker}")
	fmt.Println("  POST /api/portfolio")
	fmt.Println("  POST /api/backtests")
	fmt.Println("  POST /api/tuning")
	fmt.Println("  GET  /api/weights")
	fmt.Println("  PUT  /api/weights")
	fmt.Println("  POST /api/weights/reset")
	fmt.Println("  GET  /api/snapshots")
	fmt.Println("  POST /api/snapshots")
	fmt.Println("  GET  /api/snapshots/performance")
	fmt.Println("  GET  /api/providers/health")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	rt.log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	rt.log.Info("Server stopped")
	return nil
}
