package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/breakout/internal/backtest"
	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/internal/scoring"
	"github.com/wonny/breakout/internal/tuning"
)

// tuneCmd represents the tune command
var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "팩터 가중치 튜닝",
	Long: `팩터 점수와 백테스트 CAGR의 상관관계를 계산해
가중치 추천안을 산출합니다.

음의 상관은 0으로 클리핑하며 (숏 금지), 추천 가중치는
합계 1.0으로 정규화됩니다. --save로 바로 반영할 수 있습니다.

Example:
  go run ./cmd/picker tune
  go run ./cmd/picker tune --save
  go run ./cmd/picker tune --tickers CLS,NVST,SMCI`,
	RunE: runTune,
}

var (
	tuneTickers string
	tuneSave    bool
)

func init() {
	rootCmd.AddCommand(tuneCmd)

	// Flags
	tuneCmd.Flags().StringVar(&tuneTickers, "tickers", "", "쉼표로 구분한 티커 목록 (기본: 워치리스트)")
	tuneCmd.Flags().BoolVar(&tuneSave, "save", false, "추천 가중치를 바로 저장")
}

func runTune(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Breakout Weight Tuning ===")

	rt, err := initRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	indicators, companies, err := rt.universeIndicators(cmd.Context(), splitTickers(tuneTickers))
	if err != nil {
		return err
	}

	current := rt.weights.Load()
	engine := scoring.NewEngine(current, rt.log)
	scores := engine.Rank(indicators)

	payloads := make(map[string]contracts.PricePayload)
	for _, c := range companies {
		if c.Prices != nil {
			payloads[c.Ticker] = *c.Prices
		}
	}
	results := backtest.NewEngine(rt.log).RunAll(payloads)

	recommender := tuning.NewRecommender(rt.log)
	opt := recommender.Recommend(scores, results)
	if opt == nil {
		PrintWarning("Not enough realized history to tune weights")
		return nil
	}

	fmt.Println()
	fmt.Println("📊 Factor ↔ CAGR Correlations")
	for _, factor := range []string{"growth", "quality", "catalysts", "valuation", "risk"} {
		PrintKeyValue(factor, fmt.Sprintf("%+.3f", opt.FactorCorrelations[factor]), 10)
	}

	currentN := current.Normalized()
	rec := opt.Recommended
	fmt.Println()
	fmt.Println("⚖️  Weights (current → recommended)")
	PrintKeyValue("growth", fmt.Sprintf("%.3f → %.3f", currentN.Growth, rec.Growth), 10)
	PrintKeyValue("quality", fmt.Sprintf("%.3f → %.3f", currentN.Quality, rec.Quality), 10)
	PrintKeyValue("catalysts", fmt.Sprintf("%.3f → %.3f", currentN.Catalysts, rec.Catalysts), 10)
	PrintKeyValue("valuation", fmt.Sprintf("%.3f → %.3f", currentN.Valuation, rec.Valuation), 10)
	PrintKeyValue("risk", fmt.Sprintf("%.3f → %.3f", currentN.Risk, rec.Risk), 10)
	fmt.Println()

	if !tuneSave {
		PrintInfo("Run again with --save to apply the recommended weights")
		return nil
	}

	if err := rt.weights.Save(rec); err != nil {
		return fmt.Errorf("save recommended weights: %w", err)
	}
	PrintSuccess(fmt.Sprintf("Recommended weights saved to %s", rt.weights.Path()))
	return nil
}
