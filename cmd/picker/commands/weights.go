package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// weightsCmd represents the weights command
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "팩터 가중치 관리",
	Long: `저장된 팩터 가중치를 조회/수정/초기화합니다.

가중치는 저장 시 합계 1.0으로 정규화됩니다.

Subcommands:
  show    - 현재 가중치 조회
  set     - 가중치 변경 (플래그로 지정한 팩터만)
  reset   - 기본 프리셋으로 초기화

Example:
  go run ./cmd/picker weights show
  go run ./cmd/picker weights set --growth 0.4 --risk 0.05
  go run ./cmd/picker weights reset`,
}

var (
	weightsShowCmd = &cobra.Command{
		Use:   "show",
		Short: "현재 가중치 조회",
		RunE:  showWeights,
	}

	weightsSetCmd = &cobra.Command{
		Use:   "set",
		Short: "가중치 변경",
		Long: `플래그로 지정한 팩터만 바꾸고 나머지는 유지합니다.
음수는 허용하지 않으며, 저장 시 정규화됩니다.

Example:
  go run ./cmd/picker weights set --growth 0.4
  go run ./cmd/picker weights set --growth 2 --quality 1 --catalysts 1 --valuation 1 --risk 1`,
		RunE: setWeights,
	}

	weightsResetCmd = &cobra.Command{
		Use:   "reset",
		Short: "기본 프리셋으로 초기화",
		RunE:  resetWeights,
	}

	// Flags
	weightGrowth    float64
	weightQuality   float64
	weightCatalysts float64
	weightValuation float64
	weightRisk      float64
)

func init() {
	rootCmd.AddCommand(weightsCmd)
	weightsCmd.AddCommand(weightsShowCmd)
	weightsCmd.AddCommand(weightsSetCmd)
	weightsCmd.AddCommand(weightsResetCmd)

	// Flags
	weightsSetCmd.Flags().Float64Var(&weightGrowth, "growth", 0, "성장 팩터 가중치")
	weightsSetCmd.Flags().Float64Var(&weightQuality, "quality", 0, "퀄리티 팩터 가중치")
	weightsSetCmd.Flags().Float64Var(&weightCatalysts, "catalysts", 0, "촉매 팩터 가중치")
	weightsSetCmd.Flags().Float64Var(&weightValuation, "valuation", 0, "밸류에이션 팩터 가중치")
	weightsSetCmd.Flags().Float64Var(&weightRisk, "risk", 0, "리스크 팩터 가중치")
}

func showWeights(cmd *cobra.Command, args []string) error {
	rt, err := initRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	weights := rt.weights.Load()
	n := weights.Normalized()

	fmt.Println("Current factor weights:")
	PrintKeyValue("growth", formatScore(n.Growth), 10)
	PrintKeyValue("quality", formatScore(n.Quality), 10)
	PrintKeyValue("catalysts", formatScore(n.Catalysts), 10)
	PrintKeyValue("valuation", formatScore(n.Valuation), 10)
	PrintKeyValue("risk", formatScore(n.Risk), 10)
	fmt.Printf("\nStored at: %s\n", rt.weights.Path())
	return nil
}

func setWeights(cmd *cobra.Command, args []string) error {
	rt, err := initRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	weights := rt.weights.Load()

	// 지정한 플래그만 덮어쓴다
	flags := cmd.Flags()
	if flags.Changed("growth") {
		weights.Growth = weightGrowth
	}
	if flags.Changed("quality") {
		weights.Quality = weightQuality
	}
	if flags.Changed("catalysts") {
		weights.Catalysts = weightCatalysts
	}
	if flags.Changed("valuation") {
		weights.Valuation = weightValuation
	}
	if flags.Changed("risk") {
		weights.Risk = weightRisk
	}

	if weights.Growth < 0 || weights.Quality < 0 || weights.Catalysts < 0 || weights.Valuation < 0 || weights.Risk < 0 {
		return fmt.Errorf("weights must be non-negative")
	}

	if err := rt.weights.Save(weights); err != nil {
		return fmt.Errorf("save weights: %w", err)
	}

	saved := rt.weights.Load()
	PrintSuccess("Weights saved (normalized)")
	PrintKeyValue("growth", formatScore(saved.Growth), 10)
	PrintKeyValue("quality", formatScore(saved.Quality), 10)
	PrintKeyValue("catalysts", formatScore(saved.Catalysts), 10)
	PrintKeyValue("valuation", formatScore(saved.Valuation), 10)
	PrintKeyValue("risk", formatScore(saved.Risk), 10)
	return nil
}

func resetWeights(cmd *cobra.Command, args []string) error {
	rt, err := initRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.weights.Reset(); err != nil {
		return fmt.Errorf("reset weights: %w", err)
	}
	PrintSuccess("Weights reset to the default preset")
	return nil
}
