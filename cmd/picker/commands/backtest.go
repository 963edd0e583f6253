package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/breakout/internal/backtest"
	"github.com/wonny/breakout/internal/contracts"
)

// backtestCmd represents the backtest command
var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "보유 수익률 백테스트",
	Long: `가격 이력 전 구간을 매수 후 보유했다고 가정하고
수익률 지표를 계산합니다.

지표:
- Cumulative Return : 구간 누적 수익률
- CAGR              : 연환산 수익률
- Max Drawdown      : 최대 낙폭 (음수)

Example:
  go run ./cmd/picker backtest
  go run ./cmd/picker backtest --tickers CLS,SMCI`,
	RunE: runBacktestCmd,
}

var (
	backtestTickers string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	// Flags
	backtestCmd.Flags().StringVar(&backtestTickers, "tickers", "", "쉼표로 구분한 티커 목록 (기본: 워치리스트)")
}

func runBacktestCmd(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Breakout Backtest ===")

	rt, err := initRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	_, companies, err := rt.universeIndicators(cmd.Context(), splitTickers(backtestTickers))
	if err != nil {
		return err
	}

	payloads := make(map[string]contracts.PricePayload)
	for _, c := range companies {
		if c.Prices != nil {
			payloads[c.Ticker] = *c.Prices
		}
	}
	if len(payloads) == 0 {
		return fmt.Errorf("no price history available for the requested tickers")
	}

	engine := backtest.NewEngine(rt.log)
	results := engine.RunAll(payloads)
	if len(results) == 0 {
		PrintWarning("Price history too short to backtest")
		return nil
	}

	fmt.Println()
	columns := []string{"Ticker", "Cum. Return", "CAGR", "Max DD"}
	widths := []int{6, 12, 9, 9}
	PrintTableHeader(columns, widths)
	for _, r := range results {
		PrintTableRow([]string{
			r.Ticker,
			formatPercent(r.CumulativeReturn),
			formatPercent(r.CAGR),
			formatPercent(r.MaxDrawdown),
		}, widths)
	}
	fmt.Println()
	PrintSuccess(fmt.Sprintf("%d tickers backtested", len(results)))
	return nil
}
