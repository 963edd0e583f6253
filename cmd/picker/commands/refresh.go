package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "워치리스트 데이터 강제 갱신",
	Long: `캐시를 무시하고 워치리스트 전 종목의 지표와 가격을
프로바이더에서 다시 가져옵니다.

Example:
  go run ./cmd/picker refresh
  go run ./cmd/picker refresh --tickers CLS,SMCI`,
	RunE: runRefresh,
}

var (
	refreshTickers string
)

func init() {
	rootCmd.AddCommand(refreshCmd)

	// Flags
	refreshCmd.Flags().StringVar(&refreshTickers, "tickers", "", "쉼표로 구분한 티커 목록 (기본: 워치리스트)")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Breakout Data Refresh ===")

	rt, err := initRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	tickers := splitTickers(refreshTickers)
	if len(tickers) == 0 {
		tickers = rt.watch.Symbols()
	}

	fmt.Printf("\nRefreshing %d tickers...\n", len(tickers))
	companies, err := rt.manager.RefreshMany(cmd.Context(), tickers)
	if err != nil {
		return fmt.Errorf("refresh universe: %w", err)
	}

	for _, c := range companies {
		latest := "-"
		if c.Prices != nil {
			if last, ok := c.Prices.LatestClose(); ok {
				latest = fmt.Sprintf("%.2f", last)
			}
		}
		fmt.Printf("   %-6s %-24s close %s\n", c.Ticker, truncate(c.Indicators.DisplayName(), 24), latest)
	}

	fmt.Println()
	PrintSuccess(fmt.Sprintf("%d tickers refreshed", len(companies)))

	// Provider health after the run
	statuses := rt.manager.ProviderHealth()
	if len(statuses) > 0 {
		fmt.Println("\n📡 Provider health:")
		for _, s := range statuses {
			fmt.Printf("   %-20s success %d  failure %d\n", s.Name, s.SuccessCount, s.FailureCount)
		}
	}
	return nil
}
