package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/breakout/internal/watchlist"
)

// watchlistCmd represents the watchlist command
var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "워치리스트 조회",
	Long: `현재 적용 중인 워치리스트를 표시합니다.

WATCHLIST_PATH가 비어 있거나 파일이 없으면 내장 기본
유니버스(CLS, NVST, SMCI)가 사용됩니다. 파일이 있지만
형식이 깨진 경우는 오류로 처리합니다.

Example:
  go run ./cmd/picker watchlist
  WATCHLIST_PATH=./watchlist.yaml go run ./cmd/picker watchlist`,
	RunE: showWatchlist,
}

func init() {
	rootCmd.AddCommand(watchlistCmd)
}

func showWatchlist(cmd *cobra.Command, args []string) error {
	rt, err := initRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	source := rt.cfg.WatchlistPath
	if source == "" {
		source = "(built-in default)"
	}

	hash, err := watchlist.Hash(rt.watch)
	if err != nil {
		return fmt.Errorf("hash watchlist: %w", err)
	}

	fmt.Println("Watchlist:")
	PrintKeyValue("Source", source, 8)
	PrintKeyValue("Version", fmt.Sprintf("%d", rt.watch.Version), 8)
	PrintKeyValue("Hash", hash[:12], 8)
	fmt.Println()

	columns := []string{"Ticker", "Name", "Sector", "Fav"}
	widths := []int{6, 28, 14, 3}
	PrintTableHeader(columns, widths)
	for _, entry := range rt.watch.Tickers {
		fav := ""
		if rt.watch.IsFavorite(entry.Ticker) {
			fav = "⭐"
		}
		PrintTableRow([]string{
			entry.Ticker,
			truncate(entry.Name, 28),
			entry.Sector,
			fav,
		}, widths)
	}
	fmt.Println()
	PrintSuccess(fmt.Sprintf("%d tickers tracked", len(rt.watch.Tickers)))
	return nil
}
