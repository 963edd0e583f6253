package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/internal/scoring"
	"github.com/wonny/breakout/internal/tracking"
)

// snapshotCmd represents the snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "랭킹 스냅샷 관리",
	Long: `랭킹 실행 결과를 캡처하고 이후 성과를 추적합니다.

캡처 시점의 종가가 기록가로, 기록가의 2배가 목표가로 저장됩니다.
performance는 기록가 대비 현재가 수익률과 목표가 도달 여부를 보여줍니다.

Subcommands:
  capture      - 현재 랭킹을 스냅샷으로 저장
  list         - 저장된 스냅샷 목록
  performance  - 스냅샷 대비 성과 조회

Example:
  go run ./cmd/picker snapshot capture
  go run ./cmd/picker snapshot list
  go run ./cmd/picker snapshot performance`,
}

var (
	snapshotCaptureCmd = &cobra.Command{
		Use:   "capture",
		Short: "현재 랭킹을 스냅샷으로 저장",
		RunE:  captureSnapshot,
	}

	snapshotListCmd = &cobra.Command{
		Use:   "list",
		Short: "저장된 스냅샷 목록",
		RunE:  listSnapshots,
	}

	snapshotPerformanceCmd = &cobra.Command{
		Use:   "performance",
		Short: "스냅샷 대비 성과 조회",
		RunE:  showSnapshotPerformance,
	}

	// Flags
	snapshotTickers string
)

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotCaptureCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotPerformanceCmd)

	// Flags
	snapshotCaptureCmd.Flags().StringVar(&snapshotTickers, "tickers", "", "쉼표로 구분한 티커 목록 (기본: 워치리스트)")
}

func captureSnapshot(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Breakout Snapshot Capture ===")

	rt, err := initRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	tickers := splitTickers(snapshotTickers)
	if len(tickers) == 0 {
		tickers = rt.defaultUniverse()
	}

	// 캡처는 기록가가 남으므로 auto_refresh 선호 시 캐시를 거치지 않는다
	if rt.prefs.Load().AutoRefresh {
		if _, err := rt.manager.RefreshMany(cmd.Context(), tickers); err != nil {
			rt.log.WithError(err).Warn("Auto refresh before capture failed, falling back to cached data")
		}
	}

	indicators, companies, err := rt.universeIndicators(cmd.Context(), tickers)
	if err != nil {
		return err
	}

	engine := scoring.NewEngine(rt.weights.Load(), rt.log)
	scores := engine.Rank(indicators)

	prices := make(tracking.PriceLookup, len(companies))
	for _, c := range companies {
		prices[c.Ticker] = c.Prices
	}

	snapshot, err := rt.tracker.Capture(cmd.Context(), scores, prices)
	if err != nil {
		return fmt.Errorf("capture snapshot: %w", err)
	}

	fmt.Println()
	PrintSuccess(fmt.Sprintf("Snapshot %s captured (%d entries)", snapshot.ID, len(snapshot.Entries)))
	for _, e := range snapshot.Entries {
		fmt.Printf("   #%d %-6s composite %s  price %s  target %s\n",
			e.Rank, e.Ticker, formatScore(e.Composite),
			formatPrice(e.RecordedPrice), formatPrice(e.TargetPrice))
	}
	return nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	rt, err := initRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	history, err := rt.tracker.History(cmd.Context())
	if err != nil {
		return fmt.Errorf("load snapshot history: %w", err)
	}
	if len(history) == 0 {
		PrintInfo("No snapshots captured yet - run `picker snapshot capture`")
		return nil
	}

	fmt.Printf("Snapshots (%d):\n\n", len(history))
	columns := []string{"Created", "ID", "Entries", "Top Pick"}
	widths := []int{19, 36, 7, 20}
	PrintTableHeader(columns, widths)
	for _, snap := range history {
		top := "-"
		if len(snap.Entries) > 0 {
			top = fmt.Sprintf("%s (%s)", snap.Entries[0].Ticker, formatScore(snap.Entries[0].Composite))
		}
		PrintTableRow([]string{
			snap.CreatedAt.Format("2006-01-02 15:04:05"),
			snap.ID,
			fmt.Sprintf("%d", len(snap.Entries)),
			top,
		}, widths)
	}
	return nil
}

func showSnapshotPerformance(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Breakout Snapshot Performance ===")

	rt, err := initRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	rows, err := rt.tracker.Performance(cmd.Context(), rt.manager.LatestClose)
	if err != nil {
		return fmt.Errorf("compute snapshot performance: %w", err)
	}
	if len(rows) == 0 {
		PrintInfo("No snapshots captured yet - run `picker snapshot capture`")
		return nil
	}

	fmt.Println()
	columns := []string{"Run", "Ticker", "Recorded", "Latest", "Return", "Target"}
	widths := []int{16, 6, 9, 9, 9, 6}
	PrintTableHeader(columns, widths)
	for _, row := range rows {
		target := ""
		if row.TargetMet {
			target = "✅ 2x"
		}
		PrintTableRow([]string{
			row.RunTimestamp.Format("2006-01-02 15:04"),
			row.Ticker,
			formatPrice(row.RecordedPrice),
			formatPrice(row.LatestPrice),
			formatOptionalPercent(row.ReturnSinceCapture),
			target,
		}, widths)
	}
	fmt.Println()
	printTargetSummary(rows)
	return nil
}

func printTargetSummary(rows []contracts.SnapshotPerformance) {
	met := 0
	for _, row := range rows {
		if row.TargetMet {
			met++
		}
	}
	if met > 0 {
		PrintSuccess(fmt.Sprintf("%d of %d positions reached the 2x target", met, len(rows)))
		return
	}
	PrintInfo(fmt.Sprintf("%d positions tracked, none at the 2x target yet", len(rows)))
}
