package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/internal/ingestion"
	"github.com/wonny/breakout/internal/scoring"
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "종목 랭킹 산출",
	Long: `워치리스트(또는 지정한 티커)를 5개 팩터로 점수화하고
종합 점수 순으로 정렬합니다.

팩터:
- Growth     : 매출 CAGR, 성장 가속, 마진 개선, 수주잔고
- Quality    : ROIC, 부채비율, 이자보상배율
- Catalysts  : 테마 강도, 실적 추정치 상향, 내부자 매수
- Valuation  : PEG, 동종업계 대비 EV, FCF 수익률, 모멘텀
- Risk       : 시가총액, 유동성, 베타, 변동성, 낙폭

Example:
  go run ./cmd/picker rank
  go run ./cmd/picker rank --tickers CLS,NVST,SMCI
  go run ./cmd/picker rank --top 5
  go run ./cmd/picker rank --csv ./my_universe.csv`,
	RunE: runRank,
}

var (
	rankTickers string
	rankTop     int
	rankCSV     string
)

func init() {
	rootCmd.AddCommand(rankCmd)

	// Flags
	rankCmd.Flags().StringVar(&rankTickers, "tickers", "", "쉼표로 구분한 티커 목록 (기본: 워치리스트)")
	rankCmd.Flags().IntVar(&rankTop, "top", 0, "상위 N개만 표시 (0 = 전체)")
	rankCmd.Flags().StringVar(&rankCSV, "csv", "", "지표 CSV 파일 경로 (외부 API 대신 사용)")
}

func runRank(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Breakout Ranking ===")

	rt, err := initRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	// Resolve the universe: CSV file > explicit tickers > watchlist
	var indicators []contracts.CompanyIndicators
	if rankCSV != "" {
		indicators, err = ingestion.LoadIndicatorsCSV(rankCSV)
		if err != nil {
			return fmt.Errorf("load indicators csv: %w", err)
		}
		fmt.Printf("\n📄 Loaded %d companies from %s\n", len(indicators), rankCSV)
	} else {
		indicators, _, err = rt.universeIndicators(cmd.Context(), splitTickers(rankTickers))
		if err != nil {
			return err
		}
	}

	weights := rt.weights.Load()
	engine := scoring.NewEngine(weights, rt.log)
	scores := engine.Rank(indicators)

	if rankTop > 0 && rankTop < len(scores) {
		scores = scores[:rankTop]
	}

	printRanking(scores, weights)
	return nil
}

func printRanking(scores []contracts.ScoreBreakdown, weights contracts.WeightConfig) {
	n := weights.Normalized()
	fmt.Printf("\n⚖️  Weights: growth %.2f | quality %.2f | catalysts %.2f | valuation %.2f | risk %.2f\n\n",
		n.Growth, n.Quality, n.Catalysts, n.Valuation, n.Risk)

	columns := []string{"#", "Ticker", "Name", "Grow", "Qual", "Cata", "Valu", "Risk", "Composite"}
	widths := []int{3, 6, 24, 5, 5, 5, 5, 5, 9}
	PrintTableHeader(columns, widths)

	for i, s := range scores {
		PrintTableRow([]string{
			fmt.Sprintf("%d", i+1),
			s.Ticker,
			truncate(s.Name, 24),
			formatScore(s.Growth),
			formatScore(s.Quality),
			formatScore(s.Catalysts),
			formatScore(s.Valuation),
			formatScore(s.Risk),
			formatScore(s.Composite()),
		}, widths)
	}
	fmt.Println()
	PrintSuccess(fmt.Sprintf("%d companies ranked", len(scores)))
}

// splitTickers parses a comma-separated ticker flag into clean symbols.
func splitTickers(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tickers := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			tickers = append(tickers, p)
		}
	}
	return tickers
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
