package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/internal/portfolio"
	"github.com/wonny/breakout/internal/risk"
	"github.com/wonny/breakout/internal/scoring"
)

// portfolioCmd represents the portfolio command
var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "포트폴리오 구성안 산출",
	Long: `랭킹 점수를 변동성과 유동성으로 보정해 포지션 비중을 제안하고,
몬테카를로 시나리오로 스트레스 테스트합니다.

이 명령어는:
- 종합 점수 / 변동성 기반 비중 산출
- 유동성·시총 페널티 적용
- 섹터 배분 및 분산 지수 계산
- Base/Slowdown/Hyper-growth 시나리오 시뮬레이션

Example:
  go run ./cmd/picker portfolio
  go run ./cmd/picker portfolio --tickers CLS,SMCI
  go run ./cmd/picker portfolio --draws 5000 --seed 7`,
	RunE: runPortfolio,
}

var (
	portfolioTickers string
	portfolioDraws   int
	portfolioSeed    int64
)

func init() {
	rootCmd.AddCommand(portfolioCmd)

	// Flags
	portfolioCmd.Flags().StringVar(&portfolioTickers, "tickers", "", "쉼표로 구분한 티커 목록 (기본: 워치리스트)")
	portfolioCmd.Flags().IntVar(&portfolioDraws, "draws", 0, "몬테카를로 시뮬레이션 횟수 (0 = 기본값)")
	portfolioCmd.Flags().Int64Var(&portfolioSeed, "seed", 0, "시뮬레이션 시드 (0 = 기본값)")
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Breakout Portfolio Plan ===")

	rt, err := initRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	indicators, _, err := rt.universeIndicators(cmd.Context(), splitTickers(portfolioTickers))
	if err != nil {
		return err
	}

	engine := scoring.NewEngine(rt.weights.Load(), rt.log)
	scores := engine.Rank(indicators)

	byTicker := make(map[string]contracts.CompanyIndicators, len(indicators))
	for _, ind := range indicators {
		byTicker[ind.Ticker] = ind
	}

	simulator := risk.NewSimulator(portfolioDraws, portfolioSeed, rt.log)
	constructor := portfolio.NewConstructor(simulator, rt.log)
	plan := constructor.BuildPlan(scores, byTicker)

	if plan.IsEmpty() {
		PrintWarning("No positive-score candidates - portfolio is empty")
		return nil
	}

	printPlan(plan)
	return nil
}

func printPlan(plan contracts.PortfolioPlan) {
	fmt.Println()
	fmt.Println("📊 Suggested Positions")
	columns := []string{"Ticker", "Name", "Weight", "Composite", "Notes"}
	widths := []int{6, 24, 7, 9, 40}
	PrintTableHeader(columns, widths)
	for _, s := range plan.Suggestions {
		notes := ""
		if len(s.Notes) > 0 {
			notes = s.Notes[0]
			if len(s.Notes) > 1 {
				notes = fmt.Sprintf("%s (+%d)", notes, len(s.Notes)-1)
			}
		}
		PrintTableRow([]string{
			s.Ticker,
			truncate(s.Name, 24),
			fmt.Sprintf("%.1f%%", s.Weight*100),
			formatScore(s.Composite),
			notes,
		}, widths)
	}

	fmt.Println()
	fmt.Println("📈 Plan Metrics")
	PrintKeyValue("Expected Return", formatPercent(plan.ExpectedReturn), 20)
	PrintKeyValue("Volatility Proxy", fmt.Sprintf("%.2f%%", plan.VolatilityProxy*100), 20)
	PrintKeyValue("Diversification", fmt.Sprintf("%.3f", plan.DiversificationIndex), 20)

	if len(plan.SectorAllocations) > 0 {
		fmt.Println()
		fmt.Println("🏷️  Sector Allocations")
		sectors := make([]string, 0, len(plan.SectorAllocations))
		for sector := range plan.SectorAllocations {
			sectors = append(sectors, sector)
		}
		sort.Strings(sectors)
		for _, sector := range sectors {
			PrintKeyValue(sector, fmt.Sprintf("%.1f%%", plan.SectorAllocations[sector]*100), 20)
		}
	}

	fmt.Println()
	fmt.Println("🎲 Stress Scenarios")
	for _, sc := range plan.Scenarios {
		fmt.Printf("   %-16s  return %s  vol %.2f%%  VaR(5%%) %s\n",
			sc.Name,
			formatPercent(sc.ExpectedReturn),
			sc.Volatility*100,
			formatPercent(sc.ValueAtRisk))
	}
	fmt.Println()
}
