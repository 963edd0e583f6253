package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/breakout/internal/ingestion"
)

// templateCmd represents the csv-template command
var templateCmd = &cobra.Command{
	Use:   "csv-template",
	Short: "지표 CSV 템플릿 출력",
	Long: `rank --csv 로 읽을 수 있는 지표 CSV의 헤더와 예시 행을
출력합니다. 외부 API 없이 수기로 유니버스를 관리할 때 사용합니다.

Example:
  go run ./cmd/picker csv-template
  go run ./cmd/picker csv-template --out ./my_universe.csv`,
	RunE: writeTemplate,
}

var (
	templateOut string
)

func init() {
	rootCmd.AddCommand(templateCmd)

	// Flags
	templateCmd.Flags().StringVar(&templateOut, "out", "", "출력 파일 경로 (기본: stdout)")
}

func writeTemplate(cmd *cobra.Command, args []string) error {
	if templateOut == "" {
		return ingestion.WriteIndicatorsTemplate(os.Stdout)
	}

	f, err := os.Create(templateOut)
	if err != nil {
		return fmt.Errorf("create template file: %w", err)
	}
	defer f.Close()

	if err := ingestion.WriteIndicatorsTemplate(f); err != nil {
		return fmt.Errorf("write template: %w", err)
	}

	PrintSuccess(fmt.Sprintf("Template written to %s", templateOut))
	return nil
}
