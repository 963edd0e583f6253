package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "picker",
	Short: "Breakout - 성장주 브레이크아웃 스크리너",
	Long: `Breakout Unified CLI

고성장 기업을 5개 팩터(성장/퀄리티/촉매/밸류에이션/리스크)로
점수화하고, 포트폴리오 구성과 랭킹 이력 추적까지 한 번에.

Usage:
  go run ./cmd/picker [command]

Examples:
  go run ./cmd/picker rank
  go run ./cmd/picker rank --tickers CLS,NVST,SMCI
  go run ./cmd/picker portfolio
  go run ./cmd/picker snapshot capture
  go run ./cmd/picker api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
