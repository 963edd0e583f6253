package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/breakout/pkg/config"
)

// prefsCmd represents the prefs command
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "사용자 선호 설정 관리",
	Long: `세션 간 유지되는 사용자 설정을 조회/변경합니다.

설정 항목:
- favorites       : 즐겨찾기 티커
- tracked tickers : 워치리스트 파일이 없을 때의 기본 유니버스
- data mode       : auto | live | sample (DATA_MODE=auto일 때만 적용)
- auto refresh    : 스냅샷 캡처 전 강제 갱신 여부

Subcommands:
  show    - 현재 설정 조회
  set     - 설정 변경 (플래그로 지정한 항목만)

Example:
  go run ./cmd/picker prefs show
  go run ./cmd/picker prefs set --tracked CLS,NVST,SMCI,IONQ
  go run ./cmd/picker prefs set --data-mode sample --auto-refresh`,
}

var (
	prefsShowCmd = &cobra.Command{
		Use:   "show",
		Short: "현재 설정 조회",
		RunE:  showPrefs,
	}

	prefsSetCmd = &cobra.Command{
		Use:   "set",
		Short: "설정 변경",
		RunE:  setPrefs,
	}

	// Flags
	prefsFavorites   string
	prefsTracked     string
	prefsDataMode    string
	prefsAutoRefresh bool
)

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)

	// Flags
	prefsSetCmd.Flags().StringVar(&prefsFavorites, "favorites", "", "즐겨찾기 티커 (쉼표 구분, 빈 문자열로 초기화)")
	prefsSetCmd.Flags().StringVar(&prefsTracked, "tracked", "", "기본 추적 유니버스 (쉼표 구분)")
	prefsSetCmd.Flags().StringVar(&prefsDataMode, "data-mode", "", "데이터 모드 (auto|live|sample)")
	prefsSetCmd.Flags().BoolVar(&prefsAutoRefresh, "auto-refresh", false, "스냅샷 캡처 전 강제 갱신")
}

func showPrefs(cmd *cobra.Command, args []string) error {
	rt, err := initRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	p := rt.prefs.Load()

	fmt.Println("Preferences:")
	PrintKeyValue("Favorites", joinOrDash(p.Favorites), 15)
	PrintKeyValue("Tracked", joinOrDash(p.TrackedTickers), 15)
	PrintKeyValue("Data Mode", p.DataMode, 15)
	PrintKeyValue("Auto Refresh", fmt.Sprintf("%v", p.AutoRefresh), 15)
	return nil
}

func setPrefs(cmd *cobra.Command, args []string) error {
	rt, err := initRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	p := rt.prefs.Load()

	// 지정한 플래그만 덮어쓴다
	flags := cmd.Flags()
	if flags.Changed("favorites") {
		p.Favorites = splitTickers(prefsFavorites)
	}
	if flags.Changed("tracked") {
		p.TrackedTickers = splitTickers(prefsTracked)
	}
	if flags.Changed("data-mode") {
		switch prefsDataMode {
		case config.DataModeAuto, config.DataModeLive, config.DataModeSample:
			p.DataMode = prefsDataMode
		default:
			return fmt.Errorf("data-mode must be one of: auto, live, sample")
		}
	}
	if flags.Changed("auto-refresh") {
		p.AutoRefresh = prefsAutoRefresh
	}

	if err := rt.prefs.Save(p); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}

	PrintSuccess("Preferences saved")
	PrintKeyValue("Favorites", joinOrDash(p.Favorites), 15)
	PrintKeyValue("Tracked", joinOrDash(p.TrackedTickers), 15)
	PrintKeyValue("Data Mode", p.DataMode, 15)
	PrintKeyValue("Auto Refresh", fmt.Sprintf("%v", p.AutoRefresh), 15)
	return nil
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
