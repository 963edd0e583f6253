package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wonny/breakout/pkg/config"
	"github.com/wonny/breakout/pkg/logger"
)

// Preferences are the per-user knobs that survive across sessions.
type Preferences struct {
	Favorites      []string `json:"favorites"`       // 즐겨찾기 티커
	TrackedTickers []string `json:"tracked_tickers"` // 기본 추적 유니버스
	DataMode       string   `json:"data_mode"`       // auto | live | sample
	AutoRefresh    bool     `json:"auto_refresh"`
}

// DefaultPreferences returns the out-of-the-box preference set.
func DefaultPreferences() Preferences {
	return Preferences{
		Favorites:      []string{},
		TrackedTickers: []string{"CLS", "NVST", "SMCI"},
		DataMode:       config.DataModeAuto,
		AutoRefresh:    false,
	}
}

// normalize cleans up hand-edited files: tickers are uppercased, blank
// entries dropped, and unknown data modes fall back to auto.
func (p Preferences) normalize() Preferences {
	p.Favorites = cleanTickers(p.Favorites)
	p.TrackedTickers = cleanTickers(p.TrackedTickers)
	if len(p.TrackedTickers) == 0 {
		p.TrackedTickers = DefaultPreferences().TrackedTickers
	}
	switch p.DataMode {
	case config.DataModeAuto, config.DataModeLive, config.DataModeSample:
	default:
		p.DataMode = config.DataModeAuto
	}
	return p
}

func cleanTickers(tickers []string) []string {
	cleaned := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return cleaned
}

// PreferencesStore persists Preferences alongside the weights file.
type PreferencesStore struct {
	path   string
	logger *logger.Logger
}

// NewPreferencesStore creates a store backed by the given file path.
func NewPreferencesStore(path string, log *logger.Logger) *PreferencesStore {
	return &PreferencesStore{
		path:   path,
		logger: log,
	}
}

// Load reads preferences from disk. Missing or corrupt files return
// the defaults.
func (s *PreferencesStore) Load() Preferences {
	prefs := DefaultPreferences()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return prefs
	}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		s.logger.WithError(err).Warn("Ignoring corrupt preferences file, using defaults")
		return DefaultPreferences()
	}
	return prefs.normalize()
}

// Save writes preferences with indentation for hand-editing.
func (s *PreferencesStore) Save(prefs Preferences) error {
	raw, err := json.MarshalIndent(prefs.normalize(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write preferences file: %w", err)
	}
	return nil
}
