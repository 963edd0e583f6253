package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/logger"
)

// WeightStore persists user-tuned factor weights as a flat JSON file.
// Missing or corrupt files silently fall back to the default preset so
// a damaged settings file never blocks a ranking run.
// ⭐ SSOT: 가중치 영속화는 여기서만
type WeightStore struct {
	path   string
	logger *logger.Logger
}

// NewWeightStore creates a store backed by the given file path.
func NewWeightStore(path string, log *logger.Logger) *WeightStore {
	return &WeightStore{
		path:   path,
		logger: log,
	}
}

// Path returns the backing file location.
func (s *WeightStore) Path() string {
	return s.path
}

// Load reads the persisted weights. Keys absent from the file keep
// their default preset values, so partially written files still load.
func (s *WeightStore) Load() contracts.WeightConfig {
	weights := contracts.DefaultWeightConfig()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return weights
	}
	if err := json.Unmarshal(raw, &weights); err != nil {
		s.logger.WithError(err).Warn("Ignoring corrupt weights file, using defaults")
		return contracts.DefaultWeightConfig()
	}
	return weights
}

// Save normalizes the weights and writes them with indentation so the
// file stays hand-editable.
func (s *WeightStore) Save(weights contracts.WeightConfig) error {
	normalized := weights.Normalized()

	raw, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal weights: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write weights file: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"growth":    normalized.Growth,
		"quality":   normalized.Quality,
		"catalysts": normalized.Catalysts,
		"valuation": normalized.Valuation,
		"risk":      normalized.Risk,
	}).Info("Saved factor weights")
	return nil
}

// Reset removes the persisted file so Load returns the default preset.
func (s *WeightStore) Reset() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove weights file: %w", err)
	}
	return nil
}
