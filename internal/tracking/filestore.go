package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/logger"
)

// FileStore keeps the full snapshot history in one JSON array on disk.
// DATABASE_URL이 없을 때 쓰는 기본 저장소.
//
// ⭐ SSOT: 파일 기반 스냅샷 영속화는 여기서만.
type FileStore struct {
	path   string
	logger *logger.Logger
	mu     sync.Mutex
}

// NewFileStore creates a store writing to path (예: ~/.breakout/runs.json).
func NewFileStore(path string, log *logger.Logger) *FileStore {
	return &FileStore{path: path, logger: log}
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Append implements contracts.SnapshotRepository.
func (s *FileStore) Append(_ context.Context, snapshot contracts.RankingSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.read()
	history = append(history, snapshot)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot history: %w", err)
	}
	return nil
}

// History implements contracts.SnapshotRepository. A missing or broken
// file reads as an empty history.
func (s *FileStore) History(_ context.Context) ([]contracts.RankingSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(), nil
}

// read loads the history without locking. Caller holds the mutex.
func (s *FileStore) read() []contracts.RankingSnapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var history []contracts.RankingSnapshot
	if err := json.Unmarshal(data, &history); err != nil {
		// 깨진 이력은 버리고 새로 시작한다
		s.logger.WithError(err).WithField("path", s.path).Warn("Snapshot history corrupt, starting fresh")
		return nil
	}
	return history
}
