package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/wonny/breakout/pkg/logger"
)

// DefaultTTL is how long cached provider payloads stay fresh.
const DefaultTTL = 6 * time.Hour

// envelope wraps every cached payload with its fetch timestamp so
// expiry can be decided without touching the payload itself.
type envelope struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Data      json.RawMessage `json:"data"`
}

// Store is a namespaced JSON cache on disk with TTL semantics.
// Each namespace is a subdirectory, each key a single JSON file.
// ⭐ SSOT: 디스크 캐시 입출력은 여기서만
type Store struct {
	dir    string
	ttl    time.Duration
	logger *logger.Logger
	mu     sync.RWMutex
}

// NewStore creates a disk cache rooted at dir. A non-positive ttl
// falls back to DefaultTTL.
func NewStore(dir string, ttl time.Duration, log *logger.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		dir:    dir,
		ttl:    ttl,
		logger: log,
	}
}

// TTL returns the configured freshness window.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Get loads a cached value into dest. Missing, expired, and corrupt
// entries are all treated as cache misses, not errors.
func (s *Store) Get(namespace, key string, dest interface{}) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(s.path(namespace, key))
	if err != nil {
		// 파일 없음 = 단순 미스
		return false, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.logger.WithError(err).WithField("key", key).Debug("Discarding corrupt cache entry")
		return false, nil
	}
	if time.Since(env.FetchedAt) > s.ttl {
		return false, nil
	}

	if err := json.Unmarshal(env.Data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}
	return true, nil
}

// FetchedAt reports when a cached entry was stored, regardless of expiry.
func (s *Store) FetchedAt(namespace, key string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(s.path(namespace, key))
	if err != nil {
		return time.Time{}, false
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return time.Time{}, false
	}
	return env.FetchedAt, true
}

// Set stores a value under namespace/key with the current timestamp.
func (s *Store) Set(namespace, key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	raw, err := json.Marshal(envelope{
		FetchedAt: time.Now().UTC(),
		Data:      data,
	})
	if err != nil {
		return fmt.Errorf("cache envelope marshal failed: %w", err)
	}

	dir := filepath.Join(s.dir, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	if err := os.WriteFile(s.path(namespace, key), raw, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Delete removes a single entry. Deleting a missing entry is a no-op.
func (s *Store) Delete(namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(namespace, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

// PurgeExpired walks every namespace and deletes expired or corrupt
// entries. Returns how many files were removed.
func (s *Store) PurgeExpired() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	namespaces, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read cache directory: %w", err)
	}

	removed := 0
	for _, ns := range namespaces {
		if !ns.IsDir() {
			continue
		}
		nsDir := filepath.Join(s.dir, ns.Name())
		entries, err := os.ReadDir(nsDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			path := filepath.Join(nsDir, entry.Name())
			raw, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			var env envelope
			if err := json.Unmarshal(raw, &env); err != nil {
				// 손상된 엔트리도 정리 대상
				if os.Remove(path) == nil {
					removed++
				}
				continue
			}
			if time.Since(env.FetchedAt) > s.ttl {
				if os.Remove(path) == nil {
					removed++
				}
			}
		}
	}

	if removed > 0 {
		s.logger.WithField("removed", removed).Info("Purged expired cache entries")
	}
	return removed, nil
}

// path maps namespace/key to a file. Keys are uppercased and any
// path-hostile characters replaced so tickers like BRK/B stay safe.
func (s *Store) path(namespace, key string) string {
	return filepath.Join(s.dir, namespace, sanitizeKey(key)+".json")
}

func sanitizeKey(key string) string {
	upper := strings.ToUpper(key)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, upper)
}
