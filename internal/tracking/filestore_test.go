package tracking

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/breakout/internal/contracts"
)

func testSnapshot(id string, tickers ...string) contracts.RankingSnapshot {
	entries := make([]contracts.SnapshotEntry, 0, len(tickers))
	for i, ticker := range tickers {
		entries = append(entries, contracts.SnapshotEntry{Rank: i + 1, Ticker: ticker})
	}
	return contracts.RankingSnapshot{
		ID:        id,
		CreatedAt: time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC),
		Entries:   entries,
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history", "runs.json")
	store := NewFileStore(path, testLogger())

	require.NoError(t, store.Append(context.Background(), testSnapshot("run-1", "CLS", "NVST")))
	require.NoError(t, store.Append(context.Background(), testSnapshot("run-2", "SMCI")))

	history, err := store.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "run-1", history[0].ID)
	assert.Equal(t, "run-2", history[1].ID)
	assert.Equal(t, "CLS", history[0].Entries[0].Ticker)
	assert.Equal(t, 2, history[0].Entries[1].Rank)
}

func TestFileStoreMissingFileIsEmptyHistory(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "runs.json"), testLogger())

	history, err := store.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestFileStoreCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	store := NewFileStore(path, testLogger())

	history, err := store.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history)

	// 깨진 파일 위에도 새 이력을 쌓을 수 있어야 한다
	require.NoError(t, store.Append(context.Background(), testSnapshot("run-1", "CLS")))
	history, err = store.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "run-1", history[0].ID)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	first := NewFileStore(path, testLogger())
	require.NoError(t, first.Append(context.Background(), testSnapshot("run-1", "CLS")))

	second := NewFileStore(path, testLogger())
	history, err := second.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "run-1", history[0].ID)
}
