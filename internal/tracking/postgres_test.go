package tracking

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/breakout/pkg/config"
	"github.com/wonny/breakout/pkg/database"
)

func TestPostgresStoreRoundTrip(t *testing.T) {
	// Skip if DATABASE_URL is not set
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	cfg, err := config.Load()
	require.NoError(t, err, "Failed to load config")

	db, err := database.New(cfg)
	require.NoError(t, err, "Failed to create database")
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := NewPostgresStore(ctx, db, testLogger())
	require.NoError(t, err, "Failed to ensure snapshot schema")

	snapshot := testSnapshot(uuid.NewString(), "CLS", "NVST")
	require.NoError(t, store.Append(ctx, snapshot))

	history, err := store.History(ctx)
	require.NoError(t, err)

	var found bool
	for _, run := range history {
		if run.ID == snapshot.ID {
			found = true
			assert.Len(t, run.Entries, 2)
			assert.Equal(t, "CLS", run.Entries[0].Ticker)
		}
	}
	assert.True(t, found, "appended snapshot should appear in history")

	_, err = db.Pool.Exec(ctx, "DELETE FROM ranking_snapshots WHERE id = $1", snapshot.ID)
	require.NoError(t, err, "Failed to clean up test snapshot")
}
