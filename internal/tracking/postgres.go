package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/database"
	"github.com/wonny/breakout/pkg/logger"
)

// PostgresStore keeps snapshots in a JSONB table, selected when
// DATABASE_URL is configured.
//
// ⭐ SSOT: DB 스냅샷 영속화는 여기서만.
type PostgresStore struct {
	db     *database.DB
	logger *logger.Logger
}

const createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS ranking_snapshots (
    id         UUID        PRIMARY KEY,
    created_at TIMESTAMPTZ NOT NULL,
    entries    JSONB       NOT NULL
)`

// NewPostgresStore creates the store and ensures its schema exists.
func NewPostgresStore(ctx context.Context, db *database.DB, log *logger.Logger) (*PostgresStore, error) {
	store := &PostgresStore{db: db, logger: log}
	if _, err := db.Pool.Exec(ctx, createSnapshotsTable); err != nil {
		return nil, fmt.Errorf("ensure ranking_snapshots table: %w", err)
	}
	return store, nil
}

// Append implements contracts.SnapshotRepository.
func (s *PostgresStore) Append(ctx context.Context, snapshot contracts.RankingSnapshot) error {
	entries, err := json.Marshal(snapshot.Entries)
	if err != nil {
		return fmt.Errorf("marshal snapshot entries: %w", err)
	}

	_, err = s.db.Pool.Exec(ctx,
		`INSERT INTO ranking_snapshots (id, created_at, entries) VALUES ($1, $2, $3)`,
		snapshot.ID, snapshot.CreatedAt, entries,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot %s: %w", snapshot.ID, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"snapshot_id": snapshot.ID,
		"entries":     len(snapshot.Entries),
	}).Debug("Snapshot stored in PostgreSQL")
	return nil
}

// History implements contracts.SnapshotRepository, oldest first.
func (s *PostgresStore) History(ctx context.Context) ([]contracts.RankingSnapshot, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT id, created_at, entries FROM ranking_snapshots ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query snapshot history: %w", err)
	}
	defer rows.Close()

	var history []contracts.RankingSnapshot
	for rows.Next() {
		var (
			id        string
			createdAt time.Time
			raw       []byte
		)
		if err := rows.Scan(&id, &createdAt, &raw); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}

		var entries []contracts.SnapshotEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("decode snapshot %s entries: %w", id, err)
		}
		history = append(history, contracts.RankingSnapshot{
			ID:        id,
			CreatedAt: createdAt,
			Entries:   entries,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot history: %w", err)
	}
	return history, nil
}
