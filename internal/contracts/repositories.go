package contracts

import "context"

// SnapshotRepository persists ranking snapshots for later performance review
// ⭐ SSOT: 스냅샷 저장소 인터페이스는 여기서만 정의
//
// Implementations: tracking.FileStore (JSON), tracking.PostgresStore (JSONB)
type SnapshotRepository interface {
	// Append stores a new snapshot at the end of the history.
	Append(ctx context.Context, snapshot RankingSnapshot) error

	// History returns all stored snapshots, oldest first.
	History(ctx context.Context) ([]RankingSnapshot, error)
}
