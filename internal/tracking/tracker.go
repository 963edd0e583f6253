package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/breakout/internal/contracts"
	"github.com/wonny/breakout/pkg/logger"
)

// targetMultiple sets the breakout target: 기록가의 2배.
const targetMultiple = 2.0

// PriceLookup maps tickers to the price payloads known at capture time.
type PriceLookup map[string]*contracts.PricePayload

// CloseLookup resolves a ticker's latest close for performance review.
// ingestion.Manager.LatestClose satisfies this directly.
type CloseLookup func(ctx context.Context, ticker string) (float64, bool)

// Tracker captures immutable ranking snapshots and measures how past
// picks performed against their breakout targets.
//
// ⭐ SSOT: 랭킹 이력 기록/성과 평가는 여기서만 한다.
type Tracker struct {
	repo   contracts.SnapshotRepository
	logger *logger.Logger
}

// NewTracker creates a tracker over the given snapshot repository.
func NewTracker(repo contracts.SnapshotRepository, log *logger.Logger) *Tracker {
	return &Tracker{repo: repo, logger: log}
}

// Capture freezes the ranked scores into a snapshot. Entries record
// the close at capture time and a 2x target when a price is known.
func (t *Tracker) Capture(ctx context.Context, scores []contracts.ScoreBreakdown, prices PriceLookup) (contracts.RankingSnapshot, error) {
	entries := make([]contracts.SnapshotEntry, 0, len(scores))
	for i, score := range scores {
		recorded := latestCloseOf(prices[score.Ticker])
		var target *float64
		if recorded != nil {
			target = contracts.Float(*recorded * targetMultiple)
		}
		entries = append(entries, contracts.SnapshotEntry{
			Rank:          i + 1,
			Ticker:        score.Ticker,
			Name:          score.Name,
			Growth:        score.Growth,
			Quality:       score.Quality,
			Catalysts:     score.Catalysts,
			Valuation:     score.Valuation,
			Risk:          score.Risk,
			Composite:     score.Composite(),
			Weights:       score.Weights,
			RecordedPrice: recorded,
			TargetPrice:   target,
		})
	}

	snapshot := contracts.RankingSnapshot{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Entries:   entries,
	}
	if err := t.repo.Append(ctx, snapshot); err != nil {
		return contracts.RankingSnapshot{}, fmt.Errorf("append snapshot: %w", err)
	}

	t.logger.WithFields(map[string]interface{}{
		"snapshot_id": snapshot.ID,
		"entries":     len(snapshot.Entries),
	}).Info("📸 Ranking snapshot captured")
	return snapshot, nil
}

// History returns all snapshots, oldest first.
func (t *Tracker) History(ctx context.Context) ([]contracts.RankingSnapshot, error) {
	return t.repo.History(ctx)
}

// Performance replays the history against current closes: one row per
// captured company, with return since capture and the target-met flag.
func (t *Tracker) Performance(ctx context.Context, latest CloseLookup) ([]contracts.SnapshotPerformance, error) {
	history, err := t.repo.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot history: %w", err)
	}

	var rows []contracts.SnapshotPerformance
	for _, snapshot := range history {
		for _, entry := range snapshot.Entries {
			if entry.Ticker == "" {
				continue
			}

			var latestPrice *float64
			if latest != nil {
				if price, ok := latest(ctx, entry.Ticker); ok {
					latestPrice = contracts.Float(price)
				}
			}

			var returnSince *float64
			targetMet := false
			if entry.RecordedPrice != nil && *entry.RecordedPrice > 0 && latestPrice != nil {
				returnSince = contracts.Float(*latestPrice / *entry.RecordedPrice - 1)
				targetMet = entry.TargetPrice != nil && *entry.TargetPrice > 0 && *latestPrice >= *entry.TargetPrice
			}

			rows = append(rows, contracts.SnapshotPerformance{
				RunTimestamp:       snapshot.CreatedAt,
				Ticker:             entry.Ticker,
				Name:               entry.Name,
				RecordedPrice:      entry.RecordedPrice,
				LatestPrice:        latestPrice,
				ReturnSinceCapture: returnSince,
				TargetMet:          targetMet,
				Composite:          entry.Composite,
			})
		}
	}
	return rows, nil
}

// latestCloseOf pulls the newest close out of a payload, or nil when
// the payload carries no candles.
func latestCloseOf(payload *contracts.PricePayload) *float64 {
	if payload == nil {
		return nil
	}
	price, ok := payload.LatestClose()
	if !ok {
		return nil
	}
	return contracts.Float(price)
}
