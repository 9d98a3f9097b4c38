package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driven"
)

// runTimeLayout is fixed width so started_at sorts chronologically as text.
const runTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// SaveRun appends a run record.
func (s *runStore) SaveRun(ctx context.Context, run domain.RunRecord) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO runs (id, kind, started_at, summary, applied, failed)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.Kind, run.StartedAt.UTC().Format(runTimeLayout), run.Summary, run.Applied, run.Failed)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// ListRuns returns runs, most recent first. A limit of 0 returns all.
func (s *runStore) ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, kind, started_at, summary, applied, failed
		FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			run     domain.RunRecord
			started string
		)
		if err := rows.Scan(&run.ID, &run.Kind, &started, &run.Summary, &run.Applied, &run.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("parsing run time: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}
