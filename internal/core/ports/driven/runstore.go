package driven

import (
	"context"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

// RunStore persists consolidation history.
type RunStore interface {
	// SaveRun appends a run record.
	SaveRun(ctx context.Context, run domain.RunRecord) error

	// ListRuns returns runs, most recent first.
	ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
