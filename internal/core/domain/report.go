package domain

import (
	"fmt"
	"time"
)

// RewriteFailure records a site that could not be rewritten.
type RewriteFailure struct {
	Op     RewriteOp
	Reason string
}

// RewriteReport is the outcome of executing a plan.
type RewriteReport struct {
	// Applied holds operations whose slot now holds the master.
	Applied []RewriteOp

	// Failures holds operations whose slot was left untouched.
	Failures []RewriteFailure

	// Skipped holds operations not attempted because execution was cancelled.
	Skipped []RewriteOp

	// Total is the number of operations in the plan.
	Total int
}

// Summary renders the outcome for display.
// Partial success is always spelled out.
func (r *RewriteReport) Summary() string {
	s := fmt.Sprintf("%d of %d references updated; %d failed", len(r.Applied), r.Total, len(r.Failures))
	if len(r.Skipped) > 0 {
		s += fmt.Sprintf("; %d skipped", len(r.Skipped))
	}
	return s
}

// Complete reports whether every operation was applied.
func (r *RewriteReport) Complete() bool {
	return len(r.Applied) == r.Total
}

// DeletionCandidate is an asset with its remaining reference count.
type DeletionCandidate struct {
	Asset               AssetID
	RemainingReferences int
}

// Eligible reports whether the asset has no remaining references.
func (c DeletionCandidate) Eligible() bool {
	return c.RemainingReferences == 0
}

// Refusal is nil for an eligible candidate and otherwise wraps
// ErrStillReferenced.
func (c DeletionCandidate) Refusal() error {
	if c.Eligible() {
		return nil
	}
	return fmt.Errorf("%w: %s has %d references", ErrStillReferenced, c.Asset, c.RemainingReferences)
}

// DeleteFailure records an asset the host refused to delete.
type DeleteFailure struct {
	Asset AssetID
	Err   error
}

// DeletionReport is the outcome of deleting unreferenced duplicates.
type DeletionReport struct {
	Deleted  []AssetID
	Refused  []DeletionCandidate
	Failures []DeleteFailure
}

// Summary renders the outcome for display.
func (r *DeletionReport) Summary() string {
	return fmt.Sprintf("%d deleted; %d still referenced; %d failed", len(r.Deleted), len(r.Refused), len(r.Failures))
}

// RunRecord is a persisted entry in the consolidation history.
type RunRecord struct {
	ID        string
	Kind      string
	StartedAt time.Time
	Summary   string
	Applied   int
	Failed    int
}
