package driving

import (
	"context"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

// ConsolidationService finds, rewrites and removes duplicate asset references.
//
// Each method is a separate user-triggered step. Every call builds a fresh
// catalog and usage index from the host; nothing is cached between calls.
type ConsolidationService interface {
	// Assets returns the known asset catalog sorted by label.
	Assets(ctx context.Context) ([]domain.Asset, error)

	// FindUsages returns the sites currently referencing any of ids.
	FindUsages(ctx context.Context, ids []domain.AssetID) (*domain.UsageIndex, error)

	// Plan validates groups and computes the rewrites without applying them.
	Plan(ctx context.Context, groups []domain.DuplicateGroup) (*domain.RewritePlan, error)

	// Replace plans and applies the rewrites for groups.
	Replace(ctx context.Context, groups []domain.DuplicateGroup) (*domain.RewriteReport, error)

	// DeletionCandidates returns the remaining reference count of each id.
	DeletionCandidates(ctx context.Context, ids []domain.AssetID) ([]domain.DeletionCandidate, error)

	// DeleteUnreferenced deletes the ids that a freshly rebuilt index shows
	// as unreferenced and refuses the rest.
	DeleteUnreferenced(ctx context.Context, ids []domain.AssetID) (*domain.DeletionReport, error)

	// SuggestGroups proposes groups of assets with identical content.
	SuggestGroups(ctx context.Context) ([]domain.DuplicateGroup, error)

	// History returns recorded runs, most recent first.
	History(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
