package services

import "github.com/custodia-labs/consolidator/internal/core/domain"

// EligibleForDeletion returns the ids with zero sites in fresh, in input
// order. fresh must be rebuilt after the last rewrite; an id the index was
// not built for is never eligible. The gate only reports, it never deletes.
func EligibleForDeletion(ids []domain.AssetID, fresh *domain.UsageIndex) []domain.AssetID {
	var out []domain.AssetID
	for _, c := range DeletionCandidates(ids, fresh) {
		if c.Eligible() {
			out = append(out, c.Asset)
		}
	}
	return out
}

// DeletionCandidates returns the remaining reference count of each id
// covered by fresh, in input order with repeats removed.
func DeletionCandidates(ids []domain.AssetID, fresh *domain.UsageIndex) []domain.DeletionCandidate {
	if fresh == nil {
		return nil
	}
	seen := make(domain.AssetSet, len(ids))
	out := make([]domain.DeletionCandidate, 0, len(ids))
	for _, id := range ids {
		if seen.Has(id) || !fresh.Covers(id) {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, domain.DeletionCandidate{Asset: id, RemainingReferences: fresh.Count(id)})
	}
	return out
}
