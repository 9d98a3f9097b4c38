package services

import (
	"fmt"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

// PlanRewrites validates groups and emits one rewrite per indexed site
// whose asset is a duplicate. Validation fails fast before anything is
// emitted, so a plan is either complete or absent.
//
// Checks run in order: empty ids, master listed as a duplicate,
// duplicate listed in two groups, master missing from the catalog.
// Operations follow index order.
func PlanRewrites(index *domain.UsageIndex, groups []domain.DuplicateGroup, catalog *domain.Catalog) (*domain.RewritePlan, error) {
	owner, err := validateGroups(groups, catalog)
	if err != nil {
		return nil, err
	}

	plan := &domain.RewritePlan{}
	if index == nil {
		return plan, nil
	}
	for _, id := range index.Assets() {
		gi, ok := owner[id]
		if !ok {
			continue
		}
		for _, site := range index.Sites(id) {
			plan.Ops = append(plan.Ops, domain.RewriteOp{Site: site, From: id, To: groups[gi].Master})
		}
	}
	return plan, nil
}

// validateGroups returns the owning group index of every duplicate.
func validateGroups(groups []domain.DuplicateGroup, catalog *domain.Catalog) (map[domain.AssetID]int, error) {
	all := make(domain.AssetSet)
	for gi, g := range groups {
		if g.Master == "" {
			return nil, fmt.Errorf("%w: group %d has no master", domain.ErrInvalidInput, gi)
		}
		for _, d := range g.Duplicates {
			if d == "" {
				return nil, fmt.Errorf("%w: group %d has an empty duplicate", domain.ErrInvalidInput, gi)
			}
			all[d] = struct{}{}
		}
	}

	for gi, g := range groups {
		if all.Has(g.Master) {
			return nil, &domain.PlanError{Kind: domain.ErrMasterIsDuplicate, Asset: g.Master, Group: gi}
		}
	}

	owner := make(map[domain.AssetID]int, len(all))
	for gi, g := range groups {
		for _, d := range g.Duplicates {
			if prev, ok := owner[d]; ok && prev != gi {
				return nil, &domain.PlanError{Kind: domain.ErrOverlappingDuplicates, Asset: d, Group: gi}
			}
			owner[d] = gi
		}
	}

	for gi, g := range groups {
		if catalog == nil || !catalog.Has(g.Master) {
			return nil, &domain.PlanError{Kind: domain.ErrUnknownMaster, Asset: g.Master, Group: gi}
		}
	}
	return owner, nil
}

// DuplicateTargets returns every duplicate named by groups.
func DuplicateTargets(groups []domain.DuplicateGroup) domain.AssetSet {
	targets := make(domain.AssetSet)
	for _, g := range groups {
		for _, d := range g.Duplicates {
			if d != "" {
				targets[d] = struct{}{}
			}
		}
	}
	return targets
}
