package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driven"
	"github.com/custodia-labs/consolidator/internal/core/ports/driving"
	"github.com/custodia-labs/consolidator/internal/logger"
)

// Ensure ConsolidationService implements the interface.
var _ driving.ConsolidationService = (*ConsolidationService)(nil)

// Run kinds recorded in history.
const (
	RunKindReplace = "replace"
	RunKindDelete  = "delete"
)

// ConsolidationService orchestrates the consolidation engine against a host.
type ConsolidationService struct {
	assets     driven.AssetStore
	reflection driven.ConsumerReflection
	resolver   driven.IdentityResolver
	runs       driven.RunStore
	indexer    *Indexer
	executor   *Executor
	now        func() time.Time
}

// NewConsolidationService creates a new consolidation service.
// runs is optional - if nil, history is not recorded.
func NewConsolidationService(
	assets driven.AssetStore,
	reflection driven.ConsumerReflection,
	resolver driven.IdentityResolver,
	runs driven.RunStore,
) *ConsolidationService {
	return &ConsolidationService{
		assets:     assets,
		reflection: reflection,
		resolver:   resolver,
		runs:       runs,
		indexer:    NewIndexer(resolver),
		executor:   NewExecutor(reflection),
		now:        time.Now,
	}
}

// Assets returns the known asset catalog sorted by label.
func (s *ConsolidationService) Assets(ctx context.Context) ([]domain.Asset, error) {
	catalog, err := BuildCatalog(ctx, s.assets, s.resolver)
	if err != nil {
		return nil, err
	}
	return catalog.Assets(), nil
}

// FindUsages returns the sites currently referencing any of ids.
func (s *ConsolidationService) FindUsages(ctx context.Context, ids []domain.AssetID) (*domain.UsageIndex, error) {
	logger.Section("Find Usages")
	return s.indexer.Scan(ctx, s.reflection, domain.NewAssetSet(ids...))
}

// Plan validates groups and computes the rewrites without applying them.
func (s *ConsolidationService) Plan(ctx context.Context, groups []domain.DuplicateGroup) (*domain.RewritePlan, error) {
	logger.Section("Plan")
	_, plan, err := s.plan(ctx, groups)
	return plan, err
}

func (s *ConsolidationService) plan(ctx context.Context, groups []domain.DuplicateGroup) (*domain.Catalog, *domain.RewritePlan, error) {
	catalog, err := BuildCatalog(ctx, s.assets, s.resolver)
	if err != nil {
		return nil, nil, err
	}
	// Validate before scanning.
	if _, err := validateGroups(groups, catalog); err != nil {
		return nil, nil, err
	}

	index, err := s.indexer.Scan(ctx, s.reflection, DuplicateTargets(groups))
	if err != nil {
		return nil, nil, err
	}
	plan, err := PlanRewrites(index, groups, catalog)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Planned %d rewrites for %d groups", plan.Len(), len(groups))
	return catalog, plan, nil
}

// Replace plans and applies the rewrites for groups.
func (s *ConsolidationService) Replace(ctx context.Context, groups []domain.DuplicateGroup) (*domain.RewriteReport, error) {
	logger.Section("Replace")
	started := s.now()

	catalog, plan, err := s.plan(ctx, groups)
	if err != nil {
		return nil, err
	}

	report := s.executor.Execute(ctx, plan, catalog)
	logger.Info("Replace: %s", report.Summary())

	s.record(ctx, domain.RunRecord{
		Kind:      RunKindReplace,
		StartedAt: started,
		Summary:   report.Summary(),
		Applied:   len(report.Applied),
		Failed:    len(report.Failures),
	})
	return report, nil
}

// DeletionCandidates rebuilds the index and returns the remaining
// reference count of each id.
func (s *ConsolidationService) DeletionCandidates(ctx context.Context, ids []domain.AssetID) ([]domain.DeletionCandidate, error) {
	logger.Section("Deletion Candidates")
	index, err := s.indexer.Scan(ctx, s.reflection, domain.NewAssetSet(ids...))
	if err != nil {
		return nil, err
	}
	return DeletionCandidates(ids, index), nil
}

// DeleteUnreferenced rebuilds the index immediately before deleting and
// deletes only the ids it shows as unreferenced. Host delete errors are
// reported per asset and never retried.
func (s *ConsolidationService) DeleteUnreferenced(ctx context.Context, ids []domain.AssetID) (*domain.DeletionReport, error) {
	logger.Section("Delete Unreferenced")
	started := s.now()

	catalog, err := BuildCatalog(ctx, s.assets, s.resolver)
	if err != nil {
		return nil, err
	}
	index, err := s.indexer.Scan(ctx, s.reflection, domain.NewAssetSet(ids...))
	if err != nil {
		return nil, err
	}

	report := &domain.DeletionReport{}
	for _, c := range DeletionCandidates(ids, index) {
		if !c.Eligible() {
			report.Refused = append(report.Refused, c)
			logger.Warn("Refusing to delete: %v", c.Refusal())
			continue
		}
		asset, ok := catalog.Get(c.Asset)
		if !ok {
			report.Failures = append(report.Failures, domain.DeleteFailure{
				Asset: c.Asset,
				Err:   fmt.Errorf("%w: asset %s", domain.ErrNotFound, c.Asset),
			})
			continue
		}
		if err := s.assets.Delete(ctx, asset.Ref); err != nil {
			report.Failures = append(report.Failures, domain.DeleteFailure{Asset: c.Asset, Err: err})
			continue
		}
		report.Deleted = append(report.Deleted, c.Asset)
	}
	logger.Info("Delete: %s", report.Summary())

	s.record(ctx, domain.RunRecord{
		Kind:      RunKindDelete,
		StartedAt: started,
		Summary:   report.Summary(),
		Applied:   len(report.Deleted),
		Failed:    len(report.Failures),
	})
	return report, nil
}

// SuggestGroups proposes groups of catalog assets whose content is
// byte-identical. The master of each group is the asset with the smallest
// path. Under the content identity strategy identical content already
// shares one identity, so no groups are proposed.
func (s *ConsolidationService) SuggestGroups(ctx context.Context) ([]domain.DuplicateGroup, error) {
	catalog, err := BuildCatalog(ctx, s.assets, s.resolver)
	if err != nil {
		return nil, err
	}

	byDigest := make(map[domain.AssetID][]domain.Asset)
	var digests []domain.AssetID
	for _, a := range catalog.Assets() {
		data, err := s.assets.ReadContent(ctx, a.Ref)
		if err != nil {
			logger.Debug("Cannot read %s: %v", a.Ref.Path, err)
			continue
		}
		d := domain.ContentDigest(data)
		if _, ok := byDigest[d]; !ok {
			digests = append(digests, d)
		}
		byDigest[d] = append(byDigest[d], a)
	}

	var groups []domain.DuplicateGroup
	for _, d := range digests {
		members := byDigest[d]
		if len(members) < 2 {
			continue
		}
		sort.Slice(members, func(i, j int) bool {
			return members[i].Ref.CleanPath() < members[j].Ref.CleanPath()
		})
		g := domain.DuplicateGroup{Master: members[0].ID}
		for _, m := range members[1:] {
			g.Duplicates = append(g.Duplicates, m.ID)
		}
		groups = append(groups, g)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		mi, _ := catalog.Get(groups[i].Master)
		mj, _ := catalog.Get(groups[j].Master)
		return mi.Ref.CleanPath() < mj.Ref.CleanPath()
	})
	return groups, nil
}

// History returns recorded runs, most recent first.
func (s *ConsolidationService) History(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if s.runs == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.runs.ListRuns(ctx, limit)
}

// record appends a run to history. Failures are logged, not returned.
func (s *ConsolidationService) record(ctx context.Context, run domain.RunRecord) {
	if s.runs == nil {
		return
	}
	run.ID = uuid.NewString()
	if err := s.runs.SaveRun(ctx, run); err != nil {
		logger.Warn("Failed to record %s run: %v", run.Kind, err)
	}
}
