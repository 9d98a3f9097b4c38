package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

func testCatalog(ids ...domain.AssetID) *domain.Catalog {
	c := domain.NewCatalog()
	for _, id := range ids {
		c.Add(domain.Asset{ID: id, Label: string(id)})
	}
	return c
}

func site(consumer, prop string) domain.ReferenceSite {
	return domain.ReferenceSite{Consumer: domain.ConsumerID(consumer), Property: domain.PropertyName(prop)}
}

func TestPlanRewrites_FollowsIndexOrder(t *testing.T) {
	index := domain.NewUsageIndex(domain.NewAssetSet("y", "x", "z"))
	index.Add("y", site("C2", "tex"))
	index.Add("x", site("C1", "tex"))
	index.Add("y", site("C3", "normal"))
	index.Add("z", site("C4", "tex"))

	groups := []domain.DuplicateGroup{
		{Master: "m1", Duplicates: []domain.AssetID{"x"}},
		{Master: "m2", Duplicates: []domain.AssetID{"y"}},
	}

	plan, err := PlanRewrites(index, groups, testCatalog("m1", "m2"))
	require.NoError(t, err)

	assert.Equal(t, []domain.RewriteOp{
		{Site: site("C2", "tex"), From: "y", To: "m2"},
		{Site: site("C3", "normal"), From: "y", To: "m2"},
		{Site: site("C1", "tex"), From: "x", To: "m1"},
	}, plan.Ops)
}

func TestPlanRewrites_Errors(t *testing.T) {
	tests := []struct {
		name   string
		groups []domain.DuplicateGroup
		want   error
		asset  domain.AssetID
	}{
		{
			name: "master duplicate in same group",
			groups: []domain.DuplicateGroup{
				{Master: "m1", Duplicates: []domain.AssetID{"x", "m1"}},
			},
			want:  domain.ErrMasterIsDuplicate,
			asset: "m1",
		},
		{
			name: "master duplicate in another group",
			groups: []domain.DuplicateGroup{
				{Master: "m1", Duplicates: []domain.AssetID{"x", "m2"}},
				{Master: "m2", Duplicates: []domain.AssetID{"y"}},
			},
			want:  domain.ErrMasterIsDuplicate,
			asset: "m2",
		},
		{
			name: "overlapping duplicates",
			groups: []domain.DuplicateGroup{
				{Master: "m1", Duplicates: []domain.AssetID{"x"}},
				{Master: "m2", Duplicates: []domain.AssetID{"x", "y"}},
			},
			want:  domain.ErrOverlappingDuplicates,
			asset: "x",
		},
		{
			name: "unknown master",
			groups: []domain.DuplicateGroup{
				{Master: "ghost", Duplicates: []domain.AssetID{"x"}},
			},
			want:  domain.ErrUnknownMaster,
			asset: "ghost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index := domain.NewUsageIndex(domain.NewAssetSet("x", "y"))
			index.Add("x", site("C1", "tex"))

			plan, err := PlanRewrites(index, tt.groups, testCatalog("m1", "m2"))

			require.Error(t, err)
			assert.Nil(t, plan)
			assert.ErrorIs(t, err, tt.want)
			var pe *domain.PlanError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.asset, pe.Asset)
		})
	}
}

func TestPlanRewrites_EmptyMaster(t *testing.T) {
	_, err := PlanRewrites(nil, []domain.DuplicateGroup{{Duplicates: []domain.AssetID{"x"}}}, testCatalog())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlanRewrites_RepeatedDuplicateInOneGroup(t *testing.T) {
	index := domain.NewUsageIndex(domain.NewAssetSet("x"))
	index.Add("x", site("C1", "tex"))

	plan, err := PlanRewrites(index, []domain.DuplicateGroup{
		{Master: "m1", Duplicates: []domain.AssetID{"x", "x"}},
	}, testCatalog("m1"))

	require.NoError(t, err)
	assert.Equal(t, 1, plan.Len())
}

func TestPlanRewrites_NothingIndexed(t *testing.T) {
	plan, err := PlanRewrites(domain.NewUsageIndex(nil), []domain.DuplicateGroup{
		{Master: "m1", Duplicates: []domain.AssetID{"x"}},
	}, testCatalog("m1"))

	require.NoError(t, err)
	assert.True(t, plan.IsEmpty())
}

func TestDuplicateTargets(t *testing.T) {
	targets := DuplicateTargets([]domain.DuplicateGroup{
		{Master: "m1", Duplicates: []domain.AssetID{"x", ""}},
		{Master: "m2", Duplicates: []domain.AssetID{"y"}},
	})

	assert.Equal(t, domain.NewAssetSet("x", "y"), targets)
}
