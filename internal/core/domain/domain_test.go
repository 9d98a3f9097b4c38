package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageIndex_PreservesInsertionOrder(t *testing.T) {
	x := NewUsageIndex(NewAssetSet("b", "a"))

	x.Add("b", ReferenceSite{Consumer: "m1", Property: "tex"})
	x.Add("a", ReferenceSite{Consumer: "m1", Property: "normal"})
	x.Add("b", ReferenceSite{Consumer: "m2", Property: "tex"})

	assert.Equal(t, []AssetID{"b", "a"}, x.Assets())
	assert.Equal(t, []ReferenceSite{
		{Consumer: "m1", Property: "tex"},
		{Consumer: "m2", Property: "tex"},
	}, x.Sites("b"))
	assert.Equal(t, 2, x.Count("b"))
	assert.Equal(t, 3, x.Total())
	assert.True(t, x.Covers("a"))
	assert.False(t, x.Covers("c"))
}

func TestUsageIndex_SitesReturnsCopy(t *testing.T) {
	x := NewUsageIndex(NewAssetSet("a"))
	x.Add("a", ReferenceSite{Consumer: "m1", Property: "tex"})

	sites := x.Sites("a")
	sites[0].Consumer = "changed"

	assert.Equal(t, ConsumerID("m1"), x.Sites("a")[0].Consumer)
}

func TestRewriteReport_Summary(t *testing.T) {
	op := RewriteOp{Site: ReferenceSite{Consumer: "m1", Property: "tex"}, From: "x", To: "m"}
	r := &RewriteReport{
		Applied:  []RewriteOp{op},
		Failures: []RewriteFailure{{Op: op, Reason: "slot not found"}},
		Total:    2,
	}

	assert.Equal(t, "1 of 2 references updated; 1 failed", r.Summary())
	assert.False(t, r.Complete())

	r.Skipped = []RewriteOp{op}
	assert.Contains(t, r.Summary(), "1 skipped")
}

func TestPlanError_Is(t *testing.T) {
	var err error = &PlanError{Kind: ErrMasterIsDuplicate, Asset: "m2", Group: 1}

	assert.True(t, errors.Is(err, ErrMasterIsDuplicate))
	assert.False(t, errors.Is(err, ErrUnknownMaster))
	assert.Contains(t, err.Error(), "m2")

	var pe *PlanError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Group)
}

func TestCatalog_FirstRecordWins(t *testing.T) {
	c := NewCatalog()

	assert.True(t, c.Add(Asset{ID: "a", Label: "first"}))
	assert.False(t, c.Add(Asset{ID: "a", Label: "second"}))
	assert.False(t, c.Add(Asset{Label: "no id"}))

	a, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "first", a.Label)
	assert.Equal(t, 1, c.Len())
}

func TestCatalog_AssetsSortedByLabel(t *testing.T) {
	c := NewCatalog()
	c.Add(Asset{ID: "1", Label: "zebra"})
	c.Add(Asset{ID: "2", Label: "apple"})

	assets := c.Assets()
	require.Len(t, assets, 2)
	assert.Equal(t, "apple", assets[0].Label)
}

func TestAssetReference_CleanPath(t *testing.T) {
	assert.Equal(t, "Assets/a.png", AssetReference{Path: "Assets\\sub\\..\\a.png"}.CleanPath())
	assert.Equal(t, "", AssetReference{}.CleanPath())
	assert.True(t, AssetReference{}.IsZero())
}

func TestAssetLookup(t *testing.T) {
	l := NewAssetLookup([]Asset{
		{ID: "id-a", Label: "a", Ref: AssetReference{Handle: "h1", Path: "Assets/a.png"}},
		{ID: "id-b", Label: "b", Ref: AssetReference{Handle: "h2", Path: "Assets/b.png"}},
	})

	assert.Equal(t, AssetID("id-a"), l.Resolve("id-a"))
	assert.Equal(t, AssetID("id-b"), l.Resolve("Assets/b.png"))
	assert.Equal(t, AssetID("id-b"), l.Resolve(`Assets\b.png`))
	assert.Equal(t, AssetID("id-a"), l.Resolve(" ./Assets/a.png "))
	assert.Equal(t, AssetID("missing"), l.Resolve("missing"))

	assert.Equal(t, []AssetID{"id-a", "id-b"}, l.ResolveAll([]string{"Assets/a.png", "id-b"}))
	assert.Equal(t, "Assets/a.png", l.Name("id-a"))
	assert.Equal(t, "missing", l.Name("missing"))
}

func TestDeletionCandidate_Refusal(t *testing.T) {
	assert.NoError(t, DeletionCandidate{Asset: "free"}.Refusal())

	err := DeletionCandidate{Asset: "pinned", RemainingReferences: 3}.Refusal()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStillReferenced)
	assert.Contains(t, err.Error(), "pinned has 3 references")
}

func TestContentDigest(t *testing.T) {
	a := ContentDigest([]byte("pixels"))

	assert.Equal(t, a, ContentDigest([]byte("pixels")))
	assert.NotEqual(t, a, ContentDigest([]byte("other")))
	assert.True(t, strings.HasPrefix(string(a), DigestPrefix))
	assert.Len(t, string(a), len(DigestPrefix)+64)
}
