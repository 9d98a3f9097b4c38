package domain

// UsageIndex maps asset identities to the sites referencing them.
//
// Assets are ordered by first appearance during the scan and sites by
// (consumer order, property order). An index is a snapshot: it is never
// patched and must be rebuilt after any rewrite.
type UsageIndex struct {
	order   []AssetID
	sites   map[AssetID][]ReferenceSite
	targets AssetSet
}

// NewUsageIndex creates an empty index for the given target set.
func NewUsageIndex(targets AssetSet) *UsageIndex {
	if targets == nil {
		targets = AssetSet{}
	}
	return &UsageIndex{
		sites:   make(map[AssetID][]ReferenceSite),
		targets: targets,
	}
}

// Add appends a site to the bucket for id.
func (x *UsageIndex) Add(id AssetID, site ReferenceSite) {
	if _, ok := x.sites[id]; !ok {
		x.order = append(x.order, id)
	}
	x.sites[id] = append(x.sites[id], site)
}

// Assets returns the referenced assets in index order.
func (x *UsageIndex) Assets() []AssetID {
	out := make([]AssetID, len(x.order))
	copy(out, x.order)
	return out
}

// Sites returns the sites referencing id in scan order.
func (x *UsageIndex) Sites(id AssetID) []ReferenceSite {
	sites := x.sites[id]
	out := make([]ReferenceSite, len(sites))
	copy(out, sites)
	return out
}

// Count returns the number of sites referencing id.
func (x *UsageIndex) Count(id AssetID) int {
	return len(x.sites[id])
}

// Covers reports whether the index was built with id as a target.
func (x *UsageIndex) Covers(id AssetID) bool {
	return x.targets.Has(id)
}

// Len returns the number of referenced assets.
func (x *UsageIndex) Len() int {
	return len(x.order)
}

// Total returns the number of sites across all assets.
func (x *UsageIndex) Total() int {
	n := 0
	for _, sites := range x.sites {
		n += len(sites)
	}
	return n
}

// IsEmpty reports whether no site was found.
func (x *UsageIndex) IsEmpty() bool {
	return len(x.order) == 0
}
