package domain

import "sort"

// Catalog is the set of assets known to a session, keyed by identity.
// When two host records resolve to the same identity the first one wins.
type Catalog struct {
	order  []AssetID
	assets map[AssetID]Asset
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{assets: make(map[AssetID]Asset)}
}

// Add registers an asset. Returns false if the identity was already known.
func (c *Catalog) Add(a Asset) bool {
	if a.ID == "" {
		return false
	}
	if _, ok := c.assets[a.ID]; ok {
		return false
	}
	c.order = append(c.order, a.ID)
	c.assets[a.ID] = a
	return true
}

// Get returns the asset for id.
func (c *Catalog) Get(id AssetID) (Asset, bool) {
	a, ok := c.assets[id]
	return a, ok
}

// Has reports whether id is known.
func (c *Catalog) Has(id AssetID) bool {
	_, ok := c.assets[id]
	return ok
}

// Len returns the number of known assets.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Assets returns the known assets sorted by label, then id.
func (c *Catalog) Assets() []Asset {
	out := make([]Asset, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.assets[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Label != out[j].Label {
			return out[i].Label < out[j].Label
		}
		return out[i].ID < out[j].ID
	})
	return out
}
