package domain

import "strings"

// AssetLookup resolves user-supplied asset ids or host paths.
type AssetLookup struct {
	byID   map[AssetID]Asset
	byPath map[string]AssetID
}

// NewAssetLookup indexes assets by id and cleaned path.
func NewAssetLookup(assets []Asset) *AssetLookup {
	l := &AssetLookup{
		byID:   make(map[AssetID]Asset, len(assets)),
		byPath: make(map[string]AssetID, len(assets)),
	}
	for _, a := range assets {
		l.byID[a.ID] = a
		l.byPath[a.Ref.CleanPath()] = a.ID
	}
	return l
}

// Resolve returns the id for an asset id or path. Unknown arguments are
// returned unchanged as ids so callers downstream can report them.
func (l *AssetLookup) Resolve(arg string) AssetID {
	arg = strings.TrimSpace(arg)
	if _, ok := l.byID[AssetID(arg)]; ok {
		return AssetID(arg)
	}
	if id, ok := l.byPath[AssetReference{Path: arg}.CleanPath()]; ok {
		return id
	}
	return AssetID(arg)
}

// ResolveAll resolves each argument in order.
func (l *AssetLookup) ResolveAll(args []string) []AssetID {
	ids := make([]AssetID, 0, len(args))
	for _, a := range args {
		ids = append(ids, l.Resolve(a))
	}
	return ids
}

// Name is the asset's path, or its id when unknown.
func (l *AssetLookup) Name(id AssetID) string {
	if a, ok := l.byID[id]; ok {
		return a.Ref.Path
	}
	return string(id)
}
