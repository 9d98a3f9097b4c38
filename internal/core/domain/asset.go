package domain

import (
	"path"
	"strings"
)

// AssetID is the stable identity of an asset, independent of any
// in-memory handle. The zero value means "no identity".
type AssetID string

// AssetReference is what a host slot holds: a handle into the host's
// memory and the location the handle was loaded from.
type AssetReference struct {
	// Handle is the volatile in-memory handle. It may differ between
	// two references to the same underlying asset.
	Handle string

	// Path is the host location of the asset content.
	Path string
}

// IsZero reports whether the reference points at nothing.
func (r AssetReference) IsZero() bool {
	return r.Handle == "" && r.Path == ""
}

// CleanPath returns the normalised slash-separated path.
func (r AssetReference) CleanPath() string {
	if r.Path == "" {
		return ""
	}
	return path.Clean(strings.ReplaceAll(r.Path, "\\", "/"))
}

// AssetRecord is an asset as listed by the host asset store.
type AssetRecord struct {
	Ref   AssetReference
	Label string
}

// Asset is a content item known to the current session.
type Asset struct {
	// ID is the resolved identity.
	ID AssetID

	// Label is the human-readable name.
	Label string

	// Ref is the host reference used to write and delete the asset.
	Ref AssetReference
}

// AssetSet is an unordered set of asset identities.
type AssetSet map[AssetID]struct{}

// NewAssetSet builds a set from ids, ignoring empty ids.
func NewAssetSet(ids ...AssetID) AssetSet {
	s := make(AssetSet, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

// Has reports whether id is a member.
func (s AssetSet) Has(id AssetID) bool {
	_, ok := s[id]
	return ok
}
