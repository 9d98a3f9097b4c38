// Package domain holds the consolidator's value types and the rules that
// need no I/O to check.
//
// An Asset is a content item with a stable AssetID. A Consumer points at
// assets through named property slots; each (consumer, slot) pair is a
// ReferenceSite. The UsageIndex inverts those pointers so the engine can ask
// who uses an asset. A RewritePlan is the checked list of slot rewrites for
// one run, and a RewriteReport records what happened at each site.
//
// Host adapters speak in AssetReference values. The Catalog and
// AssetLookup types translate between those and AssetIDs.
//
// Nothing here imports another internal package or a third-party module.
package domain
