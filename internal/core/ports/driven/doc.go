// Package driven lists what the engine needs from its host.
//
// AssetStore, ConsumerReflection and IdentityResolver are required; they
// are implemented by the manifest and sqlite adapters. ConfigStore backs
// user settings. RunStore is optional: when nil, consolidation runs are not
// recorded and History reports domain.ErrNotImplemented.
//
// Host-facing methods take AssetReference values, never AssetIDs. The
// services package maps between the two through a domain.Catalog.
package driven
