// Package identity provides asset identity strategies implementing
// driven.IdentityResolver.
//
// Strategies:
//   - path: GUID-by-path. A name-based UUID over the normalised asset path,
//     so every handle loaded from the same path resolves to the same id.
//   - content: SHA-256 over the asset bytes, so identical content at
//     different paths resolves to the same id.
//
// The engine is identity-scheme agnostic; strategies are selected with
// the identity.strategy configuration key.
package identity
