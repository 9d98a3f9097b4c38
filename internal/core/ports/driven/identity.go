package driven

import (
	"context"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

// IdentityResolver assigns stable identities to host references.
//
// Resolve must be deterministic: every reference to the same underlying
// asset yields the same id, and distinct assets never collide. An empty
// or unresolvable reference yields ("", false), never an error.
type IdentityResolver interface {
	Resolve(ctx context.Context, ref *domain.AssetReference) (domain.AssetID, bool)

	// Name identifies the strategy for logs and config.
	Name() string
}
