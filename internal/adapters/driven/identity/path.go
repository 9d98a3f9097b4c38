package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driven"
)

// Ensure PathResolver implements the interface.
var _ driven.IdentityResolver = (*PathResolver)(nil)

// pathNamespace scopes asset GUIDs so they never collide with other
// name-based UUIDs derived from the same strings.
var pathNamespace = uuid.MustParse("5b0f6c1e-7d3a-4c2e-9a51-3f8e2d6b9c47")

// PathResolver derives identity from the asset's host path.
type PathResolver struct{}

// NewPathResolver creates a path-based resolver.
func NewPathResolver() *PathResolver {
	return &PathResolver{}
}

// Resolve returns the GUID for the reference's normalised path.
func (r *PathResolver) Resolve(_ context.Context, ref *domain.AssetReference) (domain.AssetID, bool) {
	if ref == nil {
		return "", false
	}
	p := ref.CleanPath()
	if p == "" || p == "." {
		return "", false
	}
	return domain.AssetID(uuid.NewSHA1(pathNamespace, []byte(p)).String()), true
}

// Name returns the strategy name.
func (r *PathResolver) Name() string {
	return StrategyPath
}
