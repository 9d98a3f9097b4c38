package identity

import (
	"context"

	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driven"
	"github.com/custodia-labs/consolidator/internal/logger"
)

// Ensure ContentResolver implements the interface.
var _ driven.IdentityResolver = (*ContentResolver)(nil)

// ContentReader reads the bytes behind a host reference.
type ContentReader interface {
	ReadContent(ctx context.Context, ref domain.AssetReference) ([]byte, error)
}

// ContentResolver derives identity from a digest of the asset content.
type ContentResolver struct {
	reader ContentReader
}

// NewContentResolver creates a content-based resolver reading through reader.
func NewContentResolver(reader ContentReader) *ContentResolver {
	return &ContentResolver{reader: reader}
}

// Resolve hashes the referenced content. Unreadable content has no identity.
func (r *ContentResolver) Resolve(ctx context.Context, ref *domain.AssetReference) (domain.AssetID, bool) {
	if ref == nil || ref.IsZero() {
		return "", false
	}
	data, err := r.reader.ReadContent(ctx, *ref)
	if err != nil {
		logger.Debug("identity: cannot read %q: %v", ref.Path, err)
		return "", false
	}
	return domain.ContentDigest(data), true
}

// Name returns the strategy name.
func (r *ContentResolver) Name() string {
	return StrategyContent
}
