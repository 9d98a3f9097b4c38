package driven

import (
	"context"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

// AssetStore is the host's asset database.
type AssetStore interface {
	// List returns every asset the host knows about.
	List(ctx context.Context) ([]domain.AssetRecord, error)

	// ReadContent returns the raw content behind a reference.
	// Returns domain.ErrNotFound if the reference points at nothing.
	ReadContent(ctx context.Context, ref domain.AssetReference) ([]byte, error)

	// Delete removes the asset behind a reference.
	// The core only calls this for assets the deletion gate cleared.
	Delete(ctx context.Context, ref domain.AssetReference) error
}
