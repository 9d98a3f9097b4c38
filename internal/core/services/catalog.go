package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driven"
	"github.com/custodia-labs/consolidator/internal/logger"
)

// BuildCatalog resolves every host asset record into the known-asset corpus.
// Records without an identity are skipped.
func BuildCatalog(ctx context.Context, store driven.AssetStore, resolver driven.IdentityResolver) (*domain.Catalog, error) {
	records, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	catalog := domain.NewCatalog()
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ref := rec.Ref
		id, ok := resolver.Resolve(ctx, &ref)
		if !ok {
			logger.Debug("Asset %q has no identity, skipping", rec.Ref.Path)
			continue
		}
		if !catalog.Add(domain.Asset{ID: id, Label: rec.Label, Ref: rec.Ref}) {
			logger.Debug("Asset %q shares identity %s with an earlier record", rec.Ref.Path, id)
		}
	}
	logger.Debug("Catalog: %d assets from %d records (%s identity)", catalog.Len(), len(records), resolver.Name())
	return catalog, nil
}
