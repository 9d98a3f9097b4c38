package memory

import (
	"context"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

// PutAsset stores an asset by path, replacing any earlier content.
func (h *Host) PutAsset(ctx context.Context, path, label string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.AddAsset(path, label, content)
	return nil
}

// PutConsumer stores a consumer, replacing its slots if it already exists.
func (h *Host) PutConsumer(ctx context.Context, id domain.ConsumerID, slots []domain.Slot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.AddConsumer(id, slots...)
	return nil
}

// DropConsumer removes a consumer. Removing an unknown consumer is a no-op.
func (h *Host) DropConsumer(ctx context.Context, id domain.ConsumerID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.RemoveConsumer(id)
	return nil
}
