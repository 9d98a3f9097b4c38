package driven

import (
	"context"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

// ConsumerReflection exposes the host's consumers and their asset slots.
// SetSlot is the only mutation surface the core uses.
type ConsumerReflection interface {
	// ListConsumers returns every consumer in a stable order.
	ListConsumers(ctx context.Context) ([]domain.ConsumerID, error)

	// ListPropertySlots returns the consumer's asset slots in a stable order.
	// Returns domain.ErrConsumerNotFound if the consumer is gone.
	ListPropertySlots(ctx context.Context, id domain.ConsumerID) ([]domain.PropertyName, error)

	// GetSlot returns the reference held by a slot, or nil if empty.
	GetSlot(ctx context.Context, id domain.ConsumerID, prop domain.PropertyName) (*domain.AssetReference, error)

	// SetSlot points a slot at the given reference.
	// Returns domain.ErrConsumerNotFound or domain.ErrSlotNotFound.
	SetSlot(ctx context.Context, id domain.ConsumerID, prop domain.PropertyName, ref domain.AssetReference) error
}
