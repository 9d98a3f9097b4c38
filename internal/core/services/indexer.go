package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driven"
	"github.com/custodia-labs/consolidator/internal/logger"
)

// Indexer builds usage indexes over a consumer corpus.
type Indexer struct {
	resolver driven.IdentityResolver
}

// NewIndexer creates an indexer that resolves slots with resolver.
func NewIndexer(resolver driven.IdentityResolver) *Indexer {
	return &Indexer{resolver: resolver}
}

// Snapshot reads the host corpus into plain consumers.
// Consumers or slots that vanish while reading are skipped.
func (x *Indexer) Snapshot(ctx context.Context, reflection driven.ConsumerReflection) ([]domain.Consumer, error) {
	ids, err := reflection.ListConsumers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list consumers: %w", err)
	}

	consumers := make([]domain.Consumer, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		props, err := reflection.ListPropertySlots(ctx, id)
		if errors.Is(err, domain.ErrConsumerNotFound) {
			logger.Debug("Consumer %s vanished during snapshot", id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("list slots of %s: %w", id, err)
		}

		c := domain.Consumer{ID: id, Slots: make([]domain.Slot, 0, len(props))}
		for _, prop := range props {
			ref, err := reflection.GetSlot(ctx, id, prop)
			if errors.Is(err, domain.ErrSlotNotFound) || errors.Is(err, domain.ErrConsumerNotFound) {
				logger.Debug("Slot %s.%s vanished during snapshot", id, prop)
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("read slot %s.%s: %w", id, prop, err)
			}
			c.Slots = append(c.Slots, domain.Slot{Name: prop, Ref: ref})
		}
		consumers = append(consumers, c)
	}
	return consumers, nil
}

// BuildIndex returns the sites whose resolved value is in targets.
// Sites keep (consumer order, slot order). Only a cancelled context
// produces an error.
func (x *Indexer) BuildIndex(ctx context.Context, consumers []domain.Consumer, targets domain.AssetSet) (*domain.UsageIndex, error) {
	index := domain.NewUsageIndex(targets)
	if len(targets) == 0 {
		return index, nil
	}

	for _, c := range consumers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, slot := range c.Slots {
			id, ok := x.resolver.Resolve(ctx, slot.Ref)
			if !ok || !targets.Has(id) {
				continue
			}
			index.Add(id, domain.ReferenceSite{Consumer: c.ID, Property: slot.Name})
		}
	}

	logger.Debug("Index: %d sites across %d of %d targets", index.Total(), index.Len(), len(targets))
	return index, nil
}

// Scan snapshots the host corpus and indexes it in one step.
func (x *Indexer) Scan(ctx context.Context, reflection driven.ConsumerReflection, targets domain.AssetSet) (*domain.UsageIndex, error) {
	if len(targets) == 0 {
		return domain.NewUsageIndex(targets), nil
	}
	consumers, err := x.Snapshot(ctx, reflection)
	if err != nil {
		return nil, err
	}
	return x.BuildIndex(ctx, consumers, targets)
}
