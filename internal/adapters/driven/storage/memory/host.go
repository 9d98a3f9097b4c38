package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driven"
)

// Ensure Host implements the interfaces.
var (
	_ driven.AssetStore         = (*Host)(nil)
	_ driven.ConsumerReflection = (*Host)(nil)
)

type assetEntry struct {
	record  domain.AssetRecord
	content []byte
}

type consumerEntry struct {
	id    domain.ConsumerID
	slots []domain.Slot
}

// Host is an in-memory asset database and consumer corpus.
type Host struct {
	mu        sync.RWMutex
	assets    []assetEntry
	consumers []*consumerEntry
	handles   int
}

// NewHost creates an empty in-memory host.
func NewHost() *Host {
	return &Host{}
}

// AddAsset registers an asset and returns a reference to it.
// Adding a path twice replaces the earlier content.
func (h *Host) AddAsset(path, label string, content []byte) domain.AssetReference {
	h.mu.Lock()
	defer h.mu.Unlock()

	ref := domain.AssetReference{Handle: h.nextHandle(), Path: path}
	entry := assetEntry{
		record:  domain.AssetRecord{Ref: ref, Label: label},
		content: append([]byte(nil), content...),
	}
	for i := range h.assets {
		if h.assets[i].record.Ref.Path == path {
			h.assets[i] = entry
			return ref
		}
	}
	h.assets = append(h.assets, entry)
	return ref
}

// Load returns a fresh reference to the asset at path, with a new handle.
func (h *Host) Load(path string) (domain.AssetReference, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.findAsset(path) < 0 {
		return domain.AssetReference{}, fmt.Errorf("%w: asset %s", domain.ErrNotFound, path)
	}
	return domain.AssetReference{Handle: h.nextHandle(), Path: path}, nil
}

// AddConsumer registers a consumer with slots in the given order.
func (h *Host) AddConsumer(id domain.ConsumerID, slots ...domain.Slot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	copied := make([]domain.Slot, len(slots))
	for i, s := range slots {
		copied[i] = domain.Slot{Name: s.Name, Ref: cloneRef(s.Ref)}
	}
	if c := h.findConsumer(id); c != nil {
		c.slots = copied
		return
	}
	h.consumers = append(h.consumers, &consumerEntry{id: id, slots: copied})
}

// RemoveConsumer drops a consumer from the corpus.
func (h *Host) RemoveConsumer(id domain.ConsumerID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, c := range h.consumers {
		if c.id == id {
			h.consumers = append(h.consumers[:i], h.consumers[i+1:]...)
			return
		}
	}
}

// RemoveSlot drops a property slot from a consumer.
func (h *Host) RemoveSlot(id domain.ConsumerID, prop domain.PropertyName) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c := h.findConsumer(id)
	if c == nil {
		return
	}
	for i, s := range c.slots {
		if s.Name == prop {
			c.slots = append(c.slots[:i], c.slots[i+1:]...)
			return
		}
	}
}

// List returns every asset in registration order.
func (h *Host) List(_ context.Context) ([]domain.AssetRecord, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]domain.AssetRecord, len(h.assets))
	for i, a := range h.assets {
		out[i] = a.record
	}
	return out, nil
}

// ReadContent returns the content stored at the reference's path.
func (h *Host) ReadContent(_ context.Context, ref domain.AssetReference) ([]byte, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	i := h.findAsset(ref.Path)
	if i < 0 {
		return nil, fmt.Errorf("%w: asset %s", domain.ErrNotFound, ref.Path)
	}
	return append([]byte(nil), h.assets[i].content...), nil
}

// Delete removes the asset at the reference's path.
// Slots still pointing at it are left dangling, as in a real editor.
func (h *Host) Delete(_ context.Context, ref domain.AssetReference) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := h.findAsset(ref.Path)
	if i < 0 {
		return fmt.Errorf("%w: asset %s", domain.ErrNotFound, ref.Path)
	}
	h.assets = append(h.assets[:i], h.assets[i+1:]...)
	return nil
}

// ListConsumers returns consumer ids in registration order.
func (h *Host) ListConsumers(_ context.Context) ([]domain.ConsumerID, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]domain.ConsumerID, len(h.consumers))
	for i, c := range h.consumers {
		out[i] = c.id
	}
	return out, nil
}

// ListPropertySlots returns slot names in registration order.
func (h *Host) ListPropertySlots(_ context.Context, id domain.ConsumerID) ([]domain.PropertyName, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c := h.findConsumer(id)
	if c == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrConsumerNotFound, id)
	}
	out := make([]domain.PropertyName, len(c.slots))
	for i, s := range c.slots {
		out[i] = s.Name
	}
	return out, nil
}

// GetSlot returns a copy of the reference held by a slot.
func (h *Host) GetSlot(_ context.Context, id domain.ConsumerID, prop domain.PropertyName) (*domain.AssetReference, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, err := h.findSlot(id, prop)
	if err != nil {
		return nil, err
	}
	return cloneRef(s.Ref), nil
}

// SetSlot points a slot at ref.
func (h *Host) SetSlot(_ context.Context, id domain.ConsumerID, prop domain.PropertyName, ref domain.AssetReference) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, err := h.findSlot(id, prop)
	if err != nil {
		return err
	}
	s.Ref = cloneRef(&ref)
	return nil
}

// nextHandle returns a new opaque handle (caller must hold lock).
func (h *Host) nextHandle() string {
	h.handles++
	return fmt.Sprintf("mem:%d", h.handles)
}

func (h *Host) findAsset(path string) int {
	for i := range h.assets {
		if h.assets[i].record.Ref.Path == path {
			return i
		}
	}
	return -1
}

func (h *Host) findConsumer(id domain.ConsumerID) *consumerEntry {
	for _, c := range h.consumers {
		if c.id == id {
			return c
		}
	}
	return nil
}

func (h *Host) findSlot(id domain.ConsumerID, prop domain.PropertyName) (*domain.Slot, error) {
	c := h.findConsumer(id)
	if c == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrConsumerNotFound, id)
	}
	for i := range c.slots {
		if c.slots[i].Name == prop {
			return &c.slots[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s.%s", domain.ErrSlotNotFound, id, prop)
}

func cloneRef(ref *domain.AssetReference) *domain.AssetReference {
	if ref == nil {
		return nil
	}
	c := *ref
	return &c
}
