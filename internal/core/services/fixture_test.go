package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/consolidator/internal/adapters/driven/identity"
	"github.com/custodia-labs/consolidator/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driven"
)

// strategy builds a resolver over a host.
type strategy struct {
	name string
	new  func(h *memory.Host) driven.IdentityResolver
}

// strategies lists the identity schemes every engine test runs under.
var strategies = []strategy{
	{name: "path", new: func(*memory.Host) driven.IdentityResolver { return identity.NewPathResolver() }},
	{name: "content", new: func(h *memory.Host) driven.IdentityResolver { return identity.NewContentResolver(h) }},
}

// forEachStrategy runs fn once per identity strategy.
func forEachStrategy(t *testing.T, fn func(t *testing.T, s strategy)) {
	t.Helper()
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			fn(t, s)
		})
	}
}

// corpus is the three-texture, two-material host used across tests.
type corpus struct {
	host     *memory.Host
	resolver driven.IdentityResolver
	m, x, y  domain.AssetID
}

func newCorpus(t *testing.T, s strategy) *corpus {
	t.Helper()
	h := memory.NewHost()
	mRef := h.AddAsset("Assets/Textures/master.png", "master", []byte("master-pixels"))
	xRef := h.AddAsset("Assets/Textures/dup_x.png", "dup_x", []byte("x-pixels"))
	yRef := h.AddAsset("Assets/Textures/dup_y.png", "dup_y", []byte("y-pixels"))

	c1Ref, err := h.Load(xRef.Path)
	require.NoError(t, err)
	c2Ref, err := h.Load(yRef.Path)
	require.NoError(t, err)

	h.AddConsumer("C1", domain.Slot{Name: "tex", Ref: &c1Ref})
	h.AddConsumer("C2", domain.Slot{Name: "tex", Ref: &c2Ref})

	r := s.new(h)
	return &corpus{
		host:     h,
		resolver: r,
		m:        resolve(t, r, mRef),
		x:        resolve(t, r, xRef),
		y:        resolve(t, r, yRef),
	}
}

func (c *corpus) service() *ConsolidationService {
	return NewConsolidationService(c.host, c.host, c.resolver, memory.NewRunStore())
}

// slotID resolves the current value of a slot.
func (c *corpus) slotID(t *testing.T, consumer domain.ConsumerID, prop domain.PropertyName) domain.AssetID {
	t.Helper()
	ref, err := c.host.GetSlot(context.Background(), consumer, prop)
	require.NoError(t, err)
	id, _ := c.resolver.Resolve(context.Background(), ref)
	return id
}

func resolve(t *testing.T, r driven.IdentityResolver, ref domain.AssetReference) domain.AssetID {
	t.Helper()
	id, ok := r.Resolve(context.Background(), &ref)
	require.True(t, ok, "reference %s has no identity", ref.Path)
	return id
}
