package plan

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/consolidator/internal/adapters/driven/identity"
	"github.com/custodia-labs/consolidator/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driving"
	"github.com/custodia-labs/consolidator/internal/core/services"
)

func newService(t *testing.T) (driving.ConsolidationService, *memory.Host) {
	t.Helper()

	host := memory.NewHost()
	host.AddAsset("Assets/master.png", "master", []byte("tex"))
	host.AddAsset("Assets/dup.png", "dup", []byte("tex"))
	host.AddConsumer("C1", domain.Slot{Name: "_MainTex", Ref: &domain.AssetReference{Path: "Assets/dup.png"}})
	host.AddConsumer("C2", domain.Slot{Name: "_MainTex", Ref: &domain.AssetReference{Path: "Assets/master.png"}})

	return services.NewConsolidationService(host, host, identity.NewPathResolver(), memory.NewRunStore()), host
}

func testGroup(t *testing.T, svc driving.ConsolidationService) domain.DuplicateGroup {
	t.Helper()

	assets, err := svc.Assets(context.Background())
	require.NoError(t, err)
	lookup := domain.NewAssetLookup(assets)
	return domain.DuplicateGroup{
		Master:     lookup.Resolve("Assets/master.png"),
		Duplicates: []domain.AssetID{lookup.Resolve("Assets/dup.png")},
	}
}

// run executes cmd and feeds its message back into the view.
func run(t *testing.T, v *View, cmd tea.Cmd) (*View, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	return v.Update(cmd())
}

func key(s string) tea.KeyMsg {
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_SetGroupLoadsPlan(t *testing.T) {
	svc, _ := newService(t)
	v := NewView(nil, nil, svc)

	v, _ = run(t, v, v.SetGroup(testGroup(t, svc)))

	require.NoError(t, v.Err())
	require.Equal(t, 1, v.Plan().Len())
	view := v.View()
	assert.Contains(t, view, "keep    Assets/master.png")
	assert.Contains(t, view, "replace Assets/dup.png")
	assert.Contains(t, view, "C1._MainTex")
}

func TestView_ReplaceThenDelete(t *testing.T) {
	svc, host := newService(t)
	v := NewView(nil, nil, svc)
	v, _ = run(t, v, v.SetGroup(testGroup(t, svc)))

	v, cmd := v.Update(key("r"))
	v, cmd = run(t, v, cmd)
	assert.Equal(t, "1 of 1 references updated; 0 failed", v.Result())

	v, _ = run(t, v, cmd)
	assert.True(t, v.Plan().IsEmpty())

	v, _ = v.Update(key("d"))
	assert.True(t, v.Confirming())
	assert.Contains(t, v.View(), "Delete 1 duplicates? [y/N]")

	v, cmd = v.Update(key("y"))
	v, _ = run(t, v, cmd)
	assert.False(t, v.Confirming())
	assert.Equal(t, "1 deleted; 0 still referenced; 0 failed", v.Result())

	records, err := host.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestView_DeleteCancelled(t *testing.T) {
	svc, _ := newService(t)
	v := NewView(nil, nil, svc)
	v, _ = run(t, v, v.SetGroup(testGroup(t, svc)))

	v, _ = v.Update(key("d"))
	v, cmd := v.Update(key("n"))

	assert.Nil(t, cmd)
	assert.False(t, v.Confirming())
	assert.Equal(t, "Delete cancelled.", v.Result())
}

func TestView_DeleteRefusedWhileReferenced(t *testing.T) {
	svc, _ := newService(t)
	v := NewView(nil, nil, svc)
	v, _ = run(t, v, v.SetGroup(testGroup(t, svc)))

	v, _ = v.Update(key("d"))
	v, cmd := v.Update(key("y"))
	v, _ = run(t, v, cmd)

	assert.Equal(t, "0 deleted; 1 still referenced; 0 failed", v.Result())
}

func TestView_ReplaceIgnoredForEmptyPlan(t *testing.T) {
	svc, _ := newService(t)
	v := NewView(nil, nil, svc)
	v, _ = v.Update(messages.PlanLoaded{Plan: &domain.RewritePlan{}})

	_, cmd := v.Update(key("r"))

	assert.Nil(t, cmd)
}

func TestView_PlanError(t *testing.T) {
	svc, _ := newService(t)
	v := NewView(nil, nil, svc)

	v, _ = run(t, v, v.SetGroup(domain.DuplicateGroup{Master: "missing", Duplicates: []domain.AssetID{"other"}}))

	require.Error(t, v.Err())
	assert.True(t, errors.Is(v.Err(), domain.ErrUnknownMaster))
}

func TestView_EscGoesBackToGroups(t *testing.T) {
	svc, _ := newService(t)
	v := NewView(nil, nil, svc)

	_, cmd := v.Update(key("esc"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewGroups}, cmd())
}

func TestNewView_NilStylesFallBackToDefaults(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v.styles)
	require.NotNil(t, v.keymap)
	assert.NotPanics(t, func() { _ = v.View() })
}

func TestView_IgnoresPlanForPreviousGroup(t *testing.T) {
	svc, _ := newService(t)
	v := NewView(nil, nil, svc)
	first := testGroup(t, svc)
	second := domain.DuplicateGroup{Master: first.Duplicates[0], Duplicates: []domain.AssetID{first.Master}}

	stale := v.SetGroup(first)
	v, _ = run(t, v, v.SetGroup(second))
	require.NoError(t, v.Err())

	v, cmd := v.Update(stale())

	assert.Nil(t, cmd)
	assert.Equal(t, second, v.Group())
	assert.True(t, v.Shows(second))
	assert.False(t, v.Shows(first))
	view := v.View()
	assert.Contains(t, view, "C2._MainTex")
	assert.NotContains(t, view, "C1._MainTex")
}
