package groups

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/consolidator/internal/adapters/driven/identity"
	"github.com/custodia-labs/consolidator/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/services"
)

func newView(t *testing.T, contents ...string) *View {
	t.Helper()

	host := memory.NewHost()
	paths := []string{"Assets/b.png", "Assets/a.png", "Assets/c.png"}
	for i, c := range contents {
		host.AddAsset(paths[i], paths[i], []byte(c))
	}
	svc := services.NewConsolidationService(host, host, identity.NewPathResolver(), memory.NewRunStore())
	return NewView(nil, nil, svc)
}

func TestView_InitSuggestsGroups(t *testing.T) {
	v := newView(t, "tex", "tex", "other")

	cmd := v.Init()
	assert.Contains(t, v.View(), "Comparing asset content...")

	v, _ = v.Update(cmd())

	require.NoError(t, v.Err())
	require.Equal(t, 1, v.Count())
	view := v.View()
	assert.Contains(t, view, "Assets/a.png")
	assert.Contains(t, view, "1 duplicates")
	assert.Contains(t, view, "- Assets/b.png")
	assert.NotContains(t, view, "c.png")
}

func TestView_NoDuplicates(t *testing.T) {
	v := newView(t, "one", "two")

	v, _ = v.Update(v.Init()())

	assert.Zero(t, v.Count())
	assert.Contains(t, v.View(), "No duplicate content found")
}

func TestView_SelectEmitsGroup(t *testing.T) {
	v := newView(t, "tex", "tex")
	v, _ = v.Update(v.Init()())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.GroupSelected)
	require.True(t, ok)
	assert.Len(t, msg.Group.Duplicates, 1)
}

func TestView_SelectWithoutGroups(t *testing.T) {
	v := newView(t)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_LoadError(t *testing.T) {
	v := newView(t)

	v, _ = v.Update(messages.GroupsLoaded{Err: errors.New("scan failed")})

	assert.EqualError(t, v.Err(), "scan failed")
	assert.Contains(t, v.View(), "scan failed")
}

func TestView_Back(t *testing.T) {
	v := newView(t)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewAssets}, cmd())
}

func TestView_SetGroupsNamesUnknownIDs(t *testing.T) {
	v := newView(t)

	v.SetGroups([]domain.DuplicateGroup{{Master: "m", Duplicates: []domain.AssetID{"d"}}}, nil)

	assert.Contains(t, v.View(), "- d")
}

func TestNewView_NilStylesFallBackToDefaults(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v.styles)
	require.NotNil(t, v.keymap)
	assert.NotPanics(t, func() { _ = v.View() })
}
