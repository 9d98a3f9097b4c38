package assets

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/consolidator/internal/adapters/driven/identity"
	"github.com/custodia-labs/consolidator/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/consolidator/internal/core/services"
)

func newView(t *testing.T) *View {
	t.Helper()

	host := memory.NewHost()
	host.AddAsset("Assets/rock.png", "rock", []byte("a"))
	host.AddAsset("Assets/moss.png", "moss", []byte("b"))
	svc := services.NewConsolidationService(host, host, identity.NewPathResolver(), memory.NewRunStore())
	return NewView(nil, nil, svc)
}

func TestView_InitLoadsAssets(t *testing.T) {
	v := newView(t)

	v, _ = v.Update(v.Init()())

	require.NoError(t, v.Err())
	assert.Equal(t, 2, v.Count())
	view := v.View()
	assert.Contains(t, view, "Assets (2)")
	assert.Contains(t, view, "Assets/rock.png")
}

func TestView_SelectEmitsAsset(t *testing.T) {
	v := newView(t)
	v, _ = v.Update(v.Init()())
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})

	want, ok := v.Selected()
	require.True(t, ok)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.AssetSelected{Asset: want}, cmd())
}

func TestView_SuggestSwitchesView(t *testing.T) {
	v := newView(t)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewGroups}, cmd())
}

func TestView_ReloadRefetches(t *testing.T) {
	v := newView(t)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlR})

	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.AssetsLoaded)
	require.True(t, ok)
	assert.Len(t, msg.Assets, 2)
}

func TestView_LoadErrorKeepsPreviousAssets(t *testing.T) {
	v := newView(t)
	v, _ = v.Update(v.Init()())

	v, _ = v.Update(messages.AssetsLoaded{Err: errors.New("host gone")})

	assert.Equal(t, 2, v.Count())
	assert.Contains(t, v.View(), "host gone")
}

func TestView_SelectedEmpty(t *testing.T) {
	v := newView(t)

	_, ok := v.Selected()

	assert.False(t, ok)
}

func TestNewView_NilStylesFallBackToDefaults(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v.styles)
	require.NotNil(t, v.keymap)
	assert.NotPanics(t, func() { _ = v.View() })
}
