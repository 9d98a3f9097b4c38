package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
	assert.Contains(t, km.Quit.Keys(), "q")
	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.Back.Keys(), "esc")
	assert.Contains(t, km.Select.Keys(), "enter")
}

func TestDefaultKeyMap_ActionBindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		key     string
	}{
		{name: "suggest", binding: km.Suggest, key: "s"},
		{name: "replace", binding: km.Replace, key: "r"},
		{name: "delete", binding: km.Delete, key: "d"},
		{name: "confirm", binding: km.Confirm, key: "y"},
		{name: "reload", binding: km.Reload, key: "ctrl+r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{tt.key}, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_Help(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 2)
	assert.Len(t, km.PlanHelp(), 3)
	assert.Len(t, km.FullHelp(), 3)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("up", km.Up))
	assert.False(t, Matches("x", km.Up))
	assert.False(t, Matches("", km.Quit))
}
