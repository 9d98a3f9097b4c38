// Package keymap holds the TUI key bindings.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap is the full set of TUI bindings. Replace, Delete and Confirm are
// only acted on by the plan view.
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Back    key.Binding
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Reload  key.Binding
	Suggest key.Binding
	Replace key.Binding
	Delete  key.Binding
	Confirm key.Binding
}

// bind builds a binding whose help label is the first key unless label is set.
func bind(label, desc string, keys ...string) key.Binding {
	if label == "" {
		label = keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:    bind("", "quit", "q", "ctrl+c"),
		Help:    bind("", "help", "?"),
		Back:    bind("", "back", "esc"),
		Up:      bind("↑/k", "up", "up", "k"),
		Down:    bind("↓/j", "down", "down", "j"),
		Select:  bind("", "open", "enter"),
		Reload:  bind("", "reload", "ctrl+r"),
		Suggest: bind("", "suggest groups", "s"),
		Replace: bind("", "apply replacement", "r"),
		Delete:  bind("", "delete duplicates", "d"),
		Confirm: bind("", "confirm", "y"),
	}
}

// ShortHelp is shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// PlanHelp is shown in the status bar while a plan is open.
func (k *KeyMap) PlanHelp() []key.Binding {
	return []key.Binding{k.Replace, k.Delete, k.Back}
}

// FullHelp groups every binding for the help screen.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Suggest, k.Replace, k.Delete, k.Confirm},
		{k.Reload, k.Back, k.Help, k.Quit},
	}
}

// Matches reports whether keyStr is one of binding's keys.
func Matches(keyStr string, binding key.Binding) bool {
	return slices.Contains(binding.Keys(), keyStr)
}
