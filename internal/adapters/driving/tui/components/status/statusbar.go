// Package status renders the one-line status bar under every view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/styles"
)

// State selects what the left side of the bar shows.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateDone    State = "done"
	StatePlan    State = "plan"
)

// Bar is passive: the app sets its fields and calls View.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	hints   help.Model
	state   State
	message string
	count   int
	width   int
}

// NewBar creates a status bar. Nil arguments fall back to the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, hints: help.New(), state: StateReady, width: 80}
}

// View renders status on the left and key hints on the right.
func (s *Bar) View() string {
	left := s.status()
	right := s.hints.ShortHelpView(s.bindings())

	gap := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) status() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Working...")
	case StateError:
		if s.message == "" {
			return s.styles.Error.Render("Error")
		}
		return s.styles.Error.Render("Error: " + s.message)
	case StateDone:
		return s.styles.Success.Render(s.message)
	case StatePlan:
		return s.styles.Normal.Render(fmt.Sprintf("%d references would be rewritten", s.count))
	case StateReady:
		if s.count > 0 {
			return s.styles.Normal.Render(fmt.Sprintf("%d items", s.count))
		}
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) bindings() []key.Binding {
	if s.state == StatePlan {
		return s.keymap.PlanHelp()
	}
	return s.keymap.ShortHelp()
}

func (s *Bar) SetState(state State)  { s.state = state }
func (s *Bar) State() State          { return s.state }
func (s *Bar) SetMessage(msg string) { s.message = msg }
func (s *Bar) Message() string       { return s.message }
func (s *Bar) SetCount(n int)        { s.count = n }
func (s *Bar) Count() int            { return s.count }
func (s *Bar) Width() int            { return s.width }

// SetWidth sets the rendered width; hints are truncated to fit.
func (s *Bar) SetWidth(width int) {
	s.width = width
	s.hints.Width = width / 2
}

// Clear returns the bar to the ready state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.count = 0
}
