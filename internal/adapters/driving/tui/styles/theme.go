// Package styles holds the TUI palette and the lipgloss styles built from it.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the TUI palette. Keep and Replace colour the two sides of a
// duplicate group.
type Theme struct {
	Accent  lipgloss.Color
	Heading lipgloss.Color
	Text    lipgloss.Color
	Dim     lipgloss.Color
	Keep    lipgloss.Color
	Replace lipgloss.Color
	Danger  lipgloss.Color
}

// DefaultTheme returns the dark-terminal palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  "#7C3AED",
		Heading: "#0EA5E9",
		Text:    "#F3F4F6",
		Dim:     "#9CA3AF",
		Keep:    "#10B981",
		Replace: "#F59E0B",
		Danger:  "#DC2626",
	}
}

// Styles are the rendered styles shared by every view.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style

	Master    lipgloss.Style
	Duplicate lipgloss.Style

	StatusBar lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles builds styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		theme:     theme,
		Title:     fg(theme.Accent).Bold(true),
		Subtitle:  fg(theme.Heading).Bold(true),
		Normal:    fg(theme.Text),
		Muted:     fg(theme.Dim),
		Selected:  fg(theme.Text).Background(theme.Accent).Bold(true),
		Error:     fg(theme.Danger),
		Success:   fg(theme.Keep),
		Warning:   fg(theme.Replace),
		Master:    fg(theme.Keep).Bold(true),
		Duplicate: fg(theme.Replace),
		StatusBar: fg(theme.Dim).Padding(0, 1),
		Help:      fg(theme.Dim).Italic(true),
	}
}

// DefaultStyles is NewStyles(DefaultTheme()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
