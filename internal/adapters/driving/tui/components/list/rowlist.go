// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/styles"
)

// Kind selects how a row is highlighted.
type Kind int

const (
	KindNormal Kind = iota
	KindMaster
	KindDuplicate
)

// Row is one line of a list with an optional muted detail column.
type Row struct {
	Title  string
	Detail string
	Kind   Kind
}

// RowList displays rows in a navigable, scrolling list.
type RowList struct {
	title    string
	empty    string
	rows     []Row
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewRowList creates a new row list component.
func NewRowList(s *styles.Styles, title, empty string) *RowList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &RowList{
		title:  title,
		empty:  empty,
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the row list.
func (r *RowList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *RowList) Update(msg tea.Msg) (*RowList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the row list.
func (r *RowList) View() string {
	header := r.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", r.title, len(r.rows)))
	if len(r.rows) == 0 {
		return header + "\n\n" + r.styles.Muted.Render(r.empty)
	}

	lines := make([]string, 0, len(r.rows)+2)
	lines = append(lines, header, "")

	visible := r.height - 4
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.rows) {
		end = len(r.rows)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderRow(i, r.rows[i]))
	}

	return strings.Join(lines, "\n")
}

func (r *RowList) renderRow(index int, row Row) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	maxTitle := r.width / 2
	if maxTitle < 10 {
		maxTitle = 10
	}
	title := truncate(row.Title, maxTitle)

	if index == r.selected {
		return r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitle, title, row.Detail))
	}

	style := r.styles.Normal
	switch row.Kind {
	case KindMaster:
		style = r.styles.Master
	case KindDuplicate:
		style = r.styles.Duplicate
	}
	return style.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitle, title)) +
		r.styles.Muted.Render(row.Detail)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// SetRows replaces the rows and resets the selection.
func (r *RowList) SetRows(rows []Row) {
	r.rows = rows
	r.selected = 0
}

// Rows returns the current rows.
func (r *RowList) Rows() []Row {
	return r.rows
}

// Selected returns the index of the selected row.
func (r *RowList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *RowList) SetSelected(index int) {
	if index >= 0 && index < len(r.rows) {
		r.selected = index
	}
}

// MoveUp moves selection up.
func (r *RowList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *RowList) MoveDown() {
	if r.selected < len(r.rows)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *RowList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of rows.
func (r *RowList) Count() int {
	return len(r.rows)
}

// IsEmpty returns whether the list is empty.
func (r *RowList) IsEmpty() bool {
	return len(r.rows) == 0
}
