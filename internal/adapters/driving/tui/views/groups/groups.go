// Package groups provides the suggested duplicate groups view.
package groups

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driving"
)

// View lists groups of assets with identical content.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.ConsolidationService

	list    *list.RowList
	groups  []domain.DuplicateGroup
	lookup  *domain.AssetLookup
	loading bool
	err     error
}

// NewView creates a new groups view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.ConsolidationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		ctx:     context.Background(),
		styles:  s,
		keymap:  km,
		service: service,
		list:    list.NewRowList(s, "Duplicate groups", "No duplicate content found"),
		lookup:  domain.NewAssetLookup(nil),
	}
}

// SetContext sets the context used by service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init scans the project for duplicate content.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil

	ctx, service := v.ctx, v.service
	return func() tea.Msg {
		assets, err := service.Assets(ctx)
		if err != nil {
			return messages.GroupsLoaded{Err: err}
		}
		groups, err := service.SuggestGroups(ctx)
		return messages.GroupsLoaded{Groups: groups, Assets: assets, Err: err}
	}
}

// Update handles messages for the groups view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.GroupsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.SetGroups(msg.Groups, msg.Assets)
		}
		return v, nil

	case tea.KeyMsg:
		switch {
		case keymap.Matches(msg.String(), v.keymap.Back):
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewAssets} }
		case keymap.Matches(msg.String(), v.keymap.Select):
			if g, ok := v.Selected(); ok {
				return v, func() tea.Msg { return messages.GroupSelected{Group: g} }
			}
		case keymap.Matches(msg.String(), v.keymap.Reload):
			return v, v.Init()
		default:
			v.list, _ = v.list.Update(msg)
		}
	}
	return v, nil
}

// SetGroups replaces the listed groups.
func (v *View) SetGroups(groups []domain.DuplicateGroup, assets []domain.Asset) {
	v.groups = groups
	v.lookup = domain.NewAssetLookup(assets)

	rows := make([]list.Row, len(groups))
	for i, g := range groups {
		rows[i] = list.Row{
			Title:  v.lookup.Name(g.Master),
			Detail: fmt.Sprintf("%d duplicates", len(g.Duplicates)),
			Kind:   list.KindMaster,
		}
	}
	v.list.SetRows(rows)
}

// Selected returns the highlighted group.
func (v *View) Selected() (domain.DuplicateGroup, bool) {
	i := v.list.Selected()
	if i < 0 || i >= len(v.groups) {
		return domain.DuplicateGroup{}, false
	}
	return v.groups[i], true
}

// Count returns the number of listed groups.
func (v *View) Count() int {
	return len(v.groups)
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.list.SetDimensions(width, height-8)
}

// View renders the groups view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Suggested groups"))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Comparing asset content..."))
		return b.String()
	}

	b.WriteString(v.list.View())
	if g, ok := v.Selected(); ok {
		b.WriteString("\n\n")
		for _, d := range g.Duplicates {
			b.WriteString(v.styles.Duplicate.Render("  - " + v.lookup.Name(d)))
			b.WriteString("\n")
		}
	}
	if v.err != nil {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] plan  [ctrl+r] rescan  [esc] back"))
	return b.String()
}
