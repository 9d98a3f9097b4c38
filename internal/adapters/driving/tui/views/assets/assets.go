// Package assets provides the asset catalog view for the TUI.
package assets

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driving"
)

// View lists every asset in the project.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.ConsolidationService

	list   *list.RowList
	assets []domain.Asset
	err    error
}

// NewView creates a new assets view.
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
		list:    list.NewRowList(s, "Assets", "No assets in this project"),
	}
}

// SetContext sets the context used by service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the catalog.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	ctx, service := v.ctx, v.service
	return func() tea.Msg {
		assets, err := service.Assets(ctx)
		return messages.AssetsLoaded{Assets: assets, Err: err}
	}
}

// Update handles messages for the assets view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.AssetsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.SetAssets(msg.Assets)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Select):
		if a, ok := v.Selected(); ok {
			return v, func() tea.Msg { return messages.AssetSelected{Asset: a} }
		}
	case keymap.Matches(msg.String(), v.keymap.Suggest):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewGroups} }
	case keymap.Matches(msg.String(), v.keymap.Reload):
		return v, v.load()
	default:
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

// SetAssets replaces the listed assets.
func (v *View) SetAssets(assets []domain.Asset) {
	v.assets = assets
	rows := make([]list.Row, len(assets))
	for i, a := range assets {
		rows[i] = list.Row{Title: a.Ref.CleanPath(), Detail: a.Label}
	}
	v.list.SetRows(rows)
}

// Selected returns the highlighted asset.
func (v *View) Selected() (domain.Asset, bool) {
	i := v.list.Selected()
	if i < 0 || i >= len(v.assets) {
		return domain.Asset{}, false
	}
	return v.assets[i], true
}

// Count returns the number of listed assets.
func (v *View) Count() int {
	return len(v.assets)
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.list.SetDimensions(width, height-4)
}

// View renders the assets view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("consolidator"))
	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	if v.err != nil {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] usages  [s] suggest groups  [ctrl+r] reload  [?] help"))
	return b.String()
}
