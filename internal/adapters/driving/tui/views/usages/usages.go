// Package usages provides the reference sites view for one asset.
package usages

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

// View lists the consumer slots that reference one asset.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.ConsolidationService

	asset domain.Asset
	list  *list.RowList
	err   error
}

// NewView creates a new usages view.
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
		list:    list.NewRowList(s, "References", "Not referenced by any consumer"),
	}
}

// SetContext sets the context used by service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// SetAsset switches to asset and loads its usages.
func (v *View) SetAsset(asset domain.Asset) tea.Cmd {
	v.asset = asset
	v.err = nil
	v.list.SetRows(nil)

	ctx, service, id := v.ctx, v.service, asset.ID
	return func() tea.Msg {
		idx, err := service.FindUsages(ctx, []domain.AssetID{id})
		if err != nil {
			return messages.UsagesLoaded{Asset: id, Err: err}
		}
		return messages.UsagesLoaded{Asset: id, Sites: idx.Sites(id)}
	}
}

// Update handles messages for the usages view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.UsagesLoaded:
		if !v.Shows(msg.Asset) {
			return v, nil
		}
		v.err = msg.Err
		rows := make([]list.Row, len(msg.Sites))
		for i, site := range msg.Sites {
			rows[i] = list.Row{Title: string(site.Consumer), Detail: string(site.Property)}
		}
		v.list.SetRows(rows)
		return v, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Back) {
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewAssets} }
		}
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

// Shows reports whether id is the asset on screen.
func (v *View) Shows(id domain.AssetID) bool {
	return id == v.asset.ID
}

// Count returns the number of listed sites.
func (v *View) Count() int {
	return v.list.Count()
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.list.SetDimensions(width, height-6)
}

// View renders the usages view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.asset.Ref.CleanPath()))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%s  %s", v.asset.Label, v.asset.ID)))
	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	if v.err != nil {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[esc] back"))
	return b.String()
}
