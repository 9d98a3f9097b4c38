// Package plan provides the rewrite preview for one duplicate group,
// with actions to apply it and delete the duplicates afterwards.
package plan

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driving"
)

// View previews the rewrites of one group.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.ConsolidationService

	group   domain.DuplicateGroup
	plan    *domain.RewritePlan
	lookup  *domain.AssetLookup
	list    *list.RowList
	confirm bool
	busy    bool
	result  string
	err     error
}

// NewView creates a new plan view.
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
		lookup:  domain.NewAssetLookup(nil),
		list:    list.NewRowList(s, "Rewrites", "Nothing to rewrite"),
	}
}

// SetContext sets the context used by service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// SetGroup switches to group and computes its plan.
func (v *View) SetGroup(group domain.DuplicateGroup) tea.Cmd {
	v.group = group
	v.plan = nil
	v.confirm = false
	v.result = ""
	v.err = nil
	v.list.SetRows(nil)
	return v.load()
}

func (v *View) load() tea.Cmd {
	ctx, service, group := v.ctx, v.service, v.group
	return func() tea.Msg {
		assets, err := service.Assets(ctx)
		if err != nil {
			return messages.PlanLoaded{Group: group, Err: err}
		}
		plan, err := service.Plan(ctx, []domain.DuplicateGroup{group})
		return messages.PlanLoaded{Group: group, Plan: plan, Assets: assets, Err: err}
	}
}

func (v *View) replace() tea.Cmd {
	ctx, service, group := v.ctx, v.service, v.group
	return func() tea.Msg {
		report, err := service.Replace(ctx, []domain.DuplicateGroup{group})
		return messages.ReplaceCompleted{Report: report, Err: err}
	}
}

func (v *View) deleteDuplicates() tea.Cmd {
	ctx, service, ids := v.ctx, v.service, v.group.Duplicates
	return func() tea.Msg {
		report, err := service.DeleteUnreferenced(ctx, ids)
		return messages.DeleteCompleted{Report: report, Err: err}
	}
}

// Update handles messages for the plan view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.PlanLoaded:
		if !v.Shows(msg.Group) {
			return v, nil
		}
		v.err = msg.Err
		v.lookup = domain.NewAssetLookup(msg.Assets)
		v.plan = msg.Plan
		v.setRows()
		return v, nil

	case messages.ReplaceCompleted:
		v.busy = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.result = msg.Report.Summary()
		return v, v.load()

	case messages.DeleteCompleted:
		v.busy = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.result = msg.Report.Summary()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	if v.confirm {
		v.confirm = false
		if keymap.Matches(key, v.keymap.Confirm) {
			v.busy = true
			return v, v.deleteDuplicates()
		}
		v.result = "Delete cancelled."
		return v, nil
	}

	if v.busy {
		return v, nil
	}

	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewGroups} }
	case keymap.Matches(key, v.keymap.Replace):
		if v.err != nil || v.plan.IsEmpty() {
			return v, nil
		}
		v.busy = true
		return v, v.replace()
	case keymap.Matches(key, v.keymap.Delete):
		v.confirm = true
		v.result = ""
	default:
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

func (v *View) setRows() {
	if v.plan == nil {
		v.list.SetRows(nil)
		return
	}
	rows := make([]list.Row, len(v.plan.Ops))
	for i, op := range v.plan.Ops {
		rows[i] = list.Row{
			Title:  op.Site.String(),
			Detail: fmt.Sprintf("%s -> %s", v.lookup.Name(op.From), v.lookup.Name(op.To)),
			Kind:   list.KindDuplicate,
		}
	}
	v.list.SetRows(rows)
}

// Group returns the group being previewed.
func (v *View) Group() domain.DuplicateGroup {
	return v.group
}

// Shows reports whether group is the one being previewed.
func (v *View) Shows(group domain.DuplicateGroup) bool {
	return group.Master == v.group.Master && slices.Equal(group.Duplicates, v.group.Duplicates)
}

// Plan returns the current plan, or nil before it loads.
func (v *View) Plan() *domain.RewritePlan {
	return v.plan
}

// Confirming reports whether a delete is awaiting confirmation.
func (v *View) Confirming() bool {
	return v.confirm
}

// Result returns the summary of the last action.
func (v *View) Result() string {
	return v.result
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.list.SetDimensions(width, height-len(v.group.Duplicates)-10)
}

// View renders the plan view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Plan"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Master.Render("keep    " + v.lookup.Name(v.group.Master)))
	b.WriteString("\n")
	for _, d := range v.group.Duplicates {
		b.WriteString(v.styles.Duplicate.Render("replace " + v.lookup.Name(d)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.list.View())

	if v.err != nil {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	}
	if v.result != "" {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Success.Render(v.result))
	}
	b.WriteString("\n\n")
	if v.confirm {
		b.WriteString(v.styles.Warning.Render(
			fmt.Sprintf("Delete %d duplicates? [y/N]", len(v.group.Duplicates))))
	} else {
		b.WriteString(v.styles.Help.Render("[r] replace  [d] delete duplicates  [esc] back"))
	}
	return b.String()
}
