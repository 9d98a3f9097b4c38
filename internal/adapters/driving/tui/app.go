package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/views/assets"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/views/groups"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/views/plan"
	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui/views/usages"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model
	bar    *status.Bar

	assetsView *assets.View
	usagesView *usages.View
	groupsView *groups.View
	planView   *plan.View

	// previous is the view to return to when help closes.
	previous    messages.ViewType
	currentView messages.ViewType

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	svc := ports.Consolidation

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		help:        help.New(),
		bar:         status.NewBar(s, km),
		assetsView:  assets.NewView(s, km, svc),
		usagesView:  usages.NewView(s, km, svc),
		groupsView:  groups.NewView(s, km, svc),
		planView:    plan.NewView(s, km, svc),
		currentView: messages.ViewAssets,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.assetsView.SetContext(ctx)
	a.usagesView.SetContext(ctx)
	a.groupsView.SetContext(ctx)
	a.planView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.bar.SetState(status.StateLoading)
	return tea.Batch(
		tea.SetWindowTitle("consolidator"),
		a.assetsView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.AssetsLoaded:
		a.assetsView, cmd = a.assetsView.Update(msg)
		a.settle(msg.Err, a.assetsView.Count())
		return a, cmd

	case messages.AssetSelected:
		a.currentView = messages.ViewUsages
		a.bar.SetState(status.StateLoading)
		return a, a.usagesView.SetAsset(msg.Asset)

	case messages.UsagesLoaded:
		if !a.usagesView.Shows(msg.Asset) {
			return a, nil
		}
		a.usagesView, cmd = a.usagesView.Update(msg)
		a.settle(msg.Err, a.usagesView.Count())
		return a, cmd

	case messages.GroupsLoaded:
		a.groupsView, cmd = a.groupsView.Update(msg)
		a.settle(msg.Err, a.groupsView.Count())
		return a, cmd

	case messages.GroupSelected:
		a.currentView = messages.ViewPlan
		a.bar.SetState(status.StateLoading)
		return a, a.planView.SetGroup(msg.Group)

	case messages.PlanLoaded:
		if !a.planView.Shows(msg.Group) {
			return a, nil
		}
		a.planView, cmd = a.planView.Update(msg)
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, cmd
		}
		a.bar.SetState(status.StatePlan)
		a.bar.SetCount(msg.Plan.Len())
		return a, cmd

	case messages.ReplaceCompleted:
		a.planView, cmd = a.planView.Update(msg)
		a.finish(msg.Err, a.planView.Result())
		return a, cmd

	case messages.DeleteCompleted:
		a.planView, cmd = a.planView.Update(msg)
		a.finish(msg.Err, a.planView.Result())
		return a, cmd

	case messages.ErrorOccurred:
		a.fail(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if keymap.Matches(key, a.keymap.Quit) && !a.planView.Confirming() {
		return a, tea.Quit
	}

	if a.currentView == messages.ViewHelp {
		if keymap.Matches(key, a.keymap.Back) || keymap.Matches(key, a.keymap.Help) {
			a.currentView = a.previous
		}
		return a, nil
	}

	if keymap.Matches(key, a.keymap.Help) && !a.planView.Confirming() {
		a.previous = a.currentView
		a.currentView = messages.ViewHelp
		return a, nil
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewAssets:
		a.assetsView, cmd = a.assetsView.Update(msg)
	case messages.ViewUsages:
		a.usagesView, cmd = a.usagesView.Update(msg)
	case messages.ViewGroups:
		a.groupsView, cmd = a.groupsView.Update(msg)
	case messages.ViewPlan:
		a.planView, cmd = a.planView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	a.err = nil

	switch view {
	case messages.ViewAssets:
		a.bar.SetState(status.StateReady)
		a.bar.SetCount(a.assetsView.Count())
	case messages.ViewGroups:
		a.bar.SetState(status.StateLoading)
		return a.groupsView.Init()
	case messages.ViewUsages, messages.ViewPlan, messages.ViewHelp:
	}
	return nil
}

// settle updates the status bar after a load.
func (a *App) settle(err error, count int) {
	if err != nil {
		a.fail(err)
		return
	}
	a.err = nil
	a.bar.SetState(status.StateReady)
	a.bar.SetCount(count)
}

// finish updates the status bar after a destructive action.
func (a *App) finish(err error, summary string) {
	if err != nil {
		a.fail(err)
		return
	}
	a.err = nil
	a.bar.SetState(status.StateDone)
	a.bar.SetMessage(summary)
}

func (a *App) fail(err error) {
	a.err = err
	a.bar.SetState(status.StateError)
	a.bar.SetMessage(err.Error())
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewUsages:
		body = a.usagesView.View()
	case messages.ViewGroups:
		body = a.groupsView.View()
	case messages.ViewPlan:
		body = a.planView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	case messages.ViewAssets:
		body = a.assetsView.View()
	default:
		body = a.assetsView.View()
	}
	return body + "\n\n" + a.bar.View()
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + "\n\n" +
		a.help.FullHelpView(a.keymap.FullHelp()) + "\n\n" +
		a.styles.Help.Render("[esc] back")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.bar.SetWidth(width)

	body := height - 2
	a.assetsView.SetDimensions(width, body)
	a.usagesView.SetDimensions(width, body)
	a.groupsView.SetDimensions(width, body)
	a.planView.SetDimensions(width, body)
}
