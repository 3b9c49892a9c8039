// Package tui is the terminal front-end: one bubbletea page per flow plus a
// home menu, wired to the flows through a coalescing redraw signal.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PabloGalante/nuance-coach/internal/app/flowkit"
	"github.com/PabloGalante/nuance-coach/internal/app/navigation"
	"github.com/PabloGalante/nuance-coach/internal/domain"
	"github.com/PabloGalante/nuance-coach/internal/observability"
)

// Deps are the adapters the pages run against.
type Deps struct {
	Analyzer  domain.Analyzer
	Clipboard domain.Clipboard
	AfterFunc flowkit.AfterFunc // nil uses the real clock
}

// page is one screen of the app.
type page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (page, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// redrawMsg is delivered after a flow changed state off the event loop.
type redrawMsg struct{}

type navigateMsg struct {
	route navigation.Route
}

func navigate(route navigation.Route) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{route: route}
	}
}

// background runs f off the event loop. Flows report progress through the
// redraw signal, so the command itself yields no message.
func background(f func()) tea.Cmd {
	return func() tea.Msg {
		f()
		return nil
	}
}

// App is the root model. It owns the current page and rebuilds it on every
// navigation, which discards the previous flow's state.
type App struct {
	ctx    context.Context
	deps   Deps
	keys   keyMap
	route  navigation.Route
	page   page
	redraw chan struct{}
	width  int
	height int
}

func NewApp(ctx context.Context, deps Deps, start navigation.Route) *App {
	a := &App{
		ctx:    ctx,
		deps:   deps,
		keys:   newKeyMap(),
		redraw: make(chan struct{}, 1),
	}
	a.open(start)
	return a
}

// notify is the flows' Notifier. A pending signal already covers the new
// state, so extra signals are dropped.
func (a *App) notify() {
	select {
	case a.redraw <- struct{}{}:
	default:
	}
}

func (a *App) waitForRedraw() tea.Msg {
	select {
	case <-a.redraw:
		return redrawMsg{}
	case <-a.ctx.Done():
		return nil
	}
}

// Route returns the route of the current page.
func (a *App) Route() navigation.Route {
	return a.route
}

func (a *App) open(route navigation.Route) tea.Cmd {
	observability.Logger().Info("navigate", "route", route.String())

	a.route = route
	switch route.Page {
	case navigation.PageInterpret:
		a.page = newInterpretPage(a.ctx, a.keys, a.deps, a.notify)
	case navigation.PageReply:
		a.page = newReplyPage(a.ctx, a.keys, a.deps, route.ReplyParams(), a.notify)
	case navigation.PageStyle:
		a.page = newStylePage(a.ctx, a.keys, a.deps, a.notify)
	default:
		a.route = navigation.To(navigation.PageHome)
		a.page = newHomePage(a.keys)
	}
	if a.width > 0 {
		a.page.SetSize(a.width, a.height)
	}
	return a.page.Init()
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.waitForRedraw, a.page.Init())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.page.SetSize(msg.Width, msg.Height)
		return a, nil

	case redrawMsg:
		return a, a.waitForRedraw

	case navigateMsg:
		return a, a.open(msg.route)

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		if key.Matches(msg, a.keys.Back) && a.route.Page != navigation.PageHome {
			return a, a.open(navigation.To(navigation.PageHome))
		}
	}

	var cmd tea.Cmd
	a.page, cmd = a.page.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	return lipgloss.NewStyle().Padding(1, 2).Render(a.page.View())
}

// Run starts the terminal UI at start and blocks until the user quits.
func Run(ctx context.Context, deps Deps, start navigation.Route) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewApp(ctx, deps, start), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

// contentWidth is the usable width inside the app padding.
func contentWidth(width int) int {
	if width <= 0 {
		return 80
	}
	return max(20, width-4)
}
