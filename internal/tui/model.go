// Package tui hosts rendered scenes in a terminal: buttons take focus and
// taps, pushed screens stack up and modal screens float over the current one.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/sdui/internal/app"
	"github.com/alexisbeaulieu97/sdui/pkg/action"
	"github.com/alexisbeaulieu97/sdui/pkg/render"
	"github.com/alexisbeaulieu97/sdui/pkg/ui/components"
)

// screen is one entry of the navigation stack.
type screen struct {
	title  string
	page   *components.Page
	offset int
	focus  int
}

// Model is the bubbletea model of the scene viewer.
type Model struct {
	renderer *render.Renderer
	nav      *Navigator

	screens []*screen
	modal   *screen

	keys KeyMap
	help help.Model

	width  int
	height int
}

// New creates a model showing root and attaches a queueing navigator to the
// service's host.
func New(svc *app.Service, root action.Screen) Model {
	nav := NewNavigator()
	svc.Host.Attach(nav)
	return Model{
		renderer: svc.Renderer,
		nav:      nav,
		screens:  []*screen{newScreen(root, false)},
		keys:     DefaultKeyMap(),
		help:     help.New(),
		width:    80,
		height:   24,
	}
}

func newScreen(s action.Screen, back bool) *screen {
	page, ok := s.Content.(*components.Page)
	if !ok {
		page = components.NewPage(components.NewScroll(s.Content).WithIndicator(false))
		if s.Title != "" {
			page.WithNavigationBar(s.Title, back)
		}
	} else if page.HasNavigationBar() {
		page.WithNavigationBar(s.Title, back)
	}
	return &screen{title: s.Title, page: page}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Depth returns the number of screens on the navigation stack.
func (m Model) Depth() int {
	return len(m.screens)
}

// Title returns the title of the screen that has input.
func (m Model) Title() string {
	return m.current().title
}

// Presenting reports whether a modal screen is shown.
func (m Model) Presenting() bool {
	return m.modal != nil
}

// Focus returns the focused tap index of the screen that has input.
func (m Model) Focus() int {
	return m.current().focus
}

// Offset returns the scroll offset of the screen that has input.
func (m Model) Offset() int {
	return m.current().offset
}

func (m Model) current() *screen {
	if m.modal != nil {
		return m.modal
	}
	return m.screens[len(m.screens)-1]
}

// Run starts a full-screen program for m and forwards image updates from
// notifier to it until the program exits or ctx is cancelled.
func Run(ctx context.Context, m Model, notifier *Notifier, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	if notifier != nil {
		notifier.Attach(p)
		defer notifier.Attach(nil)
	}
	_, err := p.Run()
	return err
}
