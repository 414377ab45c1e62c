package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/sdui/pkg/action"
)

type transition struct {
	screen action.Screen
	modal  bool
}

// Navigator queues transitions requested during a tap. The model drains the
// queue after the tap returns, so dispatch never re-enters the event loop.
type Navigator struct {
	mu      sync.Mutex
	pending []transition
}

var _ action.Navigator = (*Navigator)(nil)

// NewNavigator creates an empty navigator.
func NewNavigator() *Navigator {
	return &Navigator{}
}

// Push queues a pushed screen.
func (n *Navigator) Push(s action.Screen) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, transition{screen: s})
}

// Present queues a modal screen.
func (n *Navigator) Present(s action.Screen) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, transition{screen: s, modal: true})
}

func (n *Navigator) drain() []transition {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}

// ImageLoadedMsg asks the model to redraw after an image finished loading.
type ImageLoadedMsg struct{}

// Notifier forwards image completions to a running program. Completions
// before Attach are dropped; the first frame shows the current phase anyway.
type Notifier struct {
	mu      sync.Mutex
	program *tea.Program
}

// NewNotifier creates a detached notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Attach sets the program to notify.
func (n *Notifier) Attach(p *tea.Program) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.program = p
}

// Notify sends ImageLoadedMsg to the attached program.
func (n *Notifier) Notify() {
	n.mu.Lock()
	p := n.program
	n.mu.Unlock()
	if p != nil {
		p.Send(ImageLoadedMsg{})
	}
}
