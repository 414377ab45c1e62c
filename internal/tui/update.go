package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/sdui/pkg/ui/components"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		for _, s := range m.screens {
			m.clamp(s)
		}
		if m.modal != nil {
			m.clamp(m.modal)
		}
		return m, nil

	case ImageLoadedMsg:
		// Slots already hold the new phase; redrawing is enough.
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back()
		case key.Matches(msg, m.keys.Next):
			m.moveFocus(1)
		case key.Matches(msg, m.keys.Prev):
			m.moveFocus(-1)
		case key.Matches(msg, m.keys.Tap):
			m.tap()
		case key.Matches(msg, m.keys.Up):
			m.scrollBy(-1)
		case key.Matches(msg, m.keys.Down):
			m.scrollBy(1)
		case key.Matches(msg, m.keys.PageUp):
			m.scrollBy(-m.window(m.current()))
		case key.Matches(msg, m.keys.PageDown):
			m.scrollBy(m.window(m.current()))
		case key.Matches(msg, m.keys.Top):
			m.current().offset = 0
		case key.Matches(msg, m.keys.Bottom):
			s := m.current()
			s.offset = m.maxOffset(s)
		}
	}
	return m, nil
}

func (m *Model) back() {
	if m.modal != nil {
		m.modal = nil
		return
	}
	if len(m.screens) > 1 {
		m.screens = m.screens[:len(m.screens)-1]
	}
}

func (m *Model) moveFocus(delta int) {
	s := m.current()
	count := m.taps(s, -1).Len()
	if count == 0 {
		s.focus = 0
		return
	}
	s.focus = ((s.focus+delta)%count + count) % count
}

// tap invokes the focused button, then applies the transitions it queued.
func (m *Model) tap() {
	s := m.current()
	m.taps(s, s.focus).Tap(s.focus)
	for _, t := range m.nav.drain() {
		if t.modal {
			m.modal = newScreen(t.screen, false)
			m.clamp(m.modal)
			continue
		}
		m.modal = nil
		next := newScreen(t.screen, true)
		m.screens = append(m.screens, next)
		m.clamp(next)
	}
}

// taps renders s to collect its tap handlers.
func (m *Model) taps(s *screen, focus int) *components.Taps {
	taps := components.NewTaps(focus)
	width, height := m.area(s)
	m.draw(s, width, height, taps)
	return taps
}

func (m *Model) scrollBy(delta int) {
	s := m.current()
	s.offset += delta
	m.clamp(s)
}

func (m *Model) clamp(s *screen) {
	s.offset = max(min(s.offset, m.maxOffset(s)), 0)
}

func (m *Model) maxOffset(s *screen) int {
	scroll, ok := s.page.Body().(*components.Scroll)
	if !ok {
		return 0
	}
	width, _ := m.area(s)
	total := lipgloss.Height(components.Render(scroll.Content(), m.renderer.Context(width)))
	return max(total-m.window(s), 0)
}

// window is the number of body rows of s that fit on screen.
func (m *Model) window(s *screen) int {
	_, height := m.area(s)
	if s.page.HasNavigationBar() {
		height -= 2
	}
	return max(height, 1)
}

// area is the size s is drawn at: the whole body for stacked screens, a
// centered box for the modal.
func (m *Model) area(s *screen) (int, int) {
	width, height := m.width, m.bodyHeight()
	if s == m.modal {
		fw, fh := modalFrame()
		width = max(width*2/3-fw, 1)
		height = max(height*2/3-fh, 1)
	}
	return width, height
}

func (m *Model) bodyHeight() int {
	return max(m.height-1, 1)
}
