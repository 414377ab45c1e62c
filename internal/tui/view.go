package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/sdui/pkg/ui/components"
)

// View implements tea.Model.
func (m Model) View() string {
	base := m.screens[len(m.screens)-1]
	focus := base.focus
	if m.modal != nil {
		focus = -1
	}
	width, height := m.area(base)
	body := lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		m.draw(base, width, height, components.NewTaps(focus)))

	if m.modal != nil {
		mw, mh := m.area(m.modal)
		box := modalStyle.Render(m.draw(m.modal, mw, mh, components.NewTaps(m.modal.focus)))
		bw, bh := lipgloss.Size(box)
		body = components.Overlay(body, box, max((width-bw)/2, 0), max((height-bh)/2, 0))
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, helpStyle.Render(m.help.View(m.keys)))
}

// draw renders s at its scroll offset within width by height cells.
func (m *Model) draw(s *screen, width, height int, taps *components.Taps) string {
	if scroll, ok := s.page.Body().(*components.Scroll); ok {
		scroll.WithOffset(s.offset)
	}
	ctx := m.renderer.Context(width).WithTaps(taps)
	ctx.Constraints.MaxHeight = height
	return components.Render(s.page, ctx)
}
