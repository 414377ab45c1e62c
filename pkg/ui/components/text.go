package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Text is a primitive component for rendering styled text content.
// Text wraps to the width constraint and honors an optional line limit.
type Text struct {
	BaseComponent
	content   string
	lineLimit int
}

// NewText creates a new text component with the given content.
func NewText(content string) *Text {
	return &Text{
		BaseComponent: NewBaseComponent(),
		content:       content,
	}
}

// View renders the text with its styling.
func (t *Text) View() string {
	return t.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the text with the given theme context.
func (t *Text) ViewWithContext(ctx RenderContext) string {
	style := t.ComputeStyle(ctx.Theme).Inherit(ctx.textStyle())
	if ctx.Foreground != nil {
		style = style.Foreground(ctx.Foreground)
	}

	content := t.content
	if ctx.Constraints.HasWidth() && ctx.Constraints.MaxWidth > 0 && lipgloss.Width(content) > ctx.Constraints.MaxWidth {
		content = lipgloss.NewStyle().Width(ctx.Constraints.MaxWidth).Render(content)
		content = trimRight(content)
	}
	if t.lineLimit > 0 {
		content = limitLines(content, t.lineLimit)
	}
	return style.Render(content)
}

// Content returns the text content.
func (t *Text) Content() string {
	return t.content
}

// WithLineLimit caps the number of rendered lines. Zero means unlimited.
func (t *Text) WithLineLimit(limit int) *Text {
	if limit < 0 {
		limit = 0
	}
	t.lineLimit = limit
	return t
}

// WithStyle sets the lipgloss style directly.
func (t *Text) WithStyle(style lipgloss.Style) *Text {
	t.SetStyle(style)
	return t
}

// WithAppliers applies theme-based style modifiers.
func (t *Text) WithAppliers(appliers ...StyleFunc) *Text {
	t.AddAppliers(appliers...)
	return t
}

func limitLines(content string, limit int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= limit {
		return content
	}
	lines = lines[:limit]
	last := lines[limit-1]
	width := ansi.StringWidth(last)
	if width > 0 {
		last = ansi.Truncate(last, width-1, "") + "…"
	} else {
		last = "…"
	}
	lines[limit-1] = last
	return strings.Join(lines, "\n")
}

func trimRight(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
