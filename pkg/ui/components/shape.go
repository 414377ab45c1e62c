package components

import (
	"github.com/charmbracelet/lipgloss"
)

// Shape is a filled rectangle, optionally with rounded corners and a stroke.
// Shapes are greedy: without an explicit size they take the full width
// constraint and one row.
type Shape struct {
	BaseComponent
	rounded     bool
	stroke      lipgloss.TerminalColor
	strokeWidth float64
}

// NewRectangle creates a square-cornered shape.
func NewRectangle() *Shape {
	return &Shape{BaseComponent: NewBaseComponent()}
}

// NewRoundedRectangle creates a shape with rounded corners.
func NewRoundedRectangle() *Shape {
	return &Shape{BaseComponent: NewBaseComponent(), rounded: true}
}

// WithStroke outlines the shape. A zero line width draws no outline.
func (s *Shape) WithStroke(color lipgloss.TerminalColor, lineWidth float64) *Shape {
	s.stroke = color
	s.strokeWidth = lineWidth
	return s
}

// Rounded reports whether the shape has rounded corners.
func (s *Shape) Rounded() bool {
	return s.rounded
}

// View renders the shape at its minimum size.
func (s *Shape) View() string {
	return s.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the shape filling the constrained area. The fill
// uses the inherited foreground, as shapes draw with the foreground style.
func (s *Shape) ViewWithContext(ctx RenderContext) string {
	width := 1
	if ctx.Constraints.HasWidth() && ctx.Constraints.MaxWidth > 0 {
		width = ctx.Constraints.MaxWidth
	}
	height := 1
	if ctx.Constraints.HasHeight() && ctx.Constraints.MaxHeight > 0 {
		height = ctx.Constraints.MaxHeight
	}

	style := s.ComputeStyle(ctx.Theme)
	stroked := s.stroke != nil && s.strokeWidth > 0
	if stroked {
		border := ctx.Theme.Borders.Square
		if s.rounded {
			border = ctx.Theme.Borders.Rounded
		}
		if s.strokeWidth >= 3 {
			border = ctx.Theme.Borders.Thick
		}
		style = style.Border(border).BorderForeground(s.stroke)
		width = max(width-2, 0)
		height = max(height-2, 0)
	}

	fill := ctx.Foreground
	if fill == nil {
		fill = ctx.Theme.Palette.Text
	}
	body := lipgloss.NewStyle().Background(fill).Render(blank(width, height))
	if width == 0 || height == 0 {
		body = blank(width, height)
	}
	return style.Render(body)
}
