package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/alexisbeaulieu97/sdui/pkg/ui"
)

// ZStack overlays its children in painter's order: later children draw over
// earlier ones. Each child is positioned inside the union bounds by the
// stack's two-dimensional alignment.
type ZStack struct {
	BaseComponent
	layers     []ui.Renderable
	horizontal lipgloss.Position
	vertical   lipgloss.Position
}

// NewZStack creates a centered overlay stack.
func NewZStack(layers ...ui.Renderable) *ZStack {
	return &ZStack{
		BaseComponent: NewBaseComponent(),
		layers:        layers,
		horizontal:    lipgloss.Center,
		vertical:      lipgloss.Center,
	}
}

// WithAlignment sets where smaller layers sit inside the stack bounds.
func (z *ZStack) WithAlignment(horizontal, vertical lipgloss.Position) *ZStack {
	z.horizontal = horizontal
	z.vertical = vertical
	return z
}

// Len returns the number of layers.
func (z *ZStack) Len() int {
	return len(z.layers)
}

// View renders the stack.
func (z *ZStack) View() string {
	return z.ViewWithContext(DefaultContext())
}

// ViewWithContext renders every layer with ctx and composites them.
func (z *ZStack) ViewWithContext(ctx RenderContext) string {
	views := make([]string, 0, len(z.layers))
	width, height := 0, 0
	for _, layer := range z.layers {
		if layer == nil {
			continue
		}
		view := Render(layer, ctx)
		w, h := lipgloss.Size(view)
		width = max(width, w)
		height = max(height, h)
		views = append(views, view)
	}
	if len(views) == 0 {
		return z.ComputeStyle(ctx.Theme).Render("")
	}

	canvas := blank(width, height)
	for _, view := range views {
		w, h := lipgloss.Size(view)
		x := offset(width-w, z.horizontal)
		y := offset(height-h, z.vertical)
		canvas = Overlay(canvas, view, x, y)
	}
	return z.ComputeStyle(ctx.Theme).Render(canvas)
}

func offset(free int, pos lipgloss.Position) int {
	if free <= 0 {
		return 0
	}
	return int(math.Round(float64(free) * float64(pos)))
}

// Overlay draws top onto base with its top-left corner at column x, row y.
// Cells of base outside each line of top are kept; the result is never
// larger than base.
func Overlay(base, top string, x, y int) string {
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")
	for i, line := range topLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		under := baseLines[row]
		underWidth := ansi.StringWidth(under)
		if x >= underWidth {
			continue
		}
		lineWidth := ansi.StringWidth(line)
		if x+lineWidth > underWidth {
			line = ansi.Truncate(line, underWidth-x, "")
			lineWidth = ansi.StringWidth(line)
		}
		left := ansi.Truncate(under, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(under, x+lineWidth, "")
		baseLines[row] = left + line + right
	}
	return strings.Join(baseLines, "\n")
}
