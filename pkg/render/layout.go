package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/sdui/pkg/sdui"
	"github.com/alexisbeaulieu97/sdui/pkg/ui"
	"github.com/alexisbeaulieu97/sdui/pkg/ui/components"
)

// layout arranges a container's views according to its layout descriptor.
// Lazy arrangements defer building each child until the stack reaches it.
func (r *Renderer) layout(p *pass, c *sdui.Container, path string) ui.Renderable {
	l := c.Layout
	views := join(path, "views")

	switch arrangement := l.Arrangement(); arrangement {
	case sdui.ArrangeHorizontal, sdui.ArrangeVertical:
		children := make([]ui.Renderable, len(c.Views))
		for i, v := range c.Views {
			children[i] = r.view(p, v, index(views, i))
		}
		return r.stack(components.NewStack(children...), arrangement, l)

	case sdui.ArrangeLazyHorizontal, sdui.ArrangeLazyVertical:
		dir := components.DirectionVertical
		if arrangement == sdui.ArrangeLazyHorizontal {
			dir = components.DirectionHorizontal
		}
		builders := make([]components.Builder, len(c.Views))
		for i, v := range c.Views {
			v, childPath := v, index(views, i)
			builders[i] = func() ui.Renderable {
				return r.view(p, v, childPath)
			}
		}
		return r.stack(components.NewLazyStack(dir, builders...), arrangement, l)

	case sdui.ArrangeOverlaid:
		layers := make([]ui.Renderable, len(c.Views))
		for i, v := range c.Views {
			layers[i] = r.view(p, v, index(views, i))
		}
		align := sdui.ParseAlignment(l.Alignment)
		return components.NewZStack(layers...).WithAlignment(horizontalPosition(align.Horizontal), verticalPosition(align.Vertical))

	default:
		return r.placeholder(p, c.ComponentID, fmt.Sprintf("unknown layout type %q", l.Type), MsgLayoutError)
	}
}

func (r *Renderer) stack(s *components.Stack, arrangement sdui.Arrangement, l sdui.Layout) *components.Stack {
	spacing := r.gap
	if l.Spacing != nil {
		spacing = *l.Spacing
	}
	if arrangement == sdui.ArrangeHorizontal || arrangement == sdui.ArrangeLazyHorizontal {
		return s.WithDirection(components.DirectionHorizontal).
			WithGap(r.metrics.Columns(spacing)).
			WithCrossAlign(verticalPosition(sdui.ParseVerticalAlignment(l.Alignment)))
	}
	return s.WithDirection(components.DirectionVertical).
		WithGap(r.metrics.Rows(spacing)).
		WithCrossAlign(horizontalPosition(sdui.ParseHorizontalAlignment(l.Alignment)))
}

func horizontalPosition(a sdui.HorizontalAlignment) lipgloss.Position {
	switch a {
	case sdui.AlignLeading:
		return lipgloss.Left
	case sdui.AlignTrailing:
		return lipgloss.Right
	default:
		return lipgloss.Center
	}
}

func verticalPosition(a sdui.VerticalAlignment) lipgloss.Position {
	switch a {
	case sdui.AlignTop:
		return lipgloss.Top
	case sdui.AlignBottom:
		return lipgloss.Bottom
	default:
		return lipgloss.Center
	}
}
