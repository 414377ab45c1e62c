package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/sdui/pkg/ui"
)

// ScrollAxis is the direction a Scroll moves in.
type ScrollAxis int

const (
	ScrollVertical ScrollAxis = iota
	ScrollHorizontal
)

// Scroll shows a window onto its content. The window is the context's
// constraint along the scroll axis; when that is unbounded the content is
// shown whole. Content is laid out unconstrained along the scroll axis.
type Scroll struct {
	BaseComponent
	content       ui.Renderable
	axis          ScrollAxis
	showIndicator bool
	offset        int
}

// NewScroll creates a vertical scroll around content.
func NewScroll(content ui.Renderable) *Scroll {
	return &Scroll{BaseComponent: NewBaseComponent(), content: content}
}

// WithAxis sets the scroll direction.
func (s *Scroll) WithAxis(axis ScrollAxis) *Scroll {
	s.axis = axis
	return s
}

// WithIndicator shows or hides the scroll indicator.
func (s *Scroll) WithIndicator(show bool) *Scroll {
	s.showIndicator = show
	return s
}

// WithOffset sets the scroll position in cells along the axis.
func (s *Scroll) WithOffset(offset int) *Scroll {
	s.offset = max(offset, 0)
	return s
}

// Axis returns the scroll direction.
func (s *Scroll) Axis() ScrollAxis {
	return s.axis
}

// ShowsIndicator reports whether the indicator is drawn.
func (s *Scroll) ShowsIndicator() bool {
	return s.showIndicator
}

// Content returns the scrolled content.
func (s *Scroll) Content() ui.Renderable {
	return s.content
}

// View renders the scroll.
func (s *Scroll) View() string {
	return s.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the visible window of the content.
func (s *Scroll) ViewWithContext(ctx RenderContext) string {
	inner := ctx
	if s.axis == ScrollHorizontal {
		if ctx.Constraints.HasWidth() {
			inner.Visible.MaxWidth = s.offset + ctx.Constraints.MaxWidth
		}
		inner.Constraints.MaxWidth = -1
	} else {
		if ctx.Constraints.HasHeight() {
			inner.Visible.MaxHeight = s.offset + ctx.Constraints.MaxHeight
		}
		inner.Constraints.MaxHeight = -1
	}
	content := Render(s.content, inner)
	style := s.ComputeStyle(ctx.Theme)

	contentWidth, contentHeight := lipgloss.Size(content)
	if s.axis == ScrollHorizontal {
		window := ctx.Constraints.MaxWidth
		if !ctx.Constraints.HasWidth() || window <= 0 || contentWidth <= window {
			return style.Render(content)
		}
		vp := viewport.New(window, contentHeight)
		vp.SetContent(content)
		vp.SetXOffset(min(s.offset, contentWidth-window))
		out := vp.View()
		if s.showIndicator {
			out = lipgloss.JoinVertical(lipgloss.Left, out, s.indicator(ctx, window, contentWidth, min(s.offset, contentWidth-window)))
		}
		return style.Render(out)
	}

	window := ctx.Constraints.MaxHeight
	if !ctx.Constraints.HasHeight() || window <= 0 || contentHeight <= window {
		return style.Render(content)
	}
	vp := viewport.New(contentWidth, window)
	vp.SetContent(content)
	vp.SetYOffset(s.offset)
	out := vp.View()
	if s.showIndicator {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, s.indicator(ctx, window, contentHeight, vp.YOffset))
	}
	return style.Render(out)
}

// indicator draws a track of length window with a thumb proportional to the
// visible share of total.
func (s *Scroll) indicator(ctx RenderContext, window, total, offset int) string {
	thumb := max(window*window/total, 1)
	start := 0
	if total > window {
		start = offset * (window - thumb) / (total - window)
	}
	track := lipgloss.NewStyle().Foreground(ctx.Theme.Palette.Muted)
	cells := make([]string, window)
	for i := range cells {
		if i >= start && i < start+thumb {
			cells[i] = "█"
		} else {
			cells[i] = "░"
		}
	}
	if s.axis == ScrollHorizontal {
		return track.Render(strings.Join(cells, ""))
	}
	return track.Render(strings.Join(cells, "\n"))
}
