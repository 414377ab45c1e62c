package components

import (
	"strings"
)

// Spacer is flexible empty space. Inside a stack with a known main-axis
// budget it grows to absorb the leftover space; elsewhere it renders at its
// minimum size.
type Spacer struct {
	BaseComponent
	width  int
	height int
}

// NewSpacer creates a spacer with the given minimum dimensions.
func NewSpacer(width, height int) *Spacer {
	return &Spacer{
		BaseComponent: NewBaseComponent(),
		width:         width,
		height:        height,
	}
}

// View renders the spacer as empty space.
func (s *Spacer) View() string {
	return blank(s.width, s.height)
}

// ViewWithContext renders the spacer, filling with the inherited background.
func (s *Spacer) ViewWithContext(ctx RenderContext) string {
	out := s.View()
	if ctx.Background != nil && out != "" {
		return ctx.textStyle().Render(out)
	}
	return out
}

// Width returns the spacer width.
func (s *Spacer) Width() int {
	return s.width
}

// Height returns the spacer height.
func (s *Spacer) Height() int {
	return s.height
}

// Flexible reports that spacers absorb leftover stack space.
func (s *Spacer) Flexible() bool {
	return true
}

// Flex renders the spacer grown to at least width by height.
func (s *Spacer) Flex(ctx RenderContext, width, height int) string {
	return s.grown(width, height).ViewWithContext(ctx)
}

// grown returns a copy sized along one axis.
func (s *Spacer) grown(width, height int) *Spacer {
	cp := *s
	cp.width = max(cp.width, width)
	cp.height = max(cp.height, height)
	return &cp
}

func blank(width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == 0 && height == 0 {
		return ""
	}
	if height == 0 {
		height = 1
	}
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
