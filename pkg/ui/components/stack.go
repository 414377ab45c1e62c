package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/sdui/pkg/ui"
)

// Direction specifies the layout direction for a Stack.
type Direction int

const (
	DirectionVertical Direction = iota
	DirectionHorizontal
)

// Flexer is implemented by components that absorb leftover main-axis space
// in a stack, such as spacers.
type Flexer interface {
	ui.Renderable
	Flexible() bool
	Flex(ctx RenderContext, width, height int) string
}

// Builder produces a child on demand. Lazy stacks call builders only for
// children that fall inside the visible main-axis extent.
type Builder func() ui.Renderable

// Stack arranges children in a single direction. An eager stack renders all
// of its children; a lazy stack materializes children from builders until the
// main-axis budget is used up.
type Stack struct {
	BaseComponent
	children     []ui.Renderable
	builders     []Builder
	lazy         bool
	direction    Direction
	gap          int
	crossAlign   lipgloss.Position
	materialized int
}

// NewStack creates a new stack with default vertical layout.
func NewStack(children ...ui.Renderable) *Stack {
	return &Stack{
		BaseComponent: NewBaseComponent(),
		children:      children,
		direction:     DirectionVertical,
		crossAlign:    lipgloss.Center,
	}
}

// VStack creates a vertical stack.
func VStack(children ...ui.Renderable) *Stack {
	return NewStack(children...).WithDirection(DirectionVertical)
}

// HStack creates a horizontal stack.
func HStack(children ...ui.Renderable) *Stack {
	return NewStack(children...).WithDirection(DirectionHorizontal)
}

// NewLazyStack creates a stack that builds children on demand.
func NewLazyStack(direction Direction, builders ...Builder) *Stack {
	s := NewStack().WithDirection(direction)
	s.lazy = true
	s.builders = builders
	return s
}

// View renders the stack and its children.
func (s *Stack) View() string {
	return s.ViewWithContext(DefaultContext())
}

type stackItem struct {
	view string
	flex Flexer
}

// ViewWithContext renders the stack with layout context.
func (s *Stack) ViewWithContext(ctx RenderContext) string {
	budget := s.budget(ctx)
	count := len(s.children)
	if s.lazy {
		count = len(s.builders)
	}

	items := make([]stackItem, 0, count)
	used := 0
	flexCount := 0
	s.materialized = 0
	for i := 0; i < count; i++ {
		if s.lazy && budget > 0 && used >= budget {
			break
		}
		child := s.child(i)
		if child == nil {
			continue
		}
		if len(items) > 0 {
			used += s.gap
		}

		if flex, ok := child.(Flexer); ok && flex.Flexible() && !s.lazy {
			items = append(items, stackItem{flex: flex})
			flexCount++
			continue
		}

		view := Render(child, s.childContext(ctx, budget, used))
		items = append(items, stackItem{view: view})
		used += s.mainSize(view)
	}

	if len(items) == 0 {
		return s.ComputeStyle(ctx.Theme).Render("")
	}

	leftover := 0
	if flexCount > 0 && budget > 0 {
		leftover = max(budget-used, 0)
	}
	n := 0
	for i := range items {
		if items[i].flex == nil {
			continue
		}
		share := leftover / max(flexCount, 1)
		if n < leftover%max(flexCount, 1) {
			share++
		}
		n++
		if s.direction == DirectionHorizontal {
			items[i].view = items[i].flex.Flex(ctx, max(share, 1), 1)
		} else {
			items[i].view = items[i].flex.Flex(ctx, 0, max(share, 1))
		}
	}

	views := make([]string, len(items))
	for i, item := range items {
		views[i] = item.view
	}
	return s.ComputeStyle(ctx.Theme).Render(s.join(views))
}

func (s *Stack) child(i int) ui.Renderable {
	if !s.lazy {
		return s.children[i]
	}
	build := s.builders[i]
	if build == nil {
		return nil
	}
	s.materialized++
	return build()
}

// budget is the main-axis extent children may occupy, or -1 when unbounded.
func (s *Stack) budget(ctx RenderContext) int {
	constraint, visible := ctx.Constraints.MaxHeight, ctx.Visible.MaxHeight
	if s.direction == DirectionHorizontal {
		constraint, visible = ctx.Constraints.MaxWidth, ctx.Visible.MaxWidth
	}
	if constraint > 0 {
		return constraint
	}
	if s.lazy && visible > 0 {
		return visible
	}
	return -1
}

func (s *Stack) childContext(ctx RenderContext, budget, used int) RenderContext {
	child := ctx
	if budget <= 0 {
		return child
	}
	remaining := max(budget-used, 0)
	if s.direction == DirectionHorizontal {
		if ctx.Constraints.MaxWidth > 0 {
			child.Constraints.MaxWidth = remaining
		}
		if ctx.Visible.MaxWidth > 0 {
			child.Visible.MaxWidth = max(ctx.Visible.MaxWidth-used, 0)
		}
	} else {
		if ctx.Constraints.MaxHeight > 0 {
			child.Constraints.MaxHeight = remaining
		}
		if ctx.Visible.MaxHeight > 0 {
			child.Visible.MaxHeight = max(ctx.Visible.MaxHeight-used, 0)
		}
	}
	return child
}

func (s *Stack) mainSize(view string) int {
	if s.direction == DirectionHorizontal {
		return lipgloss.Width(view)
	}
	return lipgloss.Height(view)
}

func (s *Stack) join(views []string) string {
	if s.direction == DirectionHorizontal {
		if s.gap > 0 {
			views = interleave(views, strings.Repeat(" ", s.gap))
		}
		return lipgloss.JoinHorizontal(s.crossAlign, views...)
	}
	if s.gap > 0 {
		views = interleave(views, strings.Repeat("\n", s.gap-1))
	}
	return lipgloss.JoinVertical(s.crossAlign, views...)
}

func interleave(views []string, sep string) []string {
	out := make([]string, 0, len(views)*2-1)
	for i, view := range views {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, view)
	}
	return out
}

// WithDirection sets the layout direction.
func (s *Stack) WithDirection(dir Direction) *Stack {
	s.direction = dir
	return s
}

// WithGap sets the spacing between children in cells.
func (s *Stack) WithGap(gap int) *Stack {
	s.gap = max(gap, 0)
	return s
}

// WithCrossAlign sets the cross axis alignment. For a vertical stack this is
// lipgloss.Left, Center or Right; for a horizontal stack Top, Center or Bottom.
func (s *Stack) WithCrossAlign(pos lipgloss.Position) *Stack {
	s.crossAlign = pos
	return s
}

// WithStyle sets the container style.
func (s *Stack) WithStyle(style lipgloss.Style) *Stack {
	s.SetStyle(style)
	return s
}

// Add appends children to the stack.
func (s *Stack) Add(children ...ui.Renderable) *Stack {
	s.children = append(s.children, children...)
	return s
}

// Direction returns the layout direction.
func (s *Stack) Direction() Direction {
	return s.direction
}

// Lazy reports whether children are built on demand.
func (s *Stack) Lazy() bool {
	return s.lazy
}

// Len returns the number of children or builders.
func (s *Stack) Len() int {
	if s.lazy {
		return len(s.builders)
	}
	return len(s.children)
}

// Materialized returns how many builders the last render invoked.
func (s *Stack) Materialized() int {
	return s.materialized
}
