package components

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/sdui/pkg/ui"
)

// BaseComponent provides common functionality for all components.
// Embed this in your component structs to get standard behavior.
type BaseComponent struct {
	style    lipgloss.Style
	strategy StyleStrategy
}

// StyleStrategy defines how styling should be applied to a component.
type StyleStrategy interface {
	Apply(base lipgloss.Style, theme Theme) lipgloss.Style
}

// StyleFunc is a function that applies styling transformations to a lipgloss.Style
// using data from a Theme.
type StyleFunc func(lipgloss.Style, Theme) lipgloss.Style

// CompositeStrategy applies multiple StyleFunc in sequence.
type CompositeStrategy struct {
	funcs []StyleFunc
}

// Apply applies all style functions in order.
func (c CompositeStrategy) Apply(base lipgloss.Style, theme Theme) lipgloss.Style {
	for _, fn := range c.funcs {
		base = fn(base, theme)
	}
	return base
}

// NewCompositeStrategy creates a strategy from multiple style functions.
func NewCompositeStrategy(funcs ...StyleFunc) StyleStrategy {
	return CompositeStrategy{funcs: funcs}
}

// NewBaseComponent creates a new base component with default styling.
func NewBaseComponent() BaseComponent {
	return BaseComponent{
		style:    lipgloss.NewStyle(),
		strategy: CompositeStrategy{},
	}
}

// ComputeStyle returns the computed style for this component using the provided theme.
func (b *BaseComponent) ComputeStyle(theme Theme) lipgloss.Style {
	if b.strategy == nil {
		return b.style
	}
	return b.strategy.Apply(b.style, theme)
}

// SetStyle replaces the raw lipgloss style.
func (b *BaseComponent) SetStyle(style lipgloss.Style) {
	b.style = style
}

// AddAppliers appends additional style appliers to the existing strategy.
func (b *BaseComponent) AddAppliers(appliers ...StyleFunc) {
	if existing, ok := b.strategy.(CompositeStrategy); ok {
		funcs := make([]StyleFunc, len(existing.funcs), len(existing.funcs)+len(appliers))
		copy(funcs, existing.funcs)
		b.strategy = CompositeStrategy{funcs: append(funcs, appliers...)}
		return
	}
	current := b.strategy
	b.strategy = NewCompositeStrategy(func(base lipgloss.Style, theme Theme) lipgloss.Style {
		if current != nil {
			base = current.Apply(base, theme)
		}
		for _, applier := range appliers {
			base = applier(base, theme)
		}
		return base
	})
}

// Constraints defines sizing constraints for layout calculations.
// A negative maximum means unlimited.
type Constraints struct {
	MaxWidth  int
	MaxHeight int
}

// Unconstrained returns constraints with no limits.
func Unconstrained() Constraints {
	return Constraints{MaxWidth: -1, MaxHeight: -1}
}

// WithMaxWidth creates constraints with a maximum width.
func WithMaxWidth(maxWidth int) Constraints {
	return Constraints{MaxWidth: maxWidth, MaxHeight: -1}
}

// HasWidth returns true if there's a width constraint.
func (c Constraints) HasWidth() bool {
	return c.MaxWidth >= 0
}

// HasHeight returns true if there's a height constraint.
func (c Constraints) HasHeight() bool {
	return c.MaxHeight >= 0
}

// Metrics converts document points into terminal cells.
type Metrics struct {
	ColumnPoints float64
	RowPoints    float64
}

// DefaultMetrics treats a cell as 8 points wide and 16 points tall.
func DefaultMetrics() Metrics {
	return Metrics{ColumnPoints: 8, RowPoints: 16}
}

// MaxColumns and MaxRows bound any size taken from a document, so a frame,
// padding or image can never allocate more than this many cells per axis.
const (
	MaxColumns = 1024
	MaxRows    = 512
)

// Columns converts a horizontal length in points to cells.
func (m Metrics) Columns(points float64) int {
	return toCells(points, m.ColumnPoints, MaxColumns)
}

// Rows converts a vertical length in points to cells.
func (m Metrics) Rows(points float64) int {
	return toCells(points, m.RowPoints, MaxRows)
}

func toCells(points, scale float64, limit int) int {
	if scale <= 0 {
		scale = 1
	}
	if math.IsNaN(points) || points <= 0 {
		return 0
	}
	cells := math.Round(points / scale)
	if cells >= float64(limit) {
		return limit
	}
	if cells < 1 {
		return 1
	}
	return int(cells)
}

// clampSize bounds a block size to MaxColumns by MaxRows.
func clampSize(width, height int) (int, int) {
	return min(max(width, 0), MaxColumns), min(max(height, 0), MaxRows)
}

// RenderContext provides layout information, theme and inherited attributes
// to components during rendering.
type RenderContext struct {
	Theme       Theme
	Constraints Constraints
	ParentWidth int
	Metrics     Metrics

	// Visible bounds how far content can extend and still be seen, for
	// content laid out without a constraint inside a scroll.
	Visible Constraints

	// Foreground and Background are inherited by descendants until overridden.
	Foreground lipgloss.TerminalColor
	Background lipgloss.TerminalColor

	// Taps collects tappable components in render order.
	Taps *Taps
}

// DefaultContext returns a render context with the default theme and no constraints.
func DefaultContext() RenderContext {
	return RenderContext{
		Theme:       DefaultTheme(),
		Constraints: Unconstrained(),
		Visible:     Unconstrained(),
		Metrics:     DefaultMetrics(),
	}
}

// WithTheme returns a new context with the specified theme.
func (r RenderContext) WithTheme(theme Theme) RenderContext {
	r.Theme = theme
	return r
}

// WithConstraints returns a new context with the given constraints.
func (r RenderContext) WithConstraints(c Constraints) RenderContext {
	r.Constraints = c
	return r
}

// WithTaps returns a new context collecting taps into taps.
func (r RenderContext) WithTaps(taps *Taps) RenderContext {
	r.Taps = taps
	return r
}

// textStyle is the base style for text-bearing components: inherited colors
// over the theme default.
func (r RenderContext) textStyle() lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(r.Theme.Palette.Text)
	if r.Foreground != nil {
		style = style.Foreground(r.Foreground)
	}
	if r.Background != nil {
		style = style.Background(r.Background)
	}
	return style
}

// ContextualRenderable is a component that can receive layout context.
type ContextualRenderable interface {
	ui.Renderable
	ViewWithContext(ctx RenderContext) string
}

// Render draws r with ctx when it accepts a context, and with View otherwise.
func Render(r ui.Renderable, ctx RenderContext) string {
	if r == nil {
		return ""
	}
	if contextual, ok := r.(ContextualRenderable); ok {
		return contextual.ViewWithContext(ctx)
	}
	return r.View()
}

// Taps records tappable components in render order and tracks which one has focus.
type Taps struct {
	focus    int
	handlers []func()
}

// NewTaps starts a collection with the given focus index. A negative index focuses nothing.
func NewTaps(focus int) *Taps {
	return &Taps{focus: focus}
}

func (t *Taps) register(handler func()) (focused bool) {
	if t == nil {
		return false
	}
	index := len(t.handlers)
	t.handlers = append(t.handlers, handler)
	return index == t.focus
}

// Len returns the number of tappable components collected.
func (t *Taps) Len() int {
	if t == nil {
		return 0
	}
	return len(t.handlers)
}

// Focus returns the focused index.
func (t *Taps) Focus() int {
	if t == nil {
		return -1
	}
	return t.focus
}

// Tap invokes the handler at index and reports whether one existed.
func (t *Taps) Tap(index int) bool {
	if t == nil || index < 0 || index >= len(t.handlers) {
		return false
	}
	if handler := t.handlers[index]; handler != nil {
		handler()
	}
	return true
}
