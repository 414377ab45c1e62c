package components

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/sdui/pkg/ui"
)

// Unset marks an absent size in frames. Infinite marks an unbounded maximum.
const (
	Unset    = -1
	Infinite = math.MaxInt32
)

// Modifier is one step of a style pipeline. Apply receives the context for
// this step and next, which renders everything the modifier wraps.
type Modifier struct {
	Name  string
	Fixed bool
	Apply func(ctx RenderContext, next func(RenderContext) string) string
}

// Modified renders content through a pipeline of modifiers. The first
// modifier wraps the content directly; each later one wraps the result of
// the ones before it.
type Modified struct {
	content   ui.Renderable
	modifiers []Modifier
}

// Modify wraps content with modifiers, innermost first.
func Modify(content ui.Renderable, modifiers ...Modifier) *Modified {
	return &Modified{content: content, modifiers: modifiers}
}

// Content returns the wrapped renderable.
func (m *Modified) Content() ui.Renderable {
	return m.content
}

// Steps returns the modifier names, innermost first.
func (m *Modified) Steps() []string {
	names := make([]string, len(m.modifiers))
	for i, mod := range m.modifiers {
		names[i] = mod.Name
	}
	return names
}

// View renders the pipeline with the default context.
func (m *Modified) View() string {
	return m.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the pipeline.
func (m *Modified) ViewWithContext(ctx RenderContext) string {
	return m.run(ctx, func(c RenderContext) string {
		return Render(m.content, c)
	})
}

// Flexible reports whether the wrapped content flexes and no modifier fixes its size.
func (m *Modified) Flexible() bool {
	flex, ok := m.content.(Flexer)
	if !ok || !flex.Flexible() {
		return false
	}
	for _, mod := range m.modifiers {
		if mod.Fixed {
			return false
		}
	}
	return true
}

// Flex renders the pipeline around the content grown to width by height.
func (m *Modified) Flex(ctx RenderContext, width, height int) string {
	flex, ok := m.content.(Flexer)
	if !ok {
		return m.ViewWithContext(ctx)
	}
	return m.run(ctx, func(c RenderContext) string {
		return flex.Flex(c, width, height)
	})
}

func (m *Modified) run(ctx RenderContext, inner func(RenderContext) string) string {
	render := inner
	for _, mod := range m.modifiers {
		if mod.Apply == nil {
			continue
		}
		apply, next := mod.Apply, render
		render = func(c RenderContext) string {
			return apply(c, next)
		}
	}
	return render(ctx)
}

// ForegroundModifier sets the inherited foreground color.
func ForegroundModifier(color lipgloss.TerminalColor) Modifier {
	return Modifier{Name: "foreground", Apply: func(ctx RenderContext, next func(RenderContext) string) string {
		ctx.Foreground = color
		return next(ctx)
	}}
}

// FrameModifier fixes the width and/or height in cells. Unset leaves an axis
// sized by its content. Content is centered in the frame and clipped to it.
func FrameModifier(width, height int) Modifier {
	return Modifier{Name: "frame", Fixed: width != Unset || height != Unset, Apply: func(ctx RenderContext, next func(RenderContext) string) string {
		inner := ctx
		if width != Unset {
			inner.Constraints.MaxWidth = width
		}
		if height != Unset {
			inner.Constraints.MaxHeight = height
		}
		out := next(inner)
		w, h := lipgloss.Size(out)
		if width != Unset {
			w = width
		}
		if height != Unset {
			h = height
		}
		return place(out, w, h)
	}}
}

// FlexFrame bounds a component per axis. Fields hold cells, Unset or Infinite.
type FlexFrame struct {
	MinWidth, IdealWidth, MaxWidth    int
	MinHeight, IdealHeight, MaxHeight int
}

// NewFlexFrame returns a frame with every bound unset.
func NewFlexFrame() FlexFrame {
	return FlexFrame{Unset, Unset, Unset, Unset, Unset, Unset}
}

// FlexFrameModifier sizes each axis within its bounds. An axis with a
// maximum takes the space its parent offers, clamped to the bounds; an axis
// without one keeps its content size, raised to the minimum.
func FlexFrameModifier(f FlexFrame) Modifier {
	fixed := f.MaxWidth != Unset || f.MaxHeight != Unset || f.MinWidth != Unset || f.MinHeight != Unset
	return Modifier{Name: "extreamFrame", Fixed: fixed, Apply: func(ctx RenderContext, next func(RenderContext) string) string {
		inner := ctx
		if f.MaxWidth != Unset && f.MaxWidth != Infinite && (ctx.Constraints.MaxWidth < 0 || f.MaxWidth < ctx.Constraints.MaxWidth) {
			inner.Constraints.MaxWidth = f.MaxWidth
		}
		if f.MaxHeight != Unset && f.MaxHeight != Infinite && (ctx.Constraints.MaxHeight < 0 || f.MaxHeight < ctx.Constraints.MaxHeight) {
			inner.Constraints.MaxHeight = f.MaxHeight
		}
		out := next(inner)
		w, h := lipgloss.Size(out)
		w = flexAxis(w, ctx.Constraints.MaxWidth, f.MinWidth, f.IdealWidth, f.MaxWidth)
		h = flexAxis(h, ctx.Constraints.MaxHeight, f.MinHeight, f.IdealHeight, f.MaxHeight)
		return place(out, w, h)
	}}
}

func flexAxis(content, available, minimum, ideal, maximum int) int {
	target := content
	switch {
	case maximum != Unset:
		switch {
		case available > 0:
			target = available
		case ideal != Unset:
			target = ideal
		}
		if maximum != Infinite && target > maximum {
			target = maximum
		}
	case ideal != Unset && available <= 0:
		target = ideal
	}
	if minimum != Unset && minimum != Infinite && target < minimum {
		target = minimum
	}
	if target == Infinite {
		target = content
	}
	return max(target, 0)
}

// BackgroundModifier fills the block behind the content and makes the color
// the inherited background.
func BackgroundModifier(color lipgloss.TerminalColor) Modifier {
	return Modifier{Name: "background", Apply: func(ctx RenderContext, next func(RenderContext) string) string {
		ctx.Background = color
		out := next(ctx)
		if out == "" {
			return out
		}
		return lipgloss.NewStyle().Background(color).Render(out)
	}}
}

// CornerRadiusModifier clips the corners of the block.
func CornerRadiusModifier() Modifier {
	return Modifier{Name: "cornerRadius", Apply: func(ctx RenderContext, next func(RenderContext) string) string {
		return ClipCorners(next(ctx))
	}}
}

// OverlayModifier draws overlay centered over the content, sized to and
// clipped by the content's bounds.
func OverlayModifier(overlay ui.Renderable) Modifier {
	return Modifier{Name: "overlay", Apply: func(ctx RenderContext, next func(RenderContext) string) string {
		out := next(ctx)
		w, h := lipgloss.Size(out)
		overCtx := ctx
		overCtx.Constraints = Constraints{MaxWidth: w, MaxHeight: h}
		over := Render(overlay, overCtx)
		ow, oh := lipgloss.Size(over)
		return Overlay(out, over, offset(w-ow, lipgloss.Center), offset(h-oh, lipgloss.Center))
	}}
}

// PaddingModifier insets the content by the given cells.
func PaddingModifier(top, right, bottom, left int) Modifier {
	return Modifier{Name: "padding", Apply: func(ctx RenderContext, next func(RenderContext) string) string {
		inner := ctx
		if inner.Constraints.MaxWidth > 0 {
			inner.Constraints.MaxWidth = max(inner.Constraints.MaxWidth-left-right, 0)
		}
		if inner.Constraints.MaxHeight > 0 {
			inner.Constraints.MaxHeight = max(inner.Constraints.MaxHeight-top-bottom, 0)
		}
		return lipgloss.NewStyle().Padding(top, right, bottom, left).Render(next(inner))
	}}
}

func place(out string, width, height int) string {
	width, height = clampSize(width, height)
	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, out)
	return lipgloss.NewStyle().MaxWidth(width).MaxHeight(height).Render(placed)
}
