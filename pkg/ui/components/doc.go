// Package components provides the lipgloss primitives a rendered scene is
// built from.
//
// # Rendering
//
// Every component implements ui.Renderable. Components that depend on layout
// also implement ContextualRenderable and receive a RenderContext carrying the
// theme, size constraints, point-to-cell metrics, inherited colors and the tap
// collector:
//
//	ctx := components.DefaultContext().WithConstraints(components.WithMaxWidth(80))
//	output := components.Render(node, ctx)
//
// # Layout
//
//   - Stack: vertical or horizontal arrangement, eager or lazy (built from
//     Builders until the visible extent is filled). Flexible children such as
//     Spacer share the leftover main-axis space.
//   - ZStack: painter's-order overlay with nine-point alignment.
//   - Scroll: a window onto content, backed by a bubbles viewport.
//   - Page: navigation bar plus body.
//
// # Style pipelines
//
// Modified wraps a component in an ordered list of Modifiers. The first
// modifier wraps the content directly, so
//
//	components.Modify(text, components.ForegroundModifier(red), components.PaddingModifier(1, 2, 1, 2))
//
// colors the text and then pads the colored block.
//
// # Taps
//
// Buttons register their handlers with RenderContext.Taps in render order.
// A host renders with a Taps collector, then calls Tap with the focused index.
package components
