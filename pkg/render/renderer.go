// Package render turns decoded scenes into trees of terminal components.
//
// Rendering never fails. A node that cannot be rendered becomes an inline
// placeholder, so one malformed subtree leaves the rest of the screen intact.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/sdui/pkg/action"
	"github.com/alexisbeaulieu97/sdui/pkg/imageload"
	"github.com/alexisbeaulieu97/sdui/pkg/observability"
	"github.com/alexisbeaulieu97/sdui/pkg/sdui"
	"github.com/alexisbeaulieu97/sdui/pkg/ui"
	"github.com/alexisbeaulieu97/sdui/pkg/ui/components"
)

// Placeholder messages.
const (
	MsgRenderFailed      = "Failed to render component"
	MsgLayoutError       = "Layout Render Error"
	MsgUnsupportedView   = "Unsupported view type: "
	MsgUnsupportedCustom = "Unsupported custom type: "
)

// Renderer builds component trees from scenes.
type Renderer struct {
	custom         *CustomRegistry
	dispatcher     *action.Dispatcher
	images         *imageload.Loader
	logger         zerolog.Logger
	theme          components.Theme
	metrics        components.Metrics
	defaultPadding float64
	gap            float64
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCustomRegistry sets the registry custom views resolve against.
func WithCustomRegistry(reg *CustomRegistry) Option {
	return func(r *Renderer) { r.custom = reg }
}

// WithDispatcher sets the dispatcher button taps go through. Without one,
// taps do nothing.
func WithDispatcher(d *action.Dispatcher) Option {
	return func(r *Renderer) { r.dispatcher = d }
}

// WithImageLoader sets the image loader.
func WithImageLoader(l *imageload.Loader) Option {
	return func(r *Renderer) { r.images = l }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithTheme sets the theme used by Context.
func WithTheme(t components.Theme) Option {
	return func(r *Renderer) { r.theme = t }
}

// WithMetrics sets the point to cell conversion.
func WithMetrics(m components.Metrics) Option {
	return func(r *Renderer) { r.metrics = m }
}

// WithDefaultPadding sets the padding in points used when a padding entry
// has no spacing.
func WithDefaultPadding(points float64) Option {
	return func(r *Renderer) { r.defaultPadding = points }
}

// WithDefaultSpacing sets the gap in points between stacked children when a
// layout has no spacing.
func WithDefaultSpacing(points float64) Option {
	return func(r *Renderer) { r.gap = points }
}

// NewRenderer creates a renderer.
func NewRenderer(opts ...Option) *Renderer {
	theme := components.DefaultTheme()
	r := &Renderer{
		logger:         zerolog.Nop(),
		theme:          theme,
		metrics:        components.DefaultMetrics(),
		defaultPadding: theme.Spacing.DefaultPadding,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.custom == nil {
		r.custom = NewCustomRegistry()
	}
	if r.images == nil {
		r.images = imageload.NewLoader(imageload.WithLogger(r.logger))
	}
	return r
}

// Custom returns the custom renderer registry.
func (r *Renderer) Custom() *CustomRegistry {
	return r.custom
}

// Context returns a render context for a surface width cells wide. A
// non-positive width leaves the width unconstrained.
func (r *Renderer) Context(width int) components.RenderContext {
	ctx := components.DefaultContext().WithTheme(r.theme)
	ctx.Metrics = r.metrics
	if width > 0 {
		ctx.Constraints = components.WithMaxWidth(width)
		ctx.ParentWidth = width
	}
	return ctx
}

// pass carries per-render state.
type pass struct {
	ctx   context.Context
	nodes int
}

// Render builds the page for scene: the root container inside a vertical
// scroll without indicator, under a navigation bar when the scene asks for one.
func (r *Renderer) Render(ctx context.Context, scene *sdui.Scene) *components.Page {
	start := time.Now()
	p := &pass{ctx: ctx}

	var body ui.Renderable
	if scene == nil || scene.Container == nil {
		body = r.placeholder(p, "", "scene has no container", MsgRenderFailed)
	} else {
		body = r.component(p, scene.Container, "container")
	}

	page := components.NewPage(components.NewScroll(body).WithAxis(components.ScrollVertical).WithIndicator(false))
	if scene != nil && scene.HasNavigationBar {
		page.WithNavigationBar("", false)
	}

	observability.Render().OnRender(ctx, p.nodes, time.Since(start))
	r.logger.Debug().Int("nodes", p.nodes).Dur("duration", time.Since(start)).Msg("scene rendered")
	return page
}

// RenderView builds the component tree for a single view.
func (r *Renderer) RenderView(ctx context.Context, v sdui.View) ui.Renderable {
	return r.view(&pass{ctx: ctx}, v, "view")
}

// view dispatches on the view's type tag.
func (r *Renderer) view(p *pass, v sdui.View, path string) ui.Renderable {
	p.nodes++
	kind, ok := sdui.ParseKind(v.Type)
	if !ok {
		return r.placeholder(p, componentID(v.Component), fmt.Sprintf("unknown view type %q", v.Type), MsgUnsupportedView+v.Type)
	}
	if v.Component == nil || v.Component.Kind() != kind {
		return r.placeholder(p, componentID(v.Component), fmt.Sprintf("view type %q does not match component", v.Type), MsgRenderFailed)
	}
	if kind == sdui.KindCustom {
		return r.customView(p, v, path)
	}
	return r.component(p, v.Component, join(path, "component"))
}

// component renders a component and applies its style pipeline.
func (r *Renderer) component(p *pass, c sdui.Component, path string) ui.Renderable {
	var content ui.Renderable
	switch c := c.(type) {
	case *sdui.Text:
		content = r.text(c)
	case *sdui.Button:
		content = r.button(p, c, path)
	case *sdui.Image:
		content = r.image(p, c)
	case *sdui.Spacer:
		content = components.NewSpacer(0, 0)
	case *sdui.Rectangle:
		content = r.shape(components.NewRectangle(), c.StrokeComponent)
	case *sdui.RoundedRectangle:
		content = r.shape(components.NewRoundedRectangle(), c.StrokeComponent)
	case *sdui.Scroll:
		content = r.scroll(p, c, path)
	case *sdui.Container:
		content = r.layout(p, c, path)
	default:
		return r.placeholder(p, componentID(c), fmt.Sprintf("no renderer for %T", c), MsgRenderFailed)
	}
	return r.style(p, c.Common(), path, content)
}

func (r *Renderer) text(c *sdui.Text) ui.Renderable {
	t := components.NewText(c.Text)
	if c.LineLimit != nil && *c.LineLimit > 0 {
		t.WithLineLimit(*c.LineLimit)
	}
	if c.Font != nil {
		t.WithAppliers(fontStyle(c.Font))
	}
	return t
}

func (r *Renderer) button(p *pass, c *sdui.Button, path string) ui.Renderable {
	b := components.NewButton(c.Text)
	if c.CustomViews != nil {
		b.WithFace(r.view(p, *c.CustomViews, join(path, "customViews")))
	}
	if c.Action != nil && r.dispatcher != nil {
		ctx, a, dispatcher := p.ctx, *c.Action, r.dispatcher
		b.OnTap(func() { dispatcher.Handle(ctx, &a) })
	}
	return b
}

func (r *Renderer) image(p *pass, c *sdui.Image) ui.Renderable {
	img := components.NewImage(r.images.Load(p.ctx, c.ImageURL))
	if c.Frame != nil {
		img.WithSize(max(r.columns(c.Frame.Width), 0), max(r.rows(c.Frame.Height), 0))
	}
	if c.CornerRadius != nil && *c.CornerRadius > 0 {
		img.WithRoundedCorners(true)
	}
	return img
}

func (r *Renderer) shape(s *components.Shape, stroke *sdui.Stroke) ui.Renderable {
	if stroke != nil {
		s.WithStroke(lipgloss.Color(stroke.StrokeColor), stroke.LineWidth)
	}
	return s
}

func (r *Renderer) scroll(p *pass, c *sdui.Scroll, path string) ui.Renderable {
	axis := components.ScrollVertical
	if sdui.ParseAxis(c.Axis) == sdui.AxisHorizontal {
		axis = components.ScrollHorizontal
	}
	content := r.view(p, c.ContainerViews, join(path, "containerViews"))
	return components.NewScroll(content).WithAxis(axis).WithIndicator(c.ShowIndicator)
}

// customView resolves a custom view by its custom type first, then by its view
// type tag.
func (r *Renderer) customView(p *pass, v sdui.View, path string) ui.Renderable {
	c := v.Component.(*sdui.Custom)
	keys := []string{v.Type}
	if c.CustomType != "" && c.CustomType != v.Type {
		keys = []string{c.CustomType, v.Type}
	}
	for _, key := range keys {
		if fn, ok := r.custom.Lookup(key); ok {
			out := fn(v)
			if out == nil {
				out = ui.Static("")
			}
			return r.style(p, c.Common(), join(path, "component"), out)
		}
	}
	return r.placeholder(p, c.ComponentID, fmt.Sprintf("no custom renderer for %q", keys[0]), MsgUnsupportedCustom+keys[0])
}

// placeholder logs the condition and returns an inline placeholder.
func (r *Renderer) placeholder(p *pass, componentID, reason, message string) ui.Renderable {
	r.logger.Warn().Str("component_id", componentID).Str("reason", reason).Msg("rendering placeholder")
	observability.Render().OnPlaceholder(p.ctx, componentID, reason)
	return components.NewPlaceholder(message)
}

func componentID(c sdui.Component) string {
	if c == nil {
		return ""
	}
	return c.Common().ComponentID
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
