package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/sdui/pkg/action"
	"github.com/alexisbeaulieu97/sdui/pkg/observability"
	"github.com/alexisbeaulieu97/sdui/pkg/sdui"
	"github.com/alexisbeaulieu97/sdui/pkg/ui"
	"github.com/alexisbeaulieu97/sdui/pkg/ui/components"
)

func decodeView(t *testing.T, doc string) sdui.View {
	t.Helper()
	v, err := sdui.DecodeView([]byte(doc))
	require.NoError(t, err)
	return v
}

func draw(r ui.Renderable) string {
	return components.Render(r, components.DefaultContext())
}

func textView(s string) sdui.View {
	return sdui.NewView(&sdui.Text{Style: sdui.Style{ComponentID: s}, Text: s})
}

func TestVerticalLeadingLayout(t *testing.T) {
	t.Parallel()

	c := sdui.NewContainer("root", sdui.Layout{Type: "v", Alignment: "leading"}, textView("a"), textView("bbb"))
	out := draw(NewRenderer().RenderView(context.Background(), sdui.NewView(c)))
	require.Equal(t, "a  \nbbb", out)
}

func TestStackAlignments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		layout sdui.Layout
		want   string
	}{
		{sdui.Layout{Type: "v", Alignment: "trailing"}, "  a\nbbb"},
		{sdui.Layout{Type: "v", Alignment: "right"}, "  a\nbbb"},
		{sdui.Layout{Type: "v", Alignment: "whatever"}, " a \nbbb"},
		{sdui.Layout{Type: "h", Alignment: "top"}, "abbb"},
		{sdui.Layout{Type: "z", Alignment: "trailing"}, "bbb"},
		{sdui.Layout{Type: "lv", Alignment: "leading"}, "a  \nbbb"},
	}
	for _, tt := range tests {
		t.Run(tt.layout.Type+"/"+tt.layout.Alignment, func(t *testing.T) {
			t.Parallel()
			c := sdui.NewContainer("root", tt.layout, textView("a"), textView("bbb"))
			out := draw(NewRenderer().RenderView(context.Background(), sdui.NewView(c)))
			require.Equal(t, tt.want, out)
		})
	}
}

func TestOverlaidPaintsInOrder(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	center := sdui.NewContainer("z", sdui.Layout{Type: "z", Alignment: "center"}, textView("aaa"), textView("b"))
	require.Equal(t, "aba", draw(r.RenderView(context.Background(), sdui.NewView(center))))

	trailing := sdui.NewContainer("z", sdui.Layout{Type: "z", Alignment: "bottomTrailing"}, textView("aaa"), textView("b"))
	require.Equal(t, "aab", draw(r.RenderView(context.Background(), sdui.NewView(trailing))))
}

func TestSpacing(t *testing.T) {
	t.Parallel()

	spacing := 16.0
	c := sdui.NewContainer("root", sdui.Layout{Type: "h", Spacing: &spacing, Alignment: "center"}, textView("a"), textView("b"))
	require.Equal(t, "a  b", draw(NewRenderer().RenderView(context.Background(), sdui.NewView(c))))
}

func TestLazyStackBuildsVisibleChildrenOnly(t *testing.T) {
	t.Parallel()

	views := []sdui.View{textView("a"), textView("b"), textView("c"), textView("d")}
	c := sdui.NewContainer("root", sdui.Layout{Type: "lv", Alignment: "leading"}, views...)
	tree := NewRenderer().RenderView(context.Background(), sdui.NewView(c))

	ctx := components.DefaultContext().WithConstraints(components.Constraints{MaxWidth: -1, MaxHeight: 2})
	require.Equal(t, "a\nb", components.Render(tree, ctx))

	stack, ok := tree.(*components.Stack)
	require.True(t, ok)
	require.True(t, stack.Lazy())
	require.Equal(t, 2, stack.Materialized())
}

func TestUnknownLayoutRendersPlaceholder(t *testing.T) {
	t.Parallel()

	c := sdui.NewContainer("root", sdui.Layout{Type: "grid", Alignment: "center"}, textView("a"))
	tree := NewRenderer().RenderView(context.Background(), sdui.NewView(c))

	require.NotPanics(t, func() {
		require.Equal(t, MsgLayoutError, draw(tree))
	})
}

func TestViewDispatchPlaceholders(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	ctx := context.Background()

	unknown := sdui.View{Type: "carousel", Component: &sdui.Text{Text: "x"}}
	require.Equal(t, "Unsupported view type: carousel", draw(r.RenderView(ctx, unknown)))

	mismatch := sdui.View{Type: "text", Component: &sdui.Image{ImageURL: "logo"}}
	require.Equal(t, MsgRenderFailed, draw(r.RenderView(ctx, mismatch)))

	empty := sdui.View{Type: "text"}
	require.Equal(t, MsgRenderFailed, draw(r.RenderView(ctx, empty)))
}

func TestCustomRenderer(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	ctx := context.Background()
	v := decodeView(t, `{"type":"custom","component":{"componentId":"x"}}`)

	require.Equal(t, "Unsupported custom type: custom", draw(r.RenderView(ctx, v)))

	r.Custom().Register("custom", func(v sdui.View) ui.Renderable {
		return ui.Static("custom:" + v.Component.Common().ComponentID)
	})
	require.Equal(t, "custom:x", draw(r.RenderView(ctx, v)))
}

func TestCustomTypeTakesPrecedence(t *testing.T) {
	t.Parallel()

	reg := NewCustomRegistry()
	reg.Register("custom", func(sdui.View) ui.Renderable { return ui.Static("generic") })
	r := NewRenderer(WithCustomRegistry(reg))
	ctx := context.Background()

	rating := decodeView(t, `{"type":"custom","component":{"componentId":"r","customType":"rating","properties":{"stars":4}}}`)
	require.Equal(t, "generic", draw(r.RenderView(ctx, rating)))

	reg.Register("rating", func(v sdui.View) ui.Renderable {
		c := v.Component.(*sdui.Custom)
		if c.Properties["stars"] == float64(4) {
			return ui.Static("★★★★")
		}
		return ui.Static("?")
	})
	require.Equal(t, "★★★★", draw(r.RenderView(ctx, rating)))
	require.Equal(t, []string{"custom", "rating"}, reg.Tags())
}

func TestPipelineOrder(t *testing.T) {
	t.Parallel()

	v := decodeView(t, `{"type":"text","component":{
		"componentId":"t",
		"text":"x",
		"padding":[{"edge":"top","spacing":16},{"edge":"leading","spacing":8}],
		"frame":{"width":24},
		"extreamFrame":{"maxWidth":"infinity"},
		"foregroundColor":"#ff0000",
		"backgroundColor":"#00ff00",
		"cornerRadius":4,
		"overlay":{"type":"spacer","component":{"componentId":"o"}}
	}}`)
	tree := NewRenderer().RenderView(context.Background(), v)

	modified, ok := tree.(*components.Modified)
	require.True(t, ok)
	require.Equal(t, []string{
		StepForeground, StepFrame, StepExtreamFrame, StepBackground,
		StepCornerRadius, StepOverlay, StepPadding, StepPadding,
	}, modified.Steps())
}

func TestPaddingAppliesInListOrder(t *testing.T) {
	t.Parallel()

	v := decodeView(t, `{"type":"text","component":{
		"componentId":"t",
		"text":"x",
		"padding":[{"edge":"top","spacing":16},{"edge":"leading","spacing":8}]
	}}`)
	require.Equal(t, "  \n x", draw(NewRenderer().RenderView(context.Background(), v)))

	defaults := decodeView(t, `{"type":"text","component":{"componentId":"t","text":"x","padding":[{"edge":"horizontal"}]}}`)
	require.Equal(t, "  x  ", draw(NewRenderer().RenderView(context.Background(), defaults)))
}

type navigatorFunc func(action.Screen)

func (f navigatorFunc) Push(s action.Screen)    { f(s) }
func (f navigatorFunc) Present(s action.Screen) { f(s) }

func TestButtonTapDispatches(t *testing.T) {
	t.Parallel()

	var shown []string
	reg := action.NewRegistry()
	reg.Register("detail", action.View(func() ui.Renderable { return ui.Static("detail") }))
	nav := navigatorFunc(func(s action.Screen) { shown = append(shown, s.Content.View()) })
	d := action.NewDispatcher(reg, action.WithHost(action.NewHost(nav)))

	r := NewRenderer(WithDispatcher(d))
	v := decodeView(t, `{"type":"button","component":{"componentId":"b","text":"Go","action":{"type":"push","destination":"detail"}}}`)
	tree := r.RenderView(context.Background(), v)

	taps := components.NewTaps(0)
	out := components.Render(tree, r.Context(20).WithTaps(taps))
	require.Equal(t, "Go", out)
	require.Equal(t, 1, taps.Len())
	require.True(t, taps.Tap(0))
	require.Equal(t, []string{"detail"}, shown)

	unknown := decodeView(t, `{"type":"button","component":{"componentId":"b","text":"Lost","action":{"type":"push","destination":"nowhere"}}}`)
	taps = components.NewTaps(0)
	components.Render(r.RenderView(context.Background(), unknown), r.Context(20).WithTaps(taps))
	require.NotPanics(t, func() { taps.Tap(0) })
	require.Len(t, shown, 1)
}

func TestRenderScene(t *testing.T) {
	t.Parallel()

	scene, err := sdui.Decode([]byte(`{
		"hasNavigationBar": false,
		"container": {
			"componentId": "root",
			"layout": {"type": "v", "alignment": "leading"},
			"views": [
				{"type": "text", "component": {"componentId": "title", "text": "Hello"}},
				{"type": "scroll", "component": {
					"componentId": "row",
					"axis": "h",
					"showIndicator": false,
					"containerViews": {"type": "container", "component": {
						"componentId": "inner",
						"layout": {"type": "h", "alignment": "center"},
						"views": [{"type": "text", "component": {"componentId": "w", "text": "World"}}]
					}}
				}}
			]
		}
	}`))
	require.NoError(t, err)

	r := NewRenderer()
	page := r.Render(context.Background(), scene)
	require.False(t, page.HasNavigationBar())

	body, ok := page.Body().(*components.Scroll)
	require.True(t, ok)
	require.Equal(t, components.ScrollVertical, body.Axis())
	require.False(t, body.ShowsIndicator())
	require.Equal(t, "Hello\nWorld", components.Render(page, r.Context(40)))

	scene.HasNavigationBar = true
	require.True(t, r.Render(context.Background(), scene).HasNavigationBar())
}

func TestRenderNilScene(t *testing.T) {
	t.Parallel()

	page := NewRenderer().Render(context.Background(), nil)
	require.Equal(t, MsgRenderFailed, draw(page))
}

func TestImageFailsWithoutAssets(t *testing.T) {
	t.Parallel()

	v := decodeView(t, `{"type":"image","component":{"componentId":"i","imageURL":"logo","frame":{"width":56,"height":48}}}`)
	out := draw(NewRenderer().RenderView(context.Background(), v))
	require.Contains(t, out, "photo")
}

func TestShapeStroke(t *testing.T) {
	t.Parallel()

	v := decodeView(t, `{"type":"roundedRectangle","component":{"componentId":"r","frame":{"width":32,"height":48},"strokeComponent":{"strokeColor":"#000000","lineWidth":1}}}`)
	out := draw(NewRenderer().RenderView(context.Background(), v))
	require.Equal(t, "╭──╮\n│  │\n╰──╯", out)
}

type placeholderRecorder struct {
	observability.NoopRenderHooks
	reasons []string
}

func (p *placeholderRecorder) OnPlaceholder(_ context.Context, _ string, reason string) {
	p.reasons = append(p.reasons, reason)
}

func TestPlaceholderHook(t *testing.T) {
	rec := &placeholderRecorder{}
	observability.SetRenderHooks(rec)
	t.Cleanup(observability.Reset)

	c := sdui.NewContainer("root", sdui.Layout{Type: "grid"})
	NewRenderer().RenderView(context.Background(), sdui.NewView(c))
	require.Equal(t, []string{`unknown layout type "grid"`}, rec.reasons)
}

func TestOutOfRangeValuesRender(t *testing.T) {
	t.Parallel()

	v := decodeView(t, `{"type":"text","component":{"componentId":"t","text":"x","cornerRadius":-4,"lineLimit":-1,"font":{"fontName":"Body","fontSize":0}}}`)
	require.Equal(t, "x", draw(NewRenderer().RenderView(context.Background(), v)))

	v = decodeView(t, `{"type":"rectangle","component":{"componentId":"r","frame":{"width":16,"height":16},"strokeComponent":{"strokeColor":"#000000","lineWidth":-2}}}`)
	require.Equal(t, "  ", draw(NewRenderer().RenderView(context.Background(), v)))
}
