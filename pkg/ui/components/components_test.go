package components

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/sdui/pkg/ui"
)

type ctxRecorder struct {
	seen *RenderContext
	out  string
}

func (p *ctxRecorder) View() string { return p.out }

func (p *ctxRecorder) ViewWithContext(ctx RenderContext) string {
	*p.seen = ctx
	return p.out
}

func widthCtx(width int) RenderContext {
	return DefaultContext().WithConstraints(WithMaxWidth(width))
}

func TestTextWrapsAndLimitsLines(t *testing.T) {
	t.Parallel()

	t.Run("wraps to width", func(t *testing.T) {
		t.Parallel()
		out := NewText("one two three four").ViewWithContext(widthCtx(8))
		require.LessOrEqual(t, lipgloss.Width(out), 8)
		require.Greater(t, lipgloss.Height(out), 1)
	})

	t.Run("line limit truncates with ellipsis", func(t *testing.T) {
		t.Parallel()
		out := NewText("one two three four").WithLineLimit(1).ViewWithContext(widthCtx(8))
		require.Equal(t, 1, lipgloss.Height(out))
		require.True(t, strings.HasSuffix(out, "…"))
	})

	t.Run("zero limit is unlimited", func(t *testing.T) {
		t.Parallel()
		out := NewText("a\nb\nc").WithLineLimit(0).View()
		require.Equal(t, 3, lipgloss.Height(out))
	})
}

func TestStack(t *testing.T) {
	t.Parallel()

	t.Run("vertical gap inserts rows", func(t *testing.T) {
		t.Parallel()
		out := VStack(NewText("a"), NewText("b")).WithGap(2).View()
		require.Equal(t, 4, lipgloss.Height(out))
	})

	t.Run("horizontal spacer absorbs leftover width", func(t *testing.T) {
		t.Parallel()
		out := HStack(NewText("a"), NewSpacer(0, 0), NewText("b")).ViewWithContext(widthCtx(10))
		require.Equal(t, 10, lipgloss.Width(out))
		require.True(t, strings.HasPrefix(out, "a"))
		require.True(t, strings.HasSuffix(out, "b"))
	})

	t.Run("cross alignment positions narrower children", func(t *testing.T) {
		t.Parallel()
		out := VStack(NewText("abcd"), NewText("x")).WithCrossAlign(lipgloss.Right).View()
		lines := strings.Split(out, "\n")
		require.Equal(t, "   x", lines[1])
	})

	t.Run("nil children are skipped", func(t *testing.T) {
		t.Parallel()
		out := VStack(nil, NewText("a")).View()
		require.Equal(t, "a", out)
	})
}

func TestLazyStackMaterializesWithinBudget(t *testing.T) {
	t.Parallel()

	builders := make([]Builder, 100)
	for i := range builders {
		builders[i] = func() ui.Renderable {
			return NewText("row")
		}
	}

	t.Run("height constraint", func(t *testing.T) {
		stack := NewLazyStack(DirectionVertical, builders...)
		ctx := DefaultContext().WithConstraints(Constraints{MaxWidth: -1, MaxHeight: 5})
		out := stack.ViewWithContext(ctx)
		require.Equal(t, 5, stack.Materialized())
		require.Equal(t, 5, lipgloss.Height(out))
		require.Equal(t, 100, stack.Len())
	})

	t.Run("visible extent inside a scroll", func(t *testing.T) {
		stack := NewLazyStack(DirectionVertical, builders...)
		scroll := NewScroll(stack)
		ctx := DefaultContext().WithConstraints(Constraints{MaxWidth: -1, MaxHeight: 3})
		out := scroll.ViewWithContext(ctx)
		require.Equal(t, 3, stack.Materialized())
		require.Equal(t, 3, lipgloss.Height(out))
	})

	t.Run("unbounded builds everything", func(t *testing.T) {
		stack := NewLazyStack(DirectionHorizontal, builders[:4]...)
		stack.View()
		require.Equal(t, 4, stack.Materialized())
		require.True(t, stack.Lazy())
	})
}

func TestZStackAlignment(t *testing.T) {
	t.Parallel()

	centered := NewZStack(NewText("#####"), NewText("x")).View()
	require.Equal(t, "##x##", centered)

	topLeading := NewZStack(NewText("#####\n#####"), NewText("x")).WithAlignment(lipgloss.Left, lipgloss.Top).View()
	require.Equal(t, "x####\n#####", topLeading)

	bottomTrailing := NewZStack(NewText("#####\n#####"), NewText("x")).WithAlignment(lipgloss.Right, lipgloss.Bottom).View()
	require.Equal(t, "#####\n####x", bottomTrailing)
}

func TestOverlayClipsToBase(t *testing.T) {
	t.Parallel()

	require.Equal(t, "abXY", Overlay("abcd", "XYZ", 2, 0))
	require.Equal(t, "abcd", Overlay("abcd", "XYZ", 0, 3))
	require.Equal(t, "ab\nXd", Overlay("ab\ncd", "X", 0, 1))
}

func TestModifiedPipelineOrder(t *testing.T) {
	t.Parallel()

	padThenFrame := Modify(NewText("hi"), PaddingModifier(0, 1, 0, 1), FrameModifier(6, Unset))
	require.Equal(t, []string{"padding", "frame"}, padThenFrame.Steps())
	require.Equal(t, 6, lipgloss.Width(padThenFrame.View()))

	frameThenPad := Modify(NewText("hi"), FrameModifier(6, Unset), PaddingModifier(0, 1, 0, 1))
	require.Equal(t, 8, lipgloss.Width(frameThenPad.View()))
}

func TestModifiersPropagateInheritedColors(t *testing.T) {
	t.Parallel()

	var seen RenderContext
	red := lipgloss.Color("#ff0000")
	blue := lipgloss.Color("#0000ff")
	node := Modify(&ctxRecorder{seen: &seen, out: "x"}, ForegroundModifier(red), BackgroundModifier(blue))
	node.View()

	require.Equal(t, red, seen.Foreground)
	require.Equal(t, blue, seen.Background)
}

func TestFrameModifierConstrainsContent(t *testing.T) {
	t.Parallel()

	var seen RenderContext
	out := Modify(&ctxRecorder{seen: &seen, out: "abcdefgh"}, FrameModifier(4, 2)).View()
	require.Equal(t, 4, seen.Constraints.MaxWidth)
	require.Equal(t, 2, seen.Constraints.MaxHeight)
	w, h := lipgloss.Size(out)
	require.Equal(t, 4, w)
	require.Equal(t, 2, h)
}

func TestFlexFrame(t *testing.T) {
	t.Parallel()

	t.Run("infinite max fills the offered width", func(t *testing.T) {
		t.Parallel()
		frame := NewFlexFrame()
		frame.MaxWidth = Infinite
		out := Modify(NewText("hi"), FlexFrameModifier(frame)).ViewWithContext(widthCtx(10))
		require.Equal(t, 10, lipgloss.Width(out))
	})

	t.Run("minimum raises content size", func(t *testing.T) {
		t.Parallel()
		frame := NewFlexFrame()
		frame.MinHeight = 3
		out := Modify(NewText("hi"), FlexFrameModifier(frame)).View()
		require.Equal(t, 3, lipgloss.Height(out))
	})

	tests := []struct {
		name                              string
		content, available, min, ideal, m int
		want                              int
	}{
		{"unset keeps content", 5, 20, Unset, Unset, Unset, 5},
		{"max clamps offer", 5, 20, Unset, Unset, 12, 12},
		{"ideal without offer", 5, -1, Unset, 9, Unset, 9},
		{"ideal ignored with offer", 5, 20, Unset, 9, Unset, 5},
		{"infinite max without offer keeps content", 5, -1, Unset, Unset, Infinite, 5},
		{"min wins over max", 5, 20, 15, Unset, 10, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, flexAxis(tt.content, tt.available, tt.min, tt.ideal, tt.m))
		})
	}
}

func TestOverlayModifierCentersOverContent(t *testing.T) {
	t.Parallel()

	out := Modify(NewText("-----"), OverlayModifier(NewText("o"))).View()
	require.Equal(t, "--o--", out)
}

func TestButtonTaps(t *testing.T) {
	t.Parallel()

	var tapped []string
	taps := NewTaps(1)
	ctx := DefaultContext().WithTaps(taps)

	out := Render(VStack(
		NewButton("first").OnTap(func() { tapped = append(tapped, "first") }),
		NewText("plain"),
		NewButton("second").OnTap(func() { tapped = append(tapped, "second") }),
	), ctx)

	require.Contains(t, out, "first")
	require.Contains(t, out, "second")
	require.Equal(t, 2, taps.Len())
	require.Equal(t, 1, taps.Focus())
	require.True(t, taps.Tap(1))
	require.False(t, taps.Tap(2))
	require.Equal(t, []string{"second"}, tapped)

	var nilTaps *Taps
	require.Zero(t, nilTaps.Len())
	require.False(t, nilTaps.Tap(0))
}

func TestButtonCustomFace(t *testing.T) {
	t.Parallel()

	out := NewButton("label").WithFace(NewText("face")).View()
	require.Contains(t, out, "face")
	require.NotContains(t, out, "label")

	focused := Render(NewButton("label").WithFace(NewText("face")), DefaultContext().WithTaps(NewTaps(0)))
	require.Contains(t, focused, "▌")
}

func TestScroll(t *testing.T) {
	t.Parallel()

	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "line" + string(rune('0'+i))
	}
	content := ui.Static(strings.Join(lines, "\n"))

	t.Run("vertical window", func(t *testing.T) {
		t.Parallel()
		ctx := DefaultContext().WithConstraints(Constraints{MaxWidth: -1, MaxHeight: 3})
		out := NewScroll(content).WithOffset(2).ViewWithContext(ctx)
		require.Equal(t, 3, lipgloss.Height(out))
		require.True(t, strings.HasPrefix(out, "line2"))
	})

	t.Run("indicator adds a column", func(t *testing.T) {
		t.Parallel()
		ctx := DefaultContext().WithConstraints(Constraints{MaxWidth: -1, MaxHeight: 3})
		out := NewScroll(content).WithIndicator(true).ViewWithContext(ctx)
		require.Equal(t, 6, lipgloss.Width(out))
		require.Contains(t, out, "█")
	})

	t.Run("horizontal window", func(t *testing.T) {
		t.Parallel()
		out := NewScroll(ui.Static("abcdefghij")).WithAxis(ScrollHorizontal).WithOffset(3).ViewWithContext(widthCtx(4))
		require.Equal(t, "defg", out)
	})

	t.Run("unbounded shows everything", func(t *testing.T) {
		t.Parallel()
		out := NewScroll(content).View()
		require.Equal(t, 10, lipgloss.Height(out))
	})
}

type fakeSource struct {
	phase ImagePhase
}

func (f fakeSource) Phase() ImagePhase { return f.phase }

func (f fakeSource) Raster(width, height int) string {
	row := strings.Repeat("#", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func TestImagePhases(t *testing.T) {
	t.Parallel()

	loading := NewImage(fakeSource{ImageLoading}).WithSize(12, 3).View()
	require.Contains(t, loading, "loading")

	failed := NewImage(fakeSource{ImageFailed}).WithSize(12, 4).View()
	require.Contains(t, failed, "photo")
	w, h := lipgloss.Size(failed)
	require.Equal(t, 12, w)
	require.Equal(t, 4, h)

	for _, height := range []int{1, 2} {
		short := NewImage(fakeSource{ImageFailed}).WithSize(6, height).View()
		require.Contains(t, short, "photo")
		w, h := lipgloss.Size(short)
		require.Equal(t, 6, w)
		require.Equal(t, height, h)
	}

	tall := NewImage(fakeSource{ImageLoading}).WithSize(4, 100000).ViewWithContext(RenderContext{
		Theme:       DefaultTheme(),
		Constraints: Constraints{MaxWidth: -1, MaxHeight: 6},
		Metrics:     DefaultMetrics(),
	})
	require.Equal(t, 6, lipgloss.Height(tall))
	require.Equal(t, MaxRows, lipgloss.Height(NewImage(fakeSource{ImageLoading}).WithSize(4, 100000).View()))

	loaded := NewImage(fakeSource{ImageLoaded}).WithSize(4, 2).WithRoundedCorners(true).View()
	require.Equal(t, " ## \n ## ", loaded)

	require.Equal(t, ImageFailed, NewImage(nil).Phase())

	capped := NewImage(fakeSource{ImageLoaded}).ViewWithContext(widthCtx(5))
	require.Equal(t, 5, lipgloss.Width(capped))
	require.Equal(t, DefaultImageHeight, lipgloss.Height(capped))
}

func TestShapeFillsConstraint(t *testing.T) {
	t.Parallel()

	plain := NewRectangle().ViewWithContext(widthCtx(4))
	w, h := lipgloss.Size(plain)
	require.Equal(t, 4, w)
	require.Equal(t, 1, h)

	stroked := NewRoundedRectangle().WithStroke(lipgloss.Color("#000000"), 1).ViewWithContext(widthCtx(4))
	w, h = lipgloss.Size(stroked)
	require.Equal(t, 4, w)
	require.Equal(t, 3, h)
	require.Contains(t, stroked, "╭")
}

func TestPlaceholderAndPage(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Unsupported view type: x", NewPlaceholder("Unsupported view type: x").View())

	page := NewPage(NewText("body")).WithNavigationBar("Home", true)
	out := page.ViewWithContext(widthCtx(20))
	require.Contains(t, out, "‹ Home")
	require.Contains(t, out, "body")
	require.True(t, page.HasNavigationBar())

	bare := NewPage(NewText("body")).View()
	require.Equal(t, "body", bare)
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	m := DefaultMetrics()
	require.Equal(t, 2, m.Columns(16))
	require.Equal(t, 1, m.Rows(16))
	require.Equal(t, 1, m.Columns(1))
	require.Equal(t, 0, m.Columns(0))
	require.Equal(t, 0, m.Columns(math.NaN()))
	require.Equal(t, MaxColumns, m.Columns(math.Inf(1)))
	require.Equal(t, MaxColumns, m.Columns(80000))
	require.Equal(t, MaxRows, m.Rows(800000))
}

func TestHugeFrameIsBounded(t *testing.T) {
	t.Parallel()

	m := DefaultMetrics()
	out := Render(Modify(NewText("x"), FrameModifier(m.Columns(80000), m.Rows(800000))), DefaultContext())
	w, h := lipgloss.Size(out)
	require.Equal(t, MaxColumns, w)
	require.Equal(t, MaxRows, h)

	out = Render(Modify(NewText("x"), FrameModifier(math.MaxInt32, math.MaxInt32)), DefaultContext())
	w, h = lipgloss.Size(out)
	require.LessOrEqual(t, w, MaxColumns)
	require.LessOrEqual(t, h, MaxRows)
}
