package render

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/sdui/pkg/sdui"
	"github.com/alexisbeaulieu97/sdui/pkg/ui"
	"github.com/alexisbeaulieu97/sdui/pkg/ui/components"
)

// Pipeline step names in application order.
const (
	StepForeground   = "foreground"
	StepFrame        = "frame"
	StepExtreamFrame = "extreamFrame"
	StepBackground   = "background"
	StepCornerRadius = "cornerRadius"
	StepOverlay      = "overlay"
	StepPadding      = "padding"
)

// style wraps content with the common style attributes in fixed order:
// foreground, frame, extreamFrame, background, cornerRadius, overlay, then
// each padding entry in list order.
func (r *Renderer) style(ctx *pass, s *sdui.Style, path string, content ui.Renderable) ui.Renderable {
	var mods []components.Modifier

	if s.ForegroundColor != nil {
		mods = append(mods, components.ForegroundModifier(lipgloss.Color(*s.ForegroundColor)))
	}
	if s.Frame != nil {
		mods = append(mods, components.FrameModifier(r.columns(s.Frame.Width), r.rows(s.Frame.Height)))
	}
	if f := s.ExtreamFrame; f != nil {
		mods = append(mods, components.FlexFrameModifier(components.FlexFrame{
			MinWidth:    r.dimension(f.MinWidth, r.metrics.Columns),
			IdealWidth:  r.dimension(f.IdealWidth, r.metrics.Columns),
			MaxWidth:    r.dimension(f.MaxWidth, r.metrics.Columns),
			MinHeight:   r.dimension(f.MinHeight, r.metrics.Rows),
			IdealHeight: r.dimension(f.IdealHeight, r.metrics.Rows),
			MaxHeight:   r.dimension(f.MaxHeight, r.metrics.Rows),
		}))
	}
	if s.BackgroundColor != nil {
		mods = append(mods, components.BackgroundModifier(lipgloss.Color(*s.BackgroundColor)))
	}
	if s.CornerRadius != nil && *s.CornerRadius > 0 {
		mods = append(mods, components.CornerRadiusModifier())
	}
	if s.Overlay != nil {
		mods = append(mods, components.OverlayModifier(r.view(ctx, *s.Overlay, join(path, "overlay"))))
	}
	for _, p := range s.Padding {
		mods = append(mods, r.padding(p))
	}

	if len(mods) == 0 {
		return content
	}
	return components.Modify(content, mods...)
}

func (r *Renderer) padding(p sdui.Padding) components.Modifier {
	spacing := r.defaultPadding
	if p.Spacing != nil {
		spacing = *p.Spacing
	}
	edges := p.Edges()
	var top, right, bottom, left int
	if edges.Has(sdui.EdgeTop) {
		top = r.metrics.Rows(spacing)
	}
	if edges.Has(sdui.EdgeBottom) {
		bottom = r.metrics.Rows(spacing)
	}
	if edges.Has(sdui.EdgeLeading) {
		left = r.metrics.Columns(spacing)
	}
	if edges.Has(sdui.EdgeTrailing) {
		right = r.metrics.Columns(spacing)
	}
	return components.PaddingModifier(top, right, bottom, left)
}

func (r *Renderer) columns(points *float64) int {
	if points == nil {
		return components.Unset
	}
	return r.metrics.Columns(*points)
}

func (r *Renderer) rows(points *float64) int {
	if points == nil {
		return components.Unset
	}
	return r.metrics.Rows(*points)
}

// dimension converts a flexible frame bound to cells. Infinite and the
// greatest finite magnitude are unbounded; NaN is treated as absent.
func (r *Renderer) dimension(d *sdui.Dimension, cells func(float64) int) int {
	if d == nil || math.IsNaN(d.Value) {
		return components.Unset
	}
	if math.IsInf(d.Value, 1) || d.Value == math.MaxFloat64 {
		return components.Infinite
	}
	if d.Value <= 0 {
		return 0
	}
	return cells(d.Value)
}
