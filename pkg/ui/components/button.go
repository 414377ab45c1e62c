package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/sdui/pkg/ui"
)

// Button is a tappable component. It shows a custom face when one is set and
// its label otherwise. Rendering registers the button with the context's tap
// collector; the collector's focus index decides whether it draws focused.
type Button struct {
	BaseComponent
	label string
	face  ui.Renderable
	onTap func()
}

// NewButton creates a new button with the given label.
func NewButton(label string) *Button {
	return &Button{
		BaseComponent: NewBaseComponent(),
		label:         label,
	}
}

// View renders the button.
func (b *Button) View() string {
	return b.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the button with the given theme context.
func (b *Button) ViewWithContext(ctx RenderContext) string {
	focused := ctx.Taps.register(b.onTap)

	if b.face != nil {
		content := Render(b.face, ctx)
		if !focused {
			return content
		}
		marker := lipgloss.NewStyle().Foreground(ctx.Theme.Palette.Focus).Render("▌")
		return lipgloss.JoinHorizontal(lipgloss.Top, marker, content)
	}

	style := b.ComputeStyle(ctx.Theme).Inherit(ctx.textStyle()).Foreground(ctx.Theme.Palette.Accent)
	if ctx.Foreground != nil {
		style = style.Foreground(ctx.Foreground)
	}
	if focused {
		style = style.
			Foreground(ctx.Theme.Palette.OnFocus).
			Background(ctx.Theme.Palette.Focus).
			Bold(true)
	}
	return style.Render(b.label)
}

// WithFace replaces the label with a custom face.
func (b *Button) WithFace(face ui.Renderable) *Button {
	b.face = face
	return b
}

// OnTap sets the tap handler.
func (b *Button) OnTap(fn func()) *Button {
	b.onTap = fn
	return b
}

// Tap invokes the tap handler directly.
func (b *Button) Tap() {
	if b.onTap != nil {
		b.onTap()
	}
}

// Label returns the button label.
func (b *Button) Label() string {
	return b.label
}

// WithStyle sets the button style.
func (b *Button) WithStyle(style lipgloss.Style) *Button {
	b.SetStyle(style)
	return b
}
