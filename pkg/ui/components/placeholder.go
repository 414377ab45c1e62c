package components

// Placeholder is the inline stand-in drawn where a node could not be rendered.
type Placeholder struct {
	BaseComponent
	message string
}

// NewPlaceholder creates a placeholder showing message in the error color.
func NewPlaceholder(message string) *Placeholder {
	return &Placeholder{BaseComponent: NewBaseComponent(), message: message}
}

// Message returns the placeholder text.
func (p *Placeholder) Message() string {
	return p.message
}

// View renders the placeholder.
func (p *Placeholder) View() string {
	return p.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the placeholder with the given theme context.
func (p *Placeholder) ViewWithContext(ctx RenderContext) string {
	style := p.ComputeStyle(ctx.Theme).Foreground(ctx.Theme.Palette.Error)
	if ctx.Constraints.HasWidth() && ctx.Constraints.MaxWidth > 0 {
		style = style.MaxWidth(ctx.Constraints.MaxWidth)
	}
	return style.Render(p.message)
}

