package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/sdui/pkg/ui"
)

// Page is a full screen: an optional navigation bar above a body.
type Page struct {
	BaseComponent
	title   string
	showBar bool
	back    bool
	body    ui.Renderable
}

// NewPage creates a page around body.
func NewPage(body ui.Renderable) *Page {
	return &Page{BaseComponent: NewBaseComponent(), body: body}
}

// WithNavigationBar shows a navigation bar with title. back adds a back affordance.
func (p *Page) WithNavigationBar(title string, back bool) *Page {
	p.showBar = true
	p.title = title
	p.back = back
	return p
}

// HasNavigationBar reports whether the page draws a navigation bar.
func (p *Page) HasNavigationBar() bool {
	return p.showBar
}

// Body returns the page body.
func (p *Page) Body() ui.Renderable {
	return p.body
}

// View renders the page.
func (p *Page) View() string {
	return p.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the page with the given context. The body gets the
// height left after the bar.
func (p *Page) ViewWithContext(ctx RenderContext) string {
	if !p.showBar {
		return Render(p.body, ctx)
	}

	bar := p.bar(ctx)
	bodyCtx := ctx
	if ctx.Constraints.HasHeight() {
		bodyCtx.Constraints.MaxHeight = max(ctx.Constraints.MaxHeight-lipgloss.Height(bar), 0)
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, Render(p.body, bodyCtx))
}

func (p *Page) bar(ctx RenderContext) string {
	title := p.title
	if p.back {
		title = "‹ " + title
	}
	style := p.ComputeStyle(ctx.Theme).
		Inherit(ctx.Theme.Typography.Title).
		Foreground(ctx.Theme.Palette.Text).
		BorderStyle(ctx.Theme.Borders.Square).
		BorderBottom(true).
		BorderForeground(ctx.Theme.Palette.Muted)
	if ctx.Constraints.HasWidth() && ctx.Constraints.MaxWidth > 0 {
		style = style.Width(ctx.Constraints.MaxWidth)
	}
	return style.Render(title)
}
