package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/sdui/pkg/sdui"
	"github.com/alexisbeaulieu97/sdui/pkg/ui/components"
)

// TitleFontSize is the size from which text uses the title preset.
const TitleFontSize = 20

// fontStyle approximates a named font on a terminal. Weight and slant come
// from the name; large sizes use the theme's title preset.
func fontStyle(f *sdui.Font) components.StyleFunc {
	return func(s lipgloss.Style, theme components.Theme) lipgloss.Style {
		if f.FontSize >= TitleFontSize {
			s = s.Inherit(theme.Typography.Title)
		}
		name := strings.ToLower(f.FontName)
		if hasAny(name, "bold", "heavy", "black", "semibold") {
			s = s.Bold(true)
		}
		if hasAny(name, "italic", "oblique") {
			s = s.Italic(true)
		}
		return s
	}
}

func hasAny(s string, parts ...string) bool {
	for _, part := range parts {
		if strings.Contains(s, part) {
			return true
		}
	}
	return false
}
