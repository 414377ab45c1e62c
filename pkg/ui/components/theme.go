package components

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette holds the semantic colors components draw with.
type Palette struct {
	Text    lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Accent  lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Focus   lipgloss.AdaptiveColor
	OnFocus lipgloss.AdaptiveColor
	Surface lipgloss.AdaptiveColor
}

// BorderSet holds the borders used for strokes.
type BorderSet struct {
	Square  lipgloss.Border
	Rounded lipgloss.Border
	Thick   lipgloss.Border
}

// TypographyScale holds text presets.
type TypographyScale struct {
	Title    lipgloss.Style
	Body     lipgloss.Style
	Emphasis lipgloss.Style
}

// Spacing holds default insets in document points.
type Spacing struct {
	// DefaultPadding applies to padding entries without an explicit spacing.
	DefaultPadding float64
}

// Theme encapsulates all styling information.
type Theme struct {
	Palette    Palette
	Borders    BorderSet
	Typography TypographyScale
	Spacing    Spacing
}

// DefaultTheme returns the default theme.
func DefaultTheme() Theme {
	p := Palette{
		Text:    lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#e2e8f0"},
		Muted:   lipgloss.AdaptiveColor{Light: "#64748b", Dark: "#94a3b8"},
		Accent:  lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"},
		Error:   lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"},
		Focus:   lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#3b82f6"},
		OnFocus: lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#0f172a"},
		Surface: lipgloss.AdaptiveColor{Light: "#f1f5f9", Dark: "#1e293b"},
	}
	return Theme{
		Palette: p,
		Borders: BorderSet{
			Square:  lipgloss.NormalBorder(),
			Rounded: lipgloss.RoundedBorder(),
			Thick:   lipgloss.ThickBorder(),
		},
		Typography: TypographyScale{
			Title:    lipgloss.NewStyle().Bold(true),
			Body:     lipgloss.NewStyle(),
			Emphasis: lipgloss.NewStyle().Italic(true),
		},
		Spacing: Spacing{DefaultPadding: 16},
	}
}

// PaletteSlot selects a color from the palette.
type PaletteSlot func(Palette) lipgloss.AdaptiveColor

// Common palette slots.
var (
	PaletteText   PaletteSlot = func(p Palette) lipgloss.AdaptiveColor { return p.Text }
	PaletteMuted  PaletteSlot = func(p Palette) lipgloss.AdaptiveColor { return p.Muted }
	PaletteAccent PaletteSlot = func(p Palette) lipgloss.AdaptiveColor { return p.Accent }
	PaletteError  PaletteSlot = func(p Palette) lipgloss.AdaptiveColor { return p.Error }
)

// Foreground applies a semantic text color.
func Foreground(slot PaletteSlot) StyleFunc {
	return func(s lipgloss.Style, theme Theme) lipgloss.Style {
		return s.Foreground(slot(theme.Palette))
	}
}

// Background applies a semantic background color.
func Background(slot PaletteSlot) StyleFunc {
	return func(s lipgloss.Style, theme Theme) lipgloss.Style {
		return s.Background(slot(theme.Palette))
	}
}

// Title applies the title typography preset.
func Title() StyleFunc {
	return func(s lipgloss.Style, theme Theme) lipgloss.Style {
		return s.Inherit(theme.Typography.Title)
	}
}
