package tui

import "github.com/charmbracelet/lipgloss"

var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#64748b", Dark: "#94a3b8"})
)

// modalFrame is the horizontal and vertical space modalStyle adds around content.
func modalFrame() (int, int) {
	return modalStyle.GetHorizontalFrameSize(), modalStyle.GetVerticalFrameSize()
}
