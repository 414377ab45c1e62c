package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ImagePhase is the state of an image load.
type ImagePhase int

const (
	ImageLoading ImagePhase = iota
	ImageLoaded
	ImageFailed
)

// ImageSource supplies image state and, once loaded, a raster sized in cells.
type ImageSource interface {
	Phase() ImagePhase
	Raster(width, height int) string
}

// Default image size in cells when no frame is given.
const (
	DefaultImageWidth  = 16
	DefaultImageHeight = 8
)

// Image shows a loading indicator, the loaded raster, or a photo placeholder
// on failure.
type Image struct {
	BaseComponent
	source  ImageSource
	width   int
	height  int
	rounded bool
	frame   int
}

// NewImage creates an image bound to source.
func NewImage(source ImageSource) *Image {
	return &Image{BaseComponent: NewBaseComponent(), source: source}
}

// WithSize fixes the raster size in cells. Zero keeps the default.
func (i *Image) WithSize(width, height int) *Image {
	i.width = width
	i.height = height
	return i
}

// WithRoundedCorners clips the raster corners.
func (i *Image) WithRoundedCorners(rounded bool) *Image {
	i.rounded = rounded
	return i
}

// WithSpinnerFrame selects the loading indicator frame.
func (i *Image) WithSpinnerFrame(frame int) *Image {
	i.frame = frame
	return i
}

// Phase returns the source phase.
func (i *Image) Phase() ImagePhase {
	if i.source == nil {
		return ImageFailed
	}
	return i.source.Phase()
}

// View renders the image.
func (i *Image) View() string {
	return i.ViewWithContext(DefaultContext())
}

// ViewWithContext renders the image within the width constraint.
func (i *Image) ViewWithContext(ctx RenderContext) string {
	width, height := i.size(ctx)
	style := i.ComputeStyle(ctx.Theme)

	switch i.Phase() {
	case ImageLoaded:
		out := i.source.Raster(width, height)
		if i.rounded {
			out = ClipCorners(out)
		}
		return style.Render(out)
	case ImageLoading:
		frames := spinner.MiniDot.Frames
		indicator := frames[((i.frame%len(frames))+len(frames))%len(frames)]
		label := lipgloss.NewStyle().Foreground(ctx.Theme.Palette.Muted).Render(indicator + " loading")
		return style.Render(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, ansi.Truncate(label, width, "")))
	default:
		muted := lipgloss.NewStyle().Foreground(ctx.Theme.Palette.Muted)
		// A border needs a row and a column inside it.
		if width < 3 || height < 3 {
			label := muted.Render(ansi.Truncate("photo", width, ""))
			return style.Render(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, label))
		}
		box := muted.
			Border(ctx.Theme.Borders.Rounded).
			BorderForeground(ctx.Theme.Palette.Muted).
			Width(width - 2).
			Height(height - 2).
			Align(lipgloss.Center, lipgloss.Center)
		return style.Render(box.Render(ansi.Truncate("photo", width-2, "")))
	}
}

func (i *Image) size(ctx RenderContext) (int, int) {
	width, height := i.width, i.height
	if width <= 0 {
		width = DefaultImageWidth
	}
	if height <= 0 {
		height = DefaultImageHeight
	}
	if ctx.Constraints.HasWidth() && ctx.Constraints.MaxWidth > 0 && width > ctx.Constraints.MaxWidth {
		width = ctx.Constraints.MaxWidth
	}
	if ctx.Constraints.HasHeight() && ctx.Constraints.MaxHeight > 0 && height > ctx.Constraints.MaxHeight {
		height = ctx.Constraints.MaxHeight
	}
	return clampSize(width, height)
}

// ClipCorners blanks the four corner cells of a block.
func ClipCorners(block string) string {
	lines := strings.Split(block, "\n")
	if len(lines) == 0 {
		return block
	}
	clip := func(line string) string {
		width := ansi.StringWidth(line)
		if width < 2 {
			return line
		}
		middle := ansi.Cut(line, 1, width-1)
		return " " + middle + " "
	}
	lines[0] = clip(lines[0])
	if len(lines) > 1 {
		lines[len(lines)-1] = clip(lines[len(lines)-1])
	}
	return strings.Join(lines, "\n")
}
