package imageload

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/alexisbeaulieu97/sdui/pkg/ui/components"
)

var _ components.ImageSource = (*Slot)(nil)

// Slot is the observable state of one image load.
type Slot struct {
	locator string

	mu    sync.RWMutex
	phase components.ImagePhase
	img   image.Image
	err   error
}

// Ready returns a slot that is already loaded with img.
func Ready(img image.Image) *Slot {
	s := &Slot{}
	s.resolve(img)
	return s
}

// Failed returns a slot that has already failed.
func Failed(err error) *Slot {
	s := &Slot{}
	s.fail(err)
	return s
}

// Locator returns the locator the slot loads.
func (s *Slot) Locator() string {
	return s.locator
}

// Phase returns the current phase.
func (s *Slot) Phase() components.ImagePhase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Err returns the load error once failed.
func (s *Slot) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Image returns the decoded image once loaded.
func (s *Slot) Image() image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img
}

func (s *Slot) resolve(img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.img = img
	s.phase = components.ImageLoaded
}

func (s *Slot) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	s.phase = components.ImageFailed
}

// Raster scales the image to width by height cells, at most
// components.MaxColumns by components.MaxRows. Each cell shows two
// vertically stacked pixels as an upper half block.
func (s *Slot) Raster(width, height int) string {
	img := s.Image()
	if img == nil || width <= 0 || height <= 0 {
		return ""
	}
	width = min(width, components.MaxColumns)
	height = min(height, components.MaxRows)

	dst := image.NewRGBA(image.Rect(0, 0, width, height*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	var b strings.Builder
	for row := 0; row < height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < width; col++ {
			top := hex(dst.RGBAAt(col, row*2))
			bottom := hex(dst.RGBAAt(col, row*2+1))
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
	}
	return b.String()
}

func hex(c interface{ RGBA() (r, g, b, a uint32) }) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
