// Package ui defines the contract shared by every rendered node.
package ui

// Renderable is anything that can draw itself as terminal text.
type Renderable interface {
	View() string
}

// Static is a pre-rendered string.
type Static string

// View returns the string unchanged.
func (s Static) View() string {
	return string(s)
}
