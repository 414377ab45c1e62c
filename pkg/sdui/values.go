package sdui

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Padding insets one edge set of a component. Spacing nil means the toolkit default.
type Padding struct {
	Edge    string   `json:"edge"`
	Spacing *float64 `json:"spacing,omitempty"`
}

// Edges resolves the edge tag. Unrecognized tags pad every edge.
func (p Padding) Edges() EdgeSet {
	return ParseEdges(p.Edge)
}

// Frame fixes the width and/or height of a component.
type Frame struct {
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// ExtreamFrame is a flexible frame with min/ideal/max bounds per axis.
type ExtreamFrame struct {
	MinWidth    *Dimension `json:"minWidth,omitempty"`
	IdealWidth  *Dimension `json:"idealWidth,omitempty"`
	MaxWidth    *Dimension `json:"maxWidth,omitempty"`
	MinHeight   *Dimension `json:"minHeight,omitempty"`
	IdealHeight *Dimension `json:"idealHeight,omitempty"`
	MaxHeight   *Dimension `json:"maxHeight,omitempty"`
}

// Stroke outlines a shape.
type Stroke struct {
	StrokeColor string  `json:"strokeColor"`
	LineWidth   float64 `json:"lineWidth" validate:"gte=0"`
}

// Font selects a named font at a size.
type Font struct {
	FontName string  `json:"fontName"`
	FontSize float64 `json:"fontSize" validate:"gt=0"`
}

// Action describes what a tap does. Destination is a registry key resolved at dispatch time.
type Action struct {
	Type        string `json:"type"`
	Destination string `json:"destination"`
}

// Transition resolves the action type tag.
func (a Action) Transition() Transition {
	return Transition(a.Type)
}

// Transition is the presentation requested by an action.
type Transition string

const (
	TransitionPush  Transition = "push"
	TransitionModal Transition = "modal"
	TransitionURL   Transition = "url"
)

// Layout describes how a container arranges its views.
type Layout struct {
	Type      string   `json:"type"`
	Spacing   *float64 `json:"spacing,omitempty"`
	Alignment string   `json:"alignment"`
}

// Arrangement resolves the layout tag.
func (l Layout) Arrangement() Arrangement {
	switch Arrangement(l.Type) {
	case ArrangeHorizontal, ArrangeLazyHorizontal, ArrangeVertical, ArrangeLazyVertical, ArrangeOverlaid:
		return Arrangement(l.Type)
	default:
		return ArrangeUnknown
	}
}

// Arrangement is one of the layout strategies.
type Arrangement string

const (
	ArrangeUnknown        Arrangement = ""
	ArrangeHorizontal     Arrangement = "h"
	ArrangeLazyHorizontal Arrangement = "lh"
	ArrangeVertical       Arrangement = "v"
	ArrangeLazyVertical   Arrangement = "lv"
	ArrangeOverlaid       Arrangement = "z"
)

// Lazy reports whether the arrangement defers materializing off-screen children.
func (a Arrangement) Lazy() bool {
	return a == ArrangeLazyHorizontal || a == ArrangeLazyVertical
}

// Dimension is an ExtreamFrame value. On the wire it is either a number or one
// of the named sentinels; a sentinel read from a document is written back as
// the same name.
type Dimension struct {
	Value    float64
	Sentinel string
}

// Points returns a plain numeric dimension.
func Points(v float64) Dimension {
	return Dimension{Value: v}
}

// Sentinel returns the named dimension, or false when name is not a sentinel.
func Sentinel(name string) (Dimension, bool) {
	for _, s := range sentinels {
		if s.name == name {
			return Dimension{Value: s.value, Sentinel: name}, true
		}
	}
	return Dimension{}, false
}

var sentinels = []struct {
	name  string
	value float64
}{
	{"greatestFiniteMagnitude", math.MaxFloat64},
	{"infinity", math.Inf(1)},
	{"leastNonzeroMagnitude", math.SmallestNonzeroFloat64},
	{"leastNormalMagnitude", 0x1p-1022},
	{"nan", math.NaN()},
	{"pi", math.Pi},
	{"signalingNaN", math.Float64frombits(0x7ff4000000000000)},
	{"ulpOfOne", 0x1p-52},
	{"zero", 0},
}

// MarshalJSON writes the sentinel name when present. Non-finite values built
// in code are written under their sentinel name since JSON has no literal for them.
func (d Dimension) MarshalJSON() ([]byte, error) {
	if d.Sentinel != "" {
		if _, ok := Sentinel(d.Sentinel); !ok {
			return nil, fmt.Errorf("unknown dimension sentinel %q", d.Sentinel)
		}
		return json.Marshal(d.Sentinel)
	}
	if math.IsInf(d.Value, 0) || math.IsNaN(d.Value) {
		bits := math.Float64bits(d.Value)
		for _, s := range sentinels {
			if math.Float64bits(s.value) == bits {
				return json.Marshal(s.name)
			}
		}
		if math.IsNaN(d.Value) {
			return json.Marshal("nan")
		}
		return nil, fmt.Errorf("dimension %v has no wire representation", d.Value)
	}
	return json.Marshal(d.Value)
}

// UnmarshalJSON accepts a number, a sentinel name, or a numeric string.
// Strings that are neither decode as zero.
func (d *Dimension) UnmarshalJSON(data []byte) error {
	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		*d = Dimension{Value: number}
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("dimension must be a number or a sentinel name: %w", err)
	}
	*d = dimensionNamed(name)
	return nil
}

// dimensionNamed resolves a string dimension: a sentinel name, a numeric
// string, or zero.
func dimensionNamed(name string) Dimension {
	if s, ok := Sentinel(name); ok {
		return s
	}
	parsed, err := strconv.ParseFloat(name, 64)
	if err != nil {
		parsed = 0
	}
	return Dimension{Value: parsed}
}

// EdgeSet is a bit set of padding edges.
type EdgeSet uint8

const (
	EdgeTop EdgeSet = 1 << iota
	EdgeLeading
	EdgeBottom
	EdgeTrailing

	EdgeHorizontal = EdgeLeading | EdgeTrailing
	EdgeVertical   = EdgeTop | EdgeBottom
	EdgeAll        = EdgeHorizontal | EdgeVertical
)

// Has reports whether every edge in other is in s.
func (s EdgeSet) Has(other EdgeSet) bool {
	return s&other == other
}

// ParseEdges resolves a padding edge tag. Unrecognized tags mean all edges.
func ParseEdges(tag string) EdgeSet {
	switch tag {
	case "top":
		return EdgeTop
	case "leading":
		return EdgeLeading
	case "bottom":
		return EdgeBottom
	case "trailing":
		return EdgeTrailing
	case "horizontal":
		return EdgeHorizontal
	case "vertical":
		return EdgeVertical
	default:
		return EdgeAll
	}
}

// Axis is a scroll direction.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// ParseAxis resolves a scroll axis tag. Unrecognized tags scroll vertically.
func ParseAxis(tag string) Axis {
	if tag == "h" {
		return AxisHorizontal
	}
	return AxisVertical
}

// HorizontalAlignment positions content along the x axis.
type HorizontalAlignment int

const (
	AlignCenter HorizontalAlignment = iota
	AlignLeading
	AlignTrailing
)

// VerticalAlignment positions content along the y axis.
type VerticalAlignment int

const (
	AlignMiddle VerticalAlignment = iota
	AlignTop
	AlignBottom
)

// Alignment is a two-dimensional alignment used by overlaid layouts.
type Alignment struct {
	Horizontal HorizontalAlignment
	Vertical   VerticalAlignment
}

// ParseHorizontalAlignment resolves the cross-axis alignment of a vertical stack.
func ParseHorizontalAlignment(tag string) HorizontalAlignment {
	switch tag {
	case "left", "leading":
		return AlignLeading
	case "right", "trailing":
		return AlignTrailing
	default:
		return AlignCenter
	}
}

// ParseVerticalAlignment resolves the cross-axis alignment of a horizontal stack.
func ParseVerticalAlignment(tag string) VerticalAlignment {
	switch tag {
	case "top":
		return AlignTop
	case "bottom":
		return AlignBottom
	default:
		return AlignMiddle
	}
}

// ParseAlignment resolves one of the nine overlaid alignment tags. Unrecognized tags center.
func ParseAlignment(tag string) Alignment {
	switch tag {
	case "topLeading":
		return Alignment{AlignLeading, AlignTop}
	case "top":
		return Alignment{AlignCenter, AlignTop}
	case "topTrailing":
		return Alignment{AlignTrailing, AlignTop}
	case "leading":
		return Alignment{AlignLeading, AlignMiddle}
	case "trailing":
		return Alignment{AlignTrailing, AlignMiddle}
	case "bottomLeading":
		return Alignment{AlignLeading, AlignBottom}
	case "bottom":
		return Alignment{AlignCenter, AlignBottom}
	case "bottomTrailing":
		return Alignment{AlignTrailing, AlignBottom}
	default:
		return Alignment{AlignCenter, AlignMiddle}
	}
}
