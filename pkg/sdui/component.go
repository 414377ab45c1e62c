package sdui

import (
	"github.com/google/uuid"
)

// Style holds the attributes every component shares. Each variant embeds it,
// so style application works through Component.Common regardless of kind.
type Style struct {
	ComponentID     string        `json:"componentId"`
	Padding         []Padding     `json:"padding,omitempty"`
	Frame           *Frame        `json:"frame,omitempty"`
	ExtreamFrame    *ExtreamFrame `json:"extreamFrame,omitempty"`
	ForegroundColor *string       `json:"foregroundColor,omitempty"`
	BackgroundColor *string       `json:"backgroundColor,omitempty"`
	CornerRadius    *float64      `json:"cornerRadius,omitempty" validate:"omitempty,gte=0"`
	Overlay         *View         `json:"overlay,omitempty" validate:"-"`
}

// Common returns the shared style attributes.
func (s *Style) Common() *Style {
	return s
}

// Component is the closed set of variants a View can carry. The unexported
// marker keeps the set closed: a new kind is a new variant in this package
// plus one decoder entry.
type Component interface {
	Kind() Kind
	Common() *Style
	component()
}

// Text renders a literal string.
type Text struct {
	Style
	Text      string `json:"text"`
	Font      *Font  `json:"font,omitempty"`
	LineLimit *int   `json:"lineLimit,omitempty" validate:"omitempty,gte=0"`
}

// Button shows either CustomViews or Text and performs Action when tapped.
type Button struct {
	Style
	Text        string  `json:"text"`
	Action      *Action `json:"action,omitempty"`
	CustomViews *View   `json:"customViews,omitempty" validate:"-"`
}

// Image shows a remote image when ImageURL has a URL scheme, or a bundled asset otherwise.
type Image struct {
	Style
	ImageURL string `json:"imageURL"`
}

// Spacer is flexible empty space.
type Spacer struct {
	Style
}

// Rectangle is a filled rectangle with an optional stroke.
type Rectangle struct {
	Style
	StrokeComponent *Stroke `json:"strokeComponent,omitempty"`
}

// RoundedRectangle is a rectangle whose corners use the component's corner radius.
type RoundedRectangle struct {
	Style
	StrokeComponent *Stroke `json:"strokeComponent,omitempty"`
}

// Scroll wraps one view in a scrollable viewport.
type Scroll struct {
	Style
	Axis           string `json:"axis"`
	ShowIndicator  bool   `json:"showIndicator"`
	ContainerViews View   `json:"containerViews" validate:"-"`
}

// Container arranges its views with Layout. A container is also a component,
// so containers nest anywhere a view is accepted.
type Container struct {
	ID uuid.UUID `json:"-"`
	Style
	Layout Layout `json:"layout"`
	Views  []View `json:"views" validate:"-"`
}

// Custom is the host extension point. CustomType, when set, selects the
// registered renderer; otherwise the view's type tag does.
type Custom struct {
	Style
	CustomType string         `json:"customType,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

func (*Text) Kind() Kind             { return KindText }
func (*Button) Kind() Kind           { return KindButton }
func (*Image) Kind() Kind            { return KindImage }
func (*Spacer) Kind() Kind           { return KindSpacer }
func (*Rectangle) Kind() Kind        { return KindRectangle }
func (*RoundedRectangle) Kind() Kind { return KindRoundedRectangle }
func (*Scroll) Kind() Kind           { return KindScroll }
func (*Container) Kind() Kind        { return KindContainer }
func (*Custom) Kind() Kind           { return KindCustom }

func (*Text) component()             {}
func (*Button) component()           {}
func (*Image) component()            {}
func (*Spacer) component()           {}
func (*Rectangle) component()        {}
func (*RoundedRectangle) component() {}
func (*Scroll) component()           {}
func (*Container) component()        {}
func (*Custom) component()           {}

// NewContainer builds a container with a fresh identity.
func NewContainer(componentID string, layout Layout, views ...View) *Container {
	if views == nil {
		views = []View{}
	}
	return &Container{
		ID:     uuid.New(),
		Style:  Style{ComponentID: componentID},
		Layout: layout,
		Views:  views,
	}
}
