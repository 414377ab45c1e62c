package sdui

import (
	"github.com/google/uuid"
)

// View is the tagged envelope pairing a wire type tag with its component.
// Type and the runtime kind of Component must agree; decode and encode both
// reject a mismatch.
type View struct {
	ID        uuid.UUID
	Type      string
	Component Component
}

// NewView wraps a component, deriving the type tag from its kind.
func NewView(c Component) View {
	v := View{ID: uuid.New(), Component: c}
	if c != nil {
		v.Type = c.Kind().Tag()
	}
	return v
}

// Kind resolves the view's type tag.
func (v View) Kind() Kind {
	kind, _ := ParseKind(v.Type)
	return kind
}

// UnmarshalJSON decodes the envelope and selects the component schema from "type".
func (v *View) UnmarshalJSON(data []byte) error {
	d := &decoder{}
	view, err := d.view(data)
	if err != nil {
		return err
	}
	*v = view
	return nil
}

// MarshalJSON encodes the envelope, re-deriving the tag from the component.
func (v View) MarshalJSON() ([]byte, error) {
	e := &encoder{}
	return e.view(v)
}

// Scene is the root of a decoded screen document.
type Scene struct {
	ID               uuid.UUID  `json:"-"`
	HasNavigationBar bool       `json:"hasNavigationBar"`
	Container        *Container `json:"container"`
}

// NewScene builds a scene with a fresh identity.
func NewScene(hasNavigationBar bool, container *Container) *Scene {
	return &Scene{ID: uuid.New(), HasNavigationBar: hasNavigationBar, Container: container}
}

// UnmarshalJSON decodes a scene document.
func (s *Scene) UnmarshalJSON(data []byte) error {
	d := &decoder{}
	scene, err := d.scene(data)
	if err != nil {
		return err
	}
	*s = *scene
	return nil
}

// MarshalJSON encodes a scene document.
func (s Scene) MarshalJSON() ([]byte, error) {
	e := &encoder{}
	return e.scene(&s)
}

// Decode parses a scene document. Any malformed JSON, missing required field,
// type mismatch or unknown component tag fails with a *errors.DecodeError
// naming the coding path. Out-of-range values such as a negative corner
// radius decode as written; see Validate.
func Decode(data []byte) (*Scene, error) {
	d := &decoder{}
	return d.scene(data)
}

// DecodeView parses a single view envelope.
func DecodeView(data []byte) (View, error) {
	d := &decoder{}
	return d.view(data)
}

// Encode serializes a scene. Components outside the closed variant set or
// views whose tag disagrees with their component fail with *errors.EncodeError.
func Encode(s *Scene) ([]byte, error) {
	e := &encoder{}
	return e.scene(s)
}

// EncodeIndent is Encode with indentation, for human consumption.
func EncodeIndent(s *Scene, indent string) ([]byte, error) {
	e := &encoder{indent: indent}
	return e.scene(s)
}
