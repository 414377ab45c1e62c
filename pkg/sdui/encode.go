package sdui

import (
	"encoding/json"
	"fmt"

	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
)

type encoder struct {
	indent string
}

type wireView struct {
	Type      string    `json:"type"`
	Component Component `json:"component"`
}

func (e *encoder) scene(s *Scene) ([]byte, error) {
	if s == nil {
		return nil, sduierrors.NewEncodeError("", "scene is nil", nil)
	}
	if s.Container == nil {
		return nil, sduierrors.NewEncodeError("container", "container is nil", nil)
	}
	if err := checkTree(s.Container, "container"); err != nil {
		return nil, err
	}

	type wireScene struct {
		HasNavigationBar bool       `json:"hasNavigationBar"`
		Container        *Container `json:"container"`
	}
	return e.marshal(wireScene{HasNavigationBar: s.HasNavigationBar, Container: s.Container})
}

func (e *encoder) view(v View) ([]byte, error) {
	tag, err := tagFor(v, "")
	if err != nil {
		return nil, err
	}
	return e.marshal(wireView{Type: tag, Component: v.Component})
}

func (e *encoder) marshal(v any) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if e.indent != "" {
		data, err = json.MarshalIndent(v, "", e.indent)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, sduierrors.NewEncodeError("", err.Error(), err)
	}
	return data, nil
}

// MarshalJSON writes an empty views array rather than null.
func (c Container) MarshalJSON() ([]byte, error) {
	type plain Container
	p := plain(c)
	if p.Views == nil {
		p.Views = []View{}
	}
	return json.Marshal(p)
}

// tagFor derives the wire tag from the runtime kind of the component and
// checks it against a tag supplied on the view.
func tagFor(v View, path string) (string, error) {
	if v.Component == nil {
		return "", sduierrors.NewEncodeError(path, "unknown component type: component is nil", sduierrors.ErrUnknownComponentType)
	}
	tag := v.Component.Kind().Tag()
	if tag == "" {
		return "", sduierrors.NewEncodeError(path, fmt.Sprintf("unknown component type %T", v.Component), sduierrors.ErrUnknownComponentType)
	}
	if v.Type != "" && v.Type != tag {
		return "", sduierrors.NewEncodeError(path, fmt.Sprintf("view type %q does not match %s component", v.Type, tag), sduierrors.ErrTypeTagMismatch)
	}
	return tag, nil
}

// checkTree walks every nested view so encode failures report a coding path.
func checkTree(c Component, path string) error {
	var walkErr error
	Walk(c, path, func(v View, at string) bool {
		if _, err := tagFor(v, at); err != nil {
			walkErr = err
			return false
		}
		return true
	})
	return walkErr
}

// Walk visits every view nested under c depth-first, in document order,
// passing each view's coding path. Returning false from fn stops the walk.
func Walk(c Component, path string, fn func(v View, path string) bool) {
	walk(c, path, fn)
}

func walk(c Component, path string, fn func(View, string) bool) bool {
	if c == nil {
		return true
	}
	for _, child := range Children(c, path) {
		if !fn(child.View, child.Path) {
			return false
		}
		if !walk(child.View.Component, child.Path+".component", fn) {
			return false
		}
	}
	return true
}

// ChildView is a nested view and its coding path.
type ChildView struct {
	Path string
	View View
}

// Children lists the views a component owns directly: its overlay and, per
// kind, a button face, a scroll body or container views.
func Children(c Component, path string) []ChildView {
	if c == nil {
		return nil
	}
	var out []ChildView
	if overlay := c.Common().Overlay; overlay != nil {
		out = append(out, ChildView{Path: join(path, "overlay"), View: *overlay})
	}
	switch comp := c.(type) {
	case *Button:
		if comp.CustomViews != nil {
			out = append(out, ChildView{Path: join(path, "customViews"), View: *comp.CustomViews})
		}
	case *Scroll:
		out = append(out, ChildView{Path: join(path, "containerViews"), View: comp.ContainerViews})
	case *Container:
		for i, v := range comp.Views {
			out = append(out, ChildView{Path: fmt.Sprintf("%s[%d]", join(path, "views"), i), View: v})
		}
	}
	return out
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
