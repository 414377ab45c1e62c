package sdui

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
)

// object is a parsed JSON object. The document is parsed once into generic
// values (objects, arrays, float64, string, bool, nil) and the decoder walks
// that tree, so every byte is scanned a fixed number of times however deep
// the views nest.
type object = map[string]any

type decoder struct{}

type componentDecoder func(d *decoder, obj object, path string) (Component, error)

// componentDecoder selects the payload schema for a kind. Every kind returned
// by Kinds has one.
func componentDecoderFor(kind Kind) (componentDecoder, bool) {
	switch kind {
	case KindText:
		return (*decoder).text, true
	case KindButton:
		return (*decoder).button, true
	case KindImage:
		return (*decoder).image, true
	case KindSpacer:
		return (*decoder).spacer, true
	case KindRectangle:
		return (*decoder).rectangle, true
	case KindRoundedRectangle:
		return (*decoder).roundedRectangle, true
	case KindScroll:
		return (*decoder).scroll, true
	case KindContainer:
		return (*decoder).containerComponent, true
	case KindCustom:
		return (*decoder).custom, true
	default:
		return nil, false
	}
}

// parse reads data into a generic tree.
func (d *decoder) parse(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, sduierrors.NewDecodeError("", "empty document", sduierrors.ErrMissingField)
	}
	var root any
	err := json.Unmarshal(data, &root)
	if err == nil {
		return root, nil
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return nil, sduierrors.NewDecodeError("", fmt.Sprintf("malformed JSON at offset %d: %s", syntaxErr.Offset, syntaxErr.Error()), err)
	}
	return nil, sduierrors.NewDecodeError("", err.Error(), fmt.Errorf("%w: %w", sduierrors.ErrTypeMismatch, err))
}

func (d *decoder) scene(data []byte) (*Scene, error) {
	root, err := d.parse(data)
	if err != nil {
		return nil, err
	}
	obj, err := d.object(root, "")
	if err != nil {
		return nil, err
	}
	if err := d.require(obj, "", "hasNavigationBar", "container"); err != nil {
		return nil, err
	}

	scene := &Scene{ID: uuid.New()}
	if err := d.boolean(obj, "", "hasNavigationBar", &scene.HasNavigationBar); err != nil {
		return nil, err
	}
	containerObj, err := d.object(obj["container"], "container")
	if err != nil {
		return nil, err
	}
	container, err := d.container(containerObj, "container")
	if err != nil {
		return nil, err
	}
	scene.Container = container
	return scene, nil
}

func (d *decoder) view(data []byte) (View, error) {
	root, err := d.parse(data)
	if err != nil {
		return View{}, err
	}
	return d.viewAt(root, "")
}

func (d *decoder) viewAt(node any, path string) (View, error) {
	obj, err := d.object(node, path)
	if err != nil {
		return View{}, err
	}
	if err := d.require(obj, path, "type", "component"); err != nil {
		return View{}, err
	}

	var tag string
	if err := d.str(obj, path, "type", &tag); err != nil {
		return View{}, err
	}
	kind, _ := ParseKind(tag)
	decode, ok := componentDecoderFor(kind)
	if !ok {
		return View{}, sduierrors.NewUnknownTypeError(join(path, "type"), tag)
	}

	componentPath := join(path, "component")
	componentObj, err := d.object(obj["component"], componentPath)
	if err != nil {
		return View{}, err
	}
	component, err := decode(d, componentObj, componentPath)
	if err != nil {
		return View{}, err
	}

	return View{ID: uuid.New(), Type: tag, Component: component}, nil
}

func (d *decoder) optView(obj object, path, key string) (*View, error) {
	node, ok := obj[key]
	if !ok || node == nil {
		return nil, nil
	}
	v, err := d.viewAt(node, join(path, key))
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (d *decoder) style(obj object, path string) (Style, error) {
	var s Style
	if err := d.require(obj, path, "componentId"); err != nil {
		return s, err
	}
	if err := d.str(obj, path, "componentId", &s.ComponentID); err != nil {
		return s, err
	}
	padding, err := d.padding(obj, path)
	if err != nil {
		return s, err
	}
	s.Padding = padding
	if s.Frame, err = d.frame(obj, path); err != nil {
		return s, err
	}
	if s.ExtreamFrame, err = d.extreamFrame(obj, path); err != nil {
		return s, err
	}
	if err := d.optStr(obj, path, "foregroundColor", &s.ForegroundColor); err != nil {
		return s, err
	}
	if err := d.optStr(obj, path, "backgroundColor", &s.BackgroundColor); err != nil {
		return s, err
	}
	if err := d.optNumber(obj, path, "cornerRadius", &s.CornerRadius); err != nil {
		return s, err
	}
	if s.Overlay, err = d.optView(obj, path, "overlay"); err != nil {
		return s, err
	}
	return s, nil
}

func (d *decoder) text(obj object, path string) (Component, error) {
	style, err := d.style(obj, path)
	if err != nil {
		return nil, err
	}
	c := &Text{Style: style}
	if err := d.require(obj, path, "text"); err != nil {
		return nil, err
	}
	if err := d.str(obj, path, "text", &c.Text); err != nil {
		return nil, err
	}
	if c.Font, err = d.font(obj, path); err != nil {
		return nil, err
	}
	if err := d.optInt(obj, path, "lineLimit", &c.LineLimit); err != nil {
		return nil, err
	}
	return c, nil
}

func (d *decoder) button(obj object, path string) (Component, error) {
	style, err := d.style(obj, path)
	if err != nil {
		return nil, err
	}
	c := &Button{Style: style}
	if err := d.require(obj, path, "text"); err != nil {
		return nil, err
	}
	if err := d.str(obj, path, "text", &c.Text); err != nil {
		return nil, err
	}
	if c.Action, err = d.action(obj, path); err != nil {
		return nil, err
	}
	if c.CustomViews, err = d.optView(obj, path, "customViews"); err != nil {
		return nil, err
	}
	return c, nil
}

func (d *decoder) image(obj object, path string) (Component, error) {
	style, err := d.style(obj, path)
	if err != nil {
		return nil, err
	}
	c := &Image{Style: style}
	if err := d.require(obj, path, "imageURL"); err != nil {
		return nil, err
	}
	if err := d.str(obj, path, "imageURL", &c.ImageURL); err != nil {
		return nil, err
	}
	return c, nil
}

func (d *decoder) spacer(obj object, path string) (Component, error) {
	style, err := d.style(obj, path)
	if err != nil {
		return nil, err
	}
	return &Spacer{Style: style}, nil
}

func (d *decoder) rectangle(obj object, path string) (Component, error) {
	style, err := d.style(obj, path)
	if err != nil {
		return nil, err
	}
	stroke, err := d.stroke(obj, path)
	if err != nil {
		return nil, err
	}
	return &Rectangle{Style: style, StrokeComponent: stroke}, nil
}

func (d *decoder) roundedRectangle(obj object, path string) (Component, error) {
	style, err := d.style(obj, path)
	if err != nil {
		return nil, err
	}
	stroke, err := d.stroke(obj, path)
	if err != nil {
		return nil, err
	}
	return &RoundedRectangle{Style: style, StrokeComponent: stroke}, nil
}

func (d *decoder) scroll(obj object, path string) (Component, error) {
	style, err := d.style(obj, path)
	if err != nil {
		return nil, err
	}
	c := &Scroll{Style: style}
	if err := d.require(obj, path, "axis", "showIndicator", "containerViews"); err != nil {
		return nil, err
	}
	if err := d.str(obj, path, "axis", &c.Axis); err != nil {
		return nil, err
	}
	if err := d.boolean(obj, path, "showIndicator", &c.ShowIndicator); err != nil {
		return nil, err
	}
	body, err := d.viewAt(obj["containerViews"], join(path, "containerViews"))
	if err != nil {
		return nil, err
	}
	c.ContainerViews = body
	return c, nil
}

func (d *decoder) containerComponent(obj object, path string) (Component, error) {
	return d.container(obj, path)
}

func (d *decoder) container(obj object, path string) (*Container, error) {
	style, err := d.style(obj, path)
	if err != nil {
		return nil, err
	}
	c := &Container{ID: uuid.New(), Style: style}
	if err := d.require(obj, path, "layout", "views"); err != nil {
		return nil, err
	}
	if c.Layout, err = d.layout(obj["layout"], join(path, "layout")); err != nil {
		return nil, err
	}

	viewsPath := join(path, "views")
	items, err := d.array(obj["views"], viewsPath)
	if err != nil {
		return nil, err
	}
	c.Views = make([]View, 0, len(items))
	for i, item := range items {
		v, err := d.viewAt(item, fmt.Sprintf("%s[%d]", viewsPath, i))
		if err != nil {
			return nil, err
		}
		c.Views = append(c.Views, v)
	}
	return c, nil
}

func (d *decoder) custom(obj object, path string) (Component, error) {
	style, err := d.style(obj, path)
	if err != nil {
		return nil, err
	}
	c := &Custom{Style: style}
	if err := d.str(obj, path, "customType", &c.CustomType); err != nil {
		return nil, err
	}
	if node, ok := obj["properties"]; ok && node != nil {
		props, isObject := node.(object)
		if !isObject {
			return nil, mismatch(join(path, "properties"), "object", node)
		}
		c.Properties = props
	}
	return c, nil
}

func (d *decoder) padding(obj object, path string) ([]Padding, error) {
	node, ok := obj["padding"]
	if !ok || node == nil {
		return nil, nil
	}
	paddingPath := join(path, "padding")
	items, err := d.array(node, paddingPath)
	if err != nil {
		return nil, err
	}
	out := make([]Padding, 0, len(items))
	for i, item := range items {
		at := fmt.Sprintf("%s[%d]", paddingPath, i)
		p, err := d.object(item, at)
		if err != nil {
			return nil, err
		}
		if err := d.require(p, at, "edge"); err != nil {
			return nil, err
		}
		var pad Padding
		if err := d.str(p, at, "edge", &pad.Edge); err != nil {
			return nil, err
		}
		if err := d.optNumber(p, at, "spacing", &pad.Spacing); err != nil {
			return nil, err
		}
		out = append(out, pad)
	}
	return out, nil
}

func (d *decoder) frame(obj object, path string) (*Frame, error) {
	f, at, err := d.optObject(obj, path, "frame")
	if f == nil || err != nil {
		return nil, err
	}
	out := &Frame{}
	if err := d.optNumber(f, at, "width", &out.Width); err != nil {
		return nil, err
	}
	if err := d.optNumber(f, at, "height", &out.Height); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *decoder) extreamFrame(obj object, path string) (*ExtreamFrame, error) {
	f, at, err := d.optObject(obj, path, "extreamFrame")
	if f == nil || err != nil {
		return nil, err
	}
	out := &ExtreamFrame{}
	for _, dim := range []struct {
		key string
		dst **Dimension
	}{
		{"minWidth", &out.MinWidth},
		{"idealWidth", &out.IdealWidth},
		{"maxWidth", &out.MaxWidth},
		{"minHeight", &out.MinHeight},
		{"idealHeight", &out.IdealHeight},
		{"maxHeight", &out.MaxHeight},
	} {
		if err := d.dimension(f, at, dim.key, dim.dst); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *decoder) font(obj object, path string) (*Font, error) {
	f, at, err := d.optObject(obj, path, "font")
	if f == nil || err != nil {
		return nil, err
	}
	if err := d.require(f, at, "fontName", "fontSize"); err != nil {
		return nil, err
	}
	out := &Font{}
	if err := d.str(f, at, "fontName", &out.FontName); err != nil {
		return nil, err
	}
	if err := d.number(f, at, "fontSize", &out.FontSize); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *decoder) action(obj object, path string) (*Action, error) {
	a, at, err := d.optObject(obj, path, "action")
	if a == nil || err != nil {
		return nil, err
	}
	if err := d.require(a, at, "type", "destination"); err != nil {
		return nil, err
	}
	out := &Action{}
	if err := d.str(a, at, "type", &out.Type); err != nil {
		return nil, err
	}
	if err := d.str(a, at, "destination", &out.Destination); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *decoder) stroke(obj object, path string) (*Stroke, error) {
	s, at, err := d.optObject(obj, path, "strokeComponent")
	if s == nil || err != nil {
		return nil, err
	}
	if err := d.require(s, at, "strokeColor", "lineWidth"); err != nil {
		return nil, err
	}
	out := &Stroke{}
	if err := d.str(s, at, "strokeColor", &out.StrokeColor); err != nil {
		return nil, err
	}
	if err := d.number(s, at, "lineWidth", &out.LineWidth); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *decoder) layout(node any, path string) (Layout, error) {
	var out Layout
	l, err := d.object(node, path)
	if err != nil {
		return out, err
	}
	if err := d.require(l, path, "type", "alignment"); err != nil {
		return out, err
	}
	if err := d.str(l, path, "type", &out.Type); err != nil {
		return out, err
	}
	if err := d.optNumber(l, path, "spacing", &out.Spacing); err != nil {
		return out, err
	}
	if err := d.str(l, path, "alignment", &out.Alignment); err != nil {
		return out, err
	}
	return out, nil
}

func (d *decoder) dimension(obj object, path, key string, dst **Dimension) error {
	node, ok := obj[key]
	if !ok || node == nil {
		return nil
	}
	var dim Dimension
	switch v := node.(type) {
	case float64:
		dim = Points(v)
	case string:
		dim = dimensionNamed(v)
	default:
		return mismatch(join(path, key), "number or sentinel name", node)
	}
	*dst = &dim
	return nil
}

// object asserts node is a JSON object.
func (d *decoder) object(node any, path string) (object, error) {
	obj, ok := node.(object)
	if !ok {
		return nil, mismatch(path, "object", node)
	}
	return obj, nil
}

// optObject returns obj[key] as an object, or nil when it is absent or null.
func (d *decoder) optObject(obj object, path, key string) (object, string, error) {
	at := join(path, key)
	node, ok := obj[key]
	if !ok || node == nil {
		return nil, at, nil
	}
	out, err := d.object(node, at)
	return out, at, err
}

func (d *decoder) array(node any, path string) ([]any, error) {
	items, ok := node.([]any)
	if !ok {
		return nil, mismatch(path, "array", node)
	}
	return items, nil
}

// require fails with the path of the first missing key.
func (d *decoder) require(obj object, path string, keys ...string) error {
	for _, key := range keys {
		if _, ok := obj[key]; !ok {
			return sduierrors.NewDecodeError(join(path, key), fmt.Sprintf("missing required field %q", key), sduierrors.ErrMissingField)
		}
	}
	return nil
}

// str decodes obj[key] into dst. Absent and null members leave dst unchanged.
func (d *decoder) str(obj object, path, key string, dst *string) error {
	node, ok := obj[key]
	if !ok || node == nil {
		return nil
	}
	s, ok := node.(string)
	if !ok {
		return mismatch(join(path, key), "string", node)
	}
	*dst = s
	return nil
}

func (d *decoder) optStr(obj object, path, key string, dst **string) error {
	if node, ok := obj[key]; !ok || node == nil {
		return nil
	}
	var s string
	if err := d.str(obj, path, key, &s); err != nil {
		return err
	}
	*dst = &s
	return nil
}

func (d *decoder) boolean(obj object, path, key string, dst *bool) error {
	node, ok := obj[key]
	if !ok || node == nil {
		return nil
	}
	b, ok := node.(bool)
	if !ok {
		return mismatch(join(path, key), "bool", node)
	}
	*dst = b
	return nil
}

func (d *decoder) number(obj object, path, key string, dst *float64) error {
	node, ok := obj[key]
	if !ok || node == nil {
		return nil
	}
	n, ok := node.(float64)
	if !ok {
		return mismatch(join(path, key), "number", node)
	}
	*dst = n
	return nil
}

func (d *decoder) optNumber(obj object, path, key string, dst **float64) error {
	if node, ok := obj[key]; !ok || node == nil {
		return nil
	}
	var n float64
	if err := d.number(obj, path, key, &n); err != nil {
		return err
	}
	*dst = &n
	return nil
}

func (d *decoder) optInt(obj object, path, key string, dst **int) error {
	if node, ok := obj[key]; !ok || node == nil {
		return nil
	}
	var n float64
	if err := d.number(obj, path, key, &n); err != nil {
		return err
	}
	if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
		return sduierrors.NewDecodeError(join(path, key), fmt.Sprintf("expected int, found number %v", n), sduierrors.ErrTypeMismatch)
	}
	i := int(n)
	*dst = &i
	return nil
}

func mismatch(path, want string, found any) error {
	return sduierrors.NewDecodeError(path, fmt.Sprintf("expected %s, found %s", want, jsonKind(found)), sduierrors.ErrTypeMismatch)
}

func jsonKind(node any) string {
	switch node.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case object:
		return "object"
	default:
		return fmt.Sprintf("%T", node)
	}
}
