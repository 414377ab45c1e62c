package sdui

// Kind identifies one member of the closed set of component variants.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindButton
	KindImage
	KindSpacer
	KindRectangle
	KindRoundedRectangle
	KindScroll
	KindContainer
	KindCustom
)

// Wire tags for each kind. These are the only values accepted in a view's "type".
const (
	TagText             = "text"
	TagButton           = "button"
	TagImage            = "image"
	TagSpacer           = "spacer"
	TagRectangle        = "rectangle"
	TagRoundedRectangle = "roundedRectangle"
	TagScroll           = "scroll"
	TagContainer        = "container"
	TagCustom           = "custom"
)

var kindTags = map[Kind]string{
	KindText:             TagText,
	KindButton:           TagButton,
	KindImage:            TagImage,
	KindSpacer:           TagSpacer,
	KindRectangle:        TagRectangle,
	KindRoundedRectangle: TagRoundedRectangle,
	KindScroll:           TagScroll,
	KindContainer:        TagContainer,
	KindCustom:           TagCustom,
}

var tagKinds = func() map[string]Kind {
	out := make(map[string]Kind, len(kindTags))
	for kind, tag := range kindTags {
		out[tag] = kind
	}
	return out
}()

// ParseKind resolves a wire tag. Unknown tags return KindUnknown and false.
func ParseKind(tag string) (Kind, bool) {
	kind, ok := tagKinds[tag]
	if !ok {
		return KindUnknown, false
	}
	return kind, true
}

// Tag returns the wire tag for the kind, or "" for KindUnknown.
func (k Kind) Tag() string {
	return kindTags[k]
}

func (k Kind) String() string {
	if tag, ok := kindTags[k]; ok {
		return tag
	}
	return "unknown"
}

// Kinds lists every known kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindText,
		KindButton,
		KindImage,
		KindSpacer,
		KindRectangle,
		KindRoundedRectangle,
		KindScroll,
		KindContainer,
		KindCustom,
	}
}
