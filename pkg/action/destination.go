package action

import (
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/sdui/pkg/ui"
)

// Kind identifies what a destination produces.
type Kind int

const (
	// KindView destinations build a renderable that the host wraps in a screen.
	KindView Kind = iota
	// KindController destinations build a complete screen.
	KindController
	// KindURL destinations supply an external URL to open.
	KindURL
)

func (k Kind) String() string {
	switch k {
	case KindView:
		return "view"
	case KindController:
		return "controller"
	case KindURL:
		return "url"
	default:
		return "unknown"
	}
}

// Screen is what the navigator shows for a push or modal transition.
type Screen struct {
	Title   string
	Content ui.Renderable
}

// Destination is a registered navigation target. Builders run at dispatch
// time, never at registration.
type Destination struct {
	kind       Kind
	view       func() ui.Renderable
	controller func() Screen
	url        func() string
}

// View returns a destination built from a renderable.
func View(build func() ui.Renderable) Destination {
	return Destination{kind: KindView, view: build}
}

// Controller returns a destination that builds a full screen.
func Controller(build func() Screen) Destination {
	return Destination{kind: KindController, controller: build}
}

// URL returns a destination that opens the supplied URL.
func URL(supply func() string) Destination {
	return Destination{kind: KindURL, url: supply}
}

// Kind returns the destination kind.
func (d Destination) Kind() Kind {
	return d.kind
}

// screen builds the screen for view and controller destinations.
func (d Destination) screen() Screen {
	switch d.kind {
	case KindView:
		if d.view == nil {
			return Screen{}
		}
		return Screen{Content: d.view()}
	case KindController:
		if d.controller == nil {
			return Screen{}
		}
		return d.controller()
	default:
		return Screen{}
	}
}

// Registry maps destination keys to destinations. Hosts populate it at
// startup; dispatch only reads it.
type Registry struct {
	mu           sync.RWMutex
	destinations map[string]Destination
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{destinations: make(map[string]Destination)}
}

// Register stores d under key, replacing any previous entry.
func (r *Registry) Register(key string, d Destination) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destinations[key] = d
}

// Resolve returns the destination for key.
func (r *Registry) Resolve(key string) (Destination, bool) {
	if r == nil {
		return Destination{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.destinations[key]
	return d, ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.destinations))
	for key := range r.destinations {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
