package render

import (
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/sdui/pkg/sdui"
	"github.com/alexisbeaulieu97/sdui/pkg/ui"
)

// CustomFunc renders a custom view. The view's component is a *sdui.Custom.
type CustomFunc func(v sdui.View) ui.Renderable

// CustomRegistry maps custom type tags to render functions. Hosts populate
// it at startup; rendering only reads it.
type CustomRegistry struct {
	mu        sync.RWMutex
	renderers map[string]CustomFunc
}

// NewCustomRegistry creates an empty registry.
func NewCustomRegistry() *CustomRegistry {
	return &CustomRegistry{renderers: make(map[string]CustomFunc)}
}

// Register stores fn under tag, replacing any previous entry.
func (r *CustomRegistry) Register(tag string, fn CustomFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[tag] = fn
}

// Lookup returns the renderer for tag.
func (r *CustomRegistry) Lookup(tag string) (CustomFunc, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.renderers[tag]
	return fn, ok && fn != nil
}

// Tags returns the registered tags in sorted order.
func (r *CustomRegistry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.renderers))
	for tag := range r.renderers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
