// Package observability provides hooks for metrics and tracing.
//
// Libraries in this module call hooks to report decode, render, dispatch and
// image events. Hosts register implementations at startup; by default every
// hook is a no-op so the libraries carry no backend dependency.
//
//	func main() {
//	    observability.SetRenderHooks(metrics.NewRenderHooks(reg))
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// RenderHooks receives events from document decoding and rendering.
type RenderHooks interface {
	// OnDecode records a decode attempt. err is nil on success.
	OnDecode(ctx context.Context, size int, duration time.Duration, err error)

	// OnRender records a completed scene render.
	OnRender(ctx context.Context, nodes int, duration time.Duration)

	// OnPlaceholder records a node replaced by an inline placeholder.
	OnPlaceholder(ctx context.Context, componentID, reason string)
}

// ActionHooks receives events from action dispatch.
type ActionHooks interface {
	// OnDispatch records the outcome of handling one action.
	OnDispatch(ctx context.Context, destination, transition, outcome string)
}

// ImageHooks receives events from image loading.
type ImageHooks interface {
	// OnImageLoad records a finished load. source is "remote" or "asset".
	OnImageLoad(ctx context.Context, source string, duration time.Duration, err error)
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnDecode(context.Context, int, time.Duration, error) {}
func (NoopRenderHooks) OnRender(context.Context, int, time.Duration)        {}
func (NoopRenderHooks) OnPlaceholder(context.Context, string, string)       {}

// NoopActionHooks is a no-op implementation of ActionHooks.
type NoopActionHooks struct{}

func (NoopActionHooks) OnDispatch(context.Context, string, string, string) {}

// NoopImageHooks is a no-op implementation of ImageHooks.
type NoopImageHooks struct{}

func (NoopImageHooks) OnImageLoad(context.Context, string, time.Duration, error) {}

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	actionHooks ActionHooks = NoopActionHooks{}
	imageHooks  ImageHooks  = NoopImageHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetActionHooks registers custom action hooks.
func SetActionHooks(h ActionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		actionHooks = h
	}
}

// SetImageHooks registers custom image hooks.
func SetImageHooks(h ImageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		imageHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Action returns the registered action hooks.
func Action() ActionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return actionHooks
}

// Image returns the registered image hooks.
func Image() ImageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return imageHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	actionHooks = NoopActionHooks{}
	imageHooks = NoopImageHooks{}
}
