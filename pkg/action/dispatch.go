package action

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
	"github.com/alexisbeaulieu97/sdui/pkg/observability"
	"github.com/alexisbeaulieu97/sdui/pkg/sdui"
)

// Navigator performs screen transitions for a host.
type Navigator interface {
	Push(Screen)
	Present(Screen)
}

// Host holds the navigator dispatch transitions go through. The host may
// release it at any time; later transitions then become no-ops.
type Host struct {
	mu  sync.RWMutex
	nav Navigator
}

// NewHost creates a host attached to nav.
func NewHost(nav Navigator) *Host {
	return &Host{nav: nav}
}

// Attach replaces the navigator.
func (h *Host) Attach(nav Navigator) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nav = nav
}

// Release drops the navigator.
func (h *Host) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nav = nil
}

// Navigator returns the attached navigator, if any.
func (h *Host) Navigator() (Navigator, bool) {
	if h == nil {
		return nil, false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.nav, h.nav != nil
}

// Outcome reports what handling an action did.
type Outcome string

const (
	OutcomeNone                  Outcome = "none"
	OutcomePushed                Outcome = "pushed"
	OutcomePresented             Outcome = "presented"
	OutcomeOpened                Outcome = "opened"
	OutcomeUnknownDestination    Outcome = "unknown_destination"
	OutcomeUnsupportedTransition Outcome = "unsupported_transition"
	OutcomeNavigatorReleased     Outcome = "navigator_released"
	OutcomeInvalidURL            Outcome = "invalid_url"
	OutcomeOpenFailed            Outcome = "open_failed"
)

// Succeeded reports whether the outcome performed a transition.
func (o Outcome) Succeeded() bool {
	return o == OutcomePushed || o == OutcomePresented || o == OutcomeOpened
}

// Dispatcher resolves actions against a registry and performs the resulting
// transition. Handle never fails: every problem is logged and reported as an
// Outcome.
type Dispatcher struct {
	registry *Registry
	host     *Host
	opener   URLOpener
	logger   zerolog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHost sets the navigation host.
func WithHost(h *Host) Option {
	return func(d *Dispatcher) { d.host = h }
}

// WithOpener sets the URL opener.
func WithOpener(o URLOpener) Option {
	return func(d *Dispatcher) { d.opener = o }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// NewDispatcher creates a dispatcher over registry.
func NewDispatcher(registry *Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		opener:   SystemOpener{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Host returns the navigation host, which may be nil.
func (d *Dispatcher) Host() *Host {
	return d.host
}

// Handle performs a. A nil action does nothing.
func (d *Dispatcher) Handle(ctx context.Context, a *sdui.Action) Outcome {
	if a == nil {
		return OutcomeNone
	}
	outcome := d.handle(ctx, a)
	observability.Action().OnDispatch(ctx, a.Destination, a.Type, string(outcome))
	return outcome
}

func (d *Dispatcher) handle(ctx context.Context, a *sdui.Action) Outcome {
	dest, ok := d.registry.Resolve(a.Destination)
	if !ok {
		d.fail(a, OutcomeUnknownDestination, sduierrors.ErrUnknownDestination)
		return OutcomeUnknownDestination
	}

	if dest.Kind() == KindURL {
		return d.open(ctx, a, dest)
	}

	transition := a.Transition()
	if transition != sdui.TransitionPush && transition != sdui.TransitionModal {
		d.fail(a, OutcomeUnsupportedTransition, sduierrors.ErrUnsupportedTransition)
		return OutcomeUnsupportedTransition
	}

	nav, ok := d.host.Navigator()
	if !ok {
		d.fail(a, OutcomeNavigatorReleased, sduierrors.ErrNavigatorReleased)
		return OutcomeNavigatorReleased
	}

	screen := dest.screen()
	if transition == sdui.TransitionModal {
		nav.Present(screen)
		d.logger.Debug().Str("destination", a.Destination).Msg("presented modal")
		return OutcomePresented
	}
	nav.Push(screen)
	d.logger.Debug().Str("destination", a.Destination).Msg("pushed screen")
	return OutcomePushed
}

func (d *Dispatcher) open(ctx context.Context, a *sdui.Action, dest Destination) Outcome {
	raw := ""
	if dest.url != nil {
		raw = dest.url()
	}
	u, err := ParseURL(raw)
	if err != nil {
		d.fail(a, OutcomeInvalidURL, err)
		return OutcomeInvalidURL
	}
	if err := d.opener.Open(ctx, u); err != nil {
		d.fail(a, OutcomeOpenFailed, err)
		return OutcomeOpenFailed
	}
	d.logger.Debug().Str("destination", a.Destination).Str("url", u.String()).Msg("opened url")
	return OutcomeOpened
}

func (d *Dispatcher) fail(a *sdui.Action, outcome Outcome, err error) {
	err = sduierrors.NewDispatchError(a.Destination, a.Type, err)
	d.logger.Warn().
		Err(err).
		Str("destination", a.Destination).
		Str("transition", a.Type).
		Str("outcome", string(outcome)).
		Msg("action dropped")
}
