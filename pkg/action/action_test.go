package action

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
	"github.com/alexisbeaulieu97/sdui/pkg/sdui"
	"github.com/alexisbeaulieu97/sdui/pkg/ui"
)

type recordingNavigator struct {
	pushed    []Screen
	presented []Screen
}

func (n *recordingNavigator) Push(s Screen)    { n.pushed = append(n.pushed, s) }
func (n *recordingNavigator) Present(s Screen) { n.presented = append(n.presented, s) }

type recordingOpener struct {
	opened []string
	err    error
}

func (o *recordingOpener) Open(_ context.Context, u *url.URL) error {
	if o.err != nil {
		return o.err
	}
	o.opened = append(o.opened, u.String())
	return nil
}

func newFixture() (*Registry, *recordingNavigator, *recordingOpener, *Dispatcher, *bytes.Buffer) {
	reg := NewRegistry()
	nav := &recordingNavigator{}
	opener := &recordingOpener{}
	var logs bytes.Buffer
	d := NewDispatcher(reg,
		WithHost(NewHost(nav)),
		WithOpener(opener),
		WithLogger(zerolog.New(&logs)),
	)
	return reg, nav, opener, d, &logs
}

func TestRegistryRegisterOverwrites(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("details", URL(func() string { return "https://a.example" }))
	reg.Register("details", View(func() ui.Renderable { return ui.Static("details") }))
	reg.Register("about", Controller(func() Screen { return Screen{Title: "About"} }))

	d, ok := reg.Resolve("details")
	require.True(t, ok)
	require.Equal(t, KindView, d.Kind())
	require.Equal(t, []string{"about", "details"}, reg.Keys())

	_, ok = reg.Resolve("missing")
	require.False(t, ok)

	var nilReg *Registry
	_, ok = nilReg.Resolve("details")
	require.False(t, ok)
}

func TestHandleUnknownDestinationIsNoop(t *testing.T) {
	t.Parallel()

	_, nav, opener, d, logs := newFixture()

	require.NotPanics(t, func() {
		outcome := d.Handle(context.Background(), &sdui.Action{Type: "push", Destination: "nowhere"})
		require.Equal(t, OutcomeUnknownDestination, outcome)
	})
	require.Empty(t, nav.pushed)
	require.Empty(t, nav.presented)
	require.Empty(t, opener.opened)
	require.Contains(t, logs.String(), `"destination":"nowhere"`)
	require.Contains(t, logs.String(), `"outcome":"unknown_destination"`)
}

func TestHandleTransitions(t *testing.T) {
	t.Parallel()

	reg, nav, _, d, _ := newFixture()
	built := 0
	reg.Register("detail", View(func() ui.Renderable {
		built++
		return ui.Static("detail")
	}))
	reg.Register("settings", Controller(func() Screen {
		return Screen{Title: "Settings", Content: ui.Static("settings")}
	}))
	ctx := context.Background()

	require.Equal(t, OutcomePushed, d.Handle(ctx, &sdui.Action{Type: "push", Destination: "detail"}))
	require.Equal(t, OutcomePresented, d.Handle(ctx, &sdui.Action{Type: "modal", Destination: "settings"}))
	require.Equal(t, OutcomeUnsupportedTransition, d.Handle(ctx, &sdui.Action{Type: "slide", Destination: "detail"}))

	require.Equal(t, 1, built)
	require.Len(t, nav.pushed, 1)
	require.Equal(t, "detail", nav.pushed[0].Content.View())
	require.Len(t, nav.presented, 1)
	require.Equal(t, "Settings", nav.presented[0].Title)
}

func TestHandleReleasedNavigator(t *testing.T) {
	t.Parallel()

	reg, nav, _, d, _ := newFixture()
	reg.Register("detail", View(func() ui.Renderable { return ui.Static("detail") }))

	d.Host().Release()
	require.Equal(t, OutcomeNavigatorReleased, d.Handle(context.Background(), &sdui.Action{Type: "push", Destination: "detail"}))
	require.Empty(t, nav.pushed)

	d.Host().Attach(nav)
	require.Equal(t, OutcomePushed, d.Handle(context.Background(), &sdui.Action{Type: "push", Destination: "detail"}))

	noHost := NewDispatcher(reg)
	require.Equal(t, OutcomeNavigatorReleased, noHost.Handle(context.Background(), &sdui.Action{Type: "push", Destination: "detail"}))
}

func TestHandleURL(t *testing.T) {
	t.Parallel()

	reg, _, opener, d, _ := newFixture()
	reg.Register("docs", URL(func() string { return "https://example.com/docs" }))
	reg.Register("broken", URL(func() string { return "not a url" }))
	ctx := context.Background()

	require.Equal(t, OutcomeOpened, d.Handle(ctx, &sdui.Action{Type: "push", Destination: "docs"}))
	require.Equal(t, []string{"https://example.com/docs"}, opener.opened)

	require.Equal(t, OutcomeInvalidURL, d.Handle(ctx, &sdui.Action{Type: "url", Destination: "broken"}))

	opener.err = errors.New("no handler")
	require.Equal(t, OutcomeOpenFailed, d.Handle(ctx, &sdui.Action{Type: "url", Destination: "docs"}))
}

func TestHandleNilAction(t *testing.T) {
	t.Parallel()

	_, _, _, d, _ := newFixture()
	require.Equal(t, OutcomeNone, d.Handle(context.Background(), nil))
	require.False(t, OutcomeNone.Succeeded())
	require.True(t, OutcomePushed.Succeeded())
}

func TestParseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw   string
		valid bool
	}{
		{"https://example.com", true},
		{"mailto:team@example.com", true},
		{"", false},
		{"relative/path", false},
		{"://bad", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			_, err := ParseURL(tt.raw)
			if tt.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, sduierrors.ErrInvalidURL)
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "view", KindView.String())
	require.Equal(t, "controller", KindController.String())
	require.Equal(t, "url", KindURL.String())
}

func TestStartDetachedReapsChild(t *testing.T) {
	t.Parallel()

	cmd := exec.Command(os.Args[0], "-test.run=^$")
	exited := make(chan error, 1)
	require.NoError(t, startDetached(cmd, func(err error) { exited <- err }))

	select {
	case err := <-exited:
		require.NoError(t, err)
		require.NotNil(t, cmd.ProcessState)
		require.True(t, cmd.ProcessState.Exited())
	case <-time.After(10 * time.Second):
		t.Fatal("child was not reaped")
	}

	require.Error(t, startDetached(exec.Command(t.TempDir()), nil))
}
