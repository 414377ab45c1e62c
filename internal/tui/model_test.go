package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/sdui/internal/app"
	"github.com/alexisbeaulieu97/sdui/pkg/action"
	"github.com/alexisbeaulieu97/sdui/pkg/ui"
	"github.com/alexisbeaulieu97/sdui/pkg/ui/components"
)

const homeScene = `{
	"hasNavigationBar": false,
	"container": {
		"componentId": "root",
		"layout": {"type": "v", "alignment": "leading"},
		"views": [
			{"type": "button", "component": {"componentId": "push", "text": "Details", "action": {"type": "push", "destination": "detail"}}},
			{"type": "button", "component": {"componentId": "modal", "text": "Sheet", "action": {"type": "modal", "destination": "sheet"}}}
		]
	}
}`

func newModel(t *testing.T, scene string) Model {
	t.Helper()

	svc, err := app.NewService(app.Options{})
	require.NoError(t, err)
	svc.Destinations.Register("detail", action.View(func() ui.Renderable {
		return components.NewText("Detail body")
	}))
	svc.Destinations.Register("sheet", action.Controller(func() action.Screen {
		return action.Screen{Title: "Sheet", Content: components.NewText("Modal body")}
	}))

	ctx := context.Background()
	parsed, err := svc.Decode(ctx, []byte(scene))
	require.NoError(t, err)

	m := New(svc, action.Screen{Title: "Home", Content: svc.Render(ctx, parsed)})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	return updated.(Model)
}

func press(m Model, msg tea.KeyMsg) Model {
	updated, _ := m.Update(msg)
	return updated.(Model)
}

var (
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	esc      = tea.KeyMsg{Type: tea.KeyEsc}
	down     = tea.KeyMsg{Type: tea.KeyDown}
	up       = tea.KeyMsg{Type: tea.KeyUp}
	end      = tea.KeyMsg{Type: tea.KeyEnd}
)

func TestFocusCycles(t *testing.T) {
	t.Parallel()

	m := newModel(t, homeScene)
	require.Equal(t, 0, m.Focus())

	m = press(m, tab)
	require.Equal(t, 1, m.Focus())
	m = press(m, tab)
	require.Equal(t, 0, m.Focus())
	m = press(m, shiftTab)
	require.Equal(t, 1, m.Focus())
}

func TestPushAndPop(t *testing.T) {
	t.Parallel()

	m := newModel(t, homeScene)
	m = press(m, enter)
	require.Equal(t, 2, m.Depth())
	require.False(t, m.Presenting())
	require.Contains(t, m.View(), "Detail body")

	m = press(m, esc)
	require.Equal(t, 1, m.Depth())
	require.Equal(t, "Home", m.Title())

	// The root screen is never popped.
	m = press(m, esc)
	require.Equal(t, 1, m.Depth())
}

func TestPresentAndDismiss(t *testing.T) {
	t.Parallel()

	m := newModel(t, homeScene)
	m = press(m, tab)
	m = press(m, enter)
	require.True(t, m.Presenting())
	require.Equal(t, "Sheet", m.Title())
	require.Equal(t, 1, m.Depth())

	view := m.View()
	require.Contains(t, view, "Modal body")
	require.Contains(t, view, "Sheet")
	require.Contains(t, view, "╭")

	m = press(m, esc)
	require.False(t, m.Presenting())
	require.Equal(t, "Home", m.Title())
}

func TestTapWithoutDestination(t *testing.T) {
	t.Parallel()

	m := newModel(t, strings.Replace(homeScene, `"detail"`, `"nowhere"`, 1))
	m = press(m, enter)
	require.Equal(t, 1, m.Depth())
	require.False(t, m.Presenting())
}

func TestScroll(t *testing.T) {
	t.Parallel()

	views := make([]string, 30)
	for i := range views {
		views[i] = fmt.Sprintf(`{"type": "text", "component": {"componentId": "t%d", "text": "line %d"}}`, i, i)
	}
	scene := `{"hasNavigationBar": false, "container": {"componentId": "root", "layout": {"type": "v", "alignment": "leading"}, "views": [` +
		strings.Join(views, ",") + `]}}`

	m := newModel(t, scene)
	m = press(m, up)
	require.Equal(t, 0, m.Offset())

	m = press(m, down)
	require.Equal(t, 1, m.Offset())
	require.True(t, strings.HasPrefix(m.View(), "line 1"))

	// 30 rows in an 11 row body.
	m = press(m, end)
	require.Equal(t, 19, m.Offset())
	require.Contains(t, m.View(), "line 29")

	m = press(m, down)
	require.Equal(t, 19, m.Offset())
}

func TestQuit(t *testing.T) {
	t.Parallel()

	m := newModel(t, homeScene)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestImageLoadedRedraws(t *testing.T) {
	t.Parallel()

	m := newModel(t, homeScene)
	updated, cmd := m.Update(ImageLoadedMsg{})
	require.Nil(t, cmd)
	require.Equal(t, m.View(), updated.(Model).View())
}

func TestNavigatorQueues(t *testing.T) {
	t.Parallel()

	nav := NewNavigator()
	nav.Push(action.Screen{Title: "a"})
	nav.Present(action.Screen{Title: "b"})

	pending := nav.drain()
	require.Len(t, pending, 2)
	require.False(t, pending[0].modal)
	require.True(t, pending[1].modal)
	require.Empty(t, nav.drain())
}

func TestNotifierDetached(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() { NewNotifier().Notify() })
}
