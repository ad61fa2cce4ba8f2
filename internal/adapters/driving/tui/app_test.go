package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plancanvas/internal/adapters/driven/document/static"
	"github.com/custodia-labs/plancanvas/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/plancanvas/internal/adapters/driven/viewport"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
	"github.com/custodia-labs/plancanvas/internal/core/services"
)

func newTestSession(t *testing.T) (driving.Session, *viewport.Surface) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewAnnotationStore()
	require.NoError(t, store.ReplaceAll(ctx, "p1", []domain.Annotation{
		{ID: "loc-10", PageNumber: 1, Type: domain.AnnotationLocation, Text: "KIT-L1",
			X: 0.1, Y: 0.1, Width: 0.3, Height: 0.1, Color: "#10B981",
			RoomID: domain.Ref(1), RoomLocationID: domain.Ref(10)},
		{ID: "gen-1", PageNumber: 2, Type: domain.AnnotationGeneric,
			X: 0.5, Y: 0.5, Width: 0.2, Height: 0.2},
	}))

	surface := viewport.New(0, 0, 0, 0)
	hierarchy := domain.NewHierarchy([]domain.Room{{ID: 1, Name: "Kitchen"}}, nil, nil, nil)
	session, err := services.NewSession(ctx, domain.Project{ID: "p1", Name: "Smith Kitchen"}, hierarchy,
		services.SessionOptions{
			Annotations: store,
			Renderer:    static.Blank(2, static.SizeA3),
			Viewport:    surface,
			Cursor:      surface,
			Settings:    domain.DefaultSettings(),
		})
	require.NoError(t, err)
	t.Cleanup(session.Flush)
	return session, surface
}

func newTestApp(t *testing.T) (*App, driving.Session) {
	t.Helper()
	session, surface := newTestSession(t)
	app, err := NewApp(&Ports{Session: session, Canvas: surface})
	require.NoError(t, err)
	app.SetDimensions(100, 32)
	return app, session
}

// settingsStub implements driving.SettingsService for testing.
type settingsStub struct {
	settings *domain.Settings
	err      error
}

func (s *settingsStub) Get() (*domain.Settings, error) { return s.settings, s.err }
func (s *settingsStub) Save(*domain.Settings) error { return nil }
func (s *settingsStub) Set(string, string) error { return nil }
func (s *settingsStub) Keys() []string { return nil }
func (s *settingsStub) GetDefaults() domain.Settings { return domain.DefaultSettings() }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewApp_Success(t *testing.T) {
	session, surface := newTestSession(t)

	app, err := NewApp(&Ports{Session: session, Canvas: surface})

	require.NoError(t, err)
	assert.Equal(t, messages.ViewCanvas, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingSession)
	assert.Nil(t, app)
}

func TestNewApp_AppliesSettingsMargin(t *testing.T) {
	session, surface := newTestSession(t)
	settings := domain.DefaultSettings()
	settings.Canvas.Margin = 160

	app, err := NewApp(&Ports{Session: session, Canvas: surface, Settings: &settingsStub{settings: &settings}})
	require.NoError(t, err)
	app.SetDimensions(100, 32)

	assert.InDelta(t, 320, surface.Bounds().Height, 0.001)
}

func TestApp_ConfigReloaded(t *testing.T) {
	session, surface := newTestSession(t)
	settings := domain.DefaultSettings()
	stub := &settingsStub{settings: &settings}
	app, err := NewApp(&Ports{Session: session, Canvas: surface, Settings: stub})
	require.NoError(t, err)
	app.SetDimensions(100, 32)

	settings.Canvas.Margin = 160
	app.Update(messages.ConfigReloaded{})

	assert.InDelta(t, 320, surface.Bounds().Height, 0.001)
	assert.Equal(t, "Settings reloaded", app.StatusBar().Message())
}

func TestApp_WithContext(t *testing.T) {
	app, _ := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app, _ := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_WindowSize(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, app.width)
	assert.Equal(t, 40, app.height)
	assert.Equal(t, 120, app.StatusBar().Width())
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_QuitKey(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(runes("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_SwitchViews(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(runes("t"))
	assert.Equal(t, messages.ViewTree, app.CurrentView())
	assert.Equal(t, status.StateTree, app.StatusBar().State())
	assert.Contains(t, app.View(), "Kitchen")

	app.Update(runes("t"))
	assert.Equal(t, messages.ViewCanvas, app.CurrentView())

	app.Update(runes("?"))
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "zoom in")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewCanvas, app.CurrentView())
}

func TestApp_ViewChanged(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(messages.ViewChanged{View: messages.ViewTree})

	assert.Equal(t, messages.ViewTree, app.CurrentView())
}

func TestApp_ClearAllConfirmed(t *testing.T) {
	app, session := newTestApp(t)

	_, cmd := app.Update(runes("x"))
	require.NotNil(t, cmd)
	app.Update(cmd())

	require.NotNil(t, app.Pending())
	assert.Equal(t, status.StateConfirm, app.StatusBar().State())
	assert.Contains(t, app.View(), "Clear all 2 annotations? [y/n]")

	_, cmd = app.Update(runes("y"))
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Nil(t, app.Pending())
	assert.Empty(t, session.Snapshot().Annotations)
	assert.Equal(t, "Cleared 2 annotations", app.StatusBar().Message())
}

func TestApp_ClearAllDeclined(t *testing.T) {
	app, session := newTestApp(t)

	_, cmd := app.Update(runes("x"))
	app.Update(cmd())

	_, cmd = app.Update(runes("n"))

	assert.Nil(t, cmd)
	assert.Nil(t, app.Pending())
	assert.Len(t, session.Snapshot().Annotations, 2)
	assert.Equal(t, 1, session.Snapshot().View.Page)
	assert.Equal(t, "Cancelled", app.StatusBar().Message())
}

func TestApp_PendingBlocksOtherKeys(t *testing.T) {
	app, session := newTestApp(t)
	_, cmd := app.Update(runes("x"))
	app.Update(cmd())

	_, cmd = app.Update(runes("+"))

	assert.Nil(t, cmd)
	assert.Equal(t, 1.0, session.Snapshot().View.Zoom)
	assert.NotNil(t, app.Pending())
}

func TestApp_PageChanged(t *testing.T) {
	app, session := newTestApp(t)

	_, cmd := app.Update(runes("n"))
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, 2, session.Snapshot().View.Page)
	assert.Equal(t, 2, app.StatusBar().Canvas().Page)
	assert.Contains(t, app.View(), "p2/2")
}

func TestApp_PageChangedError(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(messages.PageChanged{Err: errors.New("decode failed")})

	assert.EqualError(t, app.Err(), "decode failed")
	assert.Equal(t, status.StateError, app.StatusBar().State())

	app.Update(runes("+"))
	assert.Equal(t, status.StateReady, app.StatusBar().State())
}

func TestApp_IsolateFromTree(t *testing.T) {
	app, session := newTestApp(t)
	app.Update(runes("t"))

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, cmd = app.Update(cmd())
	assert.Equal(t, messages.ViewCanvas, app.CurrentView())

	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.True(t, session.Snapshot().Isolation.Active)
	assert.Equal(t, "Isolated Kitchen", app.StatusBar().Message())
	app.View()
	assert.Equal(t, status.StateIsolated, app.StatusBar().State())
}

func TestApp_MouseIgnoredOutsideCanvas(t *testing.T) {
	app, session := newTestApp(t)
	app.Update(runes("b"))
	app.Update(runes("t"))

	app.Update(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.False(t, session.Snapshot().Drawing)
}

func TestApp_ViewFillsHeight(t *testing.T) {
	app, _ := newTestApp(t)

	out := app.View()

	assert.Contains(t, out, "Smith Kitchen")
	assert.Contains(t, out, "p1/2")
}

func TestApp_StatusAndQuitMessages(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(messages.Status{Text: "hello"})
	assert.Equal(t, "hello", app.StatusBar().Message())

	app.Update(messages.AnnotationCreated{Annotation: domain.Annotation{Text: "KIT-C1"}})
	assert.Equal(t, "Added KIT-C1", app.StatusBar().Message())

	_, cmd := app.Update(messages.Quit{})
	require.NotNil(t, cmd)
}
