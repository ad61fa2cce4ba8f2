package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/views/canvas"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/views/tree"
	"github.com/custodia-labs/plancanvas/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	canvasView *canvas.View
	treeView   *tree.View
	statusBar  *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// pending is the confirmation awaiting a y/n answer.
	pending *messages.ConfirmRequested

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		canvasView:  canvas.NewView(s, ports.Session, ports.Canvas),
		treeView:    tree.NewView(s, ports.Session),
		statusBar:   status.NewBar(s, km),
		currentView: messages.ViewCanvas,
	}
	a.applySettings()
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.canvasView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	title := "plancanvas"
	if name := a.ports.Session.Snapshot().Project.Name; name != "" {
		title += " - " + name
	}
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle(title),
		a.canvasView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		if a.currentView == messages.ViewCanvas && a.pending == nil {
			a.canvasView, cmd = a.canvasView.Update(msg)
		}
		return a, cmd

	case messages.ViewChanged:
		a.setView(msg.View)
		return a, nil

	case messages.ConfirmRequested:
		a.pending = &msg
		a.statusBar.SetState(status.StateConfirm)
		a.statusBar.SetMessage(msg.Prompt)
		return a, nil

	case messages.Status:
		a.statusBar.SetMessage(msg.Text)
		return a, nil

	case messages.AnnotationCreated:
		a.statusBar.SetMessage("Added " + msg.Annotation.Text)
		return a, nil

	case messages.PageChanged:
		if msg.Err != nil {
			return a.Update(messages.ErrorOccurred{Err: msg.Err})
		}
		a.statusBar.Clear()
		a.canvasView, cmd = a.canvasView.Update(msg)
		return a, cmd

	case messages.IsolateRequested:
		a.setView(messages.ViewCanvas)
		return a, a.canvasView.Isolate(msg.AnnotationID, msg.Level)

	case messages.IsolationChanged:
		if msg.Err != nil {
			return a.Update(messages.ErrorOccurred{Err: msg.Err})
		}
		a.statusBar.Clear()
		if msg.Active {
			a.statusBar.SetMessage("Isolated " + msg.Name)
		}
		a.canvasView, _ = a.canvasView.Update(msg)
		a.treeView, cmd = a.treeView.Update(msg)
		return a, cmd

	case messages.ConfigReloaded:
		a.applySettings()
		a.statusBar.SetMessage("Settings reloaded")
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		return a, tea.Quit
	}

	if a.pending != nil {
		pending := a.pending
		switch {
		case keymap.Matches(k, a.keymap.Confirm):
			a.pending = nil
			a.statusBar.Clear()
			return a, pending.OnConfirm
		case keymap.Matches(k, a.keymap.Deny):
			a.pending = nil
			a.statusBar.Clear()
			a.statusBar.SetMessage("Cancelled")
		}
		return a, nil
	}

	if a.statusBar.State() == status.StateError {
		a.statusBar.Clear()
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewHelp:
		if keymap.Matches(k, a.keymap.Quit) {
			return a, tea.Quit
		}
		if keymap.Matches(k, a.keymap.Back) || keymap.Matches(k, a.keymap.Help) {
			a.setView(messages.ViewCanvas)
		}
		return a, nil

	case messages.ViewTree:
		switch {
		case keymap.Matches(k, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(k, a.keymap.Tree):
			a.setView(messages.ViewCanvas)
			return a, nil
		}
		a.treeView, cmd = a.treeView.Update(msg)
		return a, cmd

	case messages.ViewCanvas:
		if !a.canvasView.InputActive() {
			switch {
			case keymap.Matches(k, a.keymap.Quit):
				return a, tea.Quit
			case keymap.Matches(k, a.keymap.Help):
				a.setView(messages.ViewHelp)
				return a, nil
			case keymap.Matches(k, a.keymap.Tree):
				a.setView(messages.ViewTree)
				return a, nil
			}
		}
		a.canvasView, cmd = a.canvasView.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) setView(view messages.ViewType) {
	a.currentView = view
	switch view {
	case messages.ViewTree:
		a.treeView.Refresh()
		a.statusBar.SetState(status.StateTree)
	case messages.ViewHelp:
		a.statusBar.SetState(status.StateHelp)
	case messages.ViewCanvas:
		a.statusBar.SetState(status.StateReady)
	}
}

// applySettings reads the canvas margin from settings.
func (a *App) applySettings() {
	if a.ports.Settings == nil {
		return
	}
	settings, err := a.ports.Settings.Get()
	if err != nil {
		logger.Warn("tui: failed to load settings: %v", err)
		return
	}
	a.canvasView.SetMargin(settings.Canvas.Margin)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewTree:
		body = a.treeView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.canvasView.View()
	}

	a.syncStatus()
	lines := strings.Count(body, "\n") + 1
	if pad := a.height - 1 - lines; pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return body + "\n" + a.statusBar.View()
}

// syncStatus mirrors the canvas into the status bar.
func (a *App) syncStatus() {
	a.statusBar.SetCanvas(a.canvasView.Summary())
	switch a.statusBar.State() {
	case status.StateReady, status.StateDrawing, status.StateIsolated:
		snap := a.ports.Session.Snapshot()
		switch {
		case snap.Drawing:
			a.statusBar.SetState(status.StateDrawing)
		case snap.Isolation.Active:
			a.statusBar.SetState(status.StateIsolated)
		default:
			a.statusBar.SetState(status.StateReady)
		}
	case status.StateConfirm, status.StateError, status.StateHelp, status.StateTree:
	}
}

// viewHelp renders the help view from the key map.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-8s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Muted.Render("Mouse: drag to draw with the draw tool, click to select.\n[esc] back"))
	return b.String()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Pending returns the confirmation awaiting an answer, if any.
func (a *App) Pending() *messages.ConfirmRequested {
	return a.pending
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.canvasView.SetDimensions(width, height-1)
	a.treeView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
