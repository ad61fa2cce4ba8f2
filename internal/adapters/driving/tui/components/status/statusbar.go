// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady    State = "ready"
	StateDrawing  State = "drawing"
	StateConfirm  State = "confirm"
	StateError    State = "error"
	StateHelp     State = "help"
	StateTree     State = "tree"
	StateIsolated State = "isolated"
)

// Canvas summarises the canvas for the status line.
type Canvas struct {
	Page      int
	PageCount int
	Zoom      float64
	Rotation  int
	Tool      string
	Type      string
	Visible   int
	Total     int
}

// Bar displays application status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	canvas  Canvas
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state, message and canvas summary.
func (s *Bar) renderLeft() string {
	switch s.state {
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateConfirm:
		return s.styles.Warning.Render(s.message + " [y/n]")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateReady, StateDrawing, StateTree, StateIsolated:
	}

	parts := []string{s.summary()}
	if s.state == StateIsolated {
		parts = append([]string{s.styles.Isolated.Render("ISOLATED")}, parts...)
	}
	if s.state == StateDrawing {
		parts = append(parts, s.styles.Warning.Render("drawing"))
	}
	if s.message != "" {
		parts = append(parts, s.styles.Muted.Render(s.message))
	}
	return strings.Join(parts, " ")
}

func (s *Bar) summary() string {
	c := s.canvas
	if c.PageCount == 0 {
		return s.styles.Muted.Render("No document")
	}
	return s.styles.Normal.Render(fmt.Sprintf(
		"p%d/%d  %d%%  %d°  %s:%s  %d/%d shown",
		c.Page, c.PageCount, int(c.Zoom*100+0.5), c.Rotation, c.Tool, c.Type, c.Visible, c.Total,
	))
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.state {
	case StateTree:
		bindings = s.keymap.TreeHelp()
	case StateConfirm:
		bindings = []key.Binding{s.keymap.Confirm, s.keymap.Deny}
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetCanvas sets the canvas summary.
func (s *Bar) SetCanvas(c Canvas) {
	s.canvas = c
}

// Canvas returns the canvas summary.
func (s *Bar) Canvas() Canvas {
	return s.canvas
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
