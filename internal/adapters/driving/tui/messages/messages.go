// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewCanvas is the page canvas.
	ViewCanvas ViewType = iota
	// ViewTree is the room hierarchy tree.
	ViewTree
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewCanvas:
		return "canvas"
	case ViewTree:
		return "tree"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// PageChanged is sent after a page navigation finishes.
type PageChanged struct {
	Page int
	Err  error
}

// IsolationChanged is sent after isolation is entered or left.
type IsolationChanged struct {
	Active bool
	Name   string
	Err    error
}

// IsolateRequested asks the canvas to isolate a hierarchy node.
type IsolateRequested struct {
	AnnotationID string
	Level        domain.HierarchyLevel
}

// AnnotationCreated is sent when a gesture produced an annotation.
type AnnotationCreated struct {
	Annotation domain.Annotation
}

// ConfirmRequested asks the user to approve a destructive action.
// OnConfirm runs only when the user answers yes.
type ConfirmRequested struct {
	Prompt    string
	OnConfirm func() tea.Msg
}

// Status shows a transient message in the status bar.
type Status struct {
	Text string
}

// ConfigReloaded is sent when the settings file changed on disk.
type ConfigReloaded struct{}
