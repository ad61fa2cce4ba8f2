// Package tui provides the interactive terminal canvas for plancanvas.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/views/canvas"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
)

// Ports aggregates what the TUI drives.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session is the open project.
	Session driving.Session

	// Canvas is the surface the session was opened with. The TUI sizes it
	// to the page as drawn.
	Canvas canvas.Surface

	// Settings supplies the canvas margin. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSession
	}
	if p.Canvas == nil {
		return ErrMissingCanvas
	}
	return nil
}
