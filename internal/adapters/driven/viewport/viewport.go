// Package viewport provides ViewportGeometry and CursorTarget implementations
// for surfaces that are not a live window, such as the terminal canvas and
// headless commands.
package viewport

import (
	"sync"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
)

// Ensure Surface implements the interfaces.
var (
	_ driven.ViewportGeometry = (*Surface)(nil)
	_ driven.CursorTarget     = (*Surface)(nil)
)

// Surface is a drawing surface with mutable bounds. It is safe for
// concurrent use.
type Surface struct {
	mu     sync.RWMutex
	bounds domain.Bounds
	cursor domain.Cursor
}

// New creates a surface at the given origin and size.
func New(left, top, width, height float64) *Surface {
	return &Surface{
		bounds: domain.Bounds{Left: left, Top: top, Width: width, Height: height},
		cursor: domain.CursorDefault,
	}
}

// Bounds returns the current on-screen bounds.
func (s *Surface) Bounds() domain.Bounds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bounds
}

// Resize updates the surface size, keeping its origin.
func (s *Surface) Resize(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds.Width = width
	s.bounds.Height = height
}

// Move updates the surface origin.
func (s *Surface) Move(left, top float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds.Left = left
	s.bounds.Top = top
}

// SetCursor records the cursor for the active tool.
func (s *Surface) SetCursor(cursor domain.Cursor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor
}

// Cursor returns the last cursor set.
func (s *Surface) Cursor() domain.Cursor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}
