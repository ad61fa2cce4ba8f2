package driven

import "github.com/custodia-labs/plancanvas/internal/core/domain"

// ViewportGeometry reports where the drawing surface sits on screen.
type ViewportGeometry interface {
	// Bounds returns the surface's on-screen origin and current pixel size.
	Bounds() domain.Bounds
}

// CursorTarget receives the cursor to show over the drawing surface.
type CursorTarget interface {
	SetCursor(cursor domain.Cursor)
}

// Confirmer asks the user to approve a destructive operation.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(message string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(message string) bool {
	return f(message)
}
