package driving

import (
	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
)

// DrawService turns pointer gestures into annotations.
type DrawService interface {
	// StartDrawing begins a gesture. Returns nil unless tool is the rectangle tool.
	StartDrawing(ev domain.PointerEvent, canvas driven.ViewportGeometry, tool domain.Tool) *domain.DrawState

	// StopDrawing completes a gesture. Returns nil when the gesture is too
	// small, not finite, or no gesture is in progress. The result has no ID.
	StopDrawing(
		ev domain.PointerEvent,
		canvas driven.ViewportGeometry,
		state domain.DrawState,
		opts domain.DrawOptions,
		existing []domain.Annotation,
	) *domain.Annotation

	// AnnotationColor derives the colour for a new annotation.
	AnnotationColor(t domain.AnnotationType, roomType string, roomColors map[string]string, defaultColor string) string

	// GenerateLabel derives the display text for a new annotation.
	GenerateLabel(t domain.AnnotationType, roomType, projectNumber string, roomCodes map[string]string, existingCount int) string

	// CursorFor returns the cursor shown for tool.
	CursorFor(tool domain.Tool) domain.Cursor

	// SetCursor applies CursorFor(tool) to canvas.
	SetCursor(canvas driven.CursorTarget, tool domain.Tool)
}
