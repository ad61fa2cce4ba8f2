package driving

import (
	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
)

// HistoryResult is the outcome of an undo or redo.
type HistoryResult struct {
	Annotations []domain.Annotation
	History     domain.HistoryState
}

// DeleteResult is the outcome of deleting the selected annotation.
type DeleteResult struct {
	Annotations []domain.Annotation

	// SelectedID is always empty after a delete.
	SelectedID string
}

// EditService selects, edits and deletes annotations and manages history.
// An empty selected ID means nothing is selected.
type EditService interface {
	// SaveState pushes a snapshot of current, drops the oldest snapshot
	// beyond maxSize, and clears the redo stack.
	SaveState(current []domain.Annotation, history domain.HistoryState, maxSize int) domain.HistoryState

	// Undo restores the latest snapshot. Returns nil when there is none.
	Undo(current []domain.Annotation, history domain.HistoryState) *HistoryResult

	// Redo reapplies the latest undone snapshot. Returns nil when there is none.
	Redo(current []domain.Annotation, history domain.HistoryState) *HistoryResult

	// DeleteSelected removes the selected annotation. Returns nil when
	// selectedID is empty or stale.
	DeleteSelected(annotations []domain.Annotation, selectedID string) *DeleteResult

	// RemoveAnnotation removes by position. Out of range returns the input unchanged.
	RemoveAnnotation(annotations []domain.Annotation, index int) []domain.Annotation

	// ClearLastAnnotation drops the last annotation.
	ClearLastAnnotation(annotations []domain.Annotation) []domain.Annotation

	// ClearAllAnnotations returns an empty list if confirm approves, else the input.
	ClearAllAnnotations(annotations []domain.Annotation, confirm driven.Confirmer) []domain.Annotation

	// SelectAnnotation hit-tests a normalised point and returns the first
	// match's ID. tolerance is in page space, per axis.
	SelectAnnotation(annotations []domain.Annotation, x, y float64, tolerance domain.Size) string

	// DeselectAnnotation always returns the empty ID.
	DeselectAnnotation() string

	// UpdateAnnotation moves or resizes an annotation. Returns nil for a stale ID.
	UpdateAnnotation(annotations []domain.Annotation, id string, bounds domain.Rect) []domain.Annotation
}
