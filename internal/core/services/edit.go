package services

import (
	"math"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
	"github.com/custodia-labs/plancanvas/internal/logger"
)

// Ensure EditService implements the interface.
var _ driving.EditService = (*EditService)(nil)

// ClearAllPrompt is shown before every annotation is removed.
const ClearAllPrompt = "Remove every annotation in this project?"

// EditService selects, edits and deletes annotations and manages history.
// History snapshots are full deep copies of the list.
type EditService struct{}

// NewEditService creates a new edit service.
func NewEditService() *EditService {
	return &EditService{}
}

// SaveState pushes a snapshot of current and clears the redo stack.
func (s *EditService) SaveState(current []domain.Annotation, history domain.HistoryState, maxSize int) domain.HistoryState {
	if maxSize < 1 {
		maxSize = domain.DefaultHistorySize
	}
	undo := make([][]domain.Annotation, 0, len(history.Undo)+1)
	undo = append(undo, history.Undo...)
	undo = append(undo, domain.CloneAnnotations(current))
	if drop := len(undo) - maxSize; drop > 0 {
		logger.Debug("history: dropping %d oldest snapshot(s)", drop)
		undo = undo[drop:]
	}
	return domain.HistoryState{Undo: undo, Redo: [][]domain.Annotation{}}
}

// Undo restores the latest snapshot and pushes current onto the redo stack.
func (s *EditService) Undo(current []domain.Annotation, history domain.HistoryState) *driving.HistoryResult {
	if len(history.Undo) == 0 {
		return nil
	}
	last := len(history.Undo) - 1
	return &driving.HistoryResult{
		Annotations: domain.CloneAnnotations(history.Undo[last]),
		History: domain.HistoryState{
			Undo: append([][]domain.Annotation{}, history.Undo[:last]...),
			Redo: appendSnapshot(history.Redo, current),
		},
	}
}

// Redo reapplies the latest undone snapshot and pushes current onto the undo stack.
func (s *EditService) Redo(current []domain.Annotation, history domain.HistoryState) *driving.HistoryResult {
	if len(history.Redo) == 0 {
		return nil
	}
	last := len(history.Redo) - 1
	return &driving.HistoryResult{
		Annotations: domain.CloneAnnotations(history.Redo[last]),
		History: domain.HistoryState{
			Undo: appendSnapshot(history.Undo, current),
			Redo: append([][]domain.Annotation{}, history.Redo[:last]...),
		},
	}
}

func appendSnapshot(stack [][]domain.Annotation, list []domain.Annotation) [][]domain.Annotation {
	out := make([][]domain.Annotation, 0, len(stack)+1)
	out = append(out, stack...)
	return append(out, domain.CloneAnnotations(list))
}

// DeleteSelected removes the selected annotation.
func (s *EditService) DeleteSelected(annotations []domain.Annotation, selectedID string) *driving.DeleteResult {
	if selectedID == "" {
		return nil
	}
	idx := domain.IndexOf(annotations, selectedID)
	if idx < 0 {
		return nil
	}
	return &driving.DeleteResult{
		Annotations: without(annotations, idx),
		SelectedID:  "",
	}
}

// RemoveAnnotation removes by position.
func (s *EditService) RemoveAnnotation(annotations []domain.Annotation, index int) []domain.Annotation {
	if index < 0 || index >= len(annotations) {
		return annotations
	}
	return without(annotations, index)
}

// ClearLastAnnotation drops the last annotation.
func (s *EditService) ClearLastAnnotation(annotations []domain.Annotation) []domain.Annotation {
	if len(annotations) == 0 {
		return annotations
	}
	return without(annotations, len(annotations)-1)
}

// ClearAllAnnotations returns an empty list if confirm approves.
func (s *EditService) ClearAllAnnotations(annotations []domain.Annotation, confirm driven.Confirmer) []domain.Annotation {
	if confirm == nil || !confirm.Confirm(ClearAllPrompt) {
		return annotations
	}
	return []domain.Annotation{}
}

// SelectAnnotation returns the ID of the first annotation containing (x, y).
func (s *EditService) SelectAnnotation(annotations []domain.Annotation, x, y float64, tolerance domain.Size) string {
	tolerance.Width = math.Max(tolerance.Width, 0)
	tolerance.Height = math.Max(tolerance.Height, 0)
	for i := range annotations {
		if annotations[i].Contains(x, y, tolerance) {
			return annotations[i].ID
		}
	}
	return ""
}

// DeselectAnnotation always returns the empty ID.
func (s *EditService) DeselectAnnotation() string {
	return ""
}

// UpdateAnnotation moves or resizes an annotation, clamped to the page.
func (s *EditService) UpdateAnnotation(annotations []domain.Annotation, id string, bounds domain.Rect) []domain.Annotation {
	idx := domain.IndexOf(annotations, id)
	if idx < 0 || !bounds.IsFinite() {
		return nil
	}
	r := bounds.ClampUnit()
	if r.IsEmpty() {
		return nil
	}
	out := make([]domain.Annotation, len(annotations))
	copy(out, annotations)
	updated := out[idx].Clone()
	updated.X, updated.Y, updated.Width, updated.Height = r.X, r.Y, r.Width, r.Height
	out[idx] = updated
	return out
}

func without(list []domain.Annotation, idx int) []domain.Annotation {
	out := make([]domain.Annotation, 0, len(list)-1)
	out = append(out, list[:idx]...)
	return append(out, list[idx+1:]...)
}
