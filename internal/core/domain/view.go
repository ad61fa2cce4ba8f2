package domain

// Zoom limits shared by every view transform.
const (
	MinZoom     = 0.5
	MaxZoom     = 3.0
	ZoomStep    = 0.25
	DefaultZoom = 1.0
)

// ViewState captures how the current page is displayed.
type ViewState struct {
	// Zoom is within [MinZoom, MaxZoom].
	Zoom float64 `json:"zoom"`

	// Rotation is one of 0, 90, 180 or 270.
	Rotation int `json:"rotation"`

	// Page is the 1-based current page.
	Page int `json:"page"`
}

// DefaultViewState returns the view used when a document is first opened.
func DefaultViewState() ViewState {
	return ViewState{Zoom: DefaultZoom, Rotation: 0, Page: 1}
}

// ClampZoom limits level to the valid zoom range.
// Non-finite input falls back to DefaultZoom.
func ClampZoom(level float64) float64 {
	if !isFinite(level) {
		return DefaultZoom
	}
	return clamp(level, MinZoom, MaxZoom)
}

// HistoryState holds bounded undo and redo stacks of annotation snapshots.
// Each snapshot is a full deep copy of the annotation list, so every push
// costs O(n) in the number of annotations.
type HistoryState struct {
	Undo [][]Annotation
	Redo [][]Annotation
}

// DefaultHistorySize is the number of snapshots kept per stack.
const DefaultHistorySize = 20

// CanUndo reports whether an undo snapshot exists.
func (h HistoryState) CanUndo() bool { return len(h.Undo) > 0 }

// CanRedo reports whether a redo snapshot exists.
func (h HistoryState) CanRedo() bool { return len(h.Redo) > 0 }
