package driving

import (
	"context"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
)

// Snapshot is a read-only copy of the session state for rendering.
type Snapshot struct {
	Project     domain.Project
	Annotations []domain.Annotation

	// Filtered is Annotations after filters and visibility, in list order.
	Filtered []domain.Annotation

	View       domain.ViewState
	Page       *domain.Page
	PageCount  int
	Tool       domain.Tool
	Template   domain.AnnotationTemplate
	SelectedID string
	Drawing    bool
	Isolation  domain.IsolationState

	// Expanded is the tree path opened by the last isolation.
	Expanded []domain.NodeRef

	Filters    []domain.Filter
	Visibility domain.VisibilityState
	CanUndo    bool
	CanRedo    bool
}

// Session owns the state of one open project and applies user input to it.
// Each method runs to completion; mutations fire the save callback without
// waiting for it.
type Session interface {
	// Snapshot returns a copy of the current state.
	Snapshot() Snapshot

	// Tool selection and drawing.
	SetTool(tool domain.Tool)
	SetTemplate(template domain.AnnotationTemplate)
	PointerDown(ev domain.PointerEvent) bool
	PointerUp(ev domain.PointerEvent) *domain.Annotation
	CancelDrawing()

	// Annotation editing.
	AddAnnotation(a domain.Annotation) domain.Annotation
	SelectAt(ev domain.PointerEvent) string
	Select(id string) bool
	Deselect()
	DeleteSelected() bool
	RemoveAt(index int) bool
	ClearLast() bool
	ClearAll(confirm driven.Confirmer) bool
	Update(id string, bounds domain.Rect) bool
	Undo() bool
	Redo() bool

	// View transforms.
	ZoomIn()
	ZoomOut()
	ResetZoom()
	RotateClockwise()
	RotateCounterClockwise()
	FitToPage(container domain.Size)
	FitToWidth(container domain.Size)
	FitToHeight(container domain.Size)

	// Navigation.
	GoToPage(ctx context.Context, n int) (bool, error)
	// GoToPageInput sanitises raw user input (clamped, fractions
	// truncated, junk as page 1) and shows that page.
	GoToPageInput(ctx context.Context, raw any) (bool, error)
	NextPage(ctx context.Context) (bool, error)
	PreviousPage(ctx context.Context) (bool, error)
	FirstPage(ctx context.Context) (bool, error)
	LastPage(ctx context.Context) (bool, error)

	// Hierarchy, visibility and isolation.
	Tree(byPage bool) []domain.TreeNode
	Hierarchy() domain.Hierarchy
	ToggleVisibility(ref domain.NodeRef)
	ToggleAnnotationVisibility(id string) bool
	IsVisible(id string) bool
	Isolate(ctx context.Context, annotationID string, level domain.HierarchyLevel, container domain.Size) (bool, error)
	ExitIsolation(ctx context.Context) error
	IsMasked(a domain.Annotation) bool

	// Filters.
	ApplyFilter(t domain.FilterType, value string) bool
	RemoveFilter(t domain.FilterType)
	ClearFilters()

	// Flush waits for in-flight saves and persists the latest view.
	Flush()
}
