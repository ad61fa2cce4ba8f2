package driving

import "github.com/custodia-labs/plancanvas/internal/core/domain"

// IsolationResult is what the surface needs to enter isolation mode.
type IsolationResult struct {
	State domain.IsolationState

	// ExpandedNodes is the tree path from the root to the isolated node.
	ExpandedNodes []domain.NodeRef

	// FocusPage is the page to show while isolated.
	FocusPage int

	// FocusRegion is the combined bounds of the subtree on FocusPage.
	FocusRegion domain.Rect
}

// HierarchyService builds trees and computes visibility and isolation.
type HierarchyService interface {
	// BuildRoomTree groups annotations room → location → run → cabinet.
	BuildRoomTree(annotations []domain.Annotation, hierarchy domain.Hierarchy) []domain.TreeNode

	// BuildPageTree groups annotations by page, then as BuildRoomTree.
	BuildPageTree(annotations []domain.Annotation, hierarchy domain.Hierarchy) []domain.TreeNode

	// NodePath returns the path from the root down to ref, inclusive.
	NodePath(ref domain.NodeRef, annotations []domain.Annotation, hierarchy domain.Hierarchy) []domain.NodeRef

	// ToggleVisibility flips a node's effective visibility and returns the new state.
	ToggleVisibility(
		state domain.VisibilityState,
		ref domain.NodeRef,
		annotations []domain.Annotation,
		hierarchy domain.Hierarchy,
	) domain.VisibilityState

	// ToggleAnnotationVisibility flips a single annotation's effective visibility.
	ToggleAnnotationVisibility(state domain.VisibilityState, annotation domain.Annotation) domain.VisibilityState

	// IsAnnotationVisible reports whether the most recent toggle on the
	// annotation's path is not a hide.
	IsAnnotationVisible(state domain.VisibilityState, annotation domain.Annotation) bool

	// IsNodeVisible reports a tree node's effective visibility.
	IsNodeVisible(
		state domain.VisibilityState,
		ref domain.NodeRef,
		annotations []domain.Annotation,
		hierarchy domain.Hierarchy,
	) bool

	// EnterIsolationMode focuses the subtree containing target at level.
	// Returns nil when target has no reference at that level.
	EnterIsolationMode(
		target domain.Annotation,
		level domain.HierarchyLevel,
		current domain.ViewState,
		annotations []domain.Annotation,
		hierarchy domain.Hierarchy,
	) *IsolationResult

	// ExitIsolationMode returns the saved view and a cleared state.
	ExitIsolationMode(state domain.IsolationState) (domain.ViewState, domain.IsolationState)

	// IsMasked reports whether annotation is dimmed by isolation.
	IsMasked(annotation domain.Annotation, state domain.IsolationState) bool
}
