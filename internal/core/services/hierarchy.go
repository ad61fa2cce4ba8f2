package services

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
)

// Ensure HierarchyService implements the interface.
var _ driving.HierarchyService = (*HierarchyService)(nil)

// UnassignedName labels the tree node holding annotations without a room.
const UnassignedName = "Unassigned"

// HierarchyService builds trees and computes visibility and isolation.
//
// Visibility precedence: every explicit toggle carries a sequence number
// and the most recent toggle on an annotation's path (room, location, run,
// cabinet, then the annotation itself) decides. Hiding a room after a child
// was shown hides the child; showing a child after its room was hidden
// reveals just that child.
type HierarchyService struct{}

// NewHierarchyService creates a new hierarchy service.
func NewHierarchyService() *HierarchyService {
	return &HierarchyService{}
}

// BuildRoomTree groups annotations room → location → run → cabinet.
// A missing level is skipped, so a run without a location hangs off its room.
func (s *HierarchyService) BuildRoomTree(annotations []domain.Annotation, hierarchy domain.Hierarchy) []domain.TreeNode {
	var assigned, unassigned []domain.Annotation
	for i := range annotations {
		if annotations[i].RoomID != nil {
			assigned = append(assigned, annotations[i])
		} else {
			unassigned = append(unassigned, annotations[i])
		}
	}

	nodes := groupByLevel(assigned, 0, hierarchy)
	if len(unassigned) > 0 {
		nodes = append(nodes, domain.TreeNode{
			ID:              0,
			Type:            domain.NodeUnassigned,
			Name:            UnassignedName,
			Children:        groupByLevel(unassigned, 1, hierarchy),
			AnnotationCount: len(unassigned),
		})
	}
	return nodes
}

// BuildPageTree groups annotations by page, then as BuildRoomTree.
func (s *HierarchyService) BuildPageTree(annotations []domain.Annotation, hierarchy domain.Hierarchy) []domain.TreeNode {
	pages := make(map[int][]domain.Annotation)
	for i := range annotations {
		p := annotations[i].PageNumber
		pages[p] = append(pages[p], annotations[i])
	}

	numbers := make([]int, 0, len(pages))
	for p := range pages {
		numbers = append(numbers, p)
	}
	sort.Ints(numbers)

	nodes := make([]domain.TreeNode, 0, len(numbers))
	for _, p := range numbers {
		nodes = append(nodes, domain.TreeNode{
			ID:              int64(p),
			Type:            domain.NodePage,
			Name:            fmt.Sprintf("Page %d", p),
			Children:        s.BuildRoomTree(pages[p], hierarchy),
			AnnotationCount: len(pages[p]),
		})
	}
	return nodes
}

// groupByLevel buckets annotations by their key at the given depth and
// recurses. Annotations without a key at this depth are grouped at the next
// depth and become siblings of this depth's nodes.
func groupByLevel(list []domain.Annotation, depth int, hierarchy domain.Hierarchy) []domain.TreeNode {
	levels := domain.HierarchyLevels()
	if depth >= len(levels) || len(list) == 0 {
		return []domain.TreeNode{}
	}
	level := levels[depth]

	buckets := make(map[int64][]domain.Annotation)
	var rest []domain.Annotation
	for i := range list {
		if id, ok := list[i].KeyAt(level); ok {
			buckets[id] = append(buckets[id], list[i])
		} else {
			rest = append(rest, list[i])
		}
	}

	nodes := make([]domain.TreeNode, 0, len(buckets))
	for id, sub := range buckets {
		nodes = append(nodes, domain.TreeNode{
			ID:              id,
			Type:            domain.NodeType(level),
			Name:            hierarchy.Name(level, id),
			Children:        groupByLevel(sub, depth+1, hierarchy),
			AnnotationCount: len(sub),
		})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	return append(nodes, groupByLevel(rest, depth+1, hierarchy)...)
}

// NodePath returns the path from the root down to ref, inclusive.
// Ancestors come from the first annotation carrying ref, falling back to
// the hierarchy records.
func (s *HierarchyService) NodePath(
	ref domain.NodeRef,
	annotations []domain.Annotation,
	hierarchy domain.Hierarchy,
) []domain.NodeRef {
	depth := ref.Level.Depth()
	if depth < 0 {
		return nil
	}
	levels := domain.HierarchyLevels()

	for i := range annotations {
		if id, ok := annotations[i].KeyAt(ref.Level); !ok || id != ref.ID {
			continue
		}
		path := make([]domain.NodeRef, 0, depth+1)
		for _, level := range levels[:depth] {
			if id, ok := annotations[i].KeyAt(level); ok {
				path = append(path, domain.NodeRef{Level: level, ID: id})
			}
		}
		return append(path, ref)
	}

	path := []domain.NodeRef{ref}
	cur := ref
	for d := depth; d > 0; d-- {
		parent, ok := hierarchy.Parent(cur.Level, cur.ID)
		if !ok {
			break
		}
		cur = domain.NodeRef{Level: levels[d-1], ID: parent}
		path = append([]domain.NodeRef{cur}, path...)
	}
	return path
}

// latestToggle returns the most recent toggle among refs and the annotation.
func latestToggle(state domain.VisibilityState, refs []domain.NodeRef, annotationID string) (domain.VisibilityToggle, bool) {
	var best domain.VisibilityToggle
	found := false
	for _, ref := range refs {
		if t, ok := state.Nodes[ref]; ok && (!found || t.Seq > best.Seq) {
			best, found = t, true
		}
	}
	if annotationID != "" {
		if t, ok := state.Annotations[annotationID]; ok && (!found || t.Seq > best.Seq) {
			best, found = t, true
		}
	}
	return best, found
}

func annotationRefs(a domain.Annotation) []domain.NodeRef {
	refs := make([]domain.NodeRef, 0, 4)
	for _, level := range domain.HierarchyLevels() {
		if id, ok := a.KeyAt(level); ok {
			refs = append(refs, domain.NodeRef{Level: level, ID: id})
		}
	}
	return refs
}

// IsAnnotationVisible reports whether the latest toggle on the annotation's
// path is not a hide.
func (s *HierarchyService) IsAnnotationVisible(state domain.VisibilityState, annotation domain.Annotation) bool {
	t, ok := latestToggle(state, annotationRefs(annotation), annotation.ID)
	return !ok || !t.Hidden
}

// IsNodeVisible reports a tree node's effective visibility.
func (s *HierarchyService) IsNodeVisible(
	state domain.VisibilityState,
	ref domain.NodeRef,
	annotations []domain.Annotation,
	hierarchy domain.Hierarchy,
) bool {
	t, ok := latestToggle(state, s.NodePath(ref, annotations, hierarchy), "")
	return !ok || !t.Hidden
}

// ToggleVisibility flips a node's effective visibility. Showing a node
// removes its own hide when that is enough; otherwise an explicit show
// is recorded so it overrides older ancestor hides.
func (s *HierarchyService) ToggleVisibility(
	state domain.VisibilityState,
	ref domain.NodeRef,
	annotations []domain.Annotation,
	hierarchy domain.Hierarchy,
) domain.VisibilityState {
	next := state.Clone()
	if !ref.Level.IsValid() {
		return next
	}
	path := s.NodePath(ref, annotations, hierarchy)

	if t, ok := latestToggle(next, path, ""); !ok || !t.Hidden {
		next.Seq++
		next.Nodes[ref] = domain.VisibilityToggle{Hidden: true, Seq: next.Seq}
		return next
	}

	if own, ok := next.Nodes[ref]; ok && own.Hidden {
		delete(next.Nodes, ref)
		if t, ok := latestToggle(next, path, ""); !ok || !t.Hidden {
			return next
		}
	}
	next.Seq++
	next.Nodes[ref] = domain.VisibilityToggle{Hidden: false, Seq: next.Seq}
	return next
}

// ToggleAnnotationVisibility flips a single annotation's effective visibility.
func (s *HierarchyService) ToggleAnnotationVisibility(
	state domain.VisibilityState,
	annotation domain.Annotation,
) domain.VisibilityState {
	next := state.Clone()
	refs := annotationRefs(annotation)

	if s.IsAnnotationVisible(next, annotation) {
		next.Seq++
		next.Annotations[annotation.ID] = domain.VisibilityToggle{Hidden: true, Seq: next.Seq}
		return next
	}

	if own, ok := next.Annotations[annotation.ID]; ok && own.Hidden {
		delete(next.Annotations, annotation.ID)
		if t, ok := latestToggle(next, refs, annotation.ID); !ok || !t.Hidden {
			return next
		}
	}
	next.Seq++
	next.Annotations[annotation.ID] = domain.VisibilityToggle{Hidden: false, Seq: next.Seq}
	return next
}

// EnterIsolationMode focuses the subtree containing target at level.
func (s *HierarchyService) EnterIsolationMode(
	target domain.Annotation,
	level domain.HierarchyLevel,
	current domain.ViewState,
	annotations []domain.Annotation,
	hierarchy domain.Hierarchy,
) *driving.IsolationResult {
	if !level.CanIsolate() {
		return nil
	}
	id, ok := target.KeyAt(level)
	if !ok {
		return nil
	}
	ref := domain.NodeRef{Level: level, ID: id}

	page := target.PageNumber
	if page < 1 {
		page = current.Page
	}

	region := target.Rect()
	for i := range annotations {
		a := annotations[i]
		if key, ok := a.KeyAt(level); ok && key == id && a.PageNumber == page {
			region = region.Union(a.Rect())
		}
	}

	return &driving.IsolationResult{
		State: domain.IsolationState{
			Active:       true,
			Level:        level,
			IsolatedID:   id,
			IsolatedName: hierarchy.Name(level, id),
			SavedView:    current,
		},
		ExpandedNodes: s.NodePath(ref, annotations, hierarchy),
		FocusPage:     page,
		FocusRegion:   region,
	}
}

// ExitIsolationMode returns the saved view and a cleared state.
// When isolation is not active the saved view is returned as is.
func (s *HierarchyService) ExitIsolationMode(state domain.IsolationState) (domain.ViewState, domain.IsolationState) {
	return state.SavedView, domain.IsolationState{}
}

// IsMasked reports whether annotation lies outside the isolated subtree.
func (s *HierarchyService) IsMasked(annotation domain.Annotation, state domain.IsolationState) bool {
	return !state.Includes(annotation)
}
