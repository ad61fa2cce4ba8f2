// Package domain defines the core entities for plancanvas.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Annotation: A normalised rectangle on a document page
//   - ViewState: Zoom, rotation and current page
//   - Hierarchy: Room, location, cabinet run and cabinet records
//   - VisibilityState: Computed show/hide toggles for tree nodes
//   - IsolationState: Focus on a single hierarchy subtree
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
