// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - AnnotationStore: Annotation persistence; ReplaceAll is the save callback
//   - ProjectStore: Project metadata persistence
//   - HierarchyStore: Room, location, run and cabinet records
//   - ConfigStore: Application configuration
//
// # Capabilities
//
// These are supplied by whatever surface hosts the canvas:
//
//   - DocumentRenderer: Page count and page geometry. May be nil when no document is open.
//   - ViewportGeometry: On-screen bounds of the drawing surface
//   - CursorTarget: Receives cursor changes for the active tool
//   - Confirmer: Asks the user to confirm destructive operations
//
// # Optional Interfaces
//
//   - ViewStateStore: Remembers zoom, rotation and page per project
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
