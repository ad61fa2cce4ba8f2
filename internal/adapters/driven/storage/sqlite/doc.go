// Package sqlite provides a SQLite implementation of the project,
// annotation, hierarchy and view state stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. All stores share one database connection:
//
//   - ProjectStore: project metadata, room codes and colours
//   - ViewStateStore: last zoom, rotation and page per project
//   - AnnotationStore: ordered annotation lists
//   - HierarchyStore: rooms, locations, cabinet runs and cabinets
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files.
//
// # Data Location
//
// By default, the database is stored at ~/.plancanvas/data/plancanvas.db.
// Deleting a project cascades to everything it owns.
package sqlite
