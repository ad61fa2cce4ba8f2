// Package driving defines interfaces that external actors (TUI, CLI, MCP) use
// to interact with core services. These are the "driving" ports in hexagonal
// architecture terminology - they drive the application.
//
// The pure services (view, draw, edit, hierarchy, navigator, filter) take
// state in and return new state; they never mutate their arguments.
// Session composes them and owns the state for one open project.
//
// Implementations of these interfaces live in internal/core/services.
package driving
