// Package services implements the driving port interfaces.
// Services contain the core annotation logic and orchestrate
// calls to driven ports (adapters).
//
// View, draw, edit, hierarchy, navigator and filter services are pure
// transformations. Session is the only stateful service.
package services
