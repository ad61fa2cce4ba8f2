package mcp

import (
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session is the open project the tools act on.
	Session driving.Session
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSession
	}
	return nil
}
