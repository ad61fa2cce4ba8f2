// Package mcp provides an MCP (Model Context Protocol) server adapter for
// plancanvas. It lets AI assistants read and steer an open project: list
// annotations, walk the hierarchy, move between pages, hide and isolate.
package mcp

import "errors"

// ErrMissingSession is returned when the session is not provided.
var ErrMissingSession = errors.New("mcp: session is required")
