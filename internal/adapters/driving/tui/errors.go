package tui

import "errors"

// ErrMissingSession is returned when the session is not provided.
var ErrMissingSession = errors.New("tui: session is required")

// ErrMissingCanvas is returned when the canvas surface is not provided.
var ErrMissingCanvas = errors.New("tui: canvas surface is required")
