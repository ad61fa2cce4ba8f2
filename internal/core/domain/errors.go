package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Document Errors.

	// ErrNoDocument indicates no document is loaded for the session.
	ErrNoDocument = errors.New("no document loaded")

	// ErrPageOutOfRange indicates a page number outside [1, total].
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrUnsupportedFormat indicates a page image the renderer cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported page format")

	// ErrInvalidDimensions indicates a page or canvas with non-positive size.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// Project Errors.

	// ErrNoProject indicates no project is selected.
	ErrNoProject = errors.New("no project selected")
)
