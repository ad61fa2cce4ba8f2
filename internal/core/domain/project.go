package domain

import "time"

// DefaultAnnotationColor is used when no room colour or project default applies.
const DefaultAnnotationColor = "#6B7280"

// Project groups a document, its annotations and the metadata used to
// derive annotation labels and colours.
type Project struct {
	// ID is the unique identifier for the project.
	ID string

	// Name is a human-readable name.
	Name string

	// ProjectNumber prefixes generated labels, e.g. "TFW-0001".
	ProjectNumber string

	// RoomCodes maps a room type to its short code, e.g. kitchen → K.
	RoomCodes map[string]string

	// RoomColors maps a room type to a #RRGGBB colour.
	RoomColors map[string]string

	// DefaultColor is used for rooms without a mapped colour.
	DefaultColor string

	// DocumentPath is where the renderer loads pages from.
	DocumentPath string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FallbackColor returns the project default or DefaultAnnotationColor.
func (p Project) FallbackColor() string {
	if p.DefaultColor != "" {
		return p.DefaultColor
	}
	return DefaultAnnotationColor
}
