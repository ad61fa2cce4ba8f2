package domain

import (
	"fmt"
	"strings"
)

// AnnotationType classifies what an annotation marks on the plan.
type AnnotationType string

// Available annotation types.
const (
	AnnotationRoom       AnnotationType = "room"
	AnnotationLocation   AnnotationType = "location"
	AnnotationCabinetRun AnnotationType = "cabinet_run"
	AnnotationCabinet    AnnotationType = "cabinet"
	AnnotationDimension  AnnotationType = "dimension"
	AnnotationGeneric    AnnotationType = "generic"
)

// AnnotationTypes returns every known annotation type in hierarchy order.
func AnnotationTypes() []AnnotationType {
	return []AnnotationType{
		AnnotationRoom,
		AnnotationLocation,
		AnnotationCabinetRun,
		AnnotationCabinet,
		AnnotationDimension,
		AnnotationGeneric,
	}
}

// IsValid returns true if the annotation type is recognised.
func (t AnnotationType) IsValid() bool {
	switch t {
	case AnnotationRoom, AnnotationLocation, AnnotationCabinetRun,
		AnnotationCabinet, AnnotationDimension, AnnotationGeneric:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t AnnotationType) String() string {
	return string(t)
}

// ParseAnnotationType converts user input into an AnnotationType.
func ParseAnnotationType(s string) (AnnotationType, error) {
	t := AnnotationType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown annotation type %q", ErrInvalidInput, s)
	}
	return t, nil
}

// Annotation is a rectangular region on a document page.
// Coordinates are fractions of the unrotated page's intrinsic size.
type Annotation struct {
	// ID is assigned once on creation and never reused.
	ID string `json:"id"`

	// PageNumber is the 1-based page this annotation belongs to.
	PageNumber int `json:"page_number"`

	Type AnnotationType `json:"annotation_type"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Color is a #RRGGBB hex string derived at creation.
	Color string `json:"color"`

	// Text is the display label derived at creation.
	Text string `json:"text"`

	// RoomType is the room category used for colour and label lookup.
	RoomType string `json:"room_type,omitempty"`

	// Hierarchy references. Present only for annotations mapped onto that level.
	RoomID         *int64 `json:"roomId,omitempty"`
	RoomLocationID *int64 `json:"roomLocationId,omitempty"`
	CabinetRunID   *int64 `json:"cabinetRunId,omitempty"`
	CabinetID      *int64 `json:"cabinetId,omitempty"`
}

// Ref returns a pointer to id, for populating hierarchy references.
func Ref(id int64) *int64 {
	return &id
}

func cloneRef(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Clone returns a deep copy that shares no pointers with a.
func (a Annotation) Clone() Annotation {
	c := a
	c.RoomID = cloneRef(a.RoomID)
	c.RoomLocationID = cloneRef(a.RoomLocationID)
	c.CabinetRunID = cloneRef(a.CabinetRunID)
	c.CabinetID = cloneRef(a.CabinetID)
	return c
}

// CloneAnnotations deep-copies a list. The result is never nil.
func CloneAnnotations(list []Annotation) []Annotation {
	out := make([]Annotation, len(list))
	for i := range list {
		out[i] = list[i].Clone()
	}
	return out
}

// Rect returns the annotation's normalised bounds.
func (a Annotation) Rect() Rect {
	return Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
}

// Contains reports whether (x, y) falls inside the annotation grown by
// tolerance.Width horizontally and tolerance.Height vertically.
func (a Annotation) Contains(x, y float64, tolerance Size) bool {
	return a.Rect().Expand(tolerance.Width, tolerance.Height).Contains(x, y)
}

// KeyAt returns the hierarchy id the annotation carries at level.
func (a Annotation) KeyAt(level HierarchyLevel) (int64, bool) {
	var p *int64
	switch level {
	case LevelRoom:
		p = a.RoomID
	case LevelLocation:
		p = a.RoomLocationID
	case LevelCabinetRun:
		p = a.CabinetRunID
	case LevelCabinet:
		p = a.CabinetID
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// IndexOf returns the position of the annotation with id, or -1.
func IndexOf(list []Annotation, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
