package domain

// Tool is the active canvas tool.
type Tool string

// Available tools.
const (
	ToolSelect    Tool = "select"
	ToolRectangle Tool = "rectangle"
	ToolPan       Tool = "pan"
)

// Cursor is a pointer style shown over the canvas.
type Cursor string

// Cursor styles.
const (
	CursorCrosshair Cursor = "crosshair"
	CursorDefault   Cursor = "default"
)

// PointerEvent is a pointer position in screen coordinates.
type PointerEvent struct {
	ClientX float64
	ClientY float64
}

// DrawState is the transient state of a rectangle gesture.
type DrawState struct {
	Drawing bool
	StartX  float64
	StartY  float64
}

// DefaultMinDragPixels is the smallest gesture, per axis, that creates an annotation.
const DefaultMinDragPixels = 10

// DrawOptions carries everything needed to turn a gesture into an annotation.
type DrawOptions struct {
	Type       AnnotationType
	RoomType   string
	PageNumber int

	// Rotation is the display rotation; the result is stored unrotated.
	Rotation int

	ProjectNumber string
	RoomCodes     map[string]string
	RoomColors    map[string]string
	DefaultColor  string

	// MinDragPixels overrides DefaultMinDragPixels when positive.
	MinDragPixels float64

	RoomID         *int64
	RoomLocationID *int64
	CabinetRunID   *int64
	CabinetID      *int64
}

// OptionsForProject fills the project-derived fields of DrawOptions.
func OptionsForProject(p Project, t AnnotationType, roomType string, page int) DrawOptions {
	return DrawOptions{
		Type:          t,
		RoomType:      roomType,
		PageNumber:    page,
		ProjectNumber: p.ProjectNumber,
		RoomCodes:     p.RoomCodes,
		RoomColors:    p.RoomColors,
		DefaultColor:  p.FallbackColor(),
	}
}

// AnnotationTemplate is what the next drawn annotation will be tagged with.
type AnnotationTemplate struct {
	Type     AnnotationType
	RoomType string

	RoomID         *int64
	RoomLocationID *int64
	CabinetRunID   *int64
	CabinetID      *int64
}

// DefaultAnnotationTemplate tags new annotations as generic.
func DefaultAnnotationTemplate() AnnotationTemplate {
	return AnnotationTemplate{Type: AnnotationGeneric}
}
