package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plancanvas/internal/adapters/driven/viewport"
	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

func drag(t *testing.T, svc *DrawService, canvas *viewport.Surface, x1, y1, x2, y2 float64, opts domain.DrawOptions) *domain.Annotation {
	t.Helper()
	state := svc.StartDrawing(domain.PointerEvent{ClientX: x1, ClientY: y1}, canvas, domain.ToolRectangle)
	require.NotNil(t, state)
	return svc.StopDrawing(domain.PointerEvent{ClientX: x2, ClientY: y2}, canvas, *state, opts, nil)
}

func TestDrawService_StartDrawing(t *testing.T) {
	svc := NewDrawService()
	canvas := viewport.New(50, 20, 800, 600)

	state := svc.StartDrawing(domain.PointerEvent{ClientX: 150, ClientY: 120}, canvas, domain.ToolRectangle)
	require.NotNil(t, state)
	assert.True(t, state.Drawing)
	assert.Equal(t, 100.0, state.StartX)
	assert.Equal(t, 100.0, state.StartY)

	assert.Nil(t, svc.StartDrawing(domain.PointerEvent{}, canvas, domain.ToolSelect))
	assert.Nil(t, svc.StartDrawing(domain.PointerEvent{}, canvas, domain.ToolPan))
	assert.Nil(t, svc.StartDrawing(domain.PointerEvent{}, nil, domain.ToolRectangle))
}

func TestDrawService_StopDrawing_RoomScenario(t *testing.T) {
	svc := NewDrawService()
	canvas := viewport.New(0, 0, 800, 600)
	opts := domain.DrawOptions{
		Type:          domain.AnnotationRoom,
		RoomType:      "kitchen",
		PageNumber:    1,
		ProjectNumber: "TFW-0001",
		RoomCodes:     map[string]string{"kitchen": "K"},
		RoomColors:    map[string]string{"kitchen": "#3B82F6"},
		RoomID:        domain.Ref(4),
	}

	a := drag(t, svc, canvas, 100, 100, 200, 200, opts)
	require.NotNil(t, a)

	assert.InDelta(t, 0.125, a.X, 1e-4)
	assert.InDelta(t, 0.1667, a.Y, 1e-4)
	assert.InDelta(t, 0.125, a.Width, 1e-4)
	assert.InDelta(t, 0.1667, a.Height, 1e-4)
	assert.Equal(t, "TFW-0001-K", a.Text)
	assert.Equal(t, "#3B82F6", a.Color)
	assert.Equal(t, domain.AnnotationRoom, a.Type)
	assert.Equal(t, 1, a.PageNumber)
	assert.Empty(t, a.ID)
	require.NotNil(t, a.RoomID)
	assert.Equal(t, int64(4), *a.RoomID)
	assert.NotSame(t, opts.RoomID, a.RoomID)
}

func TestDrawService_StopDrawing_RoundTrip(t *testing.T) {
	svc := NewDrawService()
	sizes := []domain.Size{{Width: 800, Height: 600}, {Width: 1024, Height: 768}, {Width: 333, Height: 1999}}
	rects := []domain.Rect{
		{X: 0, Y: 0, Width: 10, Height: 10},
		{X: 12.5, Y: 40, Width: 100, Height: 37},
		{X: 100, Y: 200, Width: 200, Height: 150},
	}

	for _, size := range sizes {
		canvas := viewport.New(7, 9, size.Width, size.Height)
		for _, r := range rects {
			a := drag(t, svc, canvas, r.X+7, r.Y+9, r.Right()+7, r.Bottom()+9, domain.DrawOptions{Type: domain.AnnotationGeneric})
			require.NotNil(t, a)
			assert.InDelta(t, r.X, a.X*size.Width, 1e-6)
			assert.InDelta(t, r.Y, a.Y*size.Height, 1e-6)
			assert.InDelta(t, r.Width, a.Width*size.Width, 1e-6)
			assert.InDelta(t, r.Height, a.Height*size.Height, 1e-6)
		}
	}
}

func TestDrawService_StopDrawing_Rejections(t *testing.T) {
	svc := NewDrawService()
	canvas := viewport.New(0, 0, 800, 600)
	opts := domain.DrawOptions{Type: domain.AnnotationGeneric}

	assert.Nil(t, drag(t, svc, canvas, 100, 100, 105, 200, opts), "too narrow")
	assert.Nil(t, drag(t, svc, canvas, 100, 100, 200, 109, opts), "too short")
	assert.Nil(t, drag(t, svc, canvas, 100, 100, 100, 100, opts), "click")
	assert.Nil(t, drag(t, svc, canvas, 100, 100, math.NaN(), 200, opts), "non-finite")

	idle := domain.DrawState{}
	assert.Nil(t, svc.StopDrawing(domain.PointerEvent{ClientX: 300, ClientY: 300}, canvas, idle, opts, nil))

	empty := viewport.New(0, 0, 0, 0)
	state := domain.DrawState{Drawing: true}
	assert.Nil(t, svc.StopDrawing(domain.PointerEvent{ClientX: 300, ClientY: 300}, empty, state, opts, nil))
}

func TestDrawService_StopDrawing_CustomThreshold(t *testing.T) {
	svc := NewDrawService()
	canvas := viewport.New(0, 0, 800, 600)

	opts := domain.DrawOptions{Type: domain.AnnotationGeneric, MinDragPixels: 30}
	assert.Nil(t, drag(t, svc, canvas, 0, 0, 20, 20, opts))
	assert.NotNil(t, drag(t, svc, canvas, 0, 0, 30, 30, opts))
}

func TestDrawService_StopDrawing_ReversedAndClamped(t *testing.T) {
	svc := NewDrawService()
	canvas := viewport.New(0, 0, 800, 600)
	opts := domain.DrawOptions{Type: domain.AnnotationGeneric}

	a := drag(t, svc, canvas, 200, 200, 100, 100, opts)
	require.NotNil(t, a)
	assert.InDelta(t, 0.125, a.X, 1e-9)
	assert.InDelta(t, 0.125, a.Width, 1e-9)

	// Dragging past the canvas edge stays inside the page.
	a = drag(t, svc, canvas, 700, 500, 900, 700, opts)
	require.NotNil(t, a)
	assert.InDelta(t, 1.0, a.X+a.Width, 1e-9)
	assert.InDelta(t, 1.0, a.Y+a.Height, 1e-9)
	assert.Greater(t, a.Width, 0.0)
}

func TestDrawService_StopDrawing_Rotated(t *testing.T) {
	svc := NewDrawService()
	// Page displayed at 90 degrees on a 600x800 canvas.
	canvas := viewport.New(0, 0, 600, 800)
	opts := domain.DrawOptions{Type: domain.AnnotationGeneric, Rotation: 90}

	// Top-right corner on screen is the top-left corner of the page.
	a := drag(t, svc, canvas, 540, 0, 600, 160, opts)
	require.NotNil(t, a)
	assert.InDelta(t, 0.0, a.X, 1e-9)
	assert.InDelta(t, 0.0, a.Y, 1e-9)
	assert.InDelta(t, 0.2, a.Width, 1e-9)
	assert.InDelta(t, 0.1, a.Height, 1e-9)
}

func TestDrawService_AnnotationColor(t *testing.T) {
	svc := NewDrawService()
	colors := map[string]string{"kitchen": "#111111"}

	tests := []struct {
		name     string
		typ      domain.AnnotationType
		roomType string
		def      string
		want     string
	}{
		{"mapped room", domain.AnnotationRoom, "kitchen", "#222222", "#111111"},
		{"unmapped room", domain.AnnotationRoom, "bath", "#222222", "#222222"},
		{"room without default", domain.AnnotationRoom, "bath", "", domain.DefaultAnnotationColor},
		{"location", domain.AnnotationLocation, "kitchen", "", ColorLocation},
		{"cabinet run", domain.AnnotationCabinetRun, "", "", ColorCabinetRun},
		{"cabinet", domain.AnnotationCabinet, "", "", ColorCabinet},
		{"dimension", domain.AnnotationDimension, "", "", ColorDimension},
		{"generic", domain.AnnotationGeneric, "", "#222222", "#222222"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.AnnotationColor(tt.typ, tt.roomType, colors, tt.def))
		})
	}
}

func TestDrawService_GenerateLabel(t *testing.T) {
	svc := NewDrawService()
	codes := map[string]string{"kitchen": "K"}

	assert.Equal(t, "TFW-0001-K", svc.GenerateLabel(domain.AnnotationRoom, "kitchen", "TFW-0001", codes, 0))
	assert.Equal(t, "K", svc.GenerateLabel(domain.AnnotationRoom, "kitchen", "", codes, 3))
	assert.Equal(t, "TFW-0001-4", svc.GenerateLabel(domain.AnnotationRoom, "bath", "TFW-0001", codes, 3))
	assert.Equal(t, "Label 1", svc.GenerateLabel(domain.AnnotationGeneric, "", "", nil, 0))
	assert.Equal(t, "Label 6", svc.GenerateLabel(domain.AnnotationCabinet, "", "", codes, 5))
}

func TestDrawService_LabelCountsEveryAnnotation(t *testing.T) {
	svc := NewDrawService()
	canvas := viewport.New(0, 0, 800, 600)
	existing := []domain.Annotation{
		{Type: domain.AnnotationCabinet},
		{Type: domain.AnnotationCabinet},
		{Type: domain.AnnotationRoom},
	}

	state := svc.StartDrawing(domain.PointerEvent{ClientX: 0, ClientY: 0}, canvas, domain.ToolRectangle)
	require.NotNil(t, state)
	a := svc.StopDrawing(domain.PointerEvent{ClientX: 50, ClientY: 50}, canvas, *state,
		domain.DrawOptions{Type: domain.AnnotationCabinet}, existing)
	require.NotNil(t, a)
	assert.Equal(t, "Label 4", a.Text, "counter spans all types")
}

func TestDrawService_Cursor(t *testing.T) {
	svc := NewDrawService()
	canvas := viewport.New(0, 0, 10, 10)

	svc.SetCursor(canvas, domain.ToolRectangle)
	assert.Equal(t, domain.CursorCrosshair, canvas.Cursor())

	svc.SetCursor(canvas, domain.ToolSelect)
	assert.Equal(t, domain.CursorDefault, canvas.Cursor())

	svc.SetCursor(nil, domain.ToolRectangle)
}
