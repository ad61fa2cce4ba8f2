package services

import (
	"fmt"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
	"github.com/custodia-labs/plancanvas/internal/logger"
)

// Ensure DrawService implements the interface.
var _ driving.DrawService = (*DrawService)(nil)

// Fixed colours for non-room annotation types.
const (
	ColorLocation   = "#10B981"
	ColorCabinetRun = "#F59E0B"
	ColorCabinet    = "#EF4444"
	ColorDimension  = "#8B5CF6"
)

// DrawService turns pointer gestures into annotations.
type DrawService struct{}

// NewDrawService creates a new draw service.
func NewDrawService() *DrawService {
	return &DrawService{}
}

// StartDrawing captures the canvas-relative start point of a rectangle gesture.
func (s *DrawService) StartDrawing(ev domain.PointerEvent, canvas driven.ViewportGeometry, tool domain.Tool) *domain.DrawState {
	if tool != domain.ToolRectangle || canvas == nil {
		return nil
	}
	b := canvas.Bounds()
	return &domain.DrawState{
		Drawing: true,
		StartX:  ev.ClientX - b.Left,
		StartY:  ev.ClientY - b.Top,
	}
}

// StopDrawing completes a gesture and builds the annotation.
func (s *DrawService) StopDrawing(
	ev domain.PointerEvent,
	canvas driven.ViewportGeometry,
	state domain.DrawState,
	opts domain.DrawOptions,
	existing []domain.Annotation,
) *domain.Annotation {
	if !state.Drawing || canvas == nil {
		return nil
	}
	b := canvas.Bounds()
	if !(domain.Size{Width: b.Width, Height: b.Height}).IsValid() {
		logger.Debug("draw: canvas has no size (%.1fx%.1f)", b.Width, b.Height)
		return nil
	}

	screen := domain.RectFromPoints(state.StartX, state.StartY, ev.ClientX-b.Left, ev.ClientY-b.Top)
	if !screen.IsFinite() {
		logger.Debug("draw: discarding non-finite gesture")
		return nil
	}

	threshold := opts.MinDragPixels
	if threshold <= 0 {
		threshold = domain.DefaultMinDragPixels
	}
	if screen.Width < threshold || screen.Height < threshold {
		logger.Debug("draw: gesture %.1fx%.1f below %.0fpx threshold", screen.Width, screen.Height, threshold)
		return nil
	}

	display := domain.Rect{
		X:      screen.X / b.Width,
		Y:      screen.Y / b.Height,
		Width:  screen.Width / b.Width,
		Height: screen.Height / b.Height,
	}.ClampUnit()
	r := domain.UnrotateRect(display, opts.Rotation)
	if r.IsEmpty() {
		return nil
	}

	t := opts.Type
	if !t.IsValid() {
		t = domain.AnnotationGeneric
	}

	return &domain.Annotation{
		PageNumber:     opts.PageNumber,
		Type:           t,
		X:              r.X,
		Y:              r.Y,
		Width:          r.Width,
		Height:         r.Height,
		Color:          s.AnnotationColor(t, opts.RoomType, opts.RoomColors, opts.DefaultColor),
		Text:           s.GenerateLabel(t, opts.RoomType, opts.ProjectNumber, opts.RoomCodes, len(existing)),
		RoomType:       opts.RoomType,
		RoomID:         copyRef(opts.RoomID),
		RoomLocationID: copyRef(opts.RoomLocationID),
		CabinetRunID:   copyRef(opts.CabinetRunID),
		CabinetID:      copyRef(opts.CabinetID),
	}
}

// AnnotationColor derives the colour for a new annotation.
func (s *DrawService) AnnotationColor(
	t domain.AnnotationType,
	roomType string,
	roomColors map[string]string,
	defaultColor string,
) string {
	if defaultColor == "" {
		defaultColor = domain.DefaultAnnotationColor
	}
	switch t {
	case domain.AnnotationRoom:
		if c := roomColors[roomType]; c != "" {
			return c
		}
		return defaultColor
	case domain.AnnotationLocation:
		return ColorLocation
	case domain.AnnotationCabinetRun:
		return ColorCabinetRun
	case domain.AnnotationCabinet:
		return ColorCabinet
	case domain.AnnotationDimension:
		return ColorDimension
	default:
		return defaultColor
	}
}

// GenerateLabel derives the display text for a new annotation.
func (s *DrawService) GenerateLabel(
	_ domain.AnnotationType,
	roomType, projectNumber string,
	roomCodes map[string]string,
	existingCount int,
) string {
	if code := roomCodes[roomType]; roomType != "" && code != "" {
		if projectNumber != "" {
			return projectNumber + "-" + code
		}
		return code
	}
	if projectNumber != "" {
		return fmt.Sprintf("%s-%d", projectNumber, existingCount+1)
	}
	return fmt.Sprintf("Label %d", existingCount+1)
}

// CursorFor returns the cursor shown for tool.
func (s *DrawService) CursorFor(tool domain.Tool) domain.Cursor {
	if tool == domain.ToolRectangle {
		return domain.CursorCrosshair
	}
	return domain.CursorDefault
}

// SetCursor applies the tool's cursor to canvas.
func (s *DrawService) SetCursor(canvas driven.CursorTarget, tool domain.Tool) {
	if canvas == nil {
		return
	}
	canvas.SetCursor(s.CursorFor(tool))
}

func copyRef(p *int64) *int64 {
	if p == nil {
		return nil
	}
	return domain.Ref(*p)
}
