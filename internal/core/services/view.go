package services

import (
	"math"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
)

// Ensure ViewService implements the interface.
var _ driving.ViewService = (*ViewService)(nil)

// ViewService computes zoom and rotation transforms.
type ViewService struct{}

// NewViewService creates a new view service.
func NewViewService() *ViewService {
	return &ViewService{}
}

// ZoomIn steps zoom up, clamped to the maximum.
func (s *ViewService) ZoomIn(level float64) float64 {
	return domain.ClampZoom(level + domain.ZoomStep)
}

// ZoomOut steps zoom down, clamped to the minimum.
func (s *ViewService) ZoomOut(level float64) float64 {
	return domain.ClampZoom(level - domain.ZoomStep)
}

// ResetZoom returns the default zoom.
func (s *ViewService) ResetZoom() float64 {
	return domain.DefaultZoom
}

// RotateClockwise adds 90 degrees modulo 360.
func (s *ViewService) RotateClockwise(angle int) int {
	return domain.NormalizeRotation(angle + 90)
}

// RotateCounterClockwise subtracts 90 degrees modulo 360.
func (s *ViewService) RotateCounterClockwise(angle int) int {
	return domain.NormalizeRotation(angle - 90)
}

// CalculateBaseScale returns the scale at which the page fills the width
// left over after the sidebar and margin.
func (s *ViewService) CalculateBaseScale(availableWidth, pageWidth, sidebarWidth, margin float64) float64 {
	if pageWidth <= 0 {
		return 1
	}
	scale := (availableWidth - sidebarWidth - margin) / pageWidth
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return 1
	}
	return scale
}

// CalculateFitToPage returns the zoom at which the whole page fits.
func (s *ViewService) CalculateFitToPage(pageViewport, container domain.Size, currentZoom float64, rotation int) float64 {
	return fitZoom(pageViewport, container, currentZoom, rotation, func(w, h float64) float64 {
		return math.Min(w, h)
	})
}

// CalculateFitToWidth returns the zoom at which the page width fills the container.
func (s *ViewService) CalculateFitToWidth(pageViewport, container domain.Size, currentZoom float64, rotation int) float64 {
	return fitZoom(pageViewport, container, currentZoom, rotation, func(w, _ float64) float64 {
		return w
	})
}

// CalculateFitToHeight returns the zoom at which the page height fills the container.
func (s *ViewService) CalculateFitToHeight(pageViewport, container domain.Size, currentZoom float64, rotation int) float64 {
	return fitZoom(pageViewport, container, currentZoom, rotation, func(_, h float64) float64 {
		return h
	})
}

// fitZoom scales currentZoom by the ratio pick chooses from the width and
// height ratios of container to the rotated viewport.
func fitZoom(viewport, container domain.Size, currentZoom float64, rotation int, pick func(w, h float64) float64) float64 {
	if !viewport.IsValid() || !container.IsValid() || !(currentZoom > 0) || math.IsInf(currentZoom, 0) {
		return domain.ClampZoom(currentZoom)
	}
	rotated := viewport.Rotated(rotation)
	ratio := pick(container.Width/rotated.Width, container.Height/rotated.Height)
	return domain.ClampZoom(currentZoom * ratio)
}

// FitToRegion returns the zoom that frames region inside container.
func (s *ViewService) FitToRegion(region domain.Rect, page, container domain.Size, rotation int, padding float64) float64 {
	if region.IsEmpty() || !region.IsFinite() || !page.IsValid() || !container.IsValid() {
		return domain.DefaultZoom
	}
	target := domain.Size{Width: region.Width * page.Width, Height: region.Height * page.Height}.Rotated(rotation)

	avail := domain.Size{Width: container.Width - 2*padding, Height: container.Height - 2*padding}
	if !avail.IsValid() {
		avail = container
	}
	return domain.ClampZoom(math.Min(avail.Width/target.Width, avail.Height/target.Height))
}

// SaveView captures a view state.
func (s *ViewService) SaveView(zoom float64, rotation, page int) domain.ViewState {
	if page < 1 {
		page = 1
	}
	return domain.ViewState{
		Zoom:     domain.ClampZoom(zoom),
		Rotation: domain.NormalizeRotation(rotation),
		Page:     page,
	}
}

// ResetView returns the default view state.
func (s *ViewService) ResetView() domain.ViewState {
	return domain.DefaultViewState()
}
