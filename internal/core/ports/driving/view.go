package driving

import "github.com/custodia-labs/plancanvas/internal/core/domain"

// ViewService computes zoom and rotation transforms.
type ViewService interface {
	// ZoomIn steps zoom up by domain.ZoomStep, clamped to domain.MaxZoom.
	ZoomIn(level float64) float64

	// ZoomOut steps zoom down by domain.ZoomStep, clamped to domain.MinZoom.
	ZoomOut(level float64) float64

	// ResetZoom returns domain.DefaultZoom.
	ResetZoom() float64

	// RotateClockwise adds 90 degrees modulo 360.
	RotateClockwise(angle int) int

	// RotateCounterClockwise subtracts 90 degrees modulo 360.
	RotateCounterClockwise(angle int) int

	// CalculateBaseScale returns the scale at which a page of pageWidth fills
	// availableWidth minus the sidebar and margin. Degenerate input yields 1.
	CalculateBaseScale(availableWidth, pageWidth, sidebarWidth, margin float64) float64

	// CalculateFitToPage returns the zoom at which the whole page fits the container.
	// pageViewport is the unrotated page size rendered at currentZoom.
	CalculateFitToPage(pageViewport, container domain.Size, currentZoom float64, rotation int) float64

	// CalculateFitToWidth returns the zoom at which the page width fills the container.
	CalculateFitToWidth(pageViewport, container domain.Size, currentZoom float64, rotation int) float64

	// CalculateFitToHeight returns the zoom at which the page height fills the container.
	CalculateFitToHeight(pageViewport, container domain.Size, currentZoom float64, rotation int) float64

	// FitToRegion returns the zoom framing a normalised region of a page
	// (intrinsic size page) inside container, leaving padding pixels around it.
	FitToRegion(region domain.Rect, page, container domain.Size, rotation int, padding float64) float64

	// SaveView captures a view state.
	SaveView(zoom float64, rotation, page int) domain.ViewState

	// ResetView returns the default view state.
	ResetView() domain.ViewState
}
