package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

func TestViewService_Zoom(t *testing.T) {
	svc := NewViewService()

	assert.Equal(t, 1.25, svc.ZoomIn(1.0))
	assert.Equal(t, 0.75, svc.ZoomOut(1.0))
	assert.Equal(t, 3.0, svc.ZoomIn(2.8))
	assert.Equal(t, 0.5, svc.ZoomOut(0.6))
	assert.Equal(t, 3.0, svc.ZoomIn(3.0))
	assert.Equal(t, 0.5, svc.ZoomOut(0.5))
	assert.Equal(t, 1.0, svc.ResetZoom())
}

func TestViewService_ZoomRoundTrip(t *testing.T) {
	svc := NewViewService()

	for _, level := range []float64{0.5, 0.75, 1.0, 1.1, 1.6, 2.0, 2.75} {
		assert.InDelta(t, level, svc.ZoomOut(svc.ZoomIn(level)), 1e-9, "level %v", level)
	}
}

func TestViewService_Rotate(t *testing.T) {
	svc := NewViewService()

	assert.Equal(t, 0, svc.RotateClockwise(270))
	assert.Equal(t, 270, svc.RotateCounterClockwise(0))
	assert.Equal(t, 90, svc.RotateClockwise(360))

	for _, start := range []int{0, 90, 180, 270} {
		angle := start
		for i := 0; i < 4; i++ {
			angle = svc.RotateClockwise(angle)
		}
		assert.Equal(t, start, angle)
	}
}

func TestViewService_CalculateBaseScale(t *testing.T) {
	svc := NewViewService()

	assert.InDelta(t, 1.0, svc.CalculateBaseScale(1368, 1000, 320, 48), 1e-9)
	assert.InDelta(t, 0.5, svc.CalculateBaseScale(868, 1000, 320, 48), 1e-9)
	assert.Equal(t, 1.0, svc.CalculateBaseScale(300, 1000, 320, 48), "no room left")
	assert.Equal(t, 1.0, svc.CalculateBaseScale(1000, 0, 0, 0))
}

func TestViewService_CalculateFit(t *testing.T) {
	svc := NewViewService()
	viewport := domain.Size{Width: 800, Height: 400}

	tests := []struct {
		name      string
		fit       func(domain.Size, domain.Size, float64, int) float64
		container domain.Size
		zoom      float64
		rotation  int
		want      float64
	}{
		{"page limited by width", svc.CalculateFitToPage, domain.Size{Width: 800, Height: 800}, 1, 0, 1},
		{"page limited by height", svc.CalculateFitToPage, domain.Size{Width: 1600, Height: 600}, 1, 0, 1.5},
		{"page rotated swaps axes", svc.CalculateFitToPage, domain.Size{Width: 800, Height: 800}, 1, 90, 1},
		{"width", svc.CalculateFitToWidth, domain.Size{Width: 1200, Height: 100}, 1, 0, 1.5},
		{"width at zoom 2", svc.CalculateFitToWidth, domain.Size{Width: 1200, Height: 100}, 2, 0, 3},
		{"width rotated", svc.CalculateFitToWidth, domain.Size{Width: 600, Height: 100}, 1, 270, 1.5},
		{"height", svc.CalculateFitToHeight, domain.Size{Width: 10, Height: 800}, 1, 0, 2},
		{"height rotated", svc.CalculateFitToHeight, domain.Size{Width: 10, Height: 800}, 1, 90, 1},
		{"clamped high", svc.CalculateFitToPage, domain.Size{Width: 8000, Height: 4000}, 1, 0, 3},
		{"clamped low", svc.CalculateFitToPage, domain.Size{Width: 80, Height: 40}, 1, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.fit(viewport, tt.container, tt.zoom, tt.rotation), 1e-9)
		})
	}
}

func TestViewService_CalculateFit_Degenerate(t *testing.T) {
	svc := NewViewService()
	container := domain.Size{Width: 800, Height: 600}

	got := svc.CalculateFitToPage(domain.Size{}, container, 1.25, 0)
	assert.Equal(t, 1.25, got)

	got = svc.CalculateFitToWidth(domain.Size{Width: 100, Height: 100}, domain.Size{Width: math.NaN(), Height: 1}, 2, 0)
	assert.Equal(t, 2.0, got)

	got = svc.CalculateFitToHeight(domain.Size{Width: 100, Height: 100}, container, 0, 0)
	assert.Equal(t, domain.MinZoom, got)
	assert.False(t, math.IsNaN(got))
}

func TestViewService_FitToRegion(t *testing.T) {
	svc := NewViewService()
	page := domain.Size{Width: 1000, Height: 1000}
	container := domain.Size{Width: 520, Height: 520}

	// 0.2 x 0.2 of a 1000px page is 200px; 500px available after padding.
	region := domain.Rect{X: 0.1, Y: 0.1, Width: 0.2, Height: 0.2}
	assert.InDelta(t, 2.5, svc.FitToRegion(region, page, container, 0, 10), 1e-9)

	wide := domain.Rect{X: 0, Y: 0, Width: 0.5, Height: 0.1}
	assert.InDelta(t, 1.0, svc.FitToRegion(wide, page, container, 0, 10), 1e-9)
	assert.InDelta(t, 1.0, svc.FitToRegion(wide, page, container, 90, 10), 1e-9)

	assert.Equal(t, domain.MaxZoom, svc.FitToRegion(domain.Rect{Width: 0.01, Height: 0.01}, page, container, 0, 0))
	assert.Equal(t, domain.DefaultZoom, svc.FitToRegion(domain.Rect{}, page, container, 0, 0))
}

func TestViewService_SaveAndResetView(t *testing.T) {
	svc := NewViewService()

	v := svc.SaveView(1.5, 450, 3)
	assert.Equal(t, domain.ViewState{Zoom: 1.5, Rotation: 90, Page: 3}, v)

	v = svc.SaveView(9, 0, 0)
	assert.Equal(t, domain.ViewState{Zoom: 3, Rotation: 0, Page: 1}, v)

	assert.Equal(t, domain.DefaultViewState(), svc.ResetView())
}
