package domain

import "math"

// Rect is an axis-aligned rectangle. Annotations use it in normalised
// page space where both axes run from 0 to 1.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Expand grows r by dx on the left and right and by dy on the top and bottom.
func (r Rect) Expand(dx, dy float64) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, Width: r.Width + 2*dx, Height: r.Height + 2*dy}
}

// Union returns the smallest rectangle containing both r and other.
// An empty rectangle acts as the identity.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.Right(), other.Right())
	maxY := math.Max(r.Bottom(), other.Bottom())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ClampUnit clips r to the unit square.
func (r Rect) ClampUnit() Rect {
	x := clamp(r.X, 0, 1)
	y := clamp(r.Y, 0, 1)
	right := clamp(r.Right(), 0, 1)
	bottom := clamp(r.Bottom(), 0, 1)
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// IsFinite reports whether every component is a finite number.
func (r Rect) IsFinite() bool {
	return isFinite(r.X) && isFinite(r.Y) && isFinite(r.Width) && isFinite(r.Height)
}

// RectFromPoints builds a rectangle from two opposite corners in any order.
func RectFromPoints(x1, y1, x2, y2 float64) Rect {
	return Rect{
		X:      math.Min(x1, x2),
		Y:      math.Min(y1, y2),
		Width:  math.Abs(x2 - x1),
		Height: math.Abs(y2 - y1),
	}
}

// Size is a width and height pair in pixels.
type Size struct {
	Width  float64
	Height float64
}

// IsValid reports whether both dimensions are positive and finite.
func (s Size) IsValid() bool {
	return s.Width > 0 && s.Height > 0 && isFinite(s.Width) && isFinite(s.Height)
}

// Rotated returns the size with width and height swapped at 90 and 270 degrees.
func (s Size) Rotated(rotation int) Size {
	switch NormalizeRotation(rotation) {
	case 90, 270:
		return Size{Width: s.Height, Height: s.Width}
	default:
		return s
	}
}

// Bounds is the on-screen box of a drawing surface.
type Bounds struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// NormalizeRotation maps any angle onto [0, 360).
func NormalizeRotation(angle int) int {
	return ((angle % 360) + 360) % 360
}

// RotateRect maps a rectangle from intrinsic page space into the space of
// the page displayed at rotation degrees clockwise.
func RotateRect(r Rect, rotation int) Rect {
	switch NormalizeRotation(rotation) {
	case 90:
		return Rect{X: 1 - r.Bottom(), Y: r.X, Width: r.Height, Height: r.Width}
	case 180:
		return Rect{X: 1 - r.Right(), Y: 1 - r.Bottom(), Width: r.Width, Height: r.Height}
	case 270:
		return Rect{X: r.Y, Y: 1 - r.Right(), Width: r.Height, Height: r.Width}
	default:
		return r
	}
}

// UnrotateRect is the inverse of RotateRect.
func UnrotateRect(r Rect, rotation int) Rect {
	switch NormalizeRotation(rotation) {
	case 90:
		return Rect{X: r.Y, Y: 1 - r.Right(), Width: r.Height, Height: r.Width}
	case 180:
		return Rect{X: 1 - r.Right(), Y: 1 - r.Bottom(), Width: r.Width, Height: r.Height}
	case 270:
		return Rect{X: 1 - r.Bottom(), Y: r.X, Width: r.Height, Height: r.Width}
	default:
		return r
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
