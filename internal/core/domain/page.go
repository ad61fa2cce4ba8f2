package domain

// Page is a rendered document page.
type Page struct {
	// Number is 1-based.
	Number int

	// Width and Height are the intrinsic, unrotated pixel dimensions.
	Width  float64
	Height float64

	// Rotation is the page's own rotation as stored in the document.
	Rotation int

	// Source identifies where the page was loaded from.
	Source string
}

// Size returns the intrinsic page size.
func (p Page) Size() Size {
	return Size{Width: p.Width, Height: p.Height}
}

// Viewport returns the page size at zoom, rotated for display.
func (p Page) Viewport(zoom float64, rotation int) Size {
	s := Size{Width: p.Width * zoom, Height: p.Height * zoom}
	return s.Rotated(rotation + p.Rotation)
}
