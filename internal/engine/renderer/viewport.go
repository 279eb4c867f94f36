package renderer

// Viewport is a GL viewport rectangle in framebuffer pixels, origin at
// the bottom-left.
type Viewport struct {
	X, Y, Width, Height int32
}

// Aspect returns width/height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// Empty reports whether nothing can be drawn into v.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// RightOf returns the part of a width x height framebuffer to the right of
// a left panel. Sizes are in logical pixels and scale converts them to
// framebuffer pixels on high-DPI displays.
func RightOf(width, height, panelWidth int, scale float32) Viewport {
	if scale <= 0 {
		scale = 1
	}
	panel := min(max(panelWidth, 0), width)
	return Viewport{
		X:      int32(float32(panel) * scale),
		Y:      0,
		Width:  int32(float32(width-panel) * scale),
		Height: int32(float32(height) * scale),
	}
}
