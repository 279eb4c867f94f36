package viewer

// Rect is a screen rectangle in logical pixels, origin top-left.
type Rect struct {
	X, Y, W, H float32
}

// minViewWidth keeps the 3D view usable when the panel is wide.
const minViewWidth = 64

// splitLayout divides the work area into the configuration panel on the
// left and the 3D view on the right.
func splitLayout(work Rect, panelWidth float32) (panel, view Rect) {
	pw := min(max(panelWidth, 0), max(work.W-minViewWidth, 0))
	panel = Rect{X: work.X, Y: work.Y, W: pw, H: work.H}
	view = Rect{X: work.X + pw, Y: work.Y, W: work.W - pw, H: work.H}
	return panel, view
}
