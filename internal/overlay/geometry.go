package overlay

// Label positions come from the coordinates file in PDF user space, origin
// at the bottom left with y growing upwards. The canvas draws with the
// origin at the top left and y growing downwards. Every conversion between
// the two lives in this file so the drawing code stays free of sign
// juggling.

// rect is an axis aligned rectangle in canvas coordinates (top left origin).
type rect struct {
	x, y, w, h float64
}

// textOrigin converts a label baseline position from page to canvas
// coordinates.
func textOrigin(x, y, pageH float64) (float64, float64) {
	return x, pageH - y
}

// labelBox returns the rectangle drawn around a label of width w and height
// h whose baseline starts at (x, y) in page coordinates. The box extends pad
// points beyond the label on every side.
func labelBox(x, y, w, h, pad, pageH float64) rect {
	boxW := w + 2*pad
	boxH := h + 2*pad
	// Lower left corner in page coordinates is (x-pad, y-pad); the canvas
	// wants the upper left corner.
	return rect{
		x: x - pad,
		y: pageH - (y - pad + boxH),
		w: boxW,
		h: boxH,
	}
}

// labelCircle returns the center and radius of the circle drawn around a
// label of width w and height h whose baseline starts at (x, y) in page
// coordinates. The center is the middle of the label, the radius covers its
// larger dimension plus pad.
func labelCircle(x, y, w, h, pad, pageH float64) (cx, cy, r float64) {
	cx = x + w/2
	cy = pageH - (y + h/2)
	r = max(w, h)/2 + pad
	return cx, cy, r
}
