package models

// Label is a raw text token extracted from a floor-plan document, positioned
// by its bounding-box origin in page units (top-left coordinate system).
// Labels are produced once per extraction pass and discarded after the floor
// index builder consumes them.
type Label struct {
	Text       string
	X          float64
	Y          float64
	FontSize   float64
	PageWidth  float64
	PageHeight float64
}

// Point is a position expressed as fractions in [0,1] of a page's width and
// height, independent of render scale.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// InUnitRange reports whether both components lie in [0,1]. Values outside
// indicate a corrupt extraction and are rejected at build time.
func (p Point) InUnitRange() bool {
	return p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1
}

// Normalize converts the label's origin into a Point using its page
// dimensions. Zero page dimensions yield an out-of-range point, which the
// builder rejects.
func (l Label) Normalize() Point {
	if l.PageWidth <= 0 || l.PageHeight <= 0 {
		return Point{X: -1, Y: -1}
	}
	return Point{X: l.X / l.PageWidth, Y: l.Y / l.PageHeight}
}
