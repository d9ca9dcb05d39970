package geom

import "fmt"

// Rect is an axis-aligned rectangle given by two arbitrary opposite
// corners. The corners are not pre-normalized; P0 and P1 may be in any
// order per axis.
type Rect struct {
	P0, P1 Point
	Layer  uint8
}

// Bounds returns the normalized bounding box of the two corners.
// A rect whose corners coincide in either axis is degenerate.
func (r Rect) Bounds() (BoundingBox, error) {
	return NewBoundingBox(r.P0, r.P1)
}

// Polygon is a closed ring of points in input order. The ring is assumed
// simple; self-intersection is not verified.
type Polygon struct {
	Points []Point
	Layer  uint8
}

// Bounds returns the bounding box over all vertices.
func (p Polygon) Bounds() (BoundingBox, error) {
	if len(p.Points) < 3 {
		return BoundingBox{}, &InvalidGeometryError{
			Reason: fmt.Sprintf("polygon with %d points, need at least 3", len(p.Points)),
		}
	}
	acc := newBoundsAccum()
	for _, pt := range p.Points {
		acc.add(pt)
	}
	return acc.bounds()
}

// Path is a width-stroked rectilinear centerline: a sequence of at least
// two turning points where every consecutive pair differs in exactly one
// axis, plus an even stroke width. A Path is never overlap-tested
// directly; it is consumed through Outline, which expands the stroke into
// a closed polygon.
type Path struct {
	Points []Point
	Width  uint32
	Layer  uint8
}

// Bounds returns the bounding box of the stroked outline, not of the
// centerline: the stroke extends half a width to each side.
func (p Path) Bounds() (BoundingBox, error) {
	outline, err := p.Outline()
	if err != nil {
		return BoundingBox{}, err
	}
	acc := newBoundsAccum()
	for _, pt := range outline.Points {
		acc.add(pt)
	}
	return acc.bounds()
}
