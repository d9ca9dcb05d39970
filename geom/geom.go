// Package geom provides the integer geometry primitives indexed by tileindex:
// axis-aligned rectangles, polygons, and width-stroked rectilinear paths.
//
// All coordinates are 32-bit signed integers and all predicates are exact;
// no floating point is involved anywhere in this package. Key pieces:
//
//   - Point, BoundingBox: value types plus the bounding-box contract
//     (strictly positive extent in both axes, normalized at construction)
//   - Rect, Polygon, Path: the primitive kinds, each able to report its
//     bounding box via the Shape interface
//   - Path.Outline: rectilinear stroke expansion from a centerline to a
//     closed polygon, so overlap testing only ever deals with rectangles
//     and polygons
//   - IntersectsBox: exact polygon vs. box overlap tests used by the binner
//
// Primitives are plain data and safe to share between goroutines.
package geom

// Point is a location in layout coordinate space.
type Point struct {
	X, Y int32
}

// Shift returns a copy of p translated by delta.
func (p Point) Shift(delta Point) Point {
	return Point{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// Shape is a geometric primitive that can report its bounding box.
// The concrete types are Rect, Polygon and Path.
//
// Bounds returns an error if the primitive is degenerate (collapses to a
// point or an axis-aligned line) or, for paths, violates the rectilinear
// centerline contract. A degenerate primitive must never contribute to an
// aggregate bound.
type Shape interface {
	Bounds() (BoundingBox, error)
}
