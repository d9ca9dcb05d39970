package geom

import (
	"fmt"
	"math"
)

// BoundingBox is the minimal axis-aligned rectangle enclosing a primitive
// or a set of primitives. The invariant min.X < max.X and min.Y < max.Y
// holds strictly for every constructed value; zero-width or zero-height
// boxes are rejected at construction rather than clamped.
type BoundingBox struct {
	min, max Point
}

// NewBoundingBox builds a bounding box from an unvalidated corner pair.
// The corners are normalized per axis (swapped when b < a) before the
// strict-extent check, so callers may pass them in any order.
// Returns *InvalidGeometryError when the box collapses to a point or an
// axis-aligned line in either axis.
func NewBoundingBox(a, b Point) (BoundingBox, error) {
	if a.X == b.X {
		return BoundingBox{}, &InvalidGeometryError{Reason: fmt.Sprintf("zero width at x=%d", a.X)}
	}
	if a.Y == b.Y {
		return BoundingBox{}, &InvalidGeometryError{Reason: fmt.Sprintf("zero height at y=%d", a.Y)}
	}
	bb := BoundingBox{min: a, max: b}
	if bb.max.X < bb.min.X {
		bb.min.X, bb.max.X = bb.max.X, bb.min.X
	}
	if bb.max.Y < bb.min.Y {
		bb.min.Y, bb.max.Y = bb.max.Y, bb.min.Y
	}
	return bb, nil
}

// Min returns the lower-left corner.
func (b BoundingBox) Min() Point { return b.min }

// Max returns the upper-right corner.
func (b BoundingBox) Max() Point { return b.max }

// Union returns the component-wise extremes of b and o.
// Union is commutative and associative.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		min: Point{X: min(b.min.X, o.min.X), Y: min(b.min.Y, o.min.Y)},
		max: Point{X: max(b.max.X, o.max.X), Y: max(b.max.Y, o.max.Y)},
	}
}

// Shift returns a copy of b translated by delta.
func (b BoundingBox) Shift(delta Point) BoundingBox {
	return BoundingBox{min: b.min.Shift(delta), max: b.max.Shift(delta)}
}

// Intersects reports whether b and o overlap, treating both boxes as
// closed intervals: boxes that merely touch along an edge or at a corner
// count as intersecting.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.min.X <= o.max.X && o.min.X <= b.max.X &&
		b.min.Y <= o.max.Y && o.min.Y <= b.max.Y
}

// Contains reports whether p lies inside b, boundary included.
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.min.X && p.X <= b.max.X && p.Y >= b.min.Y && p.Y <= b.max.Y
}

// Width returns the x extent of b. Always positive.
func (b BoundingBox) Width() int64 { return int64(b.max.X) - int64(b.min.X) }

// Height returns the y extent of b. Always positive.
func (b BoundingBox) Height() int64 { return int64(b.max.Y) - int64(b.min.Y) }

// boundsAccum accumulates vertex extremes for a bounding-box fold.
// It starts inverted (min at +inf, max at -inf) so the first vertex
// establishes both corners.
type boundsAccum struct {
	minX, minY int32
	maxX, maxY int32
}

func newBoundsAccum() boundsAccum {
	return boundsAccum{
		minX: math.MaxInt32, minY: math.MaxInt32,
		maxX: math.MinInt32, maxY: math.MinInt32,
	}
}

func (a *boundsAccum) add(p Point) {
	a.minX = min(a.minX, p.X)
	a.minY = min(a.minY, p.Y)
	a.maxX = max(a.maxX, p.X)
	a.maxY = max(a.maxY, p.Y)
}

// bounds validates the accumulated extremes into a BoundingBox.
func (a *boundsAccum) bounds() (BoundingBox, error) {
	return NewBoundingBox(Point{X: a.minX, Y: a.minY}, Point{X: a.maxX, Y: a.maxY})
}

// BoundsOf folds the bounding boxes of all shapes into one aggregate box.
// An empty sequence returns ErrEmptyBatch; a shape whose own bounds are
// invalid aborts the fold with an error naming the shape's index.
func BoundsOf(shapes []Shape) (BoundingBox, error) {
	if len(shapes) == 0 {
		return BoundingBox{}, ErrEmptyBatch
	}
	agg, err := shapes[0].Bounds()
	if err != nil {
		return BoundingBox{}, fmt.Errorf("geom: shape 0: %w", err)
	}
	for i, s := range shapes[1:] {
		bb, err := s.Bounds()
		if err != nil {
			return BoundingBox{}, fmt.Errorf("geom: shape %d: %w", i+1, err)
		}
		agg = agg.Union(bb)
	}
	return agg, nil
}
