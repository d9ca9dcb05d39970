package geom

// Exact integer overlap predicates. The binner narrows candidates with
// bounding boxes and then asks these for the truth; they must therefore
// agree with closed-interval semantics everywhere: geometry that merely
// touches a box edge or corner counts as overlapping.

// IntersectsBox reports whether the polygon's area or boundary overlaps
// the closed box. The test is exact over int64 arithmetic:
// a vertex inside the box, a box corner inside the ring, or any ring edge
// meeting any box edge all count.
func (p Polygon) IntersectsBox(b BoundingBox) bool {
	n := len(p.Points)
	if n == 0 {
		return false
	}
	for _, pt := range p.Points {
		if b.Contains(pt) {
			return true
		}
	}

	corners := [4]Point{
		b.min,
		{X: b.max.X, Y: b.min.Y},
		b.max,
		{X: b.min.X, Y: b.max.Y},
	}
	for _, c := range corners {
		if p.contains(c) {
			return true
		}
	}

	for i := range n {
		e0 := p.Points[i]
		e1 := p.Points[(i+1)%n]
		for j := range 4 {
			if segmentsIntersect(e0, e1, corners[j], corners[(j+1)%4]) {
				return true
			}
		}
	}
	return false
}

// contains reports whether pt lies inside the ring (even-odd rule) or on
// its boundary.
func (p Polygon) contains(pt Point) bool {
	n := len(p.Points)
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a := p.Points[j]
		b := p.Points[i]
		if onSegment(a, b, pt) {
			return true
		}
		// Half-open ray cast: count edges whose y-span straddles pt.Y and
		// whose crossing lies strictly to the right of pt. Comparing by
		// cross-multiplication keeps the test exact.
		if (b.Y > pt.Y) != (a.Y > pt.Y) {
			lhs := (int64(pt.X) - int64(b.X)) * (int64(a.Y) - int64(b.Y))
			rhs := (int64(a.X) - int64(b.X)) * (int64(pt.Y) - int64(b.Y))
			if int64(a.Y) > int64(b.Y) {
				if lhs < rhs {
					inside = !inside
				}
			} else {
				if lhs > rhs {
					inside = !inside
				}
			}
		}
	}
	return inside
}

// cross returns the sign of the z-component of (b-a) x (c-a).
func cross(a, b, c Point) int {
	v := (int64(b.X)-int64(a.X))*(int64(c.Y)-int64(a.Y)) -
		(int64(b.Y)-int64(a.Y))*(int64(c.X)-int64(a.X))
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// onSegment reports whether c lies on the closed segment ab.
func onSegment(a, b, c Point) bool {
	if cross(a, b, c) != 0 {
		return false
	}
	return min(a.X, b.X) <= c.X && c.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= c.Y && c.Y <= max(a.Y, b.Y)
}

// segmentsIntersect reports whether closed segments ab and cd share at
// least one point, including endpoint touches and collinear overlap.
func segmentsIntersect(a, b, c, d Point) bool {
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(c, d, a)) ||
		(d2 == 0 && onSegment(c, d, b)) ||
		(d3 == 0 && onSegment(a, b, c)) ||
		(d4 == 0 && onSegment(a, b, d))
}
