package geom

import "fmt"

// Direction classifies a rectilinear path segment.
type Direction uint8

const (
	// DirLeft is a segment whose x decreases.
	DirLeft Direction = iota
	// DirRight is a segment whose x increases.
	DirRight
	// DirUp is a segment whose y increases.
	DirUp
	// DirDown is a segment whose y decreases.
	DirDown
)

// String returns the direction name for error messages.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// directionOf classifies the segment from p0 to p1.
// Identical points and diagonal segments violate the rectilinear contract.
func directionOf(p0, p1 Point) (Direction, error) {
	switch {
	case p0.X == p1.X && p0.Y == p1.Y:
		return 0, &InvalidGeometryError{
			Reason: fmt.Sprintf("repeated path point (%d, %d)", p0.X, p0.Y),
		}
	case p0.X == p1.X:
		if p0.Y < p1.Y {
			return DirUp, nil
		}
		return DirDown, nil
	case p0.Y == p1.Y:
		if p0.X < p1.X {
			return DirRight, nil
		}
		return DirLeft, nil
	}
	return 0, &InvalidGeometryError{
		Reason: fmt.Sprintf("non-rectilinear segment (%d, %d) to (%d, %d)", p0.X, p0.Y, p1.X, p1.Y),
	}
}

// outliner accumulates the two offset chains that run parallel to the
// centerline, one half-width to each side. The final ring is the forward
// chain followed by the backward chain in reverse.
type outliner struct {
	fwd, bwd []Point
	half     int32
}

// push appends one offset vertex to each chain.
func (o *outliner) push(p Point, fdx, fdy, bdx, bdy int32) {
	o.fwd = append(o.fwd, Point{X: p.X + fdx, Y: p.Y + fdy})
	o.bwd = append(o.bwd, Point{X: p.X + bdx, Y: p.Y + bdy})
}

// pure offsets perpendicular to a straight continuation in direction d.
// Used for the butt caps at both ends and for interior vertices where the
// direction does not change.
func (o *outliner) pure(d Direction, p Point) {
	h := o.half
	switch d {
	case DirRight:
		o.push(p, 0, -h, 0, h)
	case DirLeft:
		o.push(p, 0, h, 0, -h)
	case DirUp:
		o.push(p, h, 0, -h, 0)
	case DirDown:
		o.push(p, -h, 0, h, 0)
	}
}

// corner offsets diagonally at a 90-degree turn. The four unordered
// direction pairs each get a fixed diagonal; the two pairs that mirror
// another reuse its formula with the chains swapped.
func (o *outliner) corner(in, out Direction, p Point) error {
	h := o.half
	switch {
	case pair(in, out, DirRight, DirDown):
		o.push(p, -h, -h, h, h)
	case pair(in, out, DirRight, DirUp):
		o.push(p, h, -h, -h, h)
	case pair(in, out, DirLeft, DirUp):
		// mirror of right/down with the chains swapped
		o.push(p, h, h, -h, -h)
	case pair(in, out, DirLeft, DirDown):
		// mirror of right/up with the chains swapped
		o.push(p, -h, h, h, -h)
	default:
		return &InvalidTurnError{In: in, Out: out}
	}
	return nil
}

// pair reports whether {a, b} equals the unordered pair {x, y}.
func pair(a, b, x, y Direction) bool {
	return (a == x && b == y) || (a == y && b == x)
}

// Outline expands the stroked path into a simple closed polygon covering
// the stroked area, so the rectangle/polygon overlap machinery can be
// reused without a dedicated stroked-segment test.
//
// Preconditions: at least two points, an even width (half-width must be an
// exact integer), and rectilinear segments throughout. Violations return
// *InvalidGeometryError; a path that reverses on itself between two
// distinct points returns *InvalidTurnError.
//
// Ends get butt caps (pure perpendicular offset). Interior vertices offset
// either straight through or diagonally at a turn. Acute zig-zags at
// sub-width vertex spacing can in principle produce a self-intersecting
// ring; the result is not re-validated.
func (p Path) Outline() (Polygon, error) {
	pts := p.Points
	n := len(pts)
	if n < 2 {
		return Polygon{}, &InvalidGeometryError{
			Reason: fmt.Sprintf("path with %d points, need at least 2", n),
		}
	}
	if p.Width%2 != 0 {
		return Polygon{}, &InvalidGeometryError{
			Reason: fmt.Sprintf("odd path width %d", p.Width),
		}
	}
	half := int32(p.Width / 2)

	// Two points make a plain rectangle; skip the chain walk.
	if n == 2 {
		d, err := directionOf(pts[0], pts[1])
		if err != nil {
			return Polygon{}, err
		}
		if d == DirUp || d == DirDown {
			return Polygon{
				Points: []Point{
					{X: pts[0].X + half, Y: pts[0].Y},
					{X: pts[1].X + half, Y: pts[1].Y},
					{X: pts[1].X - half, Y: pts[1].Y},
					{X: pts[0].X - half, Y: pts[0].Y},
				},
				Layer: p.Layer,
			}, nil
		}
		return Polygon{
			Points: []Point{
				{X: pts[0].X, Y: pts[0].Y - half},
				{X: pts[1].X, Y: pts[1].Y - half},
				{X: pts[1].X, Y: pts[1].Y + half},
				{X: pts[0].X, Y: pts[0].Y + half},
			},
			Layer: p.Layer,
		}, nil
	}

	o := outliner{
		fwd:  make([]Point, 0, n),
		bwd:  make([]Point, 0, n),
		half: half,
	}

	last, err := directionOf(pts[0], pts[1])
	if err != nil {
		return Polygon{}, err
	}
	o.pure(last, pts[0])

	for i := 1; i < n-1; i++ {
		next, err := directionOf(pts[i], pts[i+1])
		if err != nil {
			return Polygon{}, err
		}
		if next == last {
			o.pure(last, pts[i])
		} else if err := o.corner(last, next, pts[i]); err != nil {
			return Polygon{}, err
		}
		last = next
	}

	end, err := directionOf(pts[n-2], pts[n-1])
	if err != nil {
		return Polygon{}, err
	}
	o.pure(end, pts[n-1])

	ring := make([]Point, 0, len(o.fwd)+len(o.bwd))
	ring = append(ring, o.fwd...)
	for i := len(o.bwd) - 1; i >= 0; i-- {
		ring = append(ring, o.bwd[i])
	}
	return Polygon{Points: ring, Layer: p.Layer}, nil
}
