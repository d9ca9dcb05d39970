package geom

import (
	"errors"
	"fmt"
)

// ErrEmptyBatch is returned when an aggregate bounding box is requested
// for an empty shape sequence. There is no identity element for the
// union fold, so at least one shape is required.
var ErrEmptyBatch = errors.New("geom: bounds of empty shape batch")

// InvalidGeometryError reports a primitive that violates a geometric
// contract: zero extent in either axis, a path with fewer than two points,
// an odd stroke width, or consecutive path points that are identical or
// non-rectilinear.
type InvalidGeometryError struct {
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	return "geom: invalid geometry: " + e.Reason
}

// InvalidTurnError reports a path whose direction sequence reverses on
// itself at a vertex (for example Left immediately followed by Right).
// It is distinct from InvalidGeometryError because it indicates a
// malformed centerline rather than a degenerate extent.
type InvalidTurnError struct {
	In, Out Direction
}

func (e *InvalidTurnError) Error() string {
	return fmt.Sprintf("geom: invalid path turn: %v followed by %v", e.In, e.Out)
}
