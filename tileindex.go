// Package tileindex builds a spatial index over large flat collections of
// 2-D layout primitives: a uniform grid of tiles, each holding the indices
// of every primitive that overlaps it. A downstream consumer uses the index
// to fetch "all shapes visible in tile (ix, iy)" in O(1).
//
// The pipeline is a single batch pass:
//
//	primitives -> per-primitive bounding boxes (paths via stroke outlines)
//	           -> aggregate bounding box
//	           -> dense tile grid over the shifted, non-negative quadrant
//	           -> exact overlap binning of each primitive into its tiles
//
// Primitives are referenced by their position in the input slice and are
// never copied or mutated. The resulting TileMap is immutable; indexing a
// new batch means building a new TileMap.
//
// Binning work is O(sum of candidate tiles per primitive), not
// O(primitives x tiles): a primitive is only ever overlap-tested against
// the tiles its bounding box can touch. Large batches are binned in
// parallel with a deterministic two-phase compute/merge scheme, so the
// same input always produces an identical TileMap.
package tileindex

import (
	"errors"
	"fmt"
	"time"

	"github.com/chipviz/tileindex/geom"
)

// ErrTileSize is returned when Build is given a non-positive tile edge length.
var ErrTileSize = errors.New("tileindex: tile size must be positive")

// InvalidShapeError wraps a geometry error with the index of the offending
// primitive, so malformed input can be traced back to its source.
type InvalidShapeError struct {
	Index int
	Err   error
}

func (e *InvalidShapeError) Error() string {
	return fmt.Sprintf("tileindex: shape %d: %v", e.Index, e.Err)
}

func (e *InvalidShapeError) Unwrap() error { return e.Err }

// Build constructs the tile index for shapes with the given tile edge
// length in coordinate units.
//
// The whole batch fails on the first invalid primitive (wrapped in
// *InvalidShapeError), on an empty batch (geom.ErrEmptyBatch), or on a
// non-positive tile size (ErrTileSize). Use WithSkipInvalid to skip and
// record bad primitives instead of aborting.
func Build(shapes []geom.Shape, tileSize int, opts ...BuildOption) (*TileMap, error) {
	o := defaultBuildOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if tileSize <= 0 {
		return nil, ErrTileSize
	}

	start := time.Now()

	prep, skipped, err := prepare(shapes, o.skipInvalid)
	if err != nil {
		return nil, err
	}
	if len(prep) == 0 {
		return nil, geom.ErrEmptyBatch
	}

	agg := prep[0].bounds
	for _, ps := range prep[1:] {
		agg = agg.Union(ps.bounds)
	}

	tm := newTileMap(agg, int32(tileSize))
	tm.skipped = skipped

	if o.workers == 1 || len(prep) < parallelThreshold {
		binSequential(tm, prep)
	} else {
		binParallel(tm, prep, o.workers)
	}

	Logger().Info("tileindex: built tile index",
		"shapes", len(prep),
		"skipped", len(skipped),
		"tiles_x", tm.tilesX,
		"tiles_y", tm.tilesY,
		"tile_size", tileSize,
		"elapsed", time.Since(start),
	)
	return tm, nil
}

// prepare resolves every shape to its bounds and exact overlap geometry.
// With skipInvalid set, offending shapes are recorded and left out;
// otherwise the first error aborts.
func prepare(shapes []geom.Shape, skipInvalid bool) ([]preparedShape, []*InvalidShapeError, error) {
	prep := make([]preparedShape, 0, len(shapes))
	var skipped []*InvalidShapeError

	for i, s := range shapes {
		ps, err := prepareShape(i, s)
		if err != nil {
			ise := &InvalidShapeError{Index: i, Err: err}
			if !skipInvalid {
				return nil, nil, ise
			}
			Logger().Warn("tileindex: skipping invalid shape", "index", i, "err", err)
			skipped = append(skipped, ise)
			continue
		}
		prep = append(prep, ps)
	}
	return prep, skipped, nil
}

// preparedShape carries everything the binner needs for one primitive:
// its world-space bounds and, for polygons and paths, the exact ring.
// Rects need no ring; their bounds are their geometry.
type preparedShape struct {
	index  int
	bounds geom.BoundingBox
	ring   []geom.Point // nil for rects
}

func prepareShape(i int, s geom.Shape) (preparedShape, error) {
	switch v := s.(type) {
	case geom.Rect:
		bb, err := v.Bounds()
		if err != nil {
			return preparedShape{}, err
		}
		return preparedShape{index: i, bounds: bb}, nil

	case geom.Polygon:
		bb, err := v.Bounds()
		if err != nil {
			return preparedShape{}, err
		}
		return preparedShape{index: i, bounds: bb, ring: v.Points}, nil

	case geom.Path:
		outline, err := v.Outline()
		if err != nil {
			return preparedShape{}, err
		}
		bb, err := outline.Bounds()
		if err != nil {
			return preparedShape{}, err
		}
		return preparedShape{index: i, bounds: bb, ring: outline.Points}, nil

	default:
		if s == nil {
			return preparedShape{}, fmt.Errorf("tileindex: nil shape")
		}
		bb, err := s.Bounds()
		if err != nil {
			return preparedShape{}, err
		}
		// Unknown Shape implementations are binned by their bounds alone.
		return preparedShape{index: i, bounds: bb}, nil
	}
}
