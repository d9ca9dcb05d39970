package tileindex

import (
	"github.com/chipviz/tileindex/geom"
	"github.com/chipviz/tileindex/internal/parallel"
)

// parallelThreshold is the batch size below which the parallel path is not
// worth the chunking overhead.
const parallelThreshold = 4096

// binShape finds every tile the prepared shape truly overlaps and yields
// the tile's row-major index.
//
// The candidate range comes from the shape's shifted bounding box, clamped
// into the allocated grid and divided by the tile size with both ends
// inclusive: a bbox that exactly touches a tile boundary is a candidate
// for both neighbors. Each candidate is then confirmed with an exact
// geometric test; tiles outside the candidate range are never touched.
func (tm *TileMap) binShape(ps *preparedShape, yield func(tile uint32)) {
	sb := ps.bounds.Shift(tm.shift)

	t := int64(tm.tileSize)
	minX := clamp(int64(sb.Min().X), 0, tm.unitsX()-1)
	minY := clamp(int64(sb.Min().Y), 0, tm.unitsY()-1)
	maxX := clamp(int64(sb.Max().X), 0, tm.unitsX()-1)
	maxY := clamp(int64(sb.Max().Y), 0, tm.unitsY()-1)

	tx0 := uint32(minX / t)
	ty0 := uint32(minY / t)
	tx1 := uint32(maxX / t)
	ty1 := uint32(maxY / t)

	// Shift the exact geometry into grid space once per shape.
	var poly geom.Polygon
	if ps.ring != nil {
		shifted := make([]geom.Point, len(ps.ring))
		for i, pt := range ps.ring {
			shifted[i] = pt.Shift(tm.shift)
		}
		poly = geom.Polygon{Points: shifted}
	}

	for iy := ty0; iy <= ty1; iy++ {
		for ix := tx0; ix <= tx1; ix++ {
			tile := &tm.tiles[iy*tm.tilesX+ix]
			var hit bool
			if ps.ring == nil {
				hit = sb.Intersects(tile.Extents)
			} else {
				hit = poly.IntersectsBox(tile.Extents)
			}
			if hit {
				yield(iy*tm.tilesX + ix)
			}
		}
	}
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// binSequential is the reference single-pass binner.
func binSequential(tm *TileMap, prep []preparedShape) {
	for i := range prep {
		ps := &prep[i]
		tm.binShape(ps, func(tile uint32) {
			tm.tiles[tile].Shapes = append(tm.tiles[tile].Shapes, ps.index)
		})
		if (i+1)%1_000_000 == 0 {
			Logger().Debug("tileindex: binning progress", "shapes", i+1)
		}
	}
}

// assignment is one (tile, primitive index) pair produced by a worker.
type assignment struct {
	tile  uint32
	shape int
}

// binParallel bins shapes with a two-phase compute/merge scheme.
//
// Phase one partitions the prepared shapes into contiguous chunks; each
// worker job computes its chunk's assignments into private storage, with
// no shared mutable state. Phase two merges chunk outputs into the tiles
// in chunk order on the calling goroutine. Chunks are contiguous and
// shapes are prepared in input order, so every tile's index list ends up
// ascending, bitwise-identical to the sequential result regardless of the
// worker count.
func binParallel(tm *TileMap, prep []preparedShape, workers int) {
	pool := parallel.NewWorkerPool(workers)
	defer pool.Close()

	// A few chunks per worker keeps stealing useful when shape density
	// is uneven.
	numChunks := pool.Workers() * 4
	if numChunks > len(prep) {
		numChunks = len(prep)
	}
	chunkSize := (len(prep) + numChunks - 1) / numChunks

	results := make([][]assignment, numChunks)
	jobs := make([]func(), numChunks)
	for c := range numChunks {
		lo := c * chunkSize
		hi := min(lo+chunkSize, len(prep))
		jobs[c] = func() {
			var out []assignment
			for i := lo; i < hi; i++ {
				ps := &prep[i]
				tm.binShape(ps, func(tile uint32) {
					out = append(out, assignment{tile: tile, shape: ps.index})
				})
			}
			results[c] = out
		}
	}

	pool.ExecuteAll(jobs)

	for _, chunk := range results {
		for _, a := range chunk {
			tm.tiles[a.tile].Shapes = append(tm.tiles[a.tile].Shapes, a.shape)
		}
	}
}
