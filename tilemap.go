package tileindex

import "github.com/chipviz/tileindex/geom"

// Tile is one cell of the uniform grid partition. Extents are in grid
// space (the shifted, non-negative coordinate space); Shapes holds the
// indices of every primitive whose geometry overlaps the tile, in
// ascending order. A primitive index appears at most once per tile but may
// appear in many tiles.
type Tile struct {
	// IX, IY are the tile's grid coordinates.
	IX, IY uint32

	// Extents covers [IX*T, (IX+1)*T) x [IY*T, (IY+1)*T) in grid space.
	Extents geom.BoundingBox

	// Shapes lists the indices of overlapping primitives.
	Shapes []int
}

// TileMap is the dense uniform grid produced by Build: every cell in
// [0, TilesX) x [0, TilesY) exists even if empty. Tiles are stored in a
// flat row-major slice, index = iy*tilesX + ix.
//
// A TileMap is immutable once built and safe for concurrent reads.
// Consumers translating tile coordinates back to the original primitive
// coordinate space must apply the inverse of Shift.
type TileMap struct {
	tiles    []Tile
	tilesX   uint32
	tilesY   uint32
	tileSize int32
	shift    geom.Point
	skipped  []*InvalidShapeError
}

// newTileMap allocates the dense grid covering the aggregate bounding box.
//
// The shift moves the aggregate minimum into the non-negative quadrant:
// negative axes shift by -min, axes already non-negative keep a zero
// shift. Tiles always start at the grid-space origin, so the tile counts
// are taken over the shifted maximum corner, not the box width alone.
func newTileMap(agg geom.BoundingBox, tileSize int32) *TileMap {
	var shift geom.Point
	if agg.Min().X < 0 {
		shift.X = -agg.Min().X
	}
	if agg.Min().Y < 0 {
		shift.Y = -agg.Min().Y
	}

	maxX := int64(agg.Max().X) + int64(shift.X)
	maxY := int64(agg.Max().Y) + int64(shift.Y)
	t := int64(tileSize)

	tilesX := uint32((maxX + t - 1) / t)
	tilesY := uint32((maxY + t - 1) / t)

	tm := &TileMap{
		tiles:    make([]Tile, int(tilesX)*int(tilesY)),
		tilesX:   tilesX,
		tilesY:   tilesY,
		tileSize: tileSize,
		shift:    shift,
	}

	for iy := uint32(0); iy < tilesY; iy++ {
		for ix := uint32(0); ix < tilesX; ix++ {
			tm.tiles[iy*tilesX+ix] = Tile{
				IX: ix,
				IY: iy,
				Extents: mustBox(
					geom.Point{X: int32(ix) * tileSize, Y: int32(iy) * tileSize},
					geom.Point{X: (int32(ix) + 1) * tileSize, Y: (int32(iy) + 1) * tileSize},
				),
			}
		}
	}
	return tm
}

// mustBox builds a box whose validity is guaranteed by construction
// (tile extents always span a positive tile size).
func mustBox(a, b geom.Point) geom.BoundingBox {
	bb, err := geom.NewBoundingBox(a, b)
	if err != nil {
		panic(err)
	}
	return bb
}

// TileAt returns the tile at grid coordinates (ix, iy), or nil when the
// coordinates are outside the grid.
func (tm *TileMap) TileAt(ix, iy uint32) *Tile {
	if ix >= tm.tilesX || iy >= tm.tilesY {
		return nil
	}
	return &tm.tiles[iy*tm.tilesX+ix]
}

// TilesX returns the number of tiles horizontally.
func (tm *TileMap) TilesX() uint32 { return tm.tilesX }

// TilesY returns the number of tiles vertically.
func (tm *TileMap) TilesY() uint32 { return tm.tilesY }

// TileSize returns the tile edge length in coordinate units.
func (tm *TileMap) TileSize() int { return int(tm.tileSize) }

// TileCount returns the total number of tiles in the grid.
func (tm *TileMap) TileCount() int { return len(tm.tiles) }

// Shift returns the translation that was applied to move the aggregate
// bounding box into the non-negative quadrant. Grid-space coordinates
// minus Shift gives world-space coordinates.
func (tm *TileMap) Shift() geom.Point { return tm.shift }

// Skipped returns the primitives that failed validation and were skipped,
// in input order. Always empty unless WithSkipInvalid was used.
func (tm *TileMap) Skipped() []*InvalidShapeError { return tm.skipped }

// ForEach calls fn for every tile in row-major order (left to right,
// bottom row first).
func (tm *TileMap) ForEach(fn func(t *Tile)) {
	for i := range tm.tiles {
		fn(&tm.tiles[i])
	}
}

// unitsX returns the grid width in coordinate units.
func (tm *TileMap) unitsX() int64 { return int64(tm.tilesX) * int64(tm.tileSize) }

// unitsY returns the grid height in coordinate units.
func (tm *TileMap) unitsY() int64 { return int64(tm.tilesY) * int64(tm.tileSize) }
