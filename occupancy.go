package tileindex

// OccupancySummary aggregates per-tile shape counts for a built TileMap.
// Min, Max and Avg are taken over occupied tiles only; a grid with no
// occupied tiles reports zeroes throughout.
type OccupancySummary struct {
	// TilesX, TilesY are the grid dimensions.
	TilesX, TilesY uint32

	// TotalTiles is TilesX * TilesY.
	TotalTiles int

	// OccupiedTiles counts tiles with at least one shape.
	OccupiedTiles int

	// MinShapes is the smallest shape count among occupied tiles.
	MinShapes int

	// MaxShapes is the largest shape count among occupied tiles.
	MaxShapes int

	// AvgShapes is the mean shape count over occupied tiles.
	AvgShapes float64

	// TotalAssignments sums the shape counts over all tiles. A primitive
	// assigned to several tiles counts once per tile.
	TotalAssignments int

	// OccupancyRatio is OccupiedTiles / TotalTiles.
	OccupancyRatio float64
}

// Occupancy computes summary statistics over the grid in a single pass.
func (tm *TileMap) Occupancy() OccupancySummary {
	s := OccupancySummary{
		TilesX:     tm.tilesX,
		TilesY:     tm.tilesY,
		TotalTiles: len(tm.tiles),
	}

	for i := range tm.tiles {
		n := len(tm.tiles[i].Shapes)
		if n == 0 {
			continue
		}
		if s.OccupiedTiles == 0 || n < s.MinShapes {
			s.MinShapes = n
		}
		if n > s.MaxShapes {
			s.MaxShapes = n
		}
		s.OccupiedTiles++
		s.TotalAssignments += n
	}

	if s.OccupiedTiles > 0 {
		s.AvgShapes = float64(s.TotalAssignments) / float64(s.OccupiedTiles)
	}
	if s.TotalTiles > 0 {
		s.OccupancyRatio = float64(s.OccupiedTiles) / float64(s.TotalTiles)
	}
	return s
}

// Counts returns the dense row-major matrix of per-tile shape counts, one
// row per iy. The matrix is freshly allocated and suitable for external
// export (delimited text tables, heatmaps).
func (tm *TileMap) Counts() [][]int {
	rows := make([][]int, tm.tilesY)
	for iy := uint32(0); iy < tm.tilesY; iy++ {
		row := make([]int, tm.tilesX)
		for ix := uint32(0); ix < tm.tilesX; ix++ {
			row[ix] = len(tm.tiles[iy*tm.tilesX+ix].Shapes)
		}
		rows[iy] = row
	}
	return rows
}
