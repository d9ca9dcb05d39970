package tileindex

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/chipviz/tileindex/geom"
)

// genShapes builds a deterministic mixed batch of rects, triangles and
// L-shaped paths scattered over [0, extent) x [0, extent).
func genShapes(n int, extent int32) []geom.Shape {
	rng := rand.New(rand.NewSource(42))
	shapes := make([]geom.Shape, 0, n)
	for i := 0; i < n; i++ {
		x := rng.Int31n(extent)
		y := rng.Int31n(extent)
		w := rng.Int31n(40) + 1
		h := rng.Int31n(40) + 1
		switch i % 5 {
		case 0, 1, 2:
			shapes = append(shapes, rect(x, y, x+w, y+h))
		case 3:
			shapes = append(shapes, geom.Polygon{Points: []geom.Point{
				{X: x, Y: y}, {X: x + w, Y: y}, {X: x, Y: y + h},
			}})
		default:
			shapes = append(shapes, geom.Path{
				Points: []geom.Point{
					{X: x, Y: y}, {X: x + w + 1, Y: y}, {X: x + w + 1, Y: y + h + 1},
				},
				Width: 2 + 2*rng.Uint32()%4,
			})
		}
	}
	return shapes
}

func TestBuild_SingleTileShape(t *testing.T) {
	shapes := []geom.Shape{
		rect(0, 0, 128, 128), // spans the whole 2x2 grid
		rect(2, 2, 10, 10),   // stays inside tile (0, 0)
	}
	tm, err := Build(shapes, 64)
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}

	if got, want := tm.TileAt(0, 0).Shapes, []int{0, 1}; !slices.Equal(got, want) {
		t.Errorf("tile (0, 0) shapes = %v, want %v", got, want)
	}
	for _, c := range [][2]uint32{{1, 0}, {0, 1}, {1, 1}} {
		if got, want := tm.TileAt(c[0], c[1]).Shapes, []int{0}; !slices.Equal(got, want) {
			t.Errorf("tile (%d, %d) shapes = %v, want %v", c[0], c[1], got, want)
		}
	}
}

func TestBuild_SeamSharedByNeighbors(t *testing.T) {
	shapes := []geom.Shape{
		rect(0, 0, 30, 30),
		rect(0, 0, 10, 5), // max x exactly on the first tile boundary
	}
	tm, err := Build(shapes, 10)
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}

	// Closed-interval overlap: the seam belongs to both neighbors.
	if got := tm.TileAt(0, 0).Shapes; !slices.Contains(got, 1) {
		t.Errorf("tile (0, 0) shapes = %v, want shape 1 present", got)
	}
	if got := tm.TileAt(1, 0).Shapes; !slices.Contains(got, 1) {
		t.Errorf("tile (1, 0) shapes = %v, want shape 1 present", got)
	}
	if got := tm.TileAt(2, 0).Shapes; slices.Contains(got, 1) {
		t.Errorf("tile (2, 0) shapes = %v, shape 1 must not reach it", got)
	}
}

func TestBuild_PolygonSkipsMissedCandidates(t *testing.T) {
	// The triangle's bounding box covers the full 3x3 grid, but the area
	// beyond the hypotenuse x+y=30 never touches tile (2, 2).
	shapes := []geom.Shape{
		geom.Polygon{Points: []geom.Point{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 0, Y: 30}}},
	}
	tm, err := Build(shapes, 10)
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}

	for iy := uint32(0); iy < 3; iy++ {
		for ix := uint32(0); ix < 3; ix++ {
			got := tm.TileAt(ix, iy).Shapes
			want := !(ix == 2 && iy == 2)
			if (len(got) == 1) != want {
				t.Errorf("tile (%d, %d) shapes = %v, want present=%v", ix, iy, got, want)
			}
		}
	}
}

func TestBuild_PathBinnedByOutline(t *testing.T) {
	// The centerline sits entirely at x=10; the stroked area spans
	// [8, 12] and must land in both tile columns.
	shapes := []geom.Shape{
		geom.Path{Points: []geom.Point{{X: 10, Y: 2}, {X: 10, Y: 8}}, Width: 4},
	}
	tm, err := Build(shapes, 10)
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}

	if got, want := tm.TilesX(), uint32(2); got != want {
		t.Fatalf("TilesX() = %d, want %d", got, want)
	}
	if got := tm.TileAt(0, 0).Shapes; !slices.Contains(got, 0) {
		t.Errorf("tile (0, 0) shapes = %v, want outline present", got)
	}
	if got := tm.TileAt(1, 0).Shapes; !slices.Contains(got, 0) {
		t.Errorf("tile (1, 0) shapes = %v, want outline present", got)
	}
}

func TestBuild_BoundaryClampedIntoGrid(t *testing.T) {
	// The aggregate maximum lands exactly on the grid edge; without
	// clamping the candidate range would index one tile past the end.
	shapes := []geom.Shape{rect(0, 0, 100, 100)}
	tm, err := Build(shapes, 10)
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}

	if got, want := tm.TileCount(), 100; got != want {
		t.Fatalf("TileCount() = %d, want %d", got, want)
	}
	tm.ForEach(func(tile *Tile) {
		if !slices.Contains(tile.Shapes, 0) {
			t.Errorf("tile (%d, %d) missing the covering rect", tile.IX, tile.IY)
		}
	})
}

func TestBuild_RowSpanningShape(t *testing.T) {
	shapes := []geom.Shape{rect(0, 2, 48, 8)}
	tm, err := Build(shapes, 10)
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}

	if got, want := tm.TilesX(), uint32(5); got != want {
		t.Fatalf("TilesX() = %d, want %d", got, want)
	}
	if got, want := tm.TilesY(), uint32(1); got != want {
		t.Fatalf("TilesY() = %d, want %d", got, want)
	}
	for ix := uint32(0); ix < 5; ix++ {
		if got := tm.TileAt(ix, 0).Shapes; !slices.Contains(got, 0) {
			t.Errorf("tile (%d, 0) shapes = %v, want the spanning rect", ix, got)
		}
	}
}

func TestBuild_Idempotent(t *testing.T) {
	shapes := genShapes(1000, 600)

	first, err := Build(shapes, 32)
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	second, err := Build(shapes, 32)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	first.ForEach(func(tile *Tile) {
		got := second.TileAt(tile.IX, tile.IY).Shapes
		if !slices.Equal(got, tile.Shapes) {
			t.Errorf("tile (%d, %d): rebuild shapes %v, want %v",
				tile.IX, tile.IY, got, tile.Shapes)
		}
	})
}

func TestBuild_Deterministic(t *testing.T) {
	shapes := genShapes(6000, 2000)

	seq, err := Build(shapes, 64, WithWorkers(1))
	if err != nil {
		t.Fatalf("sequential Build(): %v", err)
	}

	for _, workers := range []int{2, 4, 8} {
		par, err := Build(shapes, 64, WithWorkers(workers))
		if err != nil {
			t.Fatalf("parallel Build(workers=%d): %v", workers, err)
		}
		if par.TileCount() != seq.TileCount() {
			t.Fatalf("workers=%d: tile count %d, want %d", workers, par.TileCount(), seq.TileCount())
		}
		seq.ForEach(func(tile *Tile) {
			got := par.TileAt(tile.IX, tile.IY).Shapes
			if !slices.Equal(got, tile.Shapes) {
				t.Errorf("workers=%d tile (%d, %d): shapes %v, want %v",
					workers, tile.IX, tile.IY, got, tile.Shapes)
			}
		})
	}
}

func TestBuild_TileListsAscendingUnique(t *testing.T) {
	shapes := genShapes(5000, 1500)
	tm, err := Build(shapes, 32)
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}

	tm.ForEach(func(tile *Tile) {
		for i := 1; i < len(tile.Shapes); i++ {
			if tile.Shapes[i] <= tile.Shapes[i-1] {
				t.Errorf("tile (%d, %d) list not strictly ascending at %d: %v",
					tile.IX, tile.IY, i, tile.Shapes)
				return
			}
		}
	})
}

// shapeOverlapsTile independently answers whether a shape overlaps a tile,
// without the candidate-range narrowing the binner uses.
func shapeOverlapsTile(t *testing.T, s geom.Shape, shift geom.Point, ext geom.BoundingBox) bool {
	t.Helper()
	var ring []geom.Point
	switch v := s.(type) {
	case geom.Rect:
		bb, err := v.Bounds()
		if err != nil {
			t.Fatalf("Bounds(): %v", err)
		}
		return bb.Shift(shift).Intersects(ext)
	case geom.Polygon:
		ring = v.Points
	case geom.Path:
		outline, err := v.Outline()
		if err != nil {
			t.Fatalf("Outline(): %v", err)
		}
		ring = outline.Points
	default:
		t.Fatalf("unexpected shape type %T", s)
	}

	shifted := make([]geom.Point, len(ring))
	for i, pt := range ring {
		shifted[i] = pt.Shift(shift)
	}
	return geom.Polygon{Points: shifted}.IntersectsBox(ext)
}

func TestBuild_MatchesBruteForce(t *testing.T) {
	shapes := genShapes(300, 200)
	tm, err := Build(shapes, 16)
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}

	tm.ForEach(func(tile *Tile) {
		for i, s := range shapes {
			want := shapeOverlapsTile(t, s, tm.Shift(), tile.Extents)
			got := slices.Contains(tile.Shapes, i)
			if got != want {
				t.Errorf("tile (%d, %d) shape %d: binned=%v, brute force=%v",
					tile.IX, tile.IY, i, got, want)
			}
		}
	})
}

func TestBuild_LargeBatch(t *testing.T) {
	if testing.Short() {
		t.Skip("large batch test skipped in short mode")
	}
	shapes := genShapes(200_000, 1<<15)

	first, err := Build(shapes, 64)
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	second, err := Build(shapes, 64)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	a, b := first.Occupancy(), second.Occupancy()
	if a != b {
		t.Errorf("occupancy differs between identical builds:\n%+v\n%+v", a, b)
	}
	if a.TotalAssignments < len(shapes) {
		t.Errorf("TotalAssignments = %d, want at least one tile per shape (%d)",
			a.TotalAssignments, len(shapes))
	}
}

func BenchmarkBuild(b *testing.B) {
	shapes := genShapes(100_000, 1<<15)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(shapes, 64, WithWorkers(1)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildParallel(b *testing.B) {
	shapes := genShapes(100_000, 1<<15)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(shapes, 64); err != nil {
			b.Fatal(err)
		}
	}
}
