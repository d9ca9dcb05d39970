// Command tileindex builds a spatial tile index over a batch of 2-D
// layout primitives and reports how the primitives spread over the grid.
//
// Primitives come from a JSON file or from a seeded random generator.
// The tool prints an occupancy summary and can export the per-tile count
// matrix as CSV or as a heatmap PNG.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chipviz/tileindex"
	"github.com/chipviz/tileindex/geom"
	"github.com/chipviz/tileindex/heatmap"
)

func main() {
	var (
		input   = flag.String("input", "", "JSON shape file (see shapesFile for the format)")
		gen     = flag.Int("gen", 0, "generate N random rects instead of reading -input")
		seed    = flag.Int64("seed", 1, "random generator seed for -gen")
		extent  = flag.Int("extent", 1<<16, "coordinate extent for -gen")
		maxSize = flag.Int("maxsize", 256, "maximum rect edge for -gen")
		tile    = flag.Int("tile", 64, "tile edge length in coordinate units")
		workers = flag.Int("workers", 0, "binning workers (0 = GOMAXPROCS, 1 = sequential)")
		skip    = flag.Bool("skip-invalid", false, "skip invalid primitives instead of aborting")
		csvOut  = flag.String("csv", "", "write per-tile counts as CSV")
		pngOut  = flag.String("png", "", "write occupancy heatmap PNG")
		cell    = flag.Int("cell", 4, "heatmap pixels per tile")
		verbose = flag.Bool("v", false, "enable debug logging to stderr")
	)
	flag.Parse()

	if *verbose {
		tileindex.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var (
		shapes []geom.Shape
		err    error
	)
	switch {
	case *gen > 0:
		shapes = generateRects(*gen, *seed, int32(*extent), int32(*maxSize))
	case *input != "":
		shapes, err = loadShapes(*input)
		if err != nil {
			log.Fatalf("Failed to load shapes: %v", err)
		}
	default:
		log.Fatal("Either -input or -gen is required")
	}

	opts := []tileindex.BuildOption{tileindex.WithWorkers(*workers)}
	if *skip {
		opts = append(opts, tileindex.WithSkipInvalid())
	}

	start := time.Now()
	tm, err := tileindex.Build(shapes, *tile, opts...)
	if err != nil {
		log.Fatalf("Failed to build tile index: %v", err)
	}
	elapsed := time.Since(start)

	printSummary(tm, len(shapes), elapsed)

	if *csvOut != "" {
		if err := writeCounts(*csvOut, tm.Counts()); err != nil {
			log.Fatalf("Failed to write CSV: %v", err)
		}
		log.Printf("Counts written to %s", *csvOut)
	}
	if *pngOut != "" {
		img := heatmap.RenderScaled(tm.Counts(), *cell)
		if img == nil {
			log.Fatal("Empty grid, nothing to render")
		}
		if err := heatmap.SavePNG(*pngOut, img); err != nil {
			log.Fatalf("Failed to write PNG: %v", err)
		}
		log.Printf("Heatmap written to %s", *pngOut)
	}
}

// generateRects produces n uniformly random rects of bounded size within
// [0, extent) on layers 0-4. The same seed always yields the same batch.
func generateRects(n int, seed int64, extent, maxSize int32) []geom.Shape {
	rng := rand.New(rand.NewSource(seed))
	shapes := make([]geom.Shape, n)
	for i := range n {
		x := rng.Int31n(extent - maxSize)
		y := rng.Int31n(extent - maxSize)
		w := 1 + rng.Int31n(maxSize-1)
		h := 1 + rng.Int31n(maxSize-1)
		shapes[i] = geom.Rect{
			P0:    geom.Point{X: x, Y: y},
			P1:    geom.Point{X: x + w, Y: y + h},
			Layer: uint8(rng.Intn(5)),
		}
	}
	return shapes
}

// Summary styles.
var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Width(22)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#243141")).Padding(0, 1)
)

func printSummary(tm *tileindex.TileMap, total int, elapsed time.Duration) {
	p := message.NewPrinter(language.English)
	occ := tm.Occupancy()

	row := func(label, value string) string {
		return labelStyle.Render(label) + value
	}

	lines := []string{
		titleStyle.Render("tile index"),
		row("shapes", p.Sprintf("%d", total)),
		row("skipped", p.Sprintf("%d", len(tm.Skipped()))),
		row("grid", p.Sprintf("%d x %d (%d tiles)", occ.TilesX, occ.TilesY, occ.TotalTiles)),
		row("tile size", p.Sprintf("%d units", tm.TileSize())),
		row("occupied tiles", p.Sprintf("%d (%.1f%%)", occ.OccupiedTiles, 100*occ.OccupancyRatio)),
		row("assignments", p.Sprintf("%d", occ.TotalAssignments)),
		row("shapes/occupied tile", p.Sprintf("min %d, max %d, avg %.1f", occ.MinShapes, occ.MaxShapes, occ.AvgShapes)),
		row("build time", elapsed.Round(time.Millisecond).String()),
	}

	fmt.Println(boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

// writeCounts exports the count matrix as CSV, one row per tile row.
func writeCounts(path string, counts [][]int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	record := make([]string, 0, 64)
	for _, row := range counts {
		record = record[:0]
		for _, c := range row {
			record = append(record, strconv.Itoa(c))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
