// Package heatmap renders a tile-occupancy count matrix to an image, for
// quick visual inspection of how evenly a batch of primitives spreads
// over the tile grid.
package heatmap

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/draw"
)

// Render converts a row-major count matrix (one row per tile row, row 0
// at the bottom) into an RGBA image with one pixel per tile. Intensity is
// log-scaled so sparse grids with a few hot tiles remain readable; empty
// tiles are black. Returns nil for an empty matrix.
func Render(counts [][]int) *image.RGBA {
	h := len(counts)
	if h == 0 {
		return nil
	}
	w := len(counts[0])
	if w == 0 {
		return nil
	}

	maxCount := 0
	for _, row := range counts {
		for _, c := range row {
			if c > maxCount {
				maxCount = c
			}
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for iy, row := range counts {
		// Row 0 is the bottom tile row; image y grows downward.
		py := h - 1 - iy
		for ix, c := range row {
			img.SetRGBA(ix, py, ramp(c, maxCount))
		}
	}
	return img
}

// RenderScaled renders the matrix with each tile drawn as a cell x cell
// pixel block, using nearest-neighbor scaling so cell boundaries stay
// crisp. A cell of 1 or less is equivalent to Render.
func RenderScaled(counts [][]int, cell int) *image.RGBA {
	base := Render(counts)
	if base == nil || cell <= 1 {
		return base
	}

	b := base.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, b.Dx()*cell, b.Dy()*cell))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), base, b, draw.Src, nil)
	return scaled
}

// ramp maps a count to a cold-to-hot color, log-scaled against the
// maximum count in the matrix.
func ramp(count, maxCount int) color.RGBA {
	if count <= 0 {
		return color.RGBA{A: 0xff}
	}
	t := 1.0
	if maxCount > 1 {
		t = math.Log1p(float64(count)) / math.Log1p(float64(maxCount))
	}
	// Dark blue through magenta to yellow.
	r := uint8(math.Round(255 * t))
	g := uint8(math.Round(255 * t * t))
	b := uint8(math.Round(128 + 127*(1-t)))
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// SavePNG writes the image to a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, img)
}
