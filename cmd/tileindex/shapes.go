package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chipviz/tileindex/geom"
)

// shapesFile is the JSON input format:
//
//	{
//	  "shapes": [
//	    {"kind": "rect", "p0": [0, 0], "p1": [100, 40], "layer": 1},
//	    {"kind": "polygon", "points": [[0,0], [10,0], [10,10]], "layer": 2},
//	    {"kind": "path", "points": [[0,0], [50,0], [50,50]], "width": 4, "layer": 3}
//	  ]
//	}
//
// Coordinates are integers in layout units. The shape order in the file
// defines the primitive indices used throughout the index.
type shapesFile struct {
	Shapes []shapeRecord `json:"shapes"`
}

type shapeRecord struct {
	Kind   string     `json:"kind"`
	P0     *[2]int32  `json:"p0,omitempty"`
	P1     *[2]int32  `json:"p1,omitempty"`
	Points [][2]int32 `json:"points,omitempty"`
	Width  uint32     `json:"width,omitempty"`
	Layer  uint8      `json:"layer"`
}

// loadShapes reads and decodes a shape file.
func loadShapes(path string) ([]geom.Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file shapesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	shapes := make([]geom.Shape, 0, len(file.Shapes))
	for i, rec := range file.Shapes {
		s, err := rec.toShape()
		if err != nil {
			return nil, fmt.Errorf("%s: shape %d: %w", path, i, err)
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

func (r shapeRecord) toShape() (geom.Shape, error) {
	switch r.Kind {
	case "rect":
		if r.P0 == nil || r.P1 == nil {
			return nil, fmt.Errorf("rect needs p0 and p1")
		}
		return geom.Rect{
			P0:    geom.Point{X: r.P0[0], Y: r.P0[1]},
			P1:    geom.Point{X: r.P1[0], Y: r.P1[1]},
			Layer: r.Layer,
		}, nil

	case "polygon":
		return geom.Polygon{Points: toPoints(r.Points), Layer: r.Layer}, nil

	case "path":
		return geom.Path{Points: toPoints(r.Points), Width: r.Width, Layer: r.Layer}, nil

	default:
		return nil, fmt.Errorf("unknown shape kind %q", r.Kind)
	}
}

func toPoints(coords [][2]int32) []geom.Point {
	pts := make([]geom.Point, len(coords))
	for i, c := range coords {
		pts[i] = geom.Point{X: c[0], Y: c[1]}
	}
	return pts
}
