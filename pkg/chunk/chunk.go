// Package chunk implements the spatial chunking collaborator: it groups
// input brushes by grid cell, runs the CSG core once per populated cell,
// and clips each cell's output fragments to that cell's axis-aligned box
// (spec.md section 6).
package chunk

import (
	"github.com/TrentSterling/runtimecsg/pkg/brush"
	"github.com/TrentSterling/runtimecsg/pkg/csg"
	"github.com/TrentSterling/runtimecsg/pkg/plane"
	"github.com/TrentSterling/runtimecsg/pkg/polygon"
)

// Key identifies a chunk cell by integer grid coordinates.
type Key struct{ X, Y, Z int }

// aabb is a brush's bounding box, used only to decide which cells it
// touches; overlap correctness within a cell is still decided by the
// core's own plane arithmetic.
type aabb struct{ min, max plane.Vec3 }

func boundsOf(b *brush.Brush) (aabb, bool) {
	var box aabb
	first := true
	// Uses b.Vertices (the full section 4.3 accepted-vertex set) rather
	// than walking b.Faces, since a vertex can be accepted there yet
	// absent from Faces without ceasing to be part of the brush's actual
	// extent.
	for _, pt := range b.Vertices {
		if first {
			box = aabb{min: pt, max: pt}
			first = false
			continue
		}
		box.min = plane.Vec3{X: min(box.min.X, pt.X), Y: min(box.min.Y, pt.Y), Z: min(box.min.Z, pt.Z)}
		box.max = plane.Vec3{X: max(box.max.X, pt.X), Y: max(box.max.Y, pt.Y), Z: max(box.max.Z, pt.Z)}
	}
	return box, !first
}

func cellIndex(v float64, cellSize float64) int {
	c := v / cellSize
	if c < 0 {
		return int(c) - 1
	}
	return int(c)
}

func cellsTouched(box aabb, cellSize float64) []Key {
	minX, maxX := cellIndex(box.min.X, cellSize), cellIndex(box.max.X, cellSize)
	minY, maxY := cellIndex(box.min.Y, cellSize), cellIndex(box.max.Y, cellSize)
	minZ, maxZ := cellIndex(box.min.Z, cellSize), cellIndex(box.max.Z, cellSize)

	var keys []Key
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				keys = append(keys, Key{X: x, Y: y, Z: z})
			}
		}
	}
	return keys
}

func cellBounds(k Key, cellSize float64) (min, max plane.Vec3) {
	min = plane.Vec3{X: float64(k.X) * cellSize, Y: float64(k.Y) * cellSize, Z: float64(k.Z) * cellSize}
	max = plane.Vec3{X: min.X + cellSize, Y: min.Y + cellSize, Z: min.Z + cellSize}
	return min, max
}

// Process buckets brushes into cellSize-sided cubic cells (a brush
// straddling multiple cells is evaluated in each one it touches), runs
// csg.Process independently per populated cell, and clips each cell's
// output fragments to that cell's box so no fragment crosses a chunk
// boundary.
func Process(brushes []*brush.Brush, cellSize float64) map[Key][]*polygon.Polygon {
	buckets := make(map[Key][]*brush.Brush)
	for _, b := range brushes {
		box, ok := boundsOf(b)
		if !ok {
			continue
		}
		for _, k := range cellsTouched(box, cellSize) {
			buckets[k] = append(buckets[k], b)
		}
	}

	out := make(map[Key][]*polygon.Polygon, len(buckets))
	for k, cellBrushes := range buckets {
		result := csg.Process(cellBrushes)
		min, max := cellBounds(k, cellSize)
		var clipped []*polygon.Polygon
		for _, p := range result {
			clipped = append(clipped, polygon.ClipToBox(p, min, max, plane.Epsilon)...)
		}
		if len(clipped) > 0 {
			out[k] = clipped
		}
	}
	return out
}
