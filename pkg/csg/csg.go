// Package csg implements the chain evaluator: the top-level driver that
// splits each brush's faces against overlapping brushes' planes,
// classifies the resulting fragments, resolves coplanar conflicts, and
// evaluates the boolean chain on both sides of each fragment (spec.md
// section 4.5). Process is a pure function: it reads only its input and
// returns a complete result with no hidden state.
package csg

import (
	"log/slog"

	"github.com/TrentSterling/runtimecsg/pkg/brush"
	"github.com/TrentSterling/runtimecsg/pkg/plane"
	"github.com/TrentSterling/runtimecsg/pkg/polygon"
)

// Stats are optional diagnostic counters. They are not part of the
// evaluation contract (spec.md section 7); Process ignores them, and
// ProcessWithStats fills them in for callers that want visibility into
// how much work a chain evaluation discarded.
type Stats struct {
	FragmentsProduced  int
	FragmentsDiscarded int
	CoplanarSuppressed int
	DegenerateRejected int
}

// Process evaluates the boolean chain over brushes, already sorted by
// chain order, and returns the flat list of output polygons.
func Process(brushes []*brush.Brush) []*polygon.Polygon {
	out, _ := process(brushes, nil)
	return out
}

// ProcessWithStats behaves like Process but also returns diagnostic
// counters, logging a debug-level summary via logger if non-nil.
func ProcessWithStats(brushes []*brush.Brush, logger *slog.Logger) ([]*polygon.Polygon, Stats) {
	out, stats := process(brushes, logger)
	return out, stats
}

func process(brushes []*brush.Brush, logger *slog.Logger) ([]*polygon.Polygon, Stats) {
	var stats Stats

	// Step 1: short circuits.
	if len(brushes) == 0 {
		return nil, stats
	}
	if len(brushes) == 1 {
		if brushes[0].Op != brush.Additive {
			return nil, stats
		}
		out := make([]*polygon.Polygon, 0, len(brushes[0].Faces))
		for _, f := range brushes[0].Faces {
			out = append(out, f)
			stats.FragmentsProduced++
		}
		return out, stats
	}

	n := len(brushes)

	// Step 2: overlap matrix. Optimization only; skipping a pair whose
	// brushes cannot overlap avoids needless splitting-plane growth.
	overlap := make([][]bool, n)
	for i := range overlap {
		overlap[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ov := brush.Overlap(brushes[i], brushes[j])
			overlap[i][j] = ov
			overlap[j][i] = ov
		}
	}

	var out []*polygon.Polygon

	// Step 3: per-owner loop.
	for o, owner := range brushes {
		var splittingPlanes []plane.Plane
		for j, other := range brushes {
			if j == o || !overlap[o][j] {
				continue
			}
			splittingPlanes = append(splittingPlanes, other.Planes...)
		}

		for _, face := range owner.Faces {
			fragments := polygon.ClipToPlanes(face, splittingPlanes, plane.Epsilon)
			for _, g := range fragments {
				if g == nil || g.IsDegenerate() {
					stats.DegenerateRejected++
					continue
				}
				stats.FragmentsProduced++

				categories := make([]brush.Category, n)
				for j, other := range brushes {
					if j == o {
						continue
					}
					if !overlap[o][j] {
						categories[j] = brush.Outside
						continue
					}
					c := other.CategorizePolygon(g.Centroid(), g.Plane.Normal())
					categories[j] = c
				}

				// Coplanar tiebreaker (step e): a later brush's own
				// faces claim any surface coplanar with one of its
				// planes.
				suppressed := false
				for j := o + 1; j < n; j++ {
					if categories[j] == brush.Aligned || categories[j] == brush.ReverseAligned {
						suppressed = true
						break
					}
				}
				if suppressed {
					stats.CoplanarSuppressed++
					stats.FragmentsDiscarded++
					continue
				}

				frontSolid, backSolid := evaluateChain(brushes, o, categories)

				switch {
				case !frontSolid && backSolid:
					out = append(out, g)
				case frontSolid && !backSolid:
					out = append(out, g.Flip())
				default:
					stats.FragmentsDiscarded++
				}
			}
		}
	}

	if logger != nil {
		logger.Debug("csg.Process complete",
			"brushes", n,
			"fragmentsProduced", stats.FragmentsProduced,
			"fragmentsDiscarded", stats.FragmentsDiscarded,
			"coplanarSuppressed", stats.CoplanarSuppressed,
			"degenerateRejected", stats.DegenerateRejected,
			"outputPolygons", len(out),
		)
	}

	return out, stats
}

// evaluateChain builds the front/back boolean vectors for fragment g
// (owned by brush index o, pre-classified against every other brush in
// categories) and folds each through its brush's operation (spec.md
// section 4.5 steps f-g).
func evaluateChain(brushes []*brush.Brush, o int, categories []brush.Category) (frontSolid, backSolid bool) {
	frontSolid, backSolid = false, false
	for k, b := range brushes {
		var frontInside, backInside bool
		if k == o {
			frontInside, backInside = false, true
		} else {
			switch categories[k] {
			case brush.Inside:
				frontInside, backInside = true, true
			case brush.Outside:
				frontInside, backInside = false, false
			case brush.Aligned:
				frontInside, backInside = false, true
			case brush.ReverseAligned:
				frontInside, backInside = true, false
			}
		}
		switch b.Op {
		case brush.Additive:
			frontSolid = frontSolid || frontInside
			backSolid = backSolid || backInside
		case brush.Subtractive:
			frontSolid = frontSolid && !frontInside
			backSolid = backSolid && !backInside
		case brush.Intersect:
			frontSolid = frontSolid && frontInside
			backSolid = backSolid && backInside
		}
	}
	return frontSolid, backSolid
}
