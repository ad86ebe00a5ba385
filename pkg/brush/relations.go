package brush

import "github.com/TrentSterling/runtimecsg/pkg/plane"

// Category is the four-valued classification of a point or polygon
// fragment against a brush (spec.md section 4.4). It forms a lattice
// used by the boolean chain evaluator in pkg/csg, not a strict ordering.
type Category int

const (
	// Outside means the point lies outside at least one of the brush's
	// planes by more than EpsilonInside.
	Outside Category = iota
	// Inside means the point lies strictly inside every plane.
	Inside
	// Aligned means the point lies on one of the brush's planes and the
	// fragment's normal agrees with that plane's normal.
	Aligned
	// ReverseAligned means the point lies on one of the brush's planes
	// and the fragment's normal opposes that plane's normal.
	ReverseAligned
)

func (c Category) String() string {
	switch c {
	case Inside:
		return "inside"
	case Aligned:
		return "aligned"
	case ReverseAligned:
		return "reverse-aligned"
	default:
		return "outside"
	}
}

// CategorizePoint classifies pt against b: Outside if pt lies outside any
// plane by more than EpsilonInside, Inside if it lies strictly inside
// every plane, or (when it lies within EpsilonInside of exactly the
// planes it doesn't otherwise violate) Aligned/ReverseAligned according
// to how normal compares to the coincident plane's normal.
func (b *Brush) CategorizePoint(pt plane.Vec3, normal plane.Vec3) Category {
	onPlane := -1
	for i, p := range b.Planes {
		d := p.SignedDistance(pt)
		if d > EpsilonInside {
			return Outside
		}
		if d >= -EpsilonInside && onPlane == -1 {
			onPlane = i
		}
	}
	if onPlane == -1 {
		return Inside
	}
	if b.Planes[onPlane].Normal().Dot(normal) > 0 {
		return Aligned
	}
	return ReverseAligned
}

// CategorizePolygon classifies a fragment's supporting position (its
// centroid) and normal against b. Categorizing by centroid rather than
// per-vertex avoids spurious Aligned/ReverseAligned results from a
// single vertex that happens to touch a face of b (spec.md section 4.4).
func (b *Brush) CategorizePolygon(centroid, normal plane.Vec3) Category {
	return b.CategorizePoint(centroid, normal)
}

// Overlap reports whether a and b share any volume, per spec.md section
// 4.4's two-directional separating-plane test: a and b do not overlap iff
// some face plane of a has every vertex of b on or outside it, or some
// face plane of b has every vertex of a on or outside it. Checking only
// vertex containment (as opposed to this separating test) has false
// negatives for convex brushes that interpenetrate without either one's
// vertices landing inside the other, e.g. two long perpendicular beams
// crossing in a plus shape. pkg/csg only uses Overlap to skip a brush
// pairing entirely, never to decide fragment membership, so a false
// positive costs work, not correctness — but a false negative silently
// drops a real intersection.
func Overlap(a, b *Brush) bool {
	if len(a.Faces) == 0 || len(b.Faces) == 0 {
		return false
	}
	if hasSeparatingPlane(a, b) || hasSeparatingPlane(b, a) {
		return false
	}
	return true
}

// hasSeparatingPlane reports whether some face plane of host has every
// vertex of other on or outside it (signed distance >= -EpsilonInside),
// which places other entirely outside host's volume along that plane.
// It reads other.Vertices — the full accepted-vertex set from section
// 4.3's enumeration — rather than other.Faces, since a vertex can be
// accepted there yet absent from Faces (deduped against a different
// face's bucket, or dropped along with a degenerate face) without
// ceasing to be part of other's actual boundary.
func hasSeparatingPlane(host, other *Brush) bool {
	for _, p := range host.Planes {
		separates := true
		for _, pt := range other.Vertices {
			if p.SignedDistance(pt) < -EpsilonInside {
				separates = false
				break
			}
		}
		if separates {
			return true
		}
	}
	return false
}
