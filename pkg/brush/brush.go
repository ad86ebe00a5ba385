// Package brush constructs a convex polytope's face polygons from its
// half-space plane set (spec.md section 4.3) and classifies brushes and
// polygons against each other (spec.md section 4.4).
package brush

import (
	"math"
	"sort"

	"github.com/TrentSterling/runtimecsg/pkg/plane"
	"github.com/TrentSterling/runtimecsg/pkg/polygon"
)

// Tolerances tuned for world scales in the 1e-2..1e3 range (spec.md
// section 9); implementations at other scales should rescale these.
const (
	// EpsilonInside is the acceptance tolerance for "inside every plane
	// of the brush" during vertex enumeration. Deliberately looser than
	// plane.Epsilon: polytope vertices on shared faces must be accepted.
	EpsilonInside = 1e-4
	// EpsilonDeterminant is the minimum |det| for a triple of planes to
	// be considered solvable for an intersection point.
	EpsilonDeterminant = 1e-10
	// dedupSqTolerance is the squared distance below which two candidate
	// vertices on the same face are treated as the same point.
	dedupSqTolerance = 1e-8
)

// Op is the CSG boolean operation a brush contributes to the chain,
// encoded as a closed tagged union rather than via inheritance.
type Op int

const (
	Additive Op = iota
	Subtractive
	Intersect
)

func (o Op) String() string {
	switch o {
	case Additive:
		return "additive"
	case Subtractive:
		return "subtractive"
	case Intersect:
		return "intersect"
	default:
		return "unknown"
	}
}

// Brush is a convex polyhedron: the intersection of >=4 oriented planes.
type Brush struct {
	Planes []plane.Plane
	Faces  []*polygon.Polygon
	// Vertices is the full accepted-vertex set from triple-plane-intersection
	// enumeration (spec.md section 4.3), deduplicated but independent of
	// which of those vertices go on to survive into Faces. A vertex can be
	// accepted here yet dropped from Faces — by per-face dedup against a
	// different bucket, or because buildFace's owning face turned out
	// degenerate — so callers that need every accepted vertex (the
	// separating-plane test in Overlap) read this field rather than
	// walking Faces.
	Vertices []plane.Vec3
	Op       Op
	Order    int
	Material int
}

// worldUp and worldRight are the reference axes used to build a tangent
// frame on each face plane for winding-order sorting.
var (
	worldUp    = plane.Vec3{Y: 1}
	worldRight = plane.Vec3{X: 1}
)

// Build constructs a Brush's face polygons from its plane set via
// three-plane-intersection vertex enumeration, inside-test filtering,
// centroid-based winding sort, and degeneracy rejection (spec.md section
// 4.3). Planes with fewer than 3 unique accepted vertices contribute no
// face. Brushes with fewer than 4 planes still enumerate (yielding no
// faces, since spec.md section 7 says under-sized input is dropped by
// callers, not rejected here with an error).
func Build(planes []plane.Plane, op Op, order int, material int) *Brush {
	b := &Brush{Planes: planes, Op: op, Order: order, Material: material}
	if len(planes) < 3 {
		return b
	}

	buckets := make([][]plane.Vec3, len(planes))
	var accepted []plane.Vec3

	n := len(planes)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				pt, ok := intersectThreePlanes(planes[i], planes[j], planes[k])
				if !ok {
					continue
				}
				if !acceptedByAll(pt, planes) {
					continue
				}
				buckets[i] = append(buckets[i], pt)
				buckets[j] = append(buckets[j], pt)
				buckets[k] = append(buckets[k], pt)
				accepted = append(accepted, pt)
			}
		}
	}
	b.Vertices = dedup(accepted)

	for idx, bucket := range buckets {
		pts := dedup(bucket)
		if len(pts) < 3 {
			continue
		}
		ordered := sortWinding(pts, planes[idx].Normal())
		face := buildFace(ordered, planes[idx], material)
		if face != nil && !face.IsDegenerate() {
			b.Faces = append(b.Faces, face)
		}
	}

	return b
}

// intersectThreePlanes solves for the point common to three planes using
// the cross-product formula, in doubles. Returns ok=false for a
// near-singular or non-finite result.
func intersectThreePlanes(a, b, c plane.Plane) (plane.Vec3, bool) {
	n1, n2, n3 := a.Normal(), b.Normal(), c.Normal()
	det := n1.Dot(n2.Cross(n3))
	if math.Abs(det) < EpsilonDeterminant {
		return plane.Vec3{}, false
	}
	term1 := n2.Cross(n3).Scale(-a.D)
	term2 := n3.Cross(n1).Scale(-b.D)
	term3 := n1.Cross(n2).Scale(-c.D)
	pt := term1.Add(term2).Add(term3).Scale(1 / det)
	if !pt.IsFinite() {
		return plane.Vec3{}, false
	}
	return pt, true
}

// acceptedByAll reports whether pt lies within EpsilonInside of the
// interior side of every plane in planes.
func acceptedByAll(pt plane.Vec3, planes []plane.Plane) bool {
	for _, p := range planes {
		if p.SignedDistance(pt) > EpsilonInside {
			return false
		}
	}
	return true
}

// dedup removes near-duplicate points using dedupSqTolerance.
func dedup(pts []plane.Vec3) []plane.Vec3 {
	var out []plane.Vec3
	for _, p := range pts {
		dup := false
		for _, o := range out {
			d := p.Sub(o)
			if d.Dot(d) <= dedupSqTolerance {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// sortWinding orders pts around their centroid on the plane with normal
// n, then reverses the ring if the winding opposes n.
func sortWinding(pts []plane.Vec3, n plane.Vec3) []plane.Vec3 {
	var centroid plane.Vec3
	for _, p := range pts {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Scale(1 / float64(len(pts)))

	up := worldUp
	if math.Abs(n.Y) >= 0.9 {
		up = worldRight
	}
	tangent, ok := n.Cross(up).Normalize()
	if !ok {
		// n parallel to up even after the fallback; pick any perpendicular.
		tangent, _ = n.Cross(plane.Vec3{Z: 1}).Normalize()
	}
	bitangent := n.Cross(tangent)

	type angled struct {
		pt    plane.Vec3
		angle float64
	}
	sorted := make([]angled, len(pts))
	for i, p := range pts {
		d := p.Sub(centroid)
		sorted[i] = angled{pt: p, angle: math.Atan2(d.Dot(bitangent), d.Dot(tangent))}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].angle < sorted[j].angle })

	out := make([]plane.Vec3, len(sorted))
	for i, a := range sorted {
		out[i] = a.pt
	}

	if len(out) >= 3 {
		e1 := out[1].Sub(out[0])
		e2 := out[2].Sub(out[0])
		faceNormal := e1.Cross(e2)
		if faceNormal.Dot(n) < 0 {
			reverse(out)
		}
	}
	return out
}

func reverse(pts []plane.Vec3) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// buildFace constructs a polygon from an ordered ring of points on the
// given supporting plane, with vertex normal equal to the face normal
// and zero UV.
func buildFace(pts []plane.Vec3, p plane.Plane, material int) *polygon.Polygon {
	normal := polygon.FromVec3(p.Normal())
	verts := make([]polygon.Vertex, len(pts))
	for i, pt := range pts {
		verts[i] = polygon.Vertex{Position: polygon.FromVec3(pt), Normal: normal}
	}
	return polygon.New(verts, p, material)
}
