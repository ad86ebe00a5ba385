package polygon

import (
	"github.com/TrentSterling/runtimecsg/pkg/plane"
)

// Split classifies q against p and returns up to four fragments:
// front, back, coplanarFront (q lies on p, normals agree), and
// coplanarBack (q lies on p, normals oppose). Exactly one of the four
// return slots is non-nil in the non-spanning cases; in the spanning
// case front and back are both non-nil and the coplanar slots are nil.
// Output polygons inherit q's supporting plane and material tag. Any
// output with fewer than three vertices is discarded (nil).
func Split(q *Polygon, p plane.Plane, eps float64) (front, back, coplanarFront, coplanarBack *Polygon) {
	positions := make([]plane.Vec3, len(q.Vertices))
	for i, v := range q.Vertices {
		positions[i] = v.Position.ToVec3()
	}

	switch p.ClassifyPolygon(positions, eps) {
	case plane.Front:
		return q, nil, nil, nil
	case plane.Back:
		return nil, q, nil, nil
	case plane.OnPlane:
		if q.Plane.Normal().Dot(p.Normal()) > 0 {
			return nil, nil, q, nil
		}
		return nil, nil, nil, q
	default: // plane.Spanning
		f, b := splitSpanning(q, p, eps)
		return f, b, nil, nil
	}
}

// splitSpanning walks q's ring, classifying each directed edge against
// p, and builds the front and back vertex lists per spec.md section 4.2.
func splitSpanning(q *Polygon, p plane.Plane, eps float64) (front, back *Polygon) {
	n := len(q.Vertices)
	var frontVerts, backVerts []Vertex

	for i := 0; i < n; i++ {
		vi := q.Vertices[i]
		vj := q.Vertices[(i+1)%n]
		di := p.SignedDistance(vi.Position.ToVec3())
		dj := p.SignedDistance(vj.Position.ToVec3())
		sideI := classify(di, eps)
		sideJ := classify(dj, eps)

		if sideI != plane.Back {
			frontVerts = append(frontVerts, vi)
		}
		if sideI != plane.Front {
			backVerts = append(backVerts, vi)
		}

		if sideI != plane.OnPlane && sideJ != plane.OnPlane && signOf(di) != signOf(dj) {
			t := di / (di - dj)
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
			nv := vi.Lerp(vj, t)
			frontVerts = append(frontVerts, nv)
			backVerts = append(backVerts, nv)
		}
	}

	front = buildFragment(frontVerts, q)
	back = buildFragment(backVerts, q)
	return front, back
}

func classify(d, eps float64) plane.Side {
	switch {
	case d > eps:
		return plane.Front
	case d < -eps:
		return plane.Back
	default:
		return plane.OnPlane
	}
}

func signOf(d float64) int {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return 0
	}
}

func buildFragment(verts []Vertex, source *Polygon) *Polygon {
	if len(verts) < 3 {
		return nil
	}
	return &Polygon{Vertices: verts, Plane: source.Plane, Material: source.Material}
}

// ClipToPlanes iteratively splits q against every plane in planes,
// keeping every front/back/coplanar fragment produced at each step and
// carrying the surviving set forward to the next plane. This is the
// general form of the per-owner splitting loop in spec.md section 4.5
// step 3c, which pkg/csg calls for every owner face.
func ClipToPlanes(q *Polygon, planes []plane.Plane, eps float64) []*Polygon {
	frontier := []*Polygon{q}
	for _, p := range planes {
		var next []*Polygon
		for _, g := range frontier {
			f, b, cf, cb := Split(g, p, eps)
			for _, r := range [...]*Polygon{f, b, cf, cb} {
				if r != nil {
					next = append(next, r)
				}
			}
		}
		frontier = next
	}
	return frontier
}

// ClipToBox clips q to the axis-aligned box [min,max] using six inward
// planes, one per face. At each plane it keeps the front (inside) part
// and any part lying on the plane, discards the part behind it, and
// finally discards degenerate results.
func ClipToBox(q *Polygon, min, max plane.Vec3, eps float64) []*Polygon {
	planes := []plane.Plane{
		plane.New(plane.Vec3{X: 1}, plane.Vec3{X: min.X}),
		plane.New(plane.Vec3{X: -1}, plane.Vec3{X: max.X}),
		plane.New(plane.Vec3{Y: 1}, plane.Vec3{Y: min.Y}),
		plane.New(plane.Vec3{Y: -1}, plane.Vec3{Y: max.Y}),
		plane.New(plane.Vec3{Z: 1}, plane.Vec3{Z: min.Z}),
		plane.New(plane.Vec3{Z: -1}, plane.Vec3{Z: max.Z}),
	}
	frags := []*Polygon{q}
	for _, p := range planes {
		var next []*Polygon
		for _, g := range frags {
			f, _, cf, cb := Split(g, p, eps)
			for _, r := range [...]*Polygon{f, cf, cb} {
				if r != nil {
					next = append(next, r)
				}
			}
		}
		frags = next
	}
	out := frags[:0]
	for _, g := range frags {
		if g != nil && !g.IsDegenerate() {
			out = append(out, g)
		}
	}
	return out
}
