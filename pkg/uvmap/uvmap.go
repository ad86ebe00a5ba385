// Package uvmap implements the UV projection collaborator: for each
// polygon, project vertex positions onto the two world axes most
// orthogonal to the face normal, scaled by a texel density (spec.md
// section 6).
package uvmap

import (
	"math"

	"github.com/TrentSterling/runtimecsg/pkg/polygon"
)

// Project computes a UV coordinate for every vertex of p by dropping the
// axis most aligned with the supporting plane's normal and scaling the
// remaining two by texelsPerUnit. Returns a new polygon carrying those
// UVs; p itself is not mutated.
func Project(p *polygon.Polygon, texelsPerUnit float64) *polygon.Polygon {
	n := p.Plane.Normal()
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)

	verts := make([]polygon.Vertex, len(p.Vertices))
	for i, v := range p.Vertices {
		pos := v.Position.ToVec3()
		var u, w float64
		switch {
		case ax >= ay && ax >= az:
			u, w = pos.Y, pos.Z
		case ay >= ax && ay >= az:
			u, w = pos.X, pos.Z
		default:
			u, w = pos.X, pos.Y
		}
		v.UV = polygon.Vec2{U: float32(u * texelsPerUnit), V: float32(w * texelsPerUnit)}
		verts[i] = v
	}
	return polygon.New(verts, p.Plane, p.Material)
}
