// Package polygon defines the convex ring-of-vertices polygon type and
// the Sutherland-Hodgman-style plane clipper that splits one against a
// plane into up to four convex fragments (spec.md section 4.2).
package polygon

import (
	"math"

	"github.com/TrentSterling/runtimecsg/pkg/plane"
)

// EpsilonArea is the minimum polygon area; polygons below this are
// degenerate and must be discarded before emission.
const EpsilonArea = 1e-6

// Vector3 is a single-precision 3D vector, used for vertex positions and
// normals. Plane and split-parameter arithmetic is still done in doubles
// (see plane.Vec3); only the vertex data itself is float32.
type Vector3 struct {
	X, Y, Z float32
}

// ToVec3 widens v to the double-precision type plane arithmetic uses.
func (v Vector3) ToVec3() plane.Vec3 {
	return plane.Vec3{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// FromVec3 narrows a double-precision vector to Vector3.
func FromVec3(v plane.Vec3) Vector3 {
	return Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// Add returns the component-wise sum.
func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the component-wise difference.
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by s.
func (v Vector3) Scale(s float32) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }

// Negate returns -v.
func (v Vector3) Negate() Vector3 { return Vector3{-v.X, -v.Y, -v.Z} }

// Normalize returns v scaled to unit length, or the zero vector if v is
// too small to normalize reliably.
func (v Vector3) Normalize() Vector3 {
	l := float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
	if l < 1e-12 {
		return Vector3{}
	}
	return v.Scale(1 / l)
}

// lerpVector3 linearly interpolates between a and b at parameter t
// (computed in doubles per spec.md's precision policy, applied in float32).
func lerpVector3(a, b Vector3, t float64) Vector3 {
	tf := float32(t)
	return Vector3{
		X: a.X + (b.X-a.X)*tf,
		Y: a.Y + (b.Y-a.Y)*tf,
		Z: a.Z + (b.Z-a.Z)*tf,
	}
}

// Vec2 is a 2D texture coordinate.
type Vec2 struct {
	U, V float32
}

func lerpVec2(a, b Vec2, t float64) Vec2 {
	tf := float32(t)
	return Vec2{U: a.U + (b.U-a.U)*tf, V: a.V + (b.V-a.V)*tf}
}

// Vertex is a position, unit normal, and UV coordinate.
type Vertex struct {
	Position Vector3
	Normal   Vector3
	UV       Vec2
}

// Flip negates the vertex normal.
func (v Vertex) Flip() Vertex {
	v.Normal = v.Normal.Negate()
	return v
}

// Lerp linearly interpolates between v and o at parameter t. The
// interpolated normal is re-normalized.
func (v Vertex) Lerp(o Vertex, t float64) Vertex {
	return Vertex{
		Position: lerpVector3(v.Position, o.Position, t),
		Normal:   lerpVector3(v.Normal, o.Normal, t).Normalize(),
		UV:       lerpVec2(v.UV, o.UV, t),
	}
}

// Polygon is an ordered ring of >=3 vertices lying on a supporting plane,
// plus a material tag.
type Polygon struct {
	Vertices []Vertex
	Plane    plane.Plane
	Material int
}

// New constructs a Polygon from a vertex ring and supporting plane.
func New(vertices []Vertex, supportingPlane plane.Plane, material int) *Polygon {
	return &Polygon{Vertices: vertices, Plane: supportingPlane, Material: material}
}

// Clone returns a deep copy of p.
func (p *Polygon) Clone() *Polygon {
	verts := make([]Vertex, len(p.Vertices))
	copy(verts, p.Vertices)
	return &Polygon{Vertices: verts, Plane: p.Plane, Material: p.Material}
}

// Flip reverses the ring, flips each vertex normal, and flips the
// supporting plane.
func (p *Polygon) Flip() *Polygon {
	n := len(p.Vertices)
	verts := make([]Vertex, n)
	for i, v := range p.Vertices {
		verts[n-1-i] = v.Flip()
	}
	return &Polygon{Vertices: verts, Plane: p.Plane.Flip(), Material: p.Material}
}

// Centroid returns the arithmetic mean of the ring's vertex positions,
// in double precision. categorize_polygon uses the centroid rather than
// any single vertex because edge/corner vertices of one brush can
// coincidentally lie on a face of another brush.
func (p *Polygon) Centroid() plane.Vec3 {
	if len(p.Vertices) == 0 {
		return plane.Vec3{}
	}
	var sum plane.Vec3
	for _, v := range p.Vertices {
		sum = sum.Add(v.Position.ToVec3())
	}
	return sum.Scale(1 / float64(len(p.Vertices)))
}

// Area returns the polygon's area, computed by summing the cross
// products of the centroid-to-vertex edges (works for any planar convex
// or non-convex simple ring).
func (p *Polygon) Area() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	c := p.Centroid()
	var sum plane.Vec3
	for i := 0; i < n; i++ {
		a := p.Vertices[i].Position.ToVec3().Sub(c)
		b := p.Vertices[(i+1)%n].Position.ToVec3().Sub(c)
		sum = sum.Add(a.Cross(b))
	}
	return sum.Length() / 2
}

// IsDegenerate reports whether p has fewer than 3 vertices or an area
// below EpsilonArea.
func (p *Polygon) IsDegenerate() bool {
	if len(p.Vertices) < 3 {
		return true
	}
	return p.Area() < EpsilonArea
}

// IsConvex reports whether, walking the ring, the cross products of
// consecutive edges all point to the same side of the supporting plane's
// normal (spec.md section 8, invariant 3).
func (p *Polygon) IsConvex() bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	normal := p.Plane.Normal()
	sign := 0
	for i := 0; i < n; i++ {
		a := p.Vertices[i].Position.ToVec3()
		b := p.Vertices[(i+1)%n].Position.ToVec3()
		c := p.Vertices[(i+2)%n].Position.ToVec3()
		e1 := b.Sub(a)
		e2 := c.Sub(b)
		cr := e1.Cross(e2)
		d := cr.Dot(normal)
		switch {
		case d > 1e-9:
			if sign < 0 {
				return false
			}
			sign = 1
		case d < -1e-9:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return true
}
