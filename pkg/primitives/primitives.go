// Package primitives implements the brush primitive factory: plane-list
// constructors for box, wedge, cylinder, and sphere brushes (spec.md
// section 6's collaborator contract). Every factory returns a *brush.Brush
// already built from outward-facing, unit-normal planes; the planes
// themselves are in the brush's Planes field.
package primitives

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/TrentSterling/runtimecsg/pkg/brush"
	"github.com/TrentSterling/runtimecsg/pkg/plane"
)

func toVec3(v v3.Vec) plane.Vec3 { return plane.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// Box returns the brush built from the six outward-facing planes of an
// axis-aligned box centered at center with the given full dimensions.
// Dimensions follow sdfx's Box3D convention (full extents,
// not half-extents); the box is centered rather than min-corner-origin
// since the CSG core operates in a single shared world space, not the
// per-part local space kernel.Box places at.
func Box(center, dims v3.Vec, op brush.Op, order, material int) *brush.Brush {
	c := toVec3(center)
	half := plane.Vec3{X: dims.X / 2, Y: dims.Y / 2, Z: dims.Z / 2}
	min := c.Sub(half)
	max := c.Add(half)
	planes := []plane.Plane{
		plane.New(plane.Vec3{X: -1}, plane.Vec3{X: min.X, Y: c.Y, Z: c.Z}),
		plane.New(plane.Vec3{X: 1}, plane.Vec3{X: max.X, Y: c.Y, Z: c.Z}),
		plane.New(plane.Vec3{Y: -1}, plane.Vec3{X: c.X, Y: min.Y, Z: c.Z}),
		plane.New(plane.Vec3{Y: 1}, plane.Vec3{X: c.X, Y: max.Y, Z: c.Z}),
		plane.New(plane.Vec3{Z: -1}, plane.Vec3{X: c.X, Y: c.Y, Z: min.Z}),
		plane.New(plane.Vec3{Z: 1}, plane.Vec3{X: c.X, Y: c.Y, Z: max.Z}),
	}
	return brush.Build(planes, op, order, material)
}

// Wedge returns the five planes of a right-triangular prism: a box with
// one edge beveled by a diagonal plane, base dims (x,y,z) centered at
// center, sloping from the top of the +x face down to the bottom of the
// -x face.
func Wedge(center, dims v3.Vec, op brush.Op, order, material int) *brush.Brush {
	c := toVec3(center)
	half := plane.Vec3{X: dims.X / 2, Y: dims.Y / 2, Z: dims.Z / 2}
	min := c.Sub(half)
	max := c.Add(half)

	slopeNormal, ok := plane.Vec3{X: -dims.Z, Z: dims.X}.Normalize()
	if !ok {
		slopeNormal = plane.Vec3{Z: 1}
	}
	planes := []plane.Plane{
		plane.New(plane.Vec3{Y: -1}, plane.Vec3{X: c.X, Y: min.Y, Z: c.Z}),
		plane.New(plane.Vec3{Y: 1}, plane.Vec3{X: c.X, Y: max.Y, Z: c.Z}),
		plane.New(plane.Vec3{X: 1}, plane.Vec3{X: max.X, Y: c.Y, Z: c.Z}),
		plane.New(plane.Vec3{Z: -1}, plane.Vec3{X: c.X, Y: c.Y, Z: min.Z}),
		plane.New(slopeNormal, plane.Vec3{X: min.X, Y: c.Y, Z: min.Z}),
	}
	return brush.Build(planes, op, order, material)
}

// Cylinder returns a polygonal approximation of a cylinder as sides+2
// caps oriented along the Z axis, centered at center, with the given
// height, radius, and side count (>= 3).
func Cylinder(center v3.Vec, height, radius float64, sides int, op brush.Op, order, material int) *brush.Brush {
	if sides < 3 {
		sides = 3
	}
	c := toVec3(center)
	halfH := height / 2

	planes := make([]plane.Plane, 0, sides+2)
	planes = append(planes, plane.New(plane.Vec3{Z: -1}, plane.Vec3{X: c.X, Y: c.Y, Z: c.Z - halfH}))
	planes = append(planes, plane.New(plane.Vec3{Z: 1}, plane.Vec3{X: c.X, Y: c.Y, Z: c.Z + halfH}))
	for i := 0; i < sides; i++ {
		theta := 2 * math.Pi * float64(i) / float64(sides)
		n := plane.Vec3{X: math.Cos(theta), Y: math.Sin(theta)}
		pt := plane.Vec3{X: c.X + n.X*radius, Y: c.Y + n.Y*radius, Z: c.Z}
		planes = append(planes, plane.New(n, pt))
	}
	return brush.Build(planes, op, order, material)
}

// Sphere returns a polygonal approximation of a sphere as a
// latitude x longitude subdivision of tangent planes, centered at
// center, with the given radius, latitude bands, and longitude segments
// (both >= 2).
func Sphere(center v3.Vec, radius float64, latBands, lonSegments int, op brush.Op, order, material int) *brush.Brush {
	if latBands < 2 {
		latBands = 2
	}
	if lonSegments < 2 {
		lonSegments = 2
	}
	c := toVec3(center)

	var planes []plane.Plane
	for lat := 1; lat < latBands; lat++ {
		phi := math.Pi * float64(lat) / float64(latBands)
		sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
		for lon := 0; lon < lonSegments; lon++ {
			theta := 2 * math.Pi * float64(lon) / float64(lonSegments)
			n := plane.Vec3{
				X: sinPhi * math.Cos(theta),
				Y: sinPhi * math.Sin(theta),
				Z: cosPhi,
			}
			pt := c.Add(n.Scale(radius))
			planes = append(planes, plane.New(n, pt))
		}
	}
	planes = append(planes, plane.New(plane.Vec3{Z: 1}, c.Add(plane.Vec3{Z: radius})))
	planes = append(planes, plane.New(plane.Vec3{Z: -1}, c.Add(plane.Vec3{Z: -radius})))
	return brush.Build(planes, op, order, material)
}
