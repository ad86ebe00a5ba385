// Package plane implements oriented half-space arithmetic in doubles:
// distance queries, point/polygon classification, and plane flipping.
// It is the leaf component of the CSG evaluator (see pkg/csg) and has
// no dependency on any other package in this module.
package plane

import "math"

// Epsilon is the default tolerance for plane boundary comparisons
// (distance, equality). Tuned for world scales in the 1e-2..1e3 range;
// callers working outside that range should scale their own tolerances.
const Epsilon = 1e-5

// Vec3 is a double-precision 3D vector, used wherever this module's
// components require the doubles-precision arithmetic spec.md mandates
// for plane and split-parameter math.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the component-wise difference.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. Returns the zero vector and
// false if v is too close to zero to normalize reliably.
func (v Vec3) Normalize() (Vec3, bool) {
	l := v.Length()
	if l < 1e-12 {
		return Vec3{}, false
	}
	return v.Scale(1 / l), true
}

// IsFinite reports whether all components of v are finite.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Side is the result of classifying a point against a plane.
type Side int

const (
	// OnPlane means the point lies within Epsilon of the plane.
	OnPlane Side = iota
	// Front means the point lies strictly in front of the plane.
	Front
	// Back means the point lies strictly behind the plane.
	Back
	// Spanning is only produced by ClassifyPolygon: some vertices are
	// Front and some are Back.
	Spanning
)

// Plane is an oriented half-space A*x + B*y + C*z + D = 0 with
// |(A,B,C)| = 1. The front half-space is A*x+B*y+C*z+D > 0.
type Plane struct {
	A, B, C, D float64
}

// Degenerate is the sentinel returned when construction fails (near-zero
// normal or colinear generating points). Callers that can distinguish it
// should check Plane.IsDegenerate.
var Degenerate = Plane{}

// IsDegenerate reports whether p is the zero-normal sentinel plane.
func (p Plane) IsDegenerate() bool {
	return p.A == 0 && p.B == 0 && p.C == 0
}

// Normal returns the plane's unit normal vector.
func (p Plane) Normal() Vec3 { return Vec3{p.A, p.B, p.C} }

// New constructs a plane from a unit normal and a point known to lie on
// it. The normal must already be normalized; New does not renormalize.
func New(normal Vec3, point Vec3) Plane {
	return Plane{
		A: normal.X,
		B: normal.Y,
		C: normal.Z,
		D: -normal.Dot(point),
	}
}

// NewFromNormal constructs a plane from an unnormalized normal vector and
// a point on the plane, normalizing the input. Returns the Degenerate
// sentinel if the normal is too close to zero to normalize.
func NewFromNormal(normal Vec3, point Vec3) Plane {
	n, ok := normal.Normalize()
	if !ok {
		return Degenerate
	}
	return New(n, point)
}

// NewFromPoints constructs a plane through three points using the
// normalized cross product of two edge vectors. Colinear inputs (or
// inputs that produce a non-finite normal) yield the Degenerate sentinel.
func NewFromPoints(a, b, c Vec3) Plane {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	n := e1.Cross(e2)
	if !n.IsFinite() {
		return Degenerate
	}
	unit, ok := n.Normalize()
	if !ok {
		return Degenerate
	}
	return New(unit, a)
}

// SignedDistance returns A*p.x + B*p.y + C*p.z + D, computed in doubles.
func (p Plane) SignedDistance(pt Vec3) float64 {
	return p.A*pt.X + p.B*pt.Y + p.C*pt.Z + p.D
}

// ClassifyPoint classifies a point against the plane using the given
// epsilon: Front if d > eps, Back if d < -eps, OnPlane otherwise.
func (p Plane) ClassifyPoint(pt Vec3, eps float64) Side {
	d := p.SignedDistance(pt)
	switch {
	case d > eps:
		return Front
	case d < -eps:
		return Back
	default:
		return OnPlane
	}
}

// ClassifyPolygon classifies a ring of points against the plane: Front
// iff some point is Front and none is Back; Back iff some point is Back
// and none is Front; Spanning iff both occur; OnPlane otherwise (every
// point lies on the plane).
func (p Plane) ClassifyPolygon(points []Vec3, eps float64) Side {
	sawFront := false
	sawBack := false
	for _, pt := range points {
		switch p.ClassifyPoint(pt, eps) {
		case Front:
			sawFront = true
		case Back:
			sawBack = true
		}
	}
	switch {
	case sawFront && sawBack:
		return Spanning
	case sawFront:
		return Front
	case sawBack:
		return Back
	default:
		return OnPlane
	}
}

// Flip returns the plane with its half-space reversed: (-A,-B,-C,-D).
func (p Plane) Flip() Plane {
	return Plane{A: -p.A, B: -p.B, C: -p.C, D: -p.D}
}

// Equal reports whether p and o agree in all four components within eps.
func (p Plane) Equal(o Plane, eps float64) bool {
	return math.Abs(p.A-o.A) <= eps &&
		math.Abs(p.B-o.B) <= eps &&
		math.Abs(p.C-o.C) <= eps &&
		math.Abs(p.D-o.D) <= eps
}
