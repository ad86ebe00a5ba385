package brush

import (
	"testing"

	"github.com/TrentSterling/runtimecsg/pkg/plane"
)

// boxPlanes returns the six outward-facing planes of the axis-aligned box
// [min,max].
func boxPlanes(min, max plane.Vec3) []plane.Plane {
	return []plane.Plane{
		plane.New(plane.Vec3{X: -1}, plane.Vec3{X: min.X}),
		plane.New(plane.Vec3{X: 1}, plane.Vec3{X: max.X}),
		plane.New(plane.Vec3{Y: -1}, plane.Vec3{Y: min.Y}),
		plane.New(plane.Vec3{Y: 1}, plane.Vec3{Y: max.Y}),
		plane.New(plane.Vec3{Z: -1}, plane.Vec3{Z: min.Z}),
		plane.New(plane.Vec3{Z: 1}, plane.Vec3{Z: max.Z}),
	}
}

func TestBuildUnitCube(t *testing.T) {
	planes := boxPlanes(plane.Vec3{}, plane.Vec3{X: 1, Y: 1, Z: 1})
	b := Build(planes, Additive, 0, 0)
	if len(b.Faces) != 6 {
		t.Fatalf("Build() produced %d faces, want 6", len(b.Faces))
	}
	for i, f := range b.Faces {
		if len(f.Vertices) != 4 {
			t.Errorf("face %d has %d vertices, want 4", i, len(f.Vertices))
		}
		if got, want := f.Area(), 1.0; got < want-1e-6 || got > want+1e-6 {
			t.Errorf("face %d area = %v, want %v", i, got, want)
		}
		if !f.IsConvex() {
			t.Errorf("face %d is not convex", i)
		}
	}
}

func TestBuildUnitCubeVerticesIndependentOfFaces(t *testing.T) {
	planes := boxPlanes(plane.Vec3{}, plane.Vec3{X: 1, Y: 1, Z: 1})
	b := Build(planes, Additive, 0, 0)
	if len(b.Vertices) != 8 {
		t.Fatalf("Build() accepted %d vertices, want 8", len(b.Vertices))
	}
	for _, v := range b.Vertices {
		if !acceptedByAll(v, planes) {
			t.Errorf("accepted vertex %v is not inside every plane", v)
		}
	}
}

func TestBuildFaceNormalMatchesSupportingPlane(t *testing.T) {
	planes := boxPlanes(plane.Vec3{}, plane.Vec3{X: 1, Y: 1, Z: 1})
	b := Build(planes, Additive, 0, 0)
	for i, f := range b.Faces {
		want := f.Plane.Normal()
		for _, v := range f.Vertices {
			got := v.Normal.ToVec3()
			if d := got.Dot(want); d < 1-1e-4 {
				t.Errorf("face %d vertex normal misaligned with plane normal (dot=%v)", i, d)
			}
		}
	}
}

func TestBuildTetrahedron(t *testing.T) {
	// Four planes bounding a regular-ish tetrahedron around the origin.
	planes := []plane.Plane{
		plane.NewFromNormal(plane.Vec3{X: 1, Y: 1, Z: 1}, plane.Vec3{X: 0.5, Y: 0.5, Z: 0.5}),
		plane.NewFromNormal(plane.Vec3{X: -1, Y: -1, Z: 1}, plane.Vec3{X: -0.5, Y: -0.5, Z: 0.5}),
		plane.NewFromNormal(plane.Vec3{X: -1, Y: 1, Z: -1}, plane.Vec3{X: -0.5, Y: 0.5, Z: -0.5}),
		plane.NewFromNormal(plane.Vec3{X: 1, Y: -1, Z: -1}, plane.Vec3{X: 0.5, Y: -0.5, Z: -0.5}),
	}
	b := Build(planes, Additive, 0, 0)
	if len(b.Faces) != 4 {
		t.Fatalf("Build() produced %d faces, want 4", len(b.Faces))
	}
	for i, f := range b.Faces {
		if len(f.Vertices) != 3 {
			t.Errorf("tetrahedron face %d has %d vertices, want 3", i, len(f.Vertices))
		}
	}
}

func TestBuildTooFewPlanesProducesNoFaces(t *testing.T) {
	planes := boxPlanes(plane.Vec3{}, plane.Vec3{X: 1, Y: 1, Z: 1})[:2]
	b := Build(planes, Additive, 0, 0)
	if len(b.Faces) != 0 {
		t.Errorf("Build() with 2 planes produced %d faces, want 0", len(b.Faces))
	}
}

func TestOpString(t *testing.T) {
	cases := map[Op]string{Additive: "additive", Subtractive: "subtractive", Intersect: "intersect"}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("Op(%d).String() = %q, want %q", op, got, want)
		}
	}
}

func TestIntersectThreePlanesParallelIsRejected(t *testing.T) {
	a := plane.New(plane.Vec3{Z: 1}, plane.Vec3{Z: 0})
	b := plane.New(plane.Vec3{Z: 1}, plane.Vec3{Z: 1})
	c := plane.New(plane.Vec3{X: 1}, plane.Vec3{X: 0})
	if _, ok := intersectThreePlanes(a, b, c); ok {
		t.Error("intersectThreePlanes() with two parallel planes should be rejected")
	}
}
