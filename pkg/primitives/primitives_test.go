package primitives

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/TrentSterling/runtimecsg/pkg/brush"
)

func TestBoxProducesSixFaces(t *testing.T) {
	b := Box(v3.Vec{}, v3.Vec{X: 2, Y: 2, Z: 2}, brush.Additive, 0, 0)
	if len(b.Faces) != 6 {
		t.Fatalf("Box() produced %d faces, want 6", len(b.Faces))
	}
	for i, f := range b.Faces {
		if got, want := f.Area(), 4.0; got < want-1e-6 || got > want+1e-6 {
			t.Errorf("face %d area = %v, want %v", i, got, want)
		}
	}
}

func TestWedgeProducesFiveFaces(t *testing.T) {
	b := Wedge(v3.Vec{}, v3.Vec{X: 2, Y: 2, Z: 2}, brush.Additive, 0, 0)
	if len(b.Faces) != 5 {
		t.Fatalf("Wedge() produced %d faces, want 5", len(b.Faces))
	}
}

func TestCylinderSideCountFloor(t *testing.T) {
	b := Cylinder(v3.Vec{}, 2, 1, 8, brush.Additive, 0, 0)
	if len(b.Faces) != 10 {
		t.Fatalf("Cylinder(sides=8) produced %d faces, want 10 (8 sides + 2 caps)", len(b.Faces))
	}
	b2 := Cylinder(v3.Vec{}, 2, 1, 2, brush.Additive, 0, 0)
	if len(b2.Faces) != 5 {
		t.Fatalf("Cylinder(sides=2, clamped to 3) produced %d faces, want 5", len(b2.Faces))
	}
}

func TestSphereProducesLatLonFaces(t *testing.T) {
	b := Sphere(v3.Vec{}, 1, 4, 6, brush.Additive, 0, 0)
	// 3 interior latitude rings x 6 longitude segments + 2 poles.
	want := 3*6 + 2
	if len(b.Faces) != want {
		t.Fatalf("Sphere() produced %d faces, want %d", len(b.Faces), want)
	}
}

func TestBoxCenterOffset(t *testing.T) {
	b := Box(v3.Vec{X: 10}, v3.Vec{X: 2, Y: 2, Z: 2}, brush.Additive, 0, 0)
	for _, f := range b.Faces {
		for _, v := range f.Vertices {
			if v.Position.X < 9-1e-6 || v.Position.X > 11+1e-6 {
				t.Errorf("vertex X = %v, want within [9,11]", v.Position.X)
			}
		}
	}
}
