package plane

import (
	"math"
	"testing"
)

func TestNewFromPoints(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c    Vec3
		wantDegen  bool
		wantNormal Vec3
	}{
		{
			name: "xy plane at z=0",
			a:    Vec3{0, 0, 0}, b: Vec3{1, 0, 0}, c: Vec3{0, 1, 0},
			wantNormal: Vec3{0, 0, 1},
		},
		{
			name:      "colinear points",
			a:         Vec3{0, 0, 0},
			b:         Vec3{1, 0, 0},
			c:         Vec3{2, 0, 0},
			wantDegen: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewFromPoints(tt.a, tt.b, tt.c)
			if p.IsDegenerate() != tt.wantDegen {
				t.Fatalf("IsDegenerate() = %v, want %v", p.IsDegenerate(), tt.wantDegen)
			}
			if tt.wantDegen {
				return
			}
			n := p.Normal()
			if math.Abs(n.X-tt.wantNormal.X) > 1e-9 ||
				math.Abs(n.Y-tt.wantNormal.Y) > 1e-9 ||
				math.Abs(n.Z-tt.wantNormal.Z) > 1e-9 {
				t.Errorf("Normal() = %v, want %v", n, tt.wantNormal)
			}
		})
	}
}

func TestSignedDistanceAndClassifyPoint(t *testing.T) {
	p := New(Vec3{0, 0, 1}, Vec3{0, 0, 5}) // z=5 plane, front is +z

	tests := []struct {
		name string
		pt   Vec3
		want Side
	}{
		{"far front", Vec3{0, 0, 10}, Front},
		{"far back", Vec3{0, 0, 0}, Back},
		{"on plane", Vec3{1, 1, 5}, OnPlane},
		{"within epsilon", Vec3{0, 0, 5 + Epsilon/2}, OnPlane},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ClassifyPoint(tt.pt, Epsilon); got != tt.want {
				t.Errorf("ClassifyPoint(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
}

func TestClassifyPolygon(t *testing.T) {
	p := New(Vec3{1, 0, 0}, Vec3{0, 0, 0}) // x=0 plane, front is +x

	tests := []struct {
		name   string
		points []Vec3
		want   Side
	}{
		{"all front", []Vec3{{1, 0, 0}, {2, 0, 0}}, Front},
		{"all back", []Vec3{{-1, 0, 0}, {-2, 0, 0}}, Back},
		{"spanning", []Vec3{{-1, 0, 0}, {1, 0, 0}}, Spanning},
		{"on plane", []Vec3{{0, 1, 0}, {0, -1, 0}}, OnPlane},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ClassifyPolygon(tt.points, Epsilon); got != tt.want {
				t.Errorf("ClassifyPolygon() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlip(t *testing.T) {
	p := Plane{A: 1, B: 2, C: 3, D: 4}
	f := p.Flip()
	want := Plane{A: -1, B: -2, C: -3, D: -4}
	if f != want {
		t.Errorf("Flip() = %v, want %v", f, want)
	}
	if !f.Flip().Equal(p, 1e-12) {
		t.Error("Flip() is not its own inverse")
	}
}

func TestEqual(t *testing.T) {
	a := Plane{A: 1, B: 0, C: 0, D: 5}
	b := Plane{A: 1 + Epsilon/2, B: 0, C: 0, D: 5 - Epsilon/2}
	if !a.Equal(b, Epsilon) {
		t.Error("expected planes within epsilon to be Equal")
	}
	c := Plane{A: 1.1, B: 0, C: 0, D: 5}
	if a.Equal(c, Epsilon) {
		t.Error("expected planes outside epsilon to not be Equal")
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}
	n, ok := v.Normalize()
	if !ok {
		t.Fatal("Normalize() failed on non-zero vector")
	}
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Normalize() length = %v, want 1", n.Length())
	}
	if _, ok := (Vec3{0, 0, 0}).Normalize(); ok {
		t.Error("Normalize() should fail on zero vector")
	}
}
