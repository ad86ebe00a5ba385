package uvmap

import (
	"testing"

	"github.com/TrentSterling/runtimecsg/pkg/plane"
	"github.com/TrentSterling/runtimecsg/pkg/polygon"
)

func TestProjectDropsDominantAxis(t *testing.T) {
	// Face normal +z: project onto (x,y).
	p := polygon.New([]polygon.Vertex{
		{Position: polygon.Vector3{1, 2, 5}},
		{Position: polygon.Vector3{3, 4, 5}},
		{Position: polygon.Vector3{5, 6, 5}},
	}, plane.New(plane.Vec3{Z: 1}, plane.Vec3{Z: 5}), 0)

	out := Project(p, 1.0)
	want := [][2]float32{{1, 2}, {3, 4}, {5, 6}}
	for i, v := range out.Vertices {
		if v.UV.U != want[i][0] || v.UV.V != want[i][1] {
			t.Errorf("vertex %d UV = %v, want %v", i, v.UV, want[i])
		}
	}
}

func TestProjectScalesByTexelsPerUnit(t *testing.T) {
	p := polygon.New([]polygon.Vertex{
		{Position: polygon.Vector3{1, 2, 3}},
	}, plane.New(plane.Vec3{X: 1}, plane.Vec3{}), 0)
	out := Project(p, 2.0)
	if out.Vertices[0].UV.U != 4 || out.Vertices[0].UV.V != 6 {
		t.Errorf("UV = %v, want {4 6} (y,z scaled by 2)", out.Vertices[0].UV)
	}
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	p := polygon.New([]polygon.Vertex{
		{Position: polygon.Vector3{1, 2, 5}},
	}, plane.New(plane.Vec3{Z: 1}, plane.Vec3{Z: 5}), 0)
	_ = Project(p, 1.0)
	if p.Vertices[0].UV != (polygon.Vec2{}) {
		t.Error("Project() mutated the input polygon's UV")
	}
}
