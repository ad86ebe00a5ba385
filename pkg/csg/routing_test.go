package csg

import (
	"testing"

	"github.com/TrentSterling/runtimecsg/pkg/brush"
	"github.com/TrentSterling/runtimecsg/pkg/plane"
)

func TestStandardTableAdditiveIdentityOnOutside(t *testing.T) {
	table := StandardTable(brush.Additive)
	for _, state := range categoryIndices {
		if got := table[state][brush.Outside]; got != state {
			t.Errorf("StandardTable(Additive)[%v][Outside] = %v, want %v (identity)", state, got, state)
		}
	}
}

func TestStandardTableAdditiveAlignedIsFixedPoint(t *testing.T) {
	table := StandardTable(brush.Additive)
	if got := table[brush.Aligned][brush.Aligned]; got != brush.Aligned {
		t.Errorf("StandardTable(Additive)[Aligned][Aligned] = %v, want Aligned", got)
	}
}

func TestStandardTableAdditiveCollapsesToInside(t *testing.T) {
	table := StandardTable(brush.Additive)
	for _, state := range categoryIndices {
		if got := table[state][brush.Inside]; got != brush.Inside {
			t.Errorf("StandardTable(Additive)[%v][Inside] = %v, want Inside", state, got)
		}
	}
}

func TestOneLaterAdditiveOutsideBecomesAligned(t *testing.T) {
	// An Additive owner with one later Additive brush: input Outside maps
	// to Aligned (kept), input Inside maps to Inside (discarded).
	table := BeyondTable(brush.Additive)
	if got := table[brush.Aligned][brush.Outside]; got != brush.Aligned {
		t.Errorf("BeyondTable(Additive)[Aligned][Outside] = %v, want Aligned", got)
	}
	if got := table[brush.Aligned][brush.Inside]; got != brush.Inside {
		t.Errorf("BeyondTable(Additive)[Aligned][Inside] = %v, want Inside", got)
	}
}

func TestBeyondTableAgreesOnCorners(t *testing.T) {
	for _, op := range []brush.Op{brush.Additive, brush.Subtractive, brush.Intersect} {
		std := StandardTable(op)
		bey := BeyondTable(op)
		for _, corner := range []brush.Category{brush.Inside, brush.Outside} {
			for _, cat := range categoryIndices {
				if std[corner][cat] != bey[corner][cat] {
					t.Errorf("op=%v: row %v diverges at col %v: standard=%v beyond=%v", op, corner, cat, std[corner][cat], bey[corner][cat])
				}
				if std[cat][corner] != bey[cat][corner] {
					t.Errorf("op=%v: col %v diverges at row %v: standard=%v beyond=%v", op, corner, cat, std[cat][corner], bey[cat][corner])
				}
			}
		}
	}
}

func TestBeyondTableCollapsesCenterBlockToOutside(t *testing.T) {
	for _, op := range []brush.Op{brush.Additive, brush.Subtractive, brush.Intersect} {
		bey := BeyondTable(op)
		for _, state := range []brush.Category{brush.Aligned, brush.ReverseAligned} {
			for _, cat := range []brush.Category{brush.Aligned, brush.ReverseAligned} {
				if got := bey[state][cat]; got != brush.Outside {
					t.Errorf("op=%v: BeyondTable[%v][%v] = %v, want Outside", op, state, cat, got)
				}
			}
		}
	}
}

func TestRoutingTableAgreesWithDirectEvaluation(t *testing.T) {
	brushes := []*brush.Brush{
		boxBrush2(0, 0.5, brush.Additive, 0),
		boxBrush2(0.25, 0.5, brush.Intersect, 1),
	}
	rt := BuildRoutingTable(brushes, 0)
	// Fragment strictly outside brush 1: owner's own default state Aligned
	// combined with Intersect+Outside must discard (Intersect forces
	// front/back false whenever any factor is Outside).
	verdict := rt.Walk([]brush.Category{brush.Outside, brush.Outside})
	if verdict != brush.Outside && verdict != brush.Inside {
		t.Errorf("Walk() with Outside brush-1 category = %v, want a discard verdict", verdict)
	}
}

func boxBrush2(cx, he float64, op brush.Op, order int) *brush.Brush {
	return boxBrush(plane.Vec3{X: cx}, plane.Vec3{X: he, Y: he, Z: he}, op, order)
}
