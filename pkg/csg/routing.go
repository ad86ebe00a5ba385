package csg

import "github.com/TrentSterling/runtimecsg/pkg/brush"

// This file is the tabular reformulation of the two-sided boolean fold
// in csg.go's evaluateChain (spec.md section 4.6). Both formulations are
// built from the same front/back state encoding and must agree on every
// input; RoutingTable is provided for callers that want to precompute an
// owner's fold once and replay it across many fragments without
// re-deriving frontInside/backInside per brush each time.
//
// The state carried through a walk reuses brush.Category itself: Inside
// means front=back=true, Outside means front=back=false, Aligned means
// front=false/back=true, ReverseAligned means front=true/back=false.
// A completed walk's final state doubles as the emission verdict:
// Aligned emits the fragment as-is, ReverseAligned emits it flipped,
// and Inside/Outside discard it.

// stateBits decodes a Category into its (frontInside, backInside) pair.
func stateBits(c brush.Category) (front, back bool) {
	switch c {
	case brush.Inside:
		return true, true
	case brush.Aligned:
		return false, true
	case brush.ReverseAligned:
		return true, false
	default:
		return false, false
	}
}

// bitsState encodes a (frontInside, backInside) pair back into a Category.
func bitsState(front, back bool) brush.Category {
	switch {
	case front && back:
		return brush.Inside
	case !front && back:
		return brush.Aligned
	case front && !back:
		return brush.ReverseAligned
	default:
		return brush.Outside
	}
}

// combine folds a brush of the given operation and category onto an
// accumulated state, applying the same OR / AND-NOT / AND rule as
// evaluateChain's per-side fold.
func combine(op brush.Op, state, category brush.Category) brush.Category {
	sf, sb := stateBits(state)
	bf, bb := stateBits(category)
	switch op {
	case brush.Additive:
		sf = sf || bf
		sb = sb || bb
	case brush.Subtractive:
		sf = sf && !bf
		sb = sb && !bb
	case brush.Intersect:
		sf = sf && bf
		sb = sb && bb
	}
	return bitsState(sf, sb)
}

// categoryIndices lists every Category value, used to build dense 4x4
// tables regardless of Category's underlying iota order.
var categoryIndices = [4]brush.Category{brush.Outside, brush.Inside, brush.Aligned, brush.ReverseAligned}

// StandardTable returns the 4x4 combine table for a brush of the given
// operation, used when that brush precedes the owner in chain order.
func StandardTable(op brush.Op) [4][4]brush.Category {
	var t [4][4]brush.Category
	for _, state := range categoryIndices {
		for _, cat := range categoryIndices {
			t[state][cat] = combine(op, state, cat)
		}
	}
	return t
}

// isCenter reports whether c is one of the two boundary categories that
// make up the routing table's centre block.
func isCenter(c brush.Category) bool {
	return c == brush.Aligned || c == brush.ReverseAligned
}

// BeyondTable returns the variant of StandardTable used when the brush
// follows the owner in chain order: entries whose state AND category are
// both centre-block categories (Aligned/ReverseAligned) collapse to
// Outside, realising the later-brush-wins coplanar tiebreaker at the
// table level. Entries touching an Inside/Outside row or column are
// unchanged from the standard table.
func BeyondTable(op brush.Op) [4][4]brush.Category {
	t := StandardTable(op)
	for _, state := range categoryIndices {
		if !isCenter(state) {
			continue
		}
		for _, cat := range categoryIndices {
			if isCenter(cat) {
				t[state][cat] = brush.Outside
			}
		}
	}
	return t
}

// step is one non-owner brush's precomputed table for a routing walk.
type step struct {
	table [4][4]brush.Category
}

// RoutingTable is an owner's folded sequence of per-brush tables, built
// once and replayable against any fragment's per-brush category vector.
type RoutingTable struct {
	owner int
	steps []step
	order []int // brush index for each step, in chain order
}

// BuildRoutingTable constructs the routing table for brushes[owner]
// against every other brush in brushes, choosing the standard table for
// brushes preceding the owner and the beyond table for brushes
// following it.
func BuildRoutingTable(brushes []*brush.Brush, owner int) *RoutingTable {
	rt := &RoutingTable{owner: owner}
	for j, b := range brushes {
		if j == owner {
			continue
		}
		var table [4][4]brush.Category
		if j < owner {
			table = StandardTable(b.Op)
		} else {
			table = BeyondTable(b.Op)
		}
		rt.steps = append(rt.steps, step{table: table})
		rt.order = append(rt.order, j)
	}
	return rt
}

// Walk folds categories (indexed by brush index, owner's own entry
// ignored) through rt's precomputed tables and returns the resulting
// verdict category: Aligned to emit as-is, ReverseAligned to emit
// flipped, Inside or Outside to discard.
//
// The source this design is grounded on truncates out-of-range state
// indices to Outside defensively; whether the fold can ever legitimately
// produce an out-of-range index is unproven, so the same defensive
// bounds check is retained here even though Category's four values
// already span the table's full index range.
func (rt *RoutingTable) Walk(categories []brush.Category) brush.Category {
	state := brush.Aligned // owner's own default: frontInside=false, backInside=true
	for i, st := range rt.steps {
		j := rt.order[i]
		cat := categories[j]
		if int(state) < 0 || int(state) >= len(st.table) || int(cat) < 0 || int(cat) >= len(st.table[0]) {
			state = brush.Outside
			continue
		}
		state = st.table[state][cat]
	}
	return state
}
