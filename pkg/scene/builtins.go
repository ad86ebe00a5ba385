package scene

import (
	"fmt"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/TrentSterling/runtimecsg/pkg/brush"
	"github.com/TrentSterling/runtimecsg/pkg/primitives"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource transforms scene DSL source before passing it to
// zygomys: :keyword tokens become string literals ("__kw_keyword"),
// kebab-case identifiers become underscore form (zygomys reads a hyphen
// as subtraction), and ; line comments become // comments. All three
// transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ':' && i+1 < len(b) {
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isKWChar(c byte) bool { return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_' }
func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
func isIdentStartChar(c byte) bool { return isLetter(c) }

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps an sdfx v3.Vec.
type sexpVec3 struct{ vec v3.Vec }

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.3f %.3f %.3f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpBrush wraps a built brush.Brush so it can be collected by scene.
type sexpBrush struct{ b *brush.Brush }

func (s *sexpBrush) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(brush op=%s order=%d faces=%d)", s.b.Op, s.b.Order, len(s.b.Faces))
}
func (s *sexpBrush) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T", s)
}

func toInt(s zygo.Sexp) (int, error) {
	f, err := toFloat64(s)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T", s)
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T", s)
}

func toBrush(s zygo.Sexp) (*brush.Brush, error) {
	if b, ok := s.(*sexpBrush); ok {
		return b.b, nil
	}
	return nil, fmt.Errorf("expected brush, got %T", s)
}

func toOp(s zygo.Sexp) (brush.Op, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected op keyword (:additive, :subtractive, :intersect): %w", err)
	}
	switch name {
	case "additive":
		return brush.Additive, nil
	case "subtractive":
		return brush.Subtractive, nil
	case "intersect":
		return brush.Intersect, nil
	}
	return 0, fmt.Errorf("invalid op %q, expected additive, subtractive, or intersect", name)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene DSL builtins into a zygomys
// environment. Source must be preprocessed with preprocessSource() first
// so that :keyword tokens are recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, result *Result) {
	nextOrder := 0

	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}
		return &sexpVec3{vec: v3.Vec{X: x, Y: y, Z: z}}, nil
	})

	// keyword args shared by every brush builtin: :op, :order, :material.
	commonArgs := func(pa kwArgs, defaultOrder int) (brush.Op, int, int, error) {
		op := brush.Additive
		if v, ok := pa.kw["op"]; ok {
			var err error
			op, err = toOp(v)
			if err != nil {
				return 0, 0, 0, err
			}
		}
		order := defaultOrder
		if v, ok := pa.kw["order"]; ok {
			var err error
			order, err = toInt(v)
			if err != nil {
				return 0, 0, 0, fmt.Errorf("order: %w", err)
			}
		}
		material := 0
		if v, ok := pa.kw["material"]; ok {
			var err error
			material, err = toInt(v)
			if err != nil {
				return 0, 0, 0, fmt.Errorf("material: %w", err)
			}
		}
		return op, order, material, nil
	}

	// -----------------------------------------------------------------------
	// (box :op :additive :center (vec3 0 0 0) :dims (vec3 1 1 1))
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		op, order, material, err := commonArgs(pa, nextOrder)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		center, err := requireVec3(pa, "center")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		dims, err := requireVec3(pa, "dims")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		nextOrder++
		return &sexpBrush{b: primitives.Box(center, dims, op, order, material)}, nil
	})

	// -----------------------------------------------------------------------
	// (wedge :op :additive :center (vec3 0 0 0) :dims (vec3 1 1 1))
	// -----------------------------------------------------------------------
	env.AddFunction("wedge", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		op, order, material, err := commonArgs(pa, nextOrder)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("wedge: %w", err)
		}
		center, err := requireVec3(pa, "center")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("wedge: %w", err)
		}
		dims, err := requireVec3(pa, "dims")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("wedge: %w", err)
		}
		nextOrder++
		return &sexpBrush{b: primitives.Wedge(center, dims, op, order, material)}, nil
	})

	// -----------------------------------------------------------------------
	// (cylinder :op :subtractive :center (vec3 0 0 0)
	//           :height 2 :radius 1 :sides 12)
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		op, order, material, err := commonArgs(pa, nextOrder)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		center, err := requireVec3(pa, "center")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		height, err := requireFloat(pa, "height")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		radius, err := requireFloat(pa, "radius")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		sides := 12
		if v, ok := pa.kw["sides"]; ok {
			sides, err = toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cylinder: sides: %w", err)
			}
		}
		nextOrder++
		return &sexpBrush{b: primitives.Cylinder(center, height, radius, sides, op, order, material)}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere :op :additive :center (vec3 0 0 0) :radius 1
	//         :lat-bands 8 :lon-segments 12)
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		op, order, material, err := commonArgs(pa, nextOrder)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		center, err := requireVec3(pa, "center")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		radius, err := requireFloat(pa, "radius")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		latBands, lonSegments := 8, 12
		if v, ok := pa.kw["lat-bands"]; ok {
			latBands, err = toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sphere: lat-bands: %w", err)
			}
		}
		if v, ok := pa.kw["lon-segments"]; ok {
			lonSegments, err = toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sphere: lon-segments: %w", err)
			}
		}
		nextOrder++
		return &sexpBrush{b: primitives.Sphere(center, radius, latBands, lonSegments, op, order, material)}, nil
	})

	// -----------------------------------------------------------------------
	// (scene (box ...) (cylinder ...) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("scene", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		for i, a := range args {
			b, err := toBrush(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("scene: entry %d: %w", i, err)
			}
			result.Brushes = append(result.Brushes, b)
		}
		return zygo.SexpNull, nil
	})
}

func requireVec3(pa kwArgs, key string) (v3.Vec, error) {
	v, ok := pa.kw[key]
	if !ok {
		return v3.Vec{}, fmt.Errorf("missing required :%s argument", key)
	}
	return toVec3(v)
}

func requireFloat(pa kwArgs, key string) (float64, error) {
	v, ok := pa.kw[key]
	if !ok {
		return 0, fmt.Errorf("missing required :%s argument", key)
	}
	return toFloat64(v)
}
