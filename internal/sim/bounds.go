package sim

import (
	"math"

	"github.com/rddlgo/rddlgo/internal/ast"
)

// minInt32, maxInt32 are the default unbounded sides for an int-ranged
// fluent (§8 "Boundary behaviors": "Unbounded int ranges produce Discrete
// descriptors spanning [int32.min, int32.max]").
const (
	minInt32 = -2147483648
	maxInt32 = 2147483647
)

// Bound is a fluent's inclusive [Low, High] range.
type Bound struct {
	Low  float64
	High float64
}

// Bounds derives (low, high) for every action- and state-fluent from the
// intersection of preconditions and invariants of the form `v <= c`,
// `v >= c`, and `v ∈ [a,b]`; fluents with no matching constraint default to
// ±∞ for real ranges or the int32 extremes for int ranges. Booleans always
// yield (0,1) (§4.2 "bounds").
func (s *Simulator) Bounds() map[string]Bound {
	out := make(map[string]Bound, len(s.m.Actions)+len(s.m.States))

	for name := range s.m.Actions {
		out[name] = s.defaultBound(s.m.ActionRanges[name])
	}
	for name := range s.m.States {
		out[name] = s.defaultBound(s.m.StateRanges[name])
	}

	for _, clause := range s.m.Preconditions {
		tightenBounds(out, clause)
	}
	for _, clause := range s.m.Invariants {
		tightenBounds(out, clause)
	}
	return out
}

func (s *Simulator) defaultBound(rangeTag string) Bound {
	switch rangeTag {
	case "bool":
		return Bound{Low: 0, High: 1}
	case "int":
		return Bound{Low: minInt32, High: maxInt32}
	default:
		return Bound{Low: math.Inf(-1), High: math.Inf(1)}
	}
}

// tightenBounds descends through top-level conjunctions (forall compiles to
// Boolean(And, ...) at grounding time) collecting simple `v <= c`/`v >= c`/
// `v == c` clauses and narrowing the matching fluent's bound.
func tightenBounds(bounds map[string]Bound, e ast.Expr) {
	if b, ok := e.(*ast.Boolean); ok && b.Op == ast.And {
		for _, child := range b.Children {
			tightenBounds(bounds, child)
		}
		return
	}

	rel, ok := e.(*ast.Relational)
	if !ok || len(rel.Children) != 2 {
		return
	}

	v, c, flipped, ok := splitVarConst(rel.Children[0], rel.Children[1])
	if !ok {
		return
	}
	b, known := bounds[v]
	if !known {
		return
	}

	op := rel.Op
	if flipped {
		op = flipRelOp(op)
	}

	switch op {
	case ast.Le:
		if c < b.High {
			b.High = c
		}
	case ast.Ge:
		if c > b.Low {
			b.Low = c
		}
	case ast.Eq:
		b.Low, b.High = c, c
	}
	bounds[v] = b
}

// splitVarConst recognizes a (pvar, constant) pair in either argument order.
func splitVarConst(lhs, rhs ast.Expr) (name string, value float64, flipped bool, ok bool) {
	if p, isVar := lhs.(*ast.PVar); isVar {
		if c, isConst := rhs.(*ast.Constant); isConst {
			return p.Name, toFloat(c.Value), false, true
		}
	}
	if p, isVar := rhs.(*ast.PVar); isVar {
		if c, isConst := lhs.(*ast.Constant); isConst {
			return p.Name, toFloat(c.Value), true, true
		}
	}
	return "", 0, false, false
}

func flipRelOp(op ast.RelOp) ast.RelOp {
	switch op {
	case ast.Le:
		return ast.Ge
	case ast.Ge:
		return ast.Le
	case ast.Lt:
		return ast.Gt
	case ast.Gt:
		return ast.Lt
	default:
		return op
	}
}
