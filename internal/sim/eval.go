package sim

import (
	"math"

	"github.com/rddlgo/rddlgo/internal/ast"
	rerrors "github.com/rddlgo/rddlgo/internal/errors"
)

// evalExpr is the single recursive evaluator over the grounded AST (§4.2
// "Expression interpretation"). primed, when non-nil, is consulted first so
// reward/terminal evaluation can see both the pre-step state and the
// freshly sampled next-state values in the same pass (§9 Open Questions).
func (s *Simulator) evalExpr(e ast.Expr, primed map[string]any) (any, error) {
	switch n := e.(type) {
	case *ast.Constant:
		return n.Value, nil

	case *ast.PVar:
		v, ok := s.resolve(n.Name, primed)
		if !ok {
			return nil, rerrors.WrapReport(rerrors.New(rerrors.SIM001, "grounded variable <%s> has no bound value", n.Name))
		}
		return v, nil

	case *ast.Arithmetic:
		return s.evalArithmetic(n, primed)

	case *ast.Boolean:
		return s.evalBoolean(n, primed)

	case *ast.Relational:
		return s.evalRelational(n, primed)

	case *ast.Control:
		cond, err := s.evalExpr(n.Cond, primed)
		if err != nil {
			return nil, err
		}
		if toBool(cond) {
			return s.evalExpr(n.Then, primed)
		}
		return s.evalExpr(n.Else, primed)

	case *ast.Func:
		return s.evalFunc(n, primed)

	case *ast.RandomVar:
		return s.evalRandomVar(n, primed)

	default:
		return nil, rerrors.WrapReport(rerrors.New(rerrors.GRD004, "malformed expression node %T reached the simulator", e))
	}
}

// resolve looks up a grounded name's current value. primed takes priority
// so a reward or terminal expression resolves `x'` to the value just
// sampled this step while `x` still resolves to the pre-step snapshot.
func (s *Simulator) resolve(name string, primed map[string]any) (any, bool) {
	if primed != nil {
		if v, ok := primed[name]; ok {
			return v, true
		}
	}
	if v, ok := s.actions[name]; ok {
		return v, true
	}
	if v, ok := s.nonFluents[name]; ok {
		return v, true
	}
	if v, ok := s.derived[name]; ok {
		return v, true
	}
	if v, ok := s.interm[name]; ok {
		return v, true
	}
	if v, ok := s.state[name]; ok {
		return v, true
	}
	if v, ok := s.observ[name]; ok {
		return v, true
	}
	return nil, false
}

func (s *Simulator) evalArithmetic(n *ast.Arithmetic, primed map[string]any) (any, error) {
	vals, err := s.evalAll(n.Children, primed)
	if err != nil {
		return nil, err
	}
	acc := toFloat(vals[0])
	switch n.Op {
	case ast.Add:
		for _, v := range vals[1:] {
			acc += toFloat(v)
		}
	case ast.Sub:
		for _, v := range vals[1:] {
			acc -= toFloat(v)
		}
	case ast.Mul:
		for _, v := range vals[1:] {
			acc *= toFloat(v)
		}
	case ast.Div:
		for _, v := range vals[1:] {
			d := toFloat(v)
			if d == 0 {
				return nil, rerrors.WrapReport(rerrors.New(rerrors.SIM001, "division by zero"))
			}
			acc /= d
		}
	}
	return acc, nil
}

func (s *Simulator) evalBoolean(n *ast.Boolean, primed map[string]any) (any, error) {
	if n.Op == ast.Not {
		v, err := s.evalExpr(n.Children[0], primed)
		if err != nil {
			return nil, err
		}
		return !toBool(v), nil
	}

	vals, err := s.evalAll(n.Children, primed)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.And:
		acc := true
		for _, v := range vals {
			acc = acc && toBool(v)
		}
		return acc, nil
	case ast.Or:
		acc := false
		for _, v := range vals {
			acc = acc || toBool(v)
		}
		return acc, nil
	case ast.Implies:
		return !toBool(vals[0]) || toBool(vals[1]), nil
	case ast.Iff:
		return toBool(vals[0]) == toBool(vals[1]), nil
	}
	return nil, rerrors.WrapReport(rerrors.New(rerrors.GRD004, "unknown boolean operator %q", n.Op))
}

func (s *Simulator) evalRelational(n *ast.Relational, primed map[string]any) (any, error) {
	vals, err := s.evalAll(n.Children, primed)
	if err != nil {
		return nil, err
	}
	a, b := toFloat(vals[0]), toFloat(vals[1])
	switch n.Op {
	case ast.Eq:
		return a == b, nil
	case ast.Ne:
		return a != b, nil
	case ast.Lt:
		return a < b, nil
	case ast.Le:
		return a <= b, nil
	case ast.Gt:
		return a > b, nil
	case ast.Ge:
		return a >= b, nil
	}
	return nil, rerrors.WrapReport(rerrors.New(rerrors.GRD004, "unknown relational operator %q", n.Op))
}

// evalFunc dispatches deterministic built-in functions (§3 "func(name,
// args)"). Unary functions take their single argument; min/max are n-ary.
func (s *Simulator) evalFunc(n *ast.Func, primed map[string]any) (any, error) {
	vals, err := s.evalAll(n.Args, primed)
	if err != nil {
		return nil, err
	}

	switch n.Name {
	case "abs":
		return math.Abs(toFloat(vals[0])), nil
	case "exp":
		return math.Exp(toFloat(vals[0])), nil
	case "ln", "log":
		return math.Log(toFloat(vals[0])), nil
	case "sqrt":
		return math.Sqrt(toFloat(vals[0])), nil
	case "pow":
		return math.Pow(toFloat(vals[0]), toFloat(vals[1])), nil
	case "round":
		return math.Round(toFloat(vals[0])), nil
	case "floor":
		return math.Floor(toFloat(vals[0])), nil
	case "ceil":
		return math.Ceil(toFloat(vals[0])), nil
	case "sgn":
		v := toFloat(vals[0])
		switch {
		case v > 0:
			return 1.0, nil
		case v < 0:
			return -1.0, nil
		default:
			return 0.0, nil
		}
	case "min":
		m := toFloat(vals[0])
		for _, v := range vals[1:] {
			if toFloat(v) < m {
				m = toFloat(v)
			}
		}
		return m, nil
	case "max":
		m := toFloat(vals[0])
		for _, v := range vals[1:] {
			if toFloat(v) > m {
				m = toFloat(v)
			}
		}
		return m, nil
	}
	return nil, rerrors.WrapReport(rerrors.New(rerrors.GRD004, "unknown function %q", n.Name))
}

func (s *Simulator) evalAll(es []ast.Expr, primed map[string]any) ([]any, error) {
	out := make([]any, len(es))
	for i, e := range es {
		v, err := s.evalExpr(e, primed)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func toBool(v any) bool {
	switch n := v.(type) {
	case bool:
		return n
	case float64:
		return n != 0
	case int64:
		return n != 0
	default:
		return false
	}
}
