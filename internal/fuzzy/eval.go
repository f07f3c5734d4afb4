package fuzzy

import (
	"math"

	"github.com/rddlgo/rddlgo/internal/ast"
	rerrors "github.com/rddlgo/rddlgo/internal/errors"
)

// eval recurses over the grounded AST exactly like the crisp simulator's
// evalExpr, except Boolean and Control nodes are compiled through r.logic
// instead of Go's native &&/||/if (§4.4 "compiles the logical, aggregation,
// and control operators through the algebra"). Arithmetic, Relational, and
// Func nodes stay crisp: the table in §4.4 only relaxes the connectives and
// the branch select, not arithmetic.
func (r *roller) eval(e ast.Expr, env, primed map[string]any) (float64, error) {
	switch n := e.(type) {
	case *ast.Constant:
		return toFloat(n.Value), nil

	case *ast.PVar:
		v, ok := resolve(n.Name, env, primed)
		if !ok {
			return 0, rerrors.WrapReport(rerrors.New(rerrors.SIM001, "grounded variable <%s> has no bound value", n.Name))
		}
		return toFloat(v), nil

	case *ast.Arithmetic:
		return r.evalArithmetic(n, env, primed)

	case *ast.Boolean:
		return r.evalBoolean(n, env, primed)

	case *ast.Relational:
		return r.evalRelational(n, env, primed)

	case *ast.Control:
		cond, err := r.eval(n.Cond, env, primed)
		if err != nil {
			return 0, err
		}
		thenVal, err := r.eval(n.Then, env, primed)
		if err != nil {
			return 0, err
		}
		elseVal, err := r.eval(n.Else, env, primed)
		if err != nil {
			return 0, err
		}
		return r.logic.If(cond, thenVal, elseVal), nil

	case *ast.Func:
		return r.evalFunc(n, env, primed)

	case *ast.RandomVar:
		return r.evalRandomVar(n, env, primed)

	default:
		return 0, rerrors.WrapReport(rerrors.New(rerrors.GRD004, "malformed expression node %T reached the fuzzy compiler", e))
	}
}

func resolve(name string, env, primed map[string]any) (any, bool) {
	if primed != nil {
		if v, ok := primed[name]; ok {
			return v, true
		}
	}
	if v, ok := env[name]; ok {
		return v, true
	}
	return nil, false
}

func (r *roller) evalArithmetic(n *ast.Arithmetic, env, primed map[string]any) (float64, error) {
	vals, err := r.evalAll(n.Children, env, primed)
	if err != nil {
		return 0, err
	}
	acc := vals[0]
	switch n.Op {
	case ast.Add:
		for _, v := range vals[1:] {
			acc += v
		}
	case ast.Sub:
		for _, v := range vals[1:] {
			acc -= v
		}
	case ast.Mul:
		for _, v := range vals[1:] {
			acc *= v
		}
	case ast.Div:
		for _, v := range vals[1:] {
			if v == 0 {
				return 0, rerrors.WrapReport(rerrors.New(rerrors.SIM001, "division by zero"))
			}
			acc /= v
		}
	}
	return acc, nil
}

// evalBoolean compiles And/Or/Not/Implies/Iff through the algebra instead of
// Go's native bool operators, reading its operands as soft truth values in
// [0,1] (§4.4).
func (r *roller) evalBoolean(n *ast.Boolean, env, primed map[string]any) (float64, error) {
	if n.Op == ast.Not {
		v, err := r.eval(n.Children[0], env, primed)
		if err != nil {
			return 0, err
		}
		return r.logic.Not(v), nil
	}

	vals, err := r.evalAll(n.Children, env, primed)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case ast.And:
		return r.logic.Forall(vals), nil
	case ast.Or:
		return r.logic.Exists(vals), nil
	case ast.Implies:
		return r.logic.Implies(vals[0], vals[1]), nil
	case ast.Iff:
		return r.logic.Iff(vals[0], vals[1]), nil
	}
	return 0, rerrors.WrapReport(rerrors.New(rerrors.GRD004, "unknown boolean operator %q", n.Op))
}

// evalRelational stays crisp: §4.4's table relaxes connectives and branch
// select, not comparisons, so relational output is a hard 0/1 fed back into
// the soft connectives above.
func (r *roller) evalRelational(n *ast.Relational, env, primed map[string]any) (float64, error) {
	vals, err := r.evalAll(n.Children, env, primed)
	if err != nil {
		return 0, err
	}
	a, b := vals[0], vals[1]
	var truth bool
	switch n.Op {
	case ast.Eq:
		truth = a == b
	case ast.Ne:
		truth = a != b
	case ast.Lt:
		truth = a < b
	case ast.Le:
		truth = a <= b
	case ast.Gt:
		truth = a > b
	case ast.Ge:
		truth = a >= b
	default:
		return 0, rerrors.WrapReport(rerrors.New(rerrors.GRD004, "unknown relational operator %q", n.Op))
	}
	if truth {
		return 1, nil
	}
	return 0, nil
}

func (r *roller) evalFunc(n *ast.Func, env, primed map[string]any) (float64, error) {
	vals, err := r.evalAll(n.Args, env, primed)
	if err != nil {
		return 0, err
	}
	switch n.Name {
	case "abs":
		return math.Abs(vals[0]), nil
	case "exp":
		return math.Exp(vals[0]), nil
	case "ln", "log":
		return math.Log(vals[0]), nil
	case "sqrt":
		return math.Sqrt(vals[0]), nil
	case "pow":
		return math.Pow(vals[0], vals[1]), nil
	case "round":
		return math.Round(vals[0]), nil
	case "floor":
		return math.Floor(vals[0]), nil
	case "ceil":
		return math.Ceil(vals[0]), nil
	case "sgn":
		switch {
		case vals[0] > 0:
			return 1, nil
		case vals[0] < 0:
			return -1, nil
		default:
			return 0, nil
		}
	case "min":
		m := vals[0]
		for _, v := range vals[1:] {
			if v < m {
				m = v
			}
		}
		return m, nil
	case "max":
		m := vals[0]
		for _, v := range vals[1:] {
			if v > m {
				m = v
			}
		}
		return m, nil
	}
	return 0, rerrors.WrapReport(rerrors.New(rerrors.GRD004, "unknown function %q", n.Name))
}

// evalRandomVar relaxes each supported distribution to its expectation
// rather than sampling it, so the rollout stays a deterministic, pure
// function of its inputs (§4.4). Poisson and Gamma are rejected earlier, at
// checkCompilable time, so they never reach here.
func (r *roller) evalRandomVar(n *ast.RandomVar, env, primed map[string]any) (float64, error) {
	vals, err := r.evalAll(n.Args, env, primed)
	if err != nil {
		return 0, err
	}
	switch n.Dist {
	case "KronDelta", "DiracDelta":
		return vals[0], nil
	case "Bernoulli":
		return vals[0], nil
	case "Uniform":
		return (vals[0] + vals[1]) / 2, nil
	case "Normal":
		return vals[0], nil
	case "Discrete":
		return r.expectedDiscrete(vals), nil
	}
	return 0, rerrors.WrapReport(rerrors.New(rerrors.FUZ001, "random-variable family %q has no supported fuzzy relaxation", n.Dist))
}

// expectedDiscrete returns the weighted index expectation sum(i * w_i) /
// sum(w_i), treating every argument as the weight of its index, mirroring the crisp
// simulator's weighted-index contract as its continuous relaxation.
func (r *roller) expectedDiscrete(vals []float64) float64 {
	var weightSum, indexSum float64
	for i, w := range vals {
		weightSum += w
		indexSum += float64(i) * w
	}
	if weightSum == 0 {
		return 0
	}
	return indexSum / weightSum
}

func (r *roller) evalAll(es []ast.Expr, env, primed map[string]any) ([]float64, error) {
	out := make([]float64, len(es))
	for i, e := range es {
		v, err := r.eval(e, env, primed)
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
