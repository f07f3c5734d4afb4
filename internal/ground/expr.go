package ground

import (
	"math"

	"github.com/rddlgo/rddlgo/internal/ast"
	rerrors "github.com/rddlgo/rddlgo/internal/errors"
)

// groundExpr recursively rewrites a lifted expression into a closed,
// grounded form, given a parameter -> object binding environment dic
// (§4.1 "Expression grounding"). It always returns a freshly built tree
// (never aliasing the lifted prototype), satisfying the copy-before-
// substitute contract (§9).
func (g *Grounder) groundExpr(e ast.Expr, dic map[string]string) (ast.Expr, error) {
	switch n := e.(type) {
	case *ast.Constant:
		return ast.Copy(n), nil

	case *ast.PVar:
		return g.groundPVar(n, dic)

	case *ast.Arithmetic:
		children, err := g.groundChildren(n.Children, dic)
		if err != nil {
			return nil, err
		}
		return &ast.Arithmetic{Op: n.Op, Children: children}, nil

	case *ast.Boolean:
		children, err := g.groundChildren(n.Children, dic)
		if err != nil {
			return nil, err
		}
		return &ast.Boolean{Op: n.Op, Children: children}, nil

	case *ast.Relational:
		children, err := g.groundChildren(n.Children, dic)
		if err != nil {
			return nil, err
		}
		return &ast.Relational{Op: n.Op, Children: children}, nil

	case *ast.Control:
		cond, err := g.groundExpr(n.Cond, dic)
		if err != nil {
			return nil, err
		}
		then, err := g.groundExpr(n.Then, dic)
		if err != nil {
			return nil, err
		}
		els, err := g.groundExpr(n.Else, dic)
		if err != nil {
			return nil, err
		}
		return &ast.Control{Cond: cond, Then: then, Else: els}, nil

	case *ast.Func:
		args, err := g.groundChildren(n.Args, dic)
		if err != nil {
			return nil, err
		}
		return &ast.Func{Name: n.Name, Args: args}, nil

	case *ast.RandomVar:
		args, err := g.groundChildren(n.Args, dic)
		if err != nil {
			return nil, err
		}
		return &ast.RandomVar{Dist: n.Dist, Args: args}, nil

	case *ast.Aggregation:
		return g.groundAggregation(n, dic)

	default:
		return nil, rerrors.WrapReport(rerrors.New(rerrors.GRD004, "malformed expression node %T", e))
	}
}

func (g *Grounder) groundChildren(children []ast.Expr, dic map[string]string) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(children))
	for i, c := range children {
		ge, err := g.groundExpr(c, dic)
		if err != nil {
			return nil, err
		}
		out[i] = ge
	}
	return out, nil
}

// groundPVar resolves every lifted argument against dic (a bound parameter
// name) or the object universe (a literal object reference), then emits a
// grounded PVar with no arguments (§4.1 "pvar(name, args)").
func (g *Grounder) groundPVar(n *ast.PVar, dic map[string]string) (ast.Expr, error) {
	if len(n.Args) == 0 {
		return &ast.PVar{Name: n.Name}, nil
	}
	resolved := make([]string, len(n.Args))
	for i, arg := range n.Args {
		if obj, ok := dic[arg]; ok {
			resolved[i] = obj
			continue
		}
		if _, ok := g.universe.TypeOf(arg); ok {
			resolved[i] = arg
			continue
		}
		return nil, rerrors.WrapReport(rerrors.New(rerrors.GRD001,
			"parameter <%s> is not defined in call to <%s>", arg, n.Name))
	}
	return &ast.PVar{Name: groundedName(n.Name, resolved)}, nil
}

// groundAggregation enumerates the Cartesian product of the aggregation's
// declared variable types, extends dic per tuple, grounds the body for each
// assignment, and combines the results via the fixed reduction table
// (§4.1). Empty products resolve to each operator's identity element (§8
// boundary behaviors); avg's identity (0/0) is left for the evaluator to
// raise ArithmeticError on, matching spec.md's stated boundary behavior.
func (g *Grounder) groundAggregation(n *ast.Aggregation, dic map[string]string) (ast.Expr, error) {
	types := make([]string, len(n.Vars))
	for i, v := range n.Vars {
		types[i] = v.Type
	}
	tuples, err := g.universe.Product(types)
	if err != nil {
		return nil, rerrors.WrapReport(rerrors.New(rerrors.GRD001, "%s", err.Error()))
	}

	switch n.Op {
	case ast.Minimum:
		if len(tuples) == 0 {
			return &ast.Constant{Value: math.Inf(1)}, nil
		}
	case ast.Maximum:
		if len(tuples) == 0 {
			return &ast.Constant{Value: math.Inf(-1)}, nil
		}
	case ast.Forall:
		if len(tuples) == 0 {
			return &ast.Constant{Value: true}, nil
		}
	case ast.Exists:
		if len(tuples) == 0 {
			return &ast.Constant{Value: false}, nil
		}
	}

	bodies := make([]ast.Expr, 0, len(tuples))
	for _, tuple := range tuples {
		extended := make(map[string]string, len(dic)+len(tuple))
		for k, v := range dic {
			extended[k] = v
		}
		for i, v := range n.Vars {
			extended[v.Name] = tuple[i]
		}
		ge, err := g.groundExpr(n.Body, extended)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, ge)
	}

	switch n.Op {
	case ast.Sum:
		return sumOrIdentity(bodies, 0.0), nil
	case ast.Avg:
		sum := sumOrIdentity(bodies, 0.0)
		return &ast.Arithmetic{Op: ast.Div, Children: []ast.Expr{sum, &ast.Constant{Value: float64(len(tuples))}}}, nil
	case ast.Prod:
		return prodOrIdentity(bodies, 1.0), nil
	case ast.Minimum:
		return &ast.Func{Name: "min", Args: bodies}, nil
	case ast.Maximum:
		return &ast.Func{Name: "max", Args: bodies}, nil
	case ast.Forall:
		return &ast.Boolean{Op: ast.And, Children: bodies}, nil
	case ast.Exists:
		return &ast.Boolean{Op: ast.Or, Children: bodies}, nil
	default:
		return nil, rerrors.WrapReport(rerrors.New(rerrors.GRD004, "unknown aggregation operator %q", n.Op))
	}
}

func sumOrIdentity(bodies []ast.Expr, identity float64) ast.Expr {
	if len(bodies) == 0 {
		return &ast.Constant{Value: identity}
	}
	return &ast.Arithmetic{Op: ast.Add, Children: bodies}
}

func prodOrIdentity(bodies []ast.Expr, identity float64) ast.Expr {
	if len(bodies) == 0 {
		return &ast.Constant{Value: identity}
	}
	return &ast.Arithmetic{Op: ast.Mul, Children: bodies}
}

// groundSingleCPF clones the lifted CPF prototype and grounds it against
// the args dictionary built by zipping the CPF's declared head arguments
// with the grounded variable's actual object tuple (§4.1 "Ground pvariables
// and CPFs", mirroring RDDLGrounder.py's _ground_single_cpf).
func (g *Grounder) groundSingleCPF(headArgs []string, body ast.Expr, variableArgs []string, varianceErrCtx string) (ast.Expr, error) {
	if len(headArgs) == 0 {
		return g.groundExpr(body, map[string]string{})
	}
	if len(headArgs) != len(variableArgs) {
		return nil, rerrors.WrapReport(rerrors.New(rerrors.GRD003,
			"ground instance <%s> is of arity %d but was expected to be of arity %d according to declaration",
			varianceErrCtx, len(variableArgs), len(headArgs)))
	}
	dic := make(map[string]string, len(headArgs))
	for i, a := range headArgs {
		dic[a] = variableArgs[i]
	}
	return g.groundExpr(body, dic)
}
