// Package scenarios hand-builds Lifted Models for the six end-to-end
// examples the simulator/environment contract is specified against: a
// two-object universe {o1, o2} of type obj exercising boolean toggling,
// termination, aggregation, precondition enforcement, partial observability,
// and grounder warnings. They double as demo content for cmd/rddlsim and as
// shared fixtures any package's tests can build on.
package scenarios

import (
	"github.com/rddlgo/rddlgo/internal/ast"
	"github.com/rddlgo/rddlgo/internal/lifted"
)

func pv(name string, args ...string) *ast.PVar { return &ast.PVar{Name: name, Args: args} }
func konst(v any) *ast.Constant                { return &ast.Constant{Value: v} }

func twoObjectUniverse() lifted.NonFluents {
	return lifted.NonFluents{
		Objects: []lifted.TypeEntry{{Type: "obj", Objects: []string{"o1", "o2"}}},
	}
}

// Named looks up a scenario by name. The bool result reports whether name
// was recognized.
func Named(name string) (lifted.Model, bool) {
	builders := map[string]func() lifted.Model{
		"boolean-toggle":           BooleanToggle,
		"counter-termination":      CounterTermination,
		"aggregation":              Aggregation,
		"precondition-enforcement": PreconditionEnforcement,
		"pomdp-observation":        POMDPObservation,
		"grounder-warning":         GrounderWarning,
	}
	b, ok := builders[name]
	if !ok {
		return lifted.Model{}, false
	}
	return b(), true
}

// Names lists every scenario name Named accepts, in a fixed display order.
func Names() []string {
	return []string{
		"boolean-toggle",
		"counter-termination",
		"aggregation",
		"precondition-enforcement",
		"pomdp-observation",
		"grounder-warning",
	}
}

// BooleanToggle: state-fluent p(?x):bool default false, CPF p'(?x) = ~p(?x),
// horizon 3, reward always 0.
func BooleanToggle() lifted.Model {
	return lifted.Model{
		Domain: lifted.Domain{
			Pvariables: []lifted.Pvariable{
				{Name: "p", ParamTypes: []string{"obj"}, Range: lifted.RangeBool, FluentType: lifted.StateFluent, Default: false},
			},
			CPFs: []lifted.CPF{
				{Head: "p'", HeadArgs: []string{"?x"}, Expr: &ast.Boolean{Op: ast.Not, Children: []ast.Expr{pv("p", "?x")}}},
			},
			Reward: konst(0.0),
		},
		Instance: lifted.Instance{
			Horizon:          3,
			Discount:         1.0,
			MaxNonDefActions: lifted.MaxActions{PosInf: true},
			NonFluents:       twoObjectUniverse(),
		},
	}
}

// CounterTermination: int state c default 0, CPF c'=c+1, terminal c'>=2
// (read against the freshly sampled value, so the second step ends the
// episode), reward c', horizon 10.
func CounterTermination() lifted.Model {
	return lifted.Model{
		Domain: lifted.Domain{
			Pvariables: []lifted.Pvariable{
				{Name: "c", Range: lifted.RangeInt, FluentType: lifted.StateFluent, Default: int64(0)},
			},
			CPFs: []lifted.CPF{
				{Head: "c'", Expr: &ast.Arithmetic{Op: ast.Add, Children: []ast.Expr{pv("c"), konst(1.0)}}},
			},
			Terminals: []ast.Expr{
				&ast.Relational{Op: ast.Ge, Children: []ast.Expr{pv("c'"), konst(2.0)}},
			},
			Reward: pv("c'"),
		},
		Instance: lifted.Instance{
			Horizon:          10,
			Discount:         1.0,
			MaxNonDefActions: lifted.MaxActions{PosInf: true},
			NonFluents:       twoObjectUniverse(),
		},
	}
}

// Aggregation: non-fluent w(?x):real = {o1:1.0, o2:2.0}, action a(?x):bool,
// reward sum_?x w(?x) * a(?x).
func Aggregation() lifted.Model {
	return lifted.Model{
		Domain: lifted.Domain{
			Pvariables: []lifted.Pvariable{
				{Name: "w", ParamTypes: []string{"obj"}, Range: lifted.RangeReal, FluentType: lifted.NonFluent, Default: 0.0},
				{Name: "a", ParamTypes: []string{"obj"}, Range: lifted.RangeBool, FluentType: lifted.ActionFluent, Default: false},
			},
			Reward: &ast.Aggregation{
				Op:   ast.Sum,
				Vars: []ast.TypedVar{{Name: "?x", Type: "obj"}},
				Body: &ast.Arithmetic{Op: ast.Mul, Children: []ast.Expr{pv("w", "?x"), pv("a", "?x")}},
			},
		},
		Instance: lifted.Instance{
			Horizon:          1,
			Discount:         1.0,
			MaxNonDefActions: lifted.MaxActions{PosInf: true},
			NonFluents: lifted.NonFluents{
				Objects: []lifted.TypeEntry{{Type: "obj", Objects: []string{"o1", "o2"}}},
				InitNonFluent: []lifted.NonFluentInit{
					{Name: "w", Args: []string{"o1"}, Value: 1.0},
					{Name: "w", Args: []string{"o2"}, Value: 2.0},
				},
			},
		},
	}
}

// PreconditionEnforcement: action a:int with default 0, precondition
// 0 <= a <= 5. No state fluents; reward always 0.
func PreconditionEnforcement() lifted.Model {
	return lifted.Model{
		Domain: lifted.Domain{
			Pvariables: []lifted.Pvariable{
				{Name: "a", Range: lifted.RangeInt, FluentType: lifted.ActionFluent, Default: int64(0)},
			},
			Preconds: []ast.Expr{
				&ast.Boolean{Op: ast.And, Children: []ast.Expr{
					&ast.Relational{Op: ast.Ge, Children: []ast.Expr{pv("a"), konst(0.0)}},
					&ast.Relational{Op: ast.Le, Children: []ast.Expr{pv("a"), konst(5.0)}},
				}},
			},
			Reward: konst(0.0),
		},
		Instance: lifted.Instance{
			Horizon:          1,
			Discount:         1.0,
			MaxNonDefActions: lifted.MaxActions{PosInf: true},
			NonFluents:       twoObjectUniverse(),
		},
	}
}

// POMDPObservation: state s:bool, observation o(?x):bool = s. isPOMDP=true;
// the observation space carries o_o1/o_o2, not s.
func POMDPObservation() lifted.Model {
	return lifted.Model{
		Domain: lifted.Domain{
			Pvariables: []lifted.Pvariable{
				{Name: "s", Range: lifted.RangeBool, FluentType: lifted.StateFluent, Default: false},
				{Name: "o", ParamTypes: []string{"obj"}, Range: lifted.RangeBool, FluentType: lifted.ObservFluent, Default: false},
			},
			CPFs: []lifted.CPF{
				{Head: "s'", Expr: pv("s")},
			},
			ObservationCPFs: []lifted.CPF{
				{Head: "o", HeadArgs: []string{"?x"}, Expr: pv("s")},
			},
			Reward: konst(0.0),
		},
		Instance: lifted.Instance{
			Horizon:          3,
			Discount:         1.0,
			MaxNonDefActions: lifted.MaxActions{PosInf: true},
			NonFluents:       twoObjectUniverse(),
		},
	}
}

// GrounderWarning: the non-fluents init block sets q_o1=3 where q is never
// declared; grounding must complete with a warning, not an error, and q_o1
// is unreachable from any CPF.
func GrounderWarning() lifted.Model {
	m := BooleanToggle()
	m.Instance.NonFluents.InitNonFluent = []lifted.NonFluentInit{
		{Name: "q", Args: []string{"o1"}, Value: 3.0},
	}
	return m
}
