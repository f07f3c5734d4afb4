// Package ground implements the Grounder (C3): it expands every pvariable
// over its object arguments and rewrites every CPF's expression tree into a
// closed form referencing only grounded variable names (§4.1).
package ground

import (
	"fmt"

	"github.com/rddlgo/rddlgo/internal/ast"
	rerrors "github.com/rddlgo/rddlgo/internal/errors"
	"github.com/rddlgo/rddlgo/internal/lifted"
	"github.com/rddlgo/rddlgo/internal/model"
	"github.com/rddlgo/rddlgo/internal/objects"
)

// Warning is a non-fatal grounding diagnostic (§7 propagation policy:
// "Warnings ... are reported once per call site without halting").
type Warning struct {
	Message string
}

func (w Warning) String() string { return w.Message }

// Grounder holds the mutable bookkeeping state used while building a
// model.Model from a lifted.Model (§4.1 "Contract").
type Grounder struct {
	lm       lifted.Model
	universe *objects.Universe
	pvars    map[string]lifted.Pvariable
	m        *model.Model
	warnings []Warning
}

// New constructs a Grounder for lm. Call Ground to produce the closed
// model.Model.
func New(lm lifted.Model) *Grounder {
	return &Grounder{lm: lm, pvars: map[string]lifted.Pvariable{}}
}

// Ground runs every phase in §4.1 order and returns the closed Grounded
// Model, any warnings collected along the way, or the first fatal error
// (Grounder errors are fatal: construction aborts, no partial environment
// is exposed, §7).
func (g *Grounder) Ground() (*model.Model, []Warning, error) {
	g.m = model.New()

	for _, p := range g.lm.Domain.Pvariables {
		g.pvars[p.Name] = p
	}

	if err := g.extractObjects(); err != nil {
		return nil, nil, err
	}
	if err := g.groundNonFluents(); err != nil {
		return nil, nil, err
	}
	if err := g.groundPvariablesAndCPFs(); err != nil {
		return nil, nil, err
	}

	reward, err := g.groundExpr(g.lm.Domain.Reward, map[string]string{})
	if err != nil {
		return nil, nil, err
	}
	g.m.Reward = reward

	if err := g.groundConstraints(); err != nil {
		return nil, nil, err
	}
	g.groundInitState()

	if err := g.deriveRollout(); err != nil {
		return nil, nil, err
	}
	if err := g.checkLevelCycles(); err != nil {
		return nil, nil, err
	}

	g.m.Universe = g.universe
	return g.m, g.warnings, nil
}

func (g *Grounder) warnf(format string, args ...any) {
	g.warnings = append(g.warnings, Warning{Message: fmt.Sprintf(format, args...)})
}

// extractObjects is §4.1 phase 1: an empty universe is permitted.
func (g *Grounder) extractObjects() error {
	u, err := lifted.BuildUniverse(g.lm.Instance.NonFluents.Objects)
	if err != nil {
		return rerrors.WrapReport(rerrors.New(rerrors.GRD001, "%s", err.Error()))
	}
	g.universe = u
	return nil
}

// groundNonFluents is §4.1 phase 2.
func (g *Grounder) groundNonFluents() error {
	validNonFluents := map[string]bool{}
	for _, p := range g.lm.Domain.Pvariables {
		if p.FluentType == lifted.NonFluent {
			validNonFluents[p.Name] = true
		}
	}

	for _, init := range g.lm.Instance.NonFluents.InitNonFluent {
		pvar, declared := g.pvars[init.Name]
		if !declared {
			g.warnf("non-fluents block initializes an undefined pvariable <%s>", init.Name)
		} else if !validNonFluents[init.Name] {
			g.warnf("non-fluents block initializes pvariable <%s>, which is not declared non-fluent", init.Name)
		}

		name := init.Name
		if len(init.Args) > 0 {
			name = groundedName(init.Name, init.Args)
		}
		g.m.NonFluents[name] = init.Value
		if declared {
			g.m.GVarToType[name] = pvar.Range
		}
		g.m.GVarToPVar[name] = init.Name
	}
	return nil
}

// groundPvariablesAndCPFs is §4.1 phase 3: enumerate every pvariable's
// parameter tuples and dispatch by fluent type.
func (g *Grounder) groundPvariablesAndCPFs() error {
	for _, p := range g.lm.Domain.Pvariables {
		variations, err := g.universe.Product(p.ParamTypes)
		if err != nil {
			return rerrors.WrapReport(rerrors.New(rerrors.GRD001, "%s", err.Error()))
		}

		type grounded struct {
			name string
			args []string
		}
		gvars := make([]grounded, len(variations))
		for i, v := range variations {
			gvars[i] = grounded{name: groundedName(p.Name, v), args: v}
		}

		for _, gv := range gvars {
			g.m.GVarToPVar[gv.name] = p.Name
		}

		switch p.FluentType {
		case lifted.NonFluent:
			for _, gv := range gvars {
				if _, exists := g.m.NonFluents[gv.name]; !exists {
					g.m.NonFluents[gv.name] = p.Default
				}
				g.m.GVarToType[gv.name] = p.Range
			}

		case lifted.ActionFluent:
			for _, gv := range gvars {
				g.m.Actions[gv.name] = p.Default
				g.m.ActionRanges[gv.name] = p.Range
				g.m.GVarToType[gv.name] = p.Range
			}

		case lifted.StateFluent:
			cpf, ok := findCPF(g.lm.Domain.CPFs, p.Name+"'")
			if !ok {
				return rerrors.WrapReport(rerrors.New(rerrors.GRD002, "CPF <%s> is missing a valid definition", p.Name))
			}
			for _, gv := range gvars {
				bodyCopy := ast.Copy(cpf.Expr)
				groundedExpr, err := g.groundSingleCPF(cpf.HeadArgs, bodyCopy, gv.args, gv.name)
				if err != nil {
					return err
				}
				next := gv.name + prime
				g.m.States[gv.name] = p.Default
				g.m.StateRanges[gv.name] = p.Range
				g.m.NextState[gv.name] = next
				g.m.PrevState[next] = gv.name
				g.m.CPFs[next] = groundedExpr
				g.m.CPFOrder[0] = append(g.m.CPFOrder[0], gv.name)
				g.m.GVarToCPFOrder[gv.name] = 0
				g.m.GVarToType[gv.name] = p.Range
				g.m.GVarToPVar[next] = p.Name
				g.m.GVarToType[next] = p.Range
			}

		case lifted.DerivedFluent:
			cpf, ok := findCPF(g.lm.Domain.DerivedCPFs, p.Name)
			if !ok {
				return rerrors.WrapReport(rerrors.New(rerrors.GRD002, "CPF <%s> is missing a valid definition", p.Name))
			}
			level := 1
			if p.Level != nil {
				level = *p.Level
			}
			for _, gv := range gvars {
				bodyCopy := ast.Copy(cpf.Expr)
				groundedExpr, err := g.groundSingleCPF(cpf.HeadArgs, bodyCopy, gv.args, gv.name)
				if err != nil {
					return err
				}
				g.m.Derived[gv.name] = p.Default
				g.m.CPFs[gv.name] = groundedExpr
				g.m.CPFOrder[level] = append(g.m.CPFOrder[level], gv.name)
				g.m.GVarToCPFOrder[gv.name] = level
				g.m.GVarToType[gv.name] = p.Range
			}

		case lifted.IntermFluent:
			cpf, ok := findCPF(g.lm.Domain.IntermediateCPFs, p.Name)
			if !ok {
				return rerrors.WrapReport(rerrors.New(rerrors.GRD002, "CPF <%s> is missing a valid definition", p.Name))
			}
			level := 1
			if p.Level != nil {
				level = *p.Level
			}
			for _, gv := range gvars {
				bodyCopy := ast.Copy(cpf.Expr)
				groundedExpr, err := g.groundSingleCPF(cpf.HeadArgs, bodyCopy, gv.args, gv.name)
				if err != nil {
					return err
				}
				g.m.Interm[gv.name] = p.Default
				g.m.CPFs[gv.name] = groundedExpr
				g.m.CPFOrder[level] = append(g.m.CPFOrder[level], gv.name)
				g.m.GVarToCPFOrder[gv.name] = level
				g.m.GVarToType[gv.name] = p.Range
			}

		case lifted.ObservFluent:
			cpf, ok := findCPF(g.lm.Domain.ObservationCPFs, p.Name)
			if !ok {
				return rerrors.WrapReport(rerrors.New(rerrors.GRD002, "CPF <%s> is missing a valid definition", p.Name))
			}
			for _, gv := range gvars {
				bodyCopy := ast.Copy(cpf.Expr)
				groundedExpr, err := g.groundSingleCPF(cpf.HeadArgs, bodyCopy, gv.args, gv.name)
				if err != nil {
					return err
				}
				g.m.Observ[gv.name] = p.Default
				g.m.ObservRanges[gv.name] = p.Range
				g.m.CPFs[gv.name] = groundedExpr
				g.m.CPFOrder[0] = append(g.m.CPFOrder[0], gv.name)
				g.m.GVarToCPFOrder[gv.name] = 0
				g.m.GVarToType[gv.name] = p.Range
			}
		}
	}
	return nil
}

func findCPF(cpfs []lifted.CPF, head string) (lifted.CPF, bool) {
	for _, c := range cpfs {
		if c.Head == head {
			return c, true
		}
	}
	return lifted.CPF{}, false
}

// groundConstraints is §4.1 phase 5.
func (g *Grounder) groundConstraints() error {
	for _, t := range g.lm.Domain.Terminals {
		ge, err := g.groundExpr(t, map[string]string{})
		if err != nil {
			return err
		}
		g.m.Terminals = append(g.m.Terminals, ge)
	}
	for _, p := range g.lm.Domain.Preconds {
		ge, err := g.groundExpr(p, map[string]string{})
		if err != nil {
			return err
		}
		g.m.Preconditions = append(g.m.Preconditions, ge)
	}
	for _, inv := range g.lm.Domain.Invariants {
		ge, err := g.groundExpr(inv, map[string]string{})
		if err != nil {
			return err
		}
		g.m.Invariants = append(g.m.Invariants, ge)
	}
	if len(g.lm.Domain.Constraints) > 0 {
		g.warnf("state-action constraints are not implemented in this RDDL version and will be ignored")
	}
	return nil
}

// groundInitState is §4.1 phase 6.
func (g *Grounder) groundInitState() {
	g.m.InitState = make(map[string]any, len(g.m.States))
	for k, v := range g.m.States {
		g.m.InitState[k] = v
	}
	for _, init := range g.lm.Instance.InitState {
		key := init.Name
		if len(init.Args) > 0 {
			key = groundedName(init.Name, init.Args)
		}
		if _, ok := g.m.InitState[key]; ok {
			g.m.InitState[key] = init.Value
		} else {
			g.warnf("init-state block initializes an undefined state fluent <%s>", key)
		}
	}
}

// deriveRollout is §4.1 phase 7: horizon, discount, max-allowed-actions.
func (g *Grounder) deriveRollout() error {
	horizon := g.lm.Instance.Horizon
	if horizon < 0 {
		return rerrors.WrapReport(rerrors.New(rerrors.GRD006, "rollout horizon %d in the instance is not >= 0", horizon))
	}
	g.m.Horizon = horizon

	discount := g.lm.Instance.Discount
	if discount < 0.0 || discount > 1.0 {
		return rerrors.WrapReport(rerrors.New(rerrors.GRD006, "discount factor %v in the instance is not in [0, 1]", discount))
	}
	g.m.Discount = discount

	if g.lm.Instance.MaxNonDefActions.PosInf {
		g.m.MaxAllowedActions = len(g.m.Actions)
	} else {
		g.m.MaxAllowedActions = g.lm.Instance.MaxNonDefActions.N
	}
	return nil
}
