package fuzzy

import (
	"github.com/rddlgo/rddlgo/internal/ast"
	rerrors "github.com/rddlgo/rddlgo/internal/errors"
	"github.com/rddlgo/rddlgo/internal/model"
)

// PRNGKey is an explicit, threaded PRNG seat (§9 "Global PRNG": "the
// differentiable rollout must make the PRNG key an explicit argument
// threaded through the fold so the rollout remains a pure function").
// RDDLGO's relaxations below are deterministic, so the key is carried and
// split but never consumed; it exists so a future stochastic relaxation can
// be wired in without changing the Rollout signature.
type PRNGKey uint64

// Split derives two independent-looking child keys from k, mirroring the
// split-don't-mutate PRNG discipline the fold must honor.
func Split(k PRNGKey) (PRNGKey, PRNGKey) {
	a := uint64(k)*6364136223846793005 + 1442695040888963407
	b := uint64(k) ^ a
	return PRNGKey(a), PRNGKey(b)
}

// ErrFlags is an OR-folded bitset: bit i set means a fold step whose index
// modulo 64 is i raised an error (§4.4 "Errors occurring inside any fold step are OR-folded into an
// error bitset that is returned alongside the reward").
type ErrFlags uint64

// Rollout compiles and executes the Grounded Model's dynamics as a fixed-
// length, pure fold over horizon steps (§4.4). plan supplies one action
// overlay per step; entries beyond len(plan) reuse the action defaults.
// Compilation fails fast (before the fold starts) if any CPF reaches a
// random-variable family with no supported relaxation.
func Rollout(m *model.Model, logic Logic, plan []map[string]any, initialState map[string]any, key PRNGKey) (cumulativeReward float64, finalState map[string]any, nextKey PRNGKey, errFlags ErrFlags, err error) {
	if err := checkCompilable(m); err != nil {
		return 0, nil, key, 0, err
	}

	state := make(map[string]any, len(initialState))
	for k, v := range initialState {
		state[k] = v
	}

	r := &roller{m: m, logic: logic}

	for step := 0; step < m.Horizon; step++ {
		var actions map[string]any
		if step < len(plan) {
			actions = plan[step]
		}
		key, _ = Split(key)

		reward, next, stepErr := r.foldStep(state, actions)
		if stepErr != nil {
			errFlags |= 1 << uint(step%64)
			continue
		}
		cumulativeReward += reward
		state = next
	}

	return cumulativeReward, state, key, errFlags, nil
}

// checkCompilable walks every CPF, the reward, and the terminals looking
// for a RandomVar family the fuzzy path cannot relax (§4.4: "Poisson and
// Gamma MUST fail compilation with NotImplemented unless a relaxation is
// supplied").
func checkCompilable(m *model.Model) error {
	var firstErr error
	check := func(e ast.Expr) {
		if firstErr != nil || e == nil {
			return
		}
		ast.Walk(e, func(n ast.Expr) {
			if firstErr != nil {
				return
			}
			rv, ok := n.(*ast.RandomVar)
			if !ok {
				return
			}
			switch rv.Dist {
			case "Poisson", "Gamma":
				firstErr = rerrors.WrapReport(rerrors.New(rerrors.FUZ001,
					"random-variable family %q has no supported fuzzy relaxation", rv.Dist))
			}
		})
	}

	for _, e := range m.CPFs {
		check(e)
	}
	check(m.Reward)
	for _, e := range m.Terminals {
		check(e)
	}
	return firstErr
}

// roller holds the compiled-rollout's read-only references; it carries no
// mutable state itself (state is threaded explicitly through foldStep).
type roller struct {
	m     *model.Model
	logic Logic
}

// foldStep evaluates every CPF in stratified order against state merged
// with actions, then the reward, producing the next state map. It never
// mutates its inputs (§5 "The fuzzy rollout is pure").
func (r *roller) foldStep(state, actions map[string]any) (float64, map[string]any, error) {
	env := make(map[string]any, len(state)+len(r.m.Actions)+len(r.m.NonFluents))
	for k, v := range r.m.NonFluents {
		env[k] = v
	}
	for k, v := range r.m.Actions {
		env[k] = v
	}
	for k, v := range state {
		env[k] = v
	}
	for k, v := range actions {
		env[k] = v
	}

	primed := map[string]any{}
	for _, name := range r.m.CPFOrder[0] {
		if next, isState := r.m.NextState[name]; isState {
			v, err := r.eval(r.m.CPFs[next], env, primed)
			if err != nil {
				return 0, nil, err
			}
			primed[next] = v
		}
	}
	for _, level := range r.m.Levels() {
		if level == 0 {
			continue
		}
		for _, name := range r.m.CPFOrder[level] {
			v, err := r.eval(r.m.CPFs[name], env, primed)
			if err != nil {
				return 0, nil, err
			}
			env[name] = v
			primed[name] = v
		}
	}

	rewardVal, err := r.eval(r.m.Reward, env, primed)
	if err != nil {
		return 0, nil, err
	}

	next := make(map[string]any, len(state))
	for name, nextName := range r.m.NextState {
		next[name] = primed[nextName]
	}
	return rewardVal, next, nil
}
