// Package sim implements the Simulator (C5): it holds the Grounded Model
// plus a mutable state snapshot and exposes reset/step over it, evaluating
// CPFs in strict stratification order and sampling from the single PRNG
// stream it owns (§4.2).
package sim

import (
	"math/rand/v2"

	rerrors "github.com/rddlgo/rddlgo/internal/errors"
	"github.com/rddlgo/rddlgo/internal/model"
)

// Phase is the simulator's lifecycle state (§4.2 "State machine").
type Phase int

const (
	PhaseFresh Phase = iota
	PhaseReady
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseFresh:
		return "fresh"
	case PhaseReady:
		return "ready"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Simulator is single-threaded and synchronous (§5): no operation suspends
// and the PRNG stream and state snapshot are owned exclusively by it.
type Simulator struct {
	m   *model.Model
	rng *rand.Rand

	state      map[string]any
	nonFluents map[string]any
	actions    map[string]any
	derived    map[string]any
	interm     map[string]any
	observ     map[string]any

	phase     Phase
	stepCount int
	lastObs   map[string]any
}

// New constructs a Simulator over m, seeded deterministically from seed.
func New(m *model.Model, seed uint64) *Simulator {
	return &Simulator{
		m:          m,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		nonFluents: m.NonFluents,
		phase:      PhaseFresh,
	}
}

// Phase reports the current lifecycle state.
func (s *Simulator) Phase() Phase { return s.phase }

// IsPOMDP reports whether the program declares any observation fluent
// (§4.2 "isPOMDP").
func (s *Simulator) IsPOMDP() bool { return s.m.IsPOMDP() }

// Reset copies init-state into the current snapshot and returns the initial
// observation with done=false (§4.2 "reset").
func (s *Simulator) Reset() (map[string]any, bool, error) {
	s.state = make(map[string]any, len(s.m.InitState))
	for k, v := range s.m.InitState {
		s.state[k] = v
	}
	s.actions = make(map[string]any, len(s.m.Actions))
	for k, v := range s.m.Actions {
		s.actions[k] = v
	}
	s.derived = make(map[string]any, len(s.m.Derived))
	s.interm = make(map[string]any, len(s.m.Interm))
	s.observ = make(map[string]any, len(s.m.Observ))

	s.phase = PhaseReady
	s.stepCount = 0

	obs, err := s.computeObservation()
	if err != nil {
		return nil, false, err
	}
	s.lastObs = obs
	return obs, false, nil
}

// Step merges actions with defaults, evaluates every CPF in stratified
// order, evaluates reward and terminals against the pre-collapse snapshot,
// collapses next-state into state, and recomputes the observation (§4.2
// "step" steps 1-6). Precondition and invariant checking are separate
// operations (CheckActionPreconditions, CheckStateInvariants); a caller
// that wants them enforced around a step runs them itself, matching the
// ordering guarantee in §5 ("preconditions run before CPFs ... invariants
// run after the state swap").
func (s *Simulator) Step(actions map[string]any) (observation map[string]any, reward float64, done bool, err error) {
	if s.phase == PhaseDone {
		return s.lastObs, 0, true, nil
	}

	s.mergeActions(actions)

	primed := map[string]any{}
	if err := s.evalStratifiedCPFs(primed); err != nil {
		return nil, 0, false, err
	}

	rewardVal, err := s.evalExpr(s.m.Reward, primed)
	if err != nil {
		return nil, 0, false, err
	}
	reward = toFloat(rewardVal)

	terminal, err := s.evalTerminals(primed)
	if err != nil {
		return nil, 0, false, err
	}

	for name, next := range s.m.NextState {
		s.state[name] = primed[next]
	}

	obs, err := s.computeObservation()
	if err != nil {
		return nil, 0, false, err
	}

	s.stepCount++
	done = terminal || s.stepCount >= s.m.Horizon
	if done {
		s.phase = PhaseDone
	}
	s.lastObs = obs

	return obs, reward, done, nil
}

// mergeActions overlays actions onto the declared action defaults (§4.2
// "step" step 1): actions mentioned override, any not mentioned take
// default.
func (s *Simulator) mergeActions(actions map[string]any) {
	merged := make(map[string]any, len(s.m.Actions))
	for k, v := range s.m.Actions {
		merged[k] = v
	}
	for k, v := range actions {
		merged[k] = v
	}
	s.actions = merged
}

// evalStratifiedCPFs evaluates all level-0 next-state CPFs first, then
// derived/interm CPFs at each declared level in ascending order (§4.2 step
// 2, §5 "CPFs run in strict level order"). Computed next-state values are
// written into primed, keyed by the primed grounded name.
func (s *Simulator) evalStratifiedCPFs(primed map[string]any) error {
	for _, name := range s.m.CPFOrder[0] {
		if next, isState := s.m.NextState[name]; isState {
			v, err := s.evalExpr(s.m.CPFs[next], primed)
			if err != nil {
				return err
			}
			primed[next] = v
		}
	}

	for _, level := range s.m.Levels() {
		if level == 0 {
			continue
		}
		for _, name := range s.m.CPFOrder[level] {
			v, err := s.evalExpr(s.m.CPFs[name], primed)
			if err != nil {
				return err
			}
			if _, isDerived := s.m.Derived[name]; isDerived {
				s.derived[name] = v
			} else {
				s.interm[name] = v
			}
		}
	}
	return nil
}

// computeObservation evaluates observation CPFs off the current state, or
// returns a copy of the state when the program declares none (§4.2 step 4).
func (s *Simulator) computeObservation() (map[string]any, error) {
	if !s.m.IsPOMDP() {
		out := make(map[string]any, len(s.state))
		for k, v := range s.state {
			out[k] = v
		}
		return out, nil
	}

	out := make(map[string]any, len(s.m.Observ))
	for name := range s.m.Observ {
		v, err := s.evalExpr(s.m.CPFs[name], nil)
		if err != nil {
			return nil, err
		}
		s.observ[name] = v
		out[name] = v
	}
	return out, nil
}

func (s *Simulator) evalTerminals(primed map[string]any) (bool, error) {
	for _, t := range s.m.Terminals {
		v, err := s.evalExpr(t, primed)
		if err != nil {
			return false, err
		}
		if toBool(v) {
			return true, nil
		}
	}
	return false, nil
}

// CheckActionPreconditions evaluates each precondition against actions
// merged with the declared defaults, without committing them; any false
// raises PreconditionViolated (§4.2 "check_action_preconditions").
func (s *Simulator) CheckActionPreconditions(actions map[string]any) error {
	merged := make(map[string]any, len(s.m.Actions))
	for k, v := range s.m.Actions {
		merged[k] = v
	}
	for k, v := range actions {
		merged[k] = v
	}

	saved := s.actions
	s.actions = merged
	defer func() { s.actions = saved }()

	for _, p := range s.m.Preconditions {
		v, err := s.evalExpr(p, nil)
		if err != nil {
			return err
		}
		if !toBool(v) {
			return rerrors.WrapReport(rerrors.New(rerrors.SIM004, "action precondition violated"))
		}
	}
	return nil
}

// CheckStateInvariants evaluates each invariant against the current state;
// any false raises InvariantViolated (§4.2 "check_state_invariants").
func (s *Simulator) CheckStateInvariants() error {
	for _, inv := range s.m.Invariants {
		v, err := s.evalExpr(inv, nil)
		if err != nil {
			return err
		}
		if !toBool(v) {
			return rerrors.WrapReport(rerrors.New(rerrors.SIM003, "state invariant violated"))
		}
	}
	return nil
}
