package rlenv

import (
	"github.com/google/uuid"

	rerrors "github.com/rddlgo/rddlgo/internal/errors"
	"github.com/rddlgo/rddlgo/internal/model"
	"github.com/rddlgo/rddlgo/internal/sim"
)

// Environment adapts a Simulator to the RL surface described in §6: reset,
// step, action_space, observation_space, and the horizon/discount/
// numConcurrentActions/non_fluents read-only accessors.
type Environment struct {
	sim *sim.Simulator
	m   *model.Model

	actionSpace      map[string]Space
	observationSpace map[string]Space

	enforceActionConstraints bool

	episodeID string
	stepCount int
	done      bool
	lastObs   map[string]any
}

// New constructs an Environment over m, seeded deterministically. Action
// and observation spaces are built once here, from the intersection of
// preconditions/invariants the underlying simulator derives (§4.3 "At
// construction").
func New(m *model.Model, seed uint64, enforceActionConstraints bool) *Environment {
	s := sim.New(m, seed)
	bounds := convertBounds(s.Bounds())

	e := &Environment{
		sim:                      s,
		m:                        m,
		actionSpace:              buildSpaces(actionDefaults(m), actionRanges(m), bounds),
		enforceActionConstraints: enforceActionConstraints,
	}
	if m.IsPOMDP() {
		e.observationSpace = buildSpaces(observDefaults(m), observRanges(m), bounds)
	} else {
		e.observationSpace = buildSpaces(stateDefaults(m), stateRanges(m), bounds)
	}
	return e
}

func convertBounds(b map[string]sim.Bound) map[string]Bound {
	out := make(map[string]Bound, len(b))
	for k, v := range b {
		out[k] = Bound{Low: v.Low, High: v.High}
	}
	return out
}

// ActionSpace returns the action-space descriptor built at construction.
func (e *Environment) ActionSpace() map[string]Space { return e.actionSpace }

// ObservationSpace returns the observation-space descriptor built at
// construction.
func (e *Environment) ObservationSpace() map[string]Space { return e.observationSpace }

// Horizon, Discount, NumConcurrentActions, and NonFluents are read-only
// accessors (§6 "RL surface").
func (e *Environment) Horizon() int               { return e.m.Horizon }
func (e *Environment) Discount() float64          { return e.m.Discount }
func (e *Environment) NumConcurrentActions() int  { return e.m.MaxAllowedActions }
func (e *Environment) NonFluents() map[string]any { return e.m.NonFluents }

// EpisodeID returns the identifier stamped by the most recent Reset.
func (e *Environment) EpisodeID() string { return e.episodeID }

// Reset resets the simulator and the environment's own step counters, and
// stamps a fresh episode ID (§4.3 "reset").
func (e *Environment) Reset() (map[string]any, error) {
	obs, _, err := e.sim.Reset()
	if err != nil {
		return nil, err
	}
	e.episodeID = uuid.New().String()
	e.stepCount = 0
	e.done = false
	e.lastObs = obs
	return obs, nil
}

// Step adapts the simulator's step to the RL contract (§4.3 "step"):
// returning the last observation with reward 0 once done, enforcing
// max_allowed_actions, coercing bool-ranged action values against the action
// space (values are not clipped to the space bounds), optionally checking
// preconditions, and tracking the step count
// against the horizon independently of the simulator's own terminal check.
func (e *Environment) Step(actions map[string]any) (observation map[string]any, reward float64, done bool, err error) {
	if e.done {
		return e.lastObs, 0, true, nil
	}

	if len(actions) > e.m.MaxAllowedActions {
		return nil, 0, false, rerrors.WrapReport(rerrors.New(rerrors.ENV001,
			"%d actions supplied but only %d are allowed", len(actions), e.m.MaxAllowedActions))
	}

	coerced := e.coerceActions(actions)

	if e.enforceActionConstraints {
		if err := e.sim.CheckActionPreconditions(coerced); err != nil {
			return nil, 0, false, err
		}
	}

	obs, r, simDone, err := e.sim.Step(coerced)
	if err != nil {
		return nil, 0, false, err
	}

	if !simDone {
		if err := e.sim.CheckStateInvariants(); err != nil {
			return nil, 0, false, err
		}
	}

	e.stepCount++
	done = simDone || e.stepCount >= e.m.Horizon
	e.done = done
	e.lastObs = obs

	return obs, r, done, nil
}

// coerceActions copies each supplied action, coercing bool action values via
// bool(v) from Discrete(2) (§4.3 step 3). The result holds only the supplied
// actions; the simulator merges in the declared defaults for the rest.
func (e *Environment) coerceActions(actions map[string]any) map[string]any {
	out := make(map[string]any, len(actions))
	for name, v := range actions {
		space, ok := e.actionSpace[name]
		if !ok {
			out[name] = v
			continue
		}
		out[name] = coerce(v, space)
	}
	return out
}

func coerce(v any, space Space) any {
	if space.Kind == KindDiscrete && space.N == 2 && space.Start == 0 {
		return toBool(v)
	}
	return v
}

func toBool(v any) bool {
	switch n := v.(type) {
	case bool:
		return n
	case float64:
		return n != 0
	case int64:
		return n != 0
	case int:
		return n != 0
	default:
		return false
	}
}
