package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rddlgo/rddlgo/internal/ast"
	rerrors "github.com/rddlgo/rddlgo/internal/errors"
	"github.com/rddlgo/rddlgo/internal/model"
)

func pvar(name string) *ast.PVar { return &ast.PVar{Name: name} }
func konst(v any) *ast.Constant  { return &ast.Constant{Value: v} }

// toggleModel is scenario 1 (§8): a single boolean state fluent flips every
// step, reward is always 0.
func toggleModel() *model.Model {
	m := model.New()
	m.States["p"] = false
	m.StateRanges["p"] = "bool"
	m.NextState["p"] = "p'"
	m.PrevState["p'"] = "p"
	m.InitState["p"] = false
	m.CPFs["p'"] = &ast.Boolean{Op: ast.Not, Children: []ast.Expr{pvar("p")}}
	m.CPFOrder[0] = []string{"p"}
	m.Reward = konst(0.0)
	m.Horizon = 3
	m.Discount = 1.0
	return m
}

// counterModel is scenario 2 (§8): an int counter with a termination
// condition and reward equal to the freshly sampled count.
func counterModel() *model.Model {
	m := model.New()
	m.States["c"] = int64(0)
	m.StateRanges["c"] = "int"
	m.NextState["c"] = "c'"
	m.PrevState["c'"] = "c"
	m.InitState["c"] = int64(0)
	m.CPFs["c'"] = &ast.Arithmetic{Op: ast.Add, Children: []ast.Expr{pvar("c"), konst(1.0)}}
	m.CPFOrder[0] = []string{"c"}
	m.Terminals = []ast.Expr{&ast.Relational{Op: ast.Ge, Children: []ast.Expr{pvar("c'"), konst(2.0)}}}
	m.Reward = pvar("c'")
	m.Horizon = 10
	m.Discount = 1.0
	return m
}

func TestResetReturnsInitialState(t *testing.T) {
	sim := New(toggleModel(), 1)
	obs, done, err := sim.Reset()
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, false, obs["p"])
	assert.Equal(t, PhaseReady, sim.Phase())
}

func TestStepTogglesBooleanState(t *testing.T) {
	sim := New(toggleModel(), 1)
	_, _, err := sim.Reset()
	require.NoError(t, err)

	obs, reward, done, err := sim.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, true, obs["p"])
	assert.Equal(t, 0.0, reward)
	assert.False(t, done)

	obs, _, done, err = sim.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, false, obs["p"])
	assert.False(t, done)

	obs, _, done, err = sim.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, true, obs["p"])
	assert.True(t, done)
}

func TestStepAfterDoneIsNoOp(t *testing.T) {
	sim := New(toggleModel(), 1)
	sim.Reset()
	sim.Step(nil)
	sim.Step(nil)
	obs, reward, done, err := sim.Step(nil)
	require.NoError(t, err)
	require.True(t, done)

	obs2, reward2, done2, err := sim.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, obs, obs2)
	assert.Equal(t, reward, reward2)
	assert.True(t, done2)
}

func TestCounterTerminatesWithCumulativeReward(t *testing.T) {
	sim := New(counterModel(), 1)
	_, _, err := sim.Reset()
	require.NoError(t, err)

	_, r1, done1, err := sim.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, r1)
	assert.False(t, done1)

	_, r2, done2, err := sim.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, r2)
	assert.True(t, done2)

	assert.Equal(t, 3.0, r1+r2)
}

func TestHorizonZeroTerminatesImmediately(t *testing.T) {
	m := toggleModel()
	m.Horizon = 0
	sim := New(m, 1)
	_, done, err := sim.Reset()
	require.NoError(t, err)
	assert.False(t, done)

	_, _, done, err = sim.Step(nil)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestDivisionByZeroReportsSIM001(t *testing.T) {
	m := toggleModel()
	m.CPFs["p'"] = &ast.Arithmetic{Op: ast.Div, Children: []ast.Expr{konst(1.0), konst(0.0)}}
	sim := New(m, 1)
	sim.Reset()

	_, _, _, err := sim.Step(nil)
	require.Error(t, err)
	r, ok := rerrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, rerrors.SIM001, r.Code)
}

func TestPreconditionViolationReportsSIM004(t *testing.T) {
	m := toggleModel()
	m.Actions["a"] = int64(0)
	m.ActionRanges["a"] = "int"
	m.Preconditions = []ast.Expr{
		&ast.Relational{Op: ast.Le, Children: []ast.Expr{pvar("a"), konst(5.0)}},
	}
	sim := New(m, 1)
	sim.Reset()

	err := sim.CheckActionPreconditions(map[string]any{"a": int64(7)})
	require.Error(t, err)
	r, ok := rerrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, rerrors.SIM004, r.Code)
}

func TestInvariantViolationReportsSIM003(t *testing.T) {
	m := toggleModel()
	m.Invariants = []ast.Expr{&ast.Boolean{Op: ast.Not, Children: []ast.Expr{pvar("p")}}}
	sim := New(m, 1)
	sim.Reset()

	_, _, _, err := sim.Step(nil)
	require.NoError(t, err)

	err = sim.CheckStateInvariants()
	require.Error(t, err)
	r, ok := rerrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, rerrors.SIM003, r.Code)
}

func TestBoundsIntersectsPreconditionsAndInvariants(t *testing.T) {
	m := toggleModel()
	m.Actions["a"] = int64(0)
	m.ActionRanges["a"] = "int"
	m.Preconditions = []ast.Expr{
		&ast.Boolean{Op: ast.And, Children: []ast.Expr{
			&ast.Relational{Op: ast.Ge, Children: []ast.Expr{pvar("a"), konst(0.0)}},
			&ast.Relational{Op: ast.Le, Children: []ast.Expr{pvar("a"), konst(5.0)}},
		}},
	}
	sim := New(m, 1)

	b := sim.Bounds()["a"]
	assert.Equal(t, 0.0, b.Low)
	assert.Equal(t, 5.0, b.High)
}

func TestDiscreteRejectsNegativeWeight(t *testing.T) {
	sim := New(toggleModel(), 1)
	_, err := sim.sampleDiscrete([]any{1.0, -0.5})
	require.Error(t, err)
	r, ok := rerrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, rerrors.SIM002, r.Code)
}
