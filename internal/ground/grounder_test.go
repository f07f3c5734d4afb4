package ground

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rddlgo/rddlgo/internal/ast"
	rerrors "github.com/rddlgo/rddlgo/internal/errors"
	"github.com/rddlgo/rddlgo/internal/lifted"
)

func pv(name string, args ...string) *ast.PVar {
	return &ast.PVar{Name: name, Args: args}
}

func boolFluent(name string, ft lifted.FluentType, def bool, paramTypes ...string) lifted.Pvariable {
	return lifted.Pvariable{Name: name, ParamTypes: paramTypes, Range: lifted.RangeBool, FluentType: ft, Default: def}
}

// toggleModel is a minimal one-object-free domain: a single boolean state
// fluent flips every step, with a reward of 1 whenever it is true.
func toggleModel() lifted.Model {
	return lifted.Model{
		Domain: lifted.Domain{
			Pvariables: []lifted.Pvariable{
				boolFluent("on", lifted.StateFluent, false),
				boolFluent("flip", lifted.ActionFluent, false),
			},
			CPFs: []lifted.CPF{
				{Head: "on'", Expr: &ast.Boolean{Op: ast.Not, Children: []ast.Expr{pv("on")}}},
			},
			Reward: &ast.Control{
				Cond: pv("on"),
				Then: &ast.Constant{Value: 1.0},
				Else: &ast.Constant{Value: 0.0},
			},
		},
		Instance: lifted.Instance{
			Horizon:          10,
			Discount:         1.0,
			MaxNonDefActions: lifted.MaxActions{PosInf: true},
		},
	}
}

func TestGroundProducesClosedModel(t *testing.T) {
	m, warnings, err := New(toggleModel()).Ground()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Contains(t, m.States, "on")
	assert.Equal(t, "on'", m.NextState["on"])
	assert.Contains(t, m.CPFs, "on'")
	assert.Contains(t, m.Actions, "flip")
	assert.Equal(t, 10, m.Horizon)
	assert.Equal(t, 1.0, m.Discount)
}

func TestGroundWithObjectsExpandsEveryTuple(t *testing.T) {
	lm := lifted.Model{
		Domain: lifted.Domain{
			Pvariables: []lifted.Pvariable{
				boolFluent("open", lifted.StateFluent, false, "room"),
				boolFluent("toggle", lifted.ActionFluent, false, "room"),
			},
			CPFs: []lifted.CPF{
				{Head: "open'", HeadArgs: []string{"?r"}, Expr: &ast.Boolean{
					Op:       ast.Or,
					Children: []ast.Expr{pv("open", "?r"), pv("toggle", "?r")},
				}},
			},
			Reward: &ast.Constant{Value: 0.0},
		},
		Instance: lifted.Instance{
			Horizon:          5,
			Discount:         0.9,
			MaxNonDefActions: lifted.MaxActions{N: 1},
			NonFluents: lifted.NonFluents{
				Objects: []lifted.TypeEntry{{Type: "room", Objects: []string{"r1", "r2"}}},
			},
		},
	}

	m, _, err := New(lm).Ground()
	require.NoError(t, err)

	assert.Contains(t, m.States, "open_r1")
	assert.Contains(t, m.States, "open_r2")
	assert.Contains(t, m.CPFs, "open_r1'")
	assert.Contains(t, m.CPFs, "open_r2'")
	assert.Equal(t, "open", m.GVarToPVar["open_r1"])
	assert.Equal(t, 1, m.MaxAllowedActions)
}

func TestGroundMissingCPFReportsGRD002(t *testing.T) {
	lm := toggleModel()
	lm.Domain.CPFs = nil

	_, _, err := New(lm).Ground()
	require.Error(t, err)
	r, ok := rerrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, rerrors.GRD002, r.Code)
}

func TestGroundNegativeHorizonReportsGRD006(t *testing.T) {
	lm := toggleModel()
	lm.Instance.Horizon = -1

	_, _, err := New(lm).Ground()
	require.Error(t, err)
	r, ok := rerrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, rerrors.GRD006, r.Code)
}

func TestGroundDiscountOutOfRangeReportsGRD006(t *testing.T) {
	lm := toggleModel()
	lm.Instance.Discount = 1.5

	_, _, err := New(lm).Ground()
	require.Error(t, err)
	r, ok := rerrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, rerrors.GRD006, r.Code)
}

func TestGroundUndefinedNonFluentWarns(t *testing.T) {
	lm := toggleModel()
	lm.Instance.NonFluents.InitNonFluent = []lifted.NonFluentInit{
		{Name: "ghost", Value: 1.0},
	}

	_, warnings, err := New(lm).Ground()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "ghost")
}

func TestGroundLegacyConstraintsWarn(t *testing.T) {
	lm := toggleModel()
	lm.Domain.Constraints = []ast.Expr{&ast.Constant{Value: true}}

	_, warnings, err := New(lm).Ground()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "not implemented")
}

func TestGroundSameLevelCycleReportsGRD004(t *testing.T) {
	lm := toggleModel()
	level := 1
	lm.Domain.Pvariables = append(lm.Domain.Pvariables,
		lifted.Pvariable{Name: "a", Range: lifted.RangeBool, FluentType: lifted.DerivedFluent, Default: false, Level: &level},
		lifted.Pvariable{Name: "b", Range: lifted.RangeBool, FluentType: lifted.DerivedFluent, Default: false, Level: &level},
	)
	lm.Domain.DerivedCPFs = []lifted.CPF{
		{Head: "a", Expr: pv("b")},
		{Head: "b", Expr: pv("a")},
	}

	_, _, err := New(lm).Ground()
	require.Error(t, err)
	r, ok := rerrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, rerrors.GRD004, r.Code)
}
