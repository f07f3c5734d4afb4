package repl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rddlgo/rddlgo/internal/ast"
	"github.com/rddlgo/rddlgo/internal/model"
)

func pvar(name string) *ast.PVar { return &ast.PVar{Name: name} }
func konst(v any) *ast.Constant  { return &ast.Constant{Value: v} }

func toggleModel() *model.Model {
	m := model.New()
	m.States["p"] = false
	m.StateRanges["p"] = "bool"
	m.NextState["p"] = "p'"
	m.PrevState["p'"] = "p"
	m.InitState["p"] = false
	m.Actions["flip"] = false
	m.ActionRanges["flip"] = "bool"
	m.CPFs["p'"] = &ast.Boolean{Op: ast.Or, Children: []ast.Expr{pvar("p"), pvar("flip")}}
	m.CPFOrder[0] = []string{"p"}
	m.Reward = konst(0.0)
	m.Horizon = 5
	m.Discount = 1.0
	m.MaxAllowedActions = 1
	return m
}

func TestParseValueCoercesTypes(t *testing.T) {
	assert.Equal(t, true, parseValue("true"))
	assert.Equal(t, false, parseValue("false"))
	assert.Equal(t, int64(7), parseValue("7"))
	assert.Equal(t, 1.5, parseValue("1.5"))
	assert.Equal(t, "north", parseValue("north"))
}

func TestStepAppliesParsedActions(t *testing.T) {
	r := New(toggleModel(), 1, false, "")
	_, err := r.env.Reset()
	assert.NoError(t, err)

	var out bytes.Buffer
	r.step("flip=true", &out)
	assert.Contains(t, out.String(), "p = true")
}

func TestStepRejectsMalformedAssignment(t *testing.T) {
	r := New(toggleModel(), 1, false, "")
	_, err := r.env.Reset()
	assert.NoError(t, err)

	var out bytes.Buffer
	r.step("flip", &out)
	assert.Contains(t, out.String(), "malformed action")
}

func TestHandleCommandSpacesListsDescriptors(t *testing.T) {
	r := New(toggleModel(), 1, false, "")
	var out bytes.Buffer
	r.HandleCommand(":spaces", &out)
	assert.Contains(t, out.String(), "Discrete(2, start=0)")
}
