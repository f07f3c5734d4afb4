package errors

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDerivesPhaseFromRegistry(t *testing.T) {
	r := New(GRD002, "fluent <%s> has no CPF", "next_o1")
	assert.Equal(t, GRD002, r.Code)
	assert.Equal(t, "ground", r.Phase)
	assert.Equal(t, "fluent <next_o1> has no CPF", r.Message)
}

func TestWrapReportSurvivesWrapping(t *testing.T) {
	r := New(SIM004, "precondition failed")
	wrapped := WrapReport(r)
	doubled := errors.Join(wrapped)

	got, ok := AsReport(doubled)
	require.True(t, ok)
	assert.Same(t, r, got)
}

func TestWithFluentAndWithData(t *testing.T) {
	r := New(SIM001, "division by zero").WithFluent("c'").WithData(map[string]any{"divisor": 0})
	assert.Equal(t, "c'", r.Fluent)
	assert.Equal(t, 0, r.Data["divisor"])
}

func TestToJSONRoundTrips(t *testing.T) {
	r := New(ENV001, "too many actions")
	s, err := r.ToJSON(true)
	require.NoError(t, err)
	assert.Contains(t, s, `"code":"ENV001"`)

	var back Report
	require.NoError(t, json.Unmarshal([]byte(s), &back))
	assert.Equal(t, *r, back)
}
