package scenarios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rddlgo/rddlgo/internal/ground"
	"github.com/rddlgo/rddlgo/internal/rlenv"
)

func TestNamedListsEveryScenario(t *testing.T) {
	for _, name := range Names() {
		_, ok := Named(name)
		assert.True(t, ok, "Named(%q) should resolve", name)
	}
	_, ok := Named("not-a-scenario")
	assert.False(t, ok)
}

func TestBooleanToggleOscillates(t *testing.T) {
	lm, ok := Named("boolean-toggle")
	require.True(t, ok)
	gm, warnings, err := ground.New(lm).Ground()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	env := rlenv.New(gm, 0, false)
	_, err = env.Reset()
	require.NoError(t, err)

	for _, want := range []bool{true, false, true} {
		obs, reward, _, err := env.Step(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, 0.0, reward)
		assert.Equal(t, want, obs["p_o1"])
		assert.Equal(t, want, obs["p_o2"])
	}
}

func TestCounterTerminationEndsAtTwo(t *testing.T) {
	lm, ok := Named("counter-termination")
	require.True(t, ok)
	gm, _, err := ground.New(lm).Ground()
	require.NoError(t, err)

	env := rlenv.New(gm, 0, false)
	_, err = env.Reset()
	require.NoError(t, err)

	_, r1, done1, err := env.Step(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, r1)
	assert.False(t, done1)

	_, r2, done2, err := env.Step(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 2.0, r2)
	assert.True(t, done2)
}

func TestAggregationWeightsSelectedActions(t *testing.T) {
	lm, ok := Named("aggregation")
	require.True(t, ok)
	gm, _, err := ground.New(lm).Ground()
	require.NoError(t, err)

	env := rlenv.New(gm, 0, false)
	_, err = env.Reset()
	require.NoError(t, err)

	_, reward, _, err := env.Step(map[string]any{"a_o1": true, "a_o2": false})
	require.NoError(t, err)
	assert.Equal(t, 1.0, reward)

	env2 := rlenv.New(gm, 0, false)
	_, err = env2.Reset()
	require.NoError(t, err)
	_, reward2, _, err := env2.Step(map[string]any{"a_o1": true, "a_o2": true})
	require.NoError(t, err)
	assert.Equal(t, 3.0, reward2)
}

func TestPreconditionEnforcementFlagsOutOfRangeAction(t *testing.T) {
	lm, ok := Named("precondition-enforcement")
	require.True(t, ok)
	gm, _, err := ground.New(lm).Ground()
	require.NoError(t, err)

	env := rlenv.New(gm, 0, true)
	_, err = env.Reset()
	require.NoError(t, err)

	_, _, _, err = env.Step(map[string]any{"a": int64(7)})
	assert.Error(t, err)

	lenient := rlenv.New(gm, 0, false)
	_, err = lenient.Reset()
	require.NoError(t, err)
	_, _, _, err = lenient.Step(map[string]any{"a": int64(7)})
	assert.NoError(t, err)
}

func TestPOMDPObservationHidesState(t *testing.T) {
	lm, ok := Named("pomdp-observation")
	require.True(t, ok)
	gm, _, err := ground.New(lm).Ground()
	require.NoError(t, err)
	assert.True(t, gm.IsPOMDP())

	env := rlenv.New(gm, 0, false)
	obs, err := env.Reset()
	require.NoError(t, err)

	_, hasObs := obs["o_o1"]
	assert.True(t, hasObs)
	_, hasState := obs["s"]
	assert.False(t, hasState)
}

func TestGrounderWarningOnUndeclaredNonFluent(t *testing.T) {
	lm, ok := Named("grounder-warning")
	require.True(t, ok)
	gm, warnings, err := ground.New(lm).Ground()
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)

	_, declared := gm.GVarToType["q_o1"]
	assert.False(t, declared)
}
