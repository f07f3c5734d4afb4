package main

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rddlgo/rddlgo/internal/rlenv"
	"github.com/rddlgo/rddlgo/internal/scenarios"
)

func TestRandomActionsStaysWithinDiscreteRange(t *testing.T) {
	spaces := map[string]rlenv.Space{
		"flip": {Kind: rlenv.KindDiscrete, N: 2, Start: 0},
		"a":    {Kind: rlenv.KindDiscrete, N: 6, Start: 0},
	}
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		actions := randomActions(spaces, rng)
		flip := actions["flip"].(int64)
		assert.True(t, flip == 0 || flip == 1)
		a := actions["a"].(int64)
		assert.True(t, a >= 0 && a < 6)
	}
}

func TestRandomActionsHandlesUnboundedBox(t *testing.T) {
	spaces := map[string]rlenv.Space{
		"x": {Kind: rlenv.KindBox, Low: math.Inf(-1), High: math.Inf(1)},
	}
	rng := rand.New(rand.NewPCG(3, 4))
	actions := randomActions(spaces, rng)
	x := actions["x"].(float64)
	assert.False(t, math.IsNaN(x) || math.IsInf(x, 0))
}

func TestSortedNamesIncludesEveryScenario(t *testing.T) {
	names := sortedNames()
	assert.Contains(t, names, "boolean-toggle")
	assert.Contains(t, names, "grounder-warning")
	for _, name := range scenarios.Names() {
		assert.Contains(t, names, name)
	}
}
