// Package rlenv implements the Environment (C6): it adapts the Simulator to
// an RL-shaped reset/step contract, building action- and observation-space
// descriptors and enforcing max_allowed_actions and action coercion (§4.3).
package rlenv

import (
	"math"

	"github.com/rddlgo/rddlgo/internal/model"
)

// SpaceKind tags a fluent's range-descriptor shape (§4.3).
type SpaceKind int

const (
	KindDiscrete SpaceKind = iota
	KindBox
)

// Space describes one fluent's action- or observation-space entry. Discrete
// spans [Start, Start+N-1]; Box spans [Low, High] over reals.
type Space struct {
	Kind  SpaceKind
	N     int64
	Start int64
	Low   float64
	High  float64
}

const (
	minInt32 = -2147483648
	maxInt32 = 2147483647
)

// buildSpaces derives a fluent -> Space map from ranges and bounds (§4.3
// "At construction"): `Discrete(2)` for bool, `Discrete(high-low+1,
// start=low)` for int with int32 extremes defaulting unbounded sides, or
// `Box(low, high, real)` for real.
func buildSpaces(names map[string]any, ranges map[string]string, bounds map[string]Bound) map[string]Space {
	out := make(map[string]Space, len(names))
	for name := range names {
		rangeTag := ranges[name]
		b, known := bounds[name]
		if !known {
			b = defaultBound(rangeTag)
		}
		out[name] = buildSpace(rangeTag, b)
	}
	return out
}

// Bound mirrors sim.Bound to avoid rlenv depending on sim's internal type
// identity beyond this DTO boundary.
type Bound struct {
	Low  float64
	High float64
}

// defaultBound is used for fluents the simulator's own Bounds() does not
// cover (observation fluents sit outside the action/state bound analysis)
// so an int-ranged one still gets the int32 extremes rather than a
// spurious [0,0] descriptor.
func defaultBound(rangeTag string) Bound {
	switch rangeTag {
	case "bool":
		return Bound{Low: 0, High: 1}
	case "int":
		return Bound{Low: minInt32, High: maxInt32}
	default:
		return Bound{Low: math.Inf(-1), High: math.Inf(1)}
	}
}

func buildSpace(rangeTag string, b Bound) Space {
	switch rangeTag {
	case "bool":
		return Space{Kind: KindDiscrete, N: 2, Start: 0}
	case "int":
		return Space{Kind: KindDiscrete, N: int64(b.High) - int64(b.Low) + 1, Start: int64(b.Low)}
	default:
		return Space{Kind: KindBox, Low: b.Low, High: b.High}
	}
}

// actionRanges/stateRanges/observRanges are thin accessors so spaces.go does
// not need to import model for anything beyond these lookups.
func actionRanges(m *model.Model) map[string]string { return m.ActionRanges }
func stateRanges(m *model.Model) map[string]string  { return m.StateRanges }
func observRanges(m *model.Model) map[string]string { return m.ObservRanges }
func actionDefaults(m *model.Model) map[string]any  { return m.Actions }
func stateDefaults(m *model.Model) map[string]any   { return m.States }
func observDefaults(m *model.Model) map[string]any  { return m.Observ }
