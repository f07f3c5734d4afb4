// Package model defines the Grounded Model (C4): the closed catalog of
// grounded fluents, their ranges, defaults, per-fluent CPF, stratification
// levels, reward, constraints, and rollout parameters produced once by the
// Grounder and never mutated afterward (§3 "Lifecycles").
package model

import (
	"sort"

	"github.com/rddlgo/rddlgo/internal/ast"
	"github.com/rddlgo/rddlgo/internal/objects"
)

// Model is the Grounded Model. It is built once by internal/ground and is
// immutable for the rest of the program's life.
type Model struct {
	Universe *objects.Universe

	NonFluents map[string]any

	States      map[string]any
	StateRanges map[string]string
	NextState   map[string]string // state name -> primed name
	PrevState   map[string]string // primed name -> state name
	InitState   map[string]any

	Actions      map[string]any
	ActionRanges map[string]string

	Derived map[string]any
	Interm  map[string]any

	Observ       map[string]any
	ObservRanges map[string]string

	// CPFs maps a next-state name (for state fluents), or a plain grounded
	// name (for derived/interm/observation fluents), to its defining
	// expression, already closed over grounded variable names only (§3).
	CPFs map[string]ast.Expr

	// CPFOrder maps stratification level to the ordered grounded names
	// evaluated at that level; level 0 always holds every (unprimed) state
	// fluent, whose next-state CPF is evaluated there, and every observation
	// fluent (§4.1, §4.2).
	CPFOrder       map[int][]string
	GVarToCPFOrder map[string]int

	Reward        ast.Expr
	Preconditions []ast.Expr
	Invariants    []ast.Expr
	Terminals     []ast.Expr

	MaxAllowedActions int
	Horizon           int
	Discount          float64

	// Reverse indices (supplemented from RDDLGrounder.py's gvar_to_pvar /
	// gvar_to_type): every grounded name maps back to its lifted base name
	// and declared range (§8 property #2).
	GVarToPVar map[string]string
	GVarToType map[string]string
}

// New returns an empty Model with every map initialized, ready for the
// Grounder to populate.
func New() *Model {
	return &Model{
		NonFluents:     map[string]any{},
		States:         map[string]any{},
		StateRanges:    map[string]string{},
		NextState:      map[string]string{},
		PrevState:      map[string]string{},
		InitState:      map[string]any{},
		Actions:        map[string]any{},
		ActionRanges:   map[string]string{},
		Derived:        map[string]any{},
		Interm:         map[string]any{},
		Observ:         map[string]any{},
		ObservRanges:   map[string]string{},
		CPFs:           map[string]ast.Expr{},
		CPFOrder:       map[int][]string{0: {}},
		GVarToCPFOrder: map[string]int{},
		GVarToPVar:     map[string]string{},
		GVarToType:     map[string]string{},
	}
}

// BaseOf returns the lifted pvariable name a grounded name was produced
// from (§8 property #2).
func (m *Model) BaseOf(grounded string) (string, bool) {
	base, ok := m.GVarToPVar[grounded]
	return base, ok
}

// RangeOf returns the declared range of a grounded name.
func (m *Model) RangeOf(grounded string) (string, bool) {
	r, ok := m.GVarToType[grounded]
	return r, ok
}

// IsPOMDP reports whether the program declares any observation fluent
// (§4.2 "isPOMDP").
func (m *Model) IsPOMDP() bool {
	return len(m.Observ) > 0
}

// Levels returns the declared stratification levels in ascending order.
func (m *Model) Levels() []int {
	levels := make([]int, 0, len(m.CPFOrder))
	for l := range m.CPFOrder {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	return levels
}
