// Package lifted defines the Lifted Model (C2): the structures the external
// parser collaborator (§6, out of scope for RDDLGO) is contracted to
// deliver. Grounder (internal/ground) consumes exactly this shape.
package lifted

import "github.com/rddlgo/rddlgo/internal/ast"

// FluentType classifies a Pvariable (§3).
type FluentType string

const (
	NonFluent     FluentType = "non-fluent"
	StateFluent   FluentType = "state-fluent"
	ActionFluent  FluentType = "action-fluent"
	DerivedFluent FluentType = "derived-fluent"
	IntermFluent  FluentType = "interm-fluent"
	ObservFluent  FluentType = "observ-fluent"
)

// Range constants for the built-in, non-enum ranges (§3). An enum range is
// any string not equal to one of these three, naming a declared enum type.
const (
	RangeReal = "real"
	RangeInt  = "int"
	RangeBool = "bool"
)

// Pvariable is a lifted (parameterized) variable declaration (§3).
type Pvariable struct {
	Name       string
	ParamTypes []string // ordered type names; empty for arity-0
	Range      string
	FluentType FluentType
	Default    any
	Level      *int // nil for non derived/interm fluents, or when undeclared
}

func (p Pvariable) Arity() int { return len(p.ParamTypes) }

// CPF is one conditional probability function: its head (pvar name, with a
// trailing prime for a next-state CPF) and its lifted argument names, plus
// its defining expression (§6: "Each CPF has pvar = (head-name,
// arg-list-or-null) and expr").
type CPF struct {
	Head     string
	HeadArgs []string // nil for arity-0
	Expr     ast.Expr
}

// TypeEntry mirrors objects.TypeEntry to avoid lifted depending on the
// grounder's choice of universe representation beyond this DTO boundary.
type TypeEntry struct {
	Type    string
	Objects []string
}

// NonFluentInit is one `(name, args) = value` entry from the non-fluents
// init block (§4.1 phase 2).
type NonFluentInit struct {
	Name  string
	Args  []string
	Value any
}

// NonFluents is the `non_fluents` block of the AST contract (§6).
type NonFluents struct {
	Objects       []TypeEntry
	InitNonFluent []NonFluentInit
}

// Domain is the `domain` block of the AST contract (§6).
type Domain struct {
	Pvariables       []Pvariable
	CPFs             []CPF // next-state CPFs, head = name + "'"
	DerivedCPFs      []CPF
	IntermediateCPFs []CPF
	ObservationCPFs  []CPF
	Reward           ast.Expr
	Preconds         []ast.Expr
	Invariants       []ast.Expr
	Terminals        []ast.Expr
	Constraints      []ast.Expr // legacy state-action constraints; warn + ignore (§4.1 phase 5)
}

// MaxActions is `instance.max_nondef_actions`: either an integer literal or
// the literal `pos-inf` (§6).
type MaxActions struct {
	PosInf bool
	N      int
}

// InitStateEntry is one `instance.init_state` entry (§6).
type InitStateEntry struct {
	Name  string
	Args  []string
	Value any
}

// Instance is the `instance` block of the AST contract (§6).
type Instance struct {
	Horizon          int
	Discount         float64
	MaxNonDefActions MaxActions
	InitState        []InitStateEntry
	NonFluents       NonFluents
}

// Model bundles Domain and Instance: the complete input the Grounder
// consumes (§4.1 "Contract").
type Model struct {
	Domain   Domain
	Instance Instance
}
