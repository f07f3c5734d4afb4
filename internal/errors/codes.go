// Package errors provides centralized, structured error reporting for
// RDDLGO. All error codes follow a consistent per-phase taxonomy (§7 of the
// spec) so tooling and tests can classify failures without string matching.
package errors

// Error code constants organized by phase. Each constant represents a
// specific error condition with structured reporting via Report.
const (
	// ============================================================================
	// Grounder errors (GRD###)
	// ============================================================================

	// GRD001 indicates a reference to an undeclared object, type, or pvariable.
	GRD001 = "GRD001"

	// GRD002 indicates a fluent requiring a CPF has none defined.
	GRD002 = "GRD002"

	// GRD003 indicates a pvariable arity mismatch during grounding.
	GRD003 = "GRD003"

	// GRD004 indicates a malformed AST node, or a same-level CPF dependency cycle.
	GRD004 = "GRD004"

	// GRD005 indicates an unknown or incompatible range tag.
	GRD005 = "GRD005"

	// GRD006 indicates horizon < 0 or discount outside [0,1].
	GRD006 = "GRD006"

	// ============================================================================
	// Simulator errors (SIM###)
	// ============================================================================

	// SIM001 indicates division by zero or integer overflow during evaluation.
	SIM001 = "SIM001"

	// SIM002 indicates a random variable was given an invalid parameterization
	// (e.g. a Discrete distribution with negative weights).
	SIM002 = "SIM002"

	// SIM003 indicates a state invariant evaluated false after a step.
	SIM003 = "SIM003"

	// SIM004 indicates an action precondition evaluated false.
	SIM004 = "SIM004"

	// ============================================================================
	// Environment errors (ENV###)
	// ============================================================================

	// ENV001 indicates more actions were supplied than max_allowed_actions permits.
	ENV001 = "ENV001"

	// ENV002 indicates an action or range value of the wrong declared type.
	ENV002 = "ENV002"

	// ============================================================================
	// Fuzzy compiler errors (FUZ###)
	// ============================================================================

	// FUZ001 indicates a random-variable family with no supported relaxation
	// (Poisson, Gamma) was reached during fuzzy compilation.
	FUZ001 = "FUZ001"
)

// ErrorInfo provides structured information about an error code.
type ErrorInfo struct {
	Code        string
	Phase       string
	Category    string
	Description string
}

// ErrorRegistry maps error codes to their information.
var ErrorRegistry = map[string]ErrorInfo{
	GRD001: {GRD001, "ground", "scope", "Undefined variable"},
	GRD002: {GRD002, "ground", "cpf", "Missing CPF definition"},
	GRD003: {GRD003, "ground", "arity", "Invalid number of arguments"},
	GRD004: {GRD004, "ground", "structure", "Invalid expression or CPF cycle"},
	GRD005: {GRD005, "ground", "type", "Type mismatch"},
	GRD006: {GRD006, "ground", "range", "Value out of range"},

	SIM001: {SIM001, "sim", "arithmetic", "Arithmetic error"},
	SIM002: {SIM002, "sim", "distribution", "Invalid distribution"},
	SIM003: {SIM003, "sim", "constraint", "Invariant violated"},
	SIM004: {SIM004, "sim", "constraint", "Precondition violated"},

	ENV001: {ENV001, "env", "arity", "Invalid argument count"},
	ENV002: {ENV002, "env", "type", "Type mismatch"},

	FUZ001: {FUZ001, "fuzzy", "unsupported", "Not implemented"},
}

// GetErrorInfo returns information about an error code.
func GetErrorInfo(code string) (ErrorInfo, bool) {
	info, exists := ErrorRegistry[code]
	return info, exists
}

// IsGrounderError reports whether the code belongs to the grounder phase.
func IsGrounderError(code string) bool {
	info, exists := GetErrorInfo(code)
	return exists && info.Phase == "ground"
}

// IsSimulatorError reports whether the code belongs to the simulator phase.
func IsSimulatorError(code string) bool {
	info, exists := GetErrorInfo(code)
	return exists && info.Phase == "sim"
}
