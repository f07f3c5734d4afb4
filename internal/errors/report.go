package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Report is the canonical structured error type for RDDLGO.
// All error builders should return *Report, which can be wrapped as ReportError.
type Report struct {
	Schema  string         `json:"schema"`          // Always "rddlgo.error/v1"
	Code    string         `json:"code"`            // Error code (GRD001, SIM003, etc.)
	Phase   string         `json:"phase"`            // Phase: "ground", "sim", "env", "fuzzy"
	Message string         `json:"message"`         // Human-readable message
	Fluent  string         `json:"fluent,omitempty"` // Grounded fluent name, when applicable
	Data    map[string]any `json:"data,omitempty"`  // Structured data (sorted keys)
	Fix     *Fix           `json:"fix,omitempty"`   // Suggested fix (optional)
}

// Fix represents a suggested fix for a Report, with a confidence score.
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// ReportError wraps a Report as an error
// This allows structured reports to survive errors.As() unwrapping
type ReportError struct {
	Rep *Report
}

// Error implements the error interface
func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport attempts to extract a Report from an error chain
// Returns the Report and true if found, nil and false otherwise
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as a ReportError
// Call sites should return errors.WrapReport(report) to preserve structure
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON converts a Report to JSON (deterministic, sorted keys)
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error

	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}

	if err != nil {
		return "", err
	}
	return string(data), nil
}

// New builds a Report for the given code, deriving its phase from the
// ErrorRegistry, and formats Message with fmt.Sprintf semantics.
func New(code string, format string, args ...any) *Report {
	info, _ := GetErrorInfo(code)
	return &Report{
		Schema:  "rddlgo.error/v1",
		Code:    code,
		Phase:   info.Phase,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithFluent attaches the grounded fluent name this report concerns.
func (r *Report) WithFluent(name string) *Report {
	r.Fluent = name
	return r
}

// WithData merges key/value pairs into the report's structured data.
func (r *Report) WithData(kv map[string]any) *Report {
	if r.Data == nil {
		r.Data = map[string]any{}
	}
	for k, v := range kv {
		r.Data[k] = v
	}
	return r
}

// NewGeneric creates a generic error report for runtime errors outside the
// known taxonomy (e.g. a wrapped os/io failure surfaced through the CLI).
func NewGeneric(phase string, err error) *Report {
	return &Report{
		Schema:  "rddlgo.error/v1",
		Code:    "RUNTIME",
		Phase:   phase,
		Message: err.Error(),
		Data:    map[string]any{},
	}
}
