package ir

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports a structurally invalid op detected at append
// time: an index outside its register, or a gate applied with the wrong
// number of targets or parameters.
type ValidationError struct {
	// Code identifies the error category.
	Code ValidationErrorCode

	// Message is a human-readable description.
	Message string

	// Gate names the offending canonical gate, when one is involved.
	Gate string

	// Index is the op's position in the circuit under construction.
	Index int
}

// ValidationErrorCode categorizes validation errors.
type ValidationErrorCode string

const (
	// ErrCodeQubitRange indicates a qubit index outside [0, n_qubits).
	ErrCodeQubitRange ValidationErrorCode = "QUBIT_OUT_OF_RANGE"

	// ErrCodeClbitRange indicates a classical bit index outside [0, n_clbits).
	ErrCodeClbitRange ValidationErrorCode = "CLBIT_OUT_OF_RANGE"

	// ErrCodeArity indicates a target count that doesn't match the gate spec.
	ErrCodeArity ValidationErrorCode = "ARITY_MISMATCH"

	// ErrCodeParamCount indicates a parameter count that doesn't match the gate spec.
	ErrCodeParamCount ValidationErrorCode = "PARAM_COUNT_MISMATCH"

	// ErrCodeDuplicateQubit indicates the same qubit used twice in one instruction.
	ErrCodeDuplicateQubit ValidationErrorCode = "DUPLICATE_QUBIT"
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Gate != "" {
		return fmt.Sprintf("%s: %s (gate=%s, op=%d)", e.Code, e.Message, e.Gate, e.Index)
	}
	return fmt.Sprintf("%s: %s (op=%d)", e.Code, e.Message, e.Index)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UnboundParameterError reports symbolic parameters left unresolved: a
// partial BindParams mapping, or emission into a framework that cannot
// express symbols.
type UnboundParameterError struct {
	// Missing lists the unresolved symbol names, sorted.
	Missing []string

	// Framework names the emission target, when emission raised the error.
	Framework string
}

// Error implements the error interface.
func (e *UnboundParameterError) Error() string {
	syms := strings.Join(e.Missing, ", ")
	if e.Framework != "" {
		return fmt.Sprintf("unbound parameters [%s]: target framework %q does not support symbolic parameters", syms, e.Framework)
	}
	return fmt.Sprintf("unbound parameters [%s]: binding is incomplete", syms)
}

// IsUnboundParameterError reports whether err is (or wraps) an UnboundParameterError.
func IsUnboundParameterError(err error) bool {
	var ue *UnboundParameterError
	return errors.As(err, &ue)
}

// NewUnboundParameterError creates an UnboundParameterError over the given
// symbol names, sorted and deduplicated.
func NewUnboundParameterError(framework string, symbols []string) *UnboundParameterError {
	seen := map[string]bool{}
	var missing []string
	for _, s := range symbols {
		if !seen[s] {
			seen[s] = true
			missing = append(missing, s)
		}
	}
	sort.Strings(missing)
	return &UnboundParameterError{Missing: missing, Framework: framework}
}
