package transpile

import (
	"errors"
	"fmt"
)

// UnknownFrameworkError reports a Registry miss: the framework identifier
// has no registered adapter/emitter pair.
type UnknownFrameworkError struct {
	// Framework is the identifier that failed to resolve.
	Framework string

	// Known lists the registered identifiers at the time of the miss.
	Known []string
}

// Error implements the error interface.
func (e *UnknownFrameworkError) Error() string {
	if len(e.Known) > 0 {
		return fmt.Sprintf("unknown framework %q: registered frameworks are %v", e.Framework, e.Known)
	}
	return fmt.Sprintf("unknown framework %q: no frameworks registered", e.Framework)
}

// IsUnknownFramework reports whether err is (or wraps) an UnknownFrameworkError.
func IsUnknownFramework(err error) bool {
	var ue *UnknownFrameworkError
	return errors.As(err, &ue)
}

// AdapterError wraps a native-framework-side failure so faults stay
// localizable: it carries the framework identifier and the position of the
// offending instruction (a line number for text formats, an op index for
// structured ones; -1 when no position applies).
type AdapterError struct {
	Framework string
	Position  int
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *AdapterError) Error() string {
	pos := ""
	if e.Position >= 0 {
		pos = fmt.Sprintf(" at position %d", e.Position)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s adapter%s: %s: %v", e.Framework, pos, e.Message, e.Err)
	}
	return fmt.Sprintf("%s adapter%s: %s", e.Framework, pos, e.Message)
}

// Unwrap returns the underlying native-side error.
func (e *AdapterError) Unwrap() error {
	return e.Err
}

// IsAdapterError reports whether err is (or wraps) an AdapterError.
func IsAdapterError(err error) bool {
	var ae *AdapterError
	return errors.As(err, &ae)
}

// NewAdapterError creates an AdapterError with a position.
// Use position -1 when the fault has no meaningful location.
func NewAdapterError(framework string, position int, message string, err error) *AdapterError {
	return &AdapterError{Framework: framework, Position: position, Message: message, Err: err}
}
