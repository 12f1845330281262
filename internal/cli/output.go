package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/quantabase/qmorph/internal/catalog"
	"github.com/quantabase/qmorph/internal/ir"
	"github.com/quantabase/qmorph/internal/store"
	"github.com/quantabase/qmorph/internal/transpile"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Conversion/validation failure (bad program, unmappable gate, etc.)
	ExitCommandError = 2 // Command error (invalid paths, unknown framework, database errors)
)

// Error codes for CLI responses.
const (
	ErrCodeGeneric          = "E001" // Generic/unknown error
	ErrCodeReadFailed       = "E002" // Input read error
	ErrCodeWriteFailed      = "E003" // Output write error
	ErrCodeBadInput         = "E004" // Input is not a valid program payload
	ErrCodeNotFound         = "E005" // Circuit not found in store
	ErrCodeUnknownFramework = "E101" // Framework not registered
	ErrCodeUnrecognized     = "E102" // Native gate outside the catalog
	ErrCodeUnsupported      = "E103" // Canonical gate unmappable in target
	ErrCodeParse            = "E104" // Source program failed to parse
	ErrCodeValidation       = "E105" // Circuit violates structural rules
	ErrCodeUnboundParam     = "E106" // Free parameters at emission
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ClassifyError maps a conversion-pipeline error to a CLI error code and the
// exit code its command should return.
func ClassifyError(err error) (code string, exit int) {
	switch {
	case transpile.IsUnknownFramework(err):
		return ErrCodeUnknownFramework, ExitCommandError
	case catalog.IsUnrecognizedGate(err):
		return ErrCodeUnrecognized, ExitFailure
	case catalog.IsUnsupportedGate(err):
		return ErrCodeUnsupported, ExitFailure
	case transpile.IsAdapterError(err):
		return ErrCodeParse, ExitFailure
	case ir.IsValidationError(err):
		return ErrCodeValidation, ExitFailure
	case ir.IsUnboundParameterError(err):
		return ErrCodeUnboundParam, ExitFailure
	case errors.Is(err, store.ErrNotFound):
		return ErrCodeNotFound, ExitCommandError
	default:
		return ErrCodeGeneric, ExitFailure
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E101", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// fail emits the error through the formatter and returns the matching
// ExitError so cobra propagates the right exit code.
func fail(formatter *OutputFormatter, err error) error {
	code, exit := ClassifyError(err)
	_ = formatter.Error(code, err.Error(), nil)
	return WrapExitError(exit, fmt.Sprintf("%s: %s", code, err.Error()), nil)
}

// failWith emits an explicit code/message pair, for errors that originate in
// the command itself rather than the conversion pipeline.
func failWith(formatter *OutputFormatter, exit int, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(exit, fmt.Sprintf("%s: %s", code, message))
}
