package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantabase/qmorph/internal/transpile"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool   `json:"valid"`
	Framework string `json:"framework"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
	Position  int    `json:"position,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a program parses into valid IR",
		Long: `Parse a source program and report whether it forms a valid circuit,
without converting or emitting anything.

For text frameworks the failure position is a 1-based line number; for
JSON frameworks it is the failing operation's index.

Example:
  qmorph validate --from quil bell.quil`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "source framework (required)")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func runValidate(opts *InspectOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := readProgram(cmd, path)
	if err != nil {
		return failWith(formatter, ExitCommandError, ErrCodeReadFailed, fmt.Sprintf("reading input: %v", err))
	}

	native, err := decodeNative(opts.From, data)
	if err != nil {
		return outputInvalid(formatter, opts.From, ErrCodeBadInput, err.Error(), -1)
	}

	w, err := transpile.Wrap(native, opts.From, opts.Registry)
	if err != nil {
		return fail(formatter, err)
	}

	if _, err := w.IR(); err != nil {
		code, _ := ClassifyError(err)
		position := -1
		var adapterErr *transpile.AdapterError
		if errors.As(err, &adapterErr) {
			position = adapterErr.Position
		}
		return outputInvalid(formatter, opts.From, code, err.Error(), position)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Framework: opts.From})
	}
	fmt.Fprintf(formatter.Writer, "✓ Valid %s program\n", opts.From)
	return nil
}

func outputInvalid(formatter *OutputFormatter, framework, code, message string, position int) error {
	if formatter.Format == "json" {
		_ = formatter.Success(ValidationResult{
			Valid:     false,
			Framework: framework,
			Code:      code,
			Message:   message,
			Position:  position,
		})
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %s", code, message))
	}

	fmt.Fprintf(formatter.Writer, "✗ Invalid %s program\n", framework)
	if position >= 0 {
		fmt.Fprintf(formatter.Writer, "  %s at %d: %s\n", code, position, message)
	} else {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", code, message)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%s: %s", code, message))
}
