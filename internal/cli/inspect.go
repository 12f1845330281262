package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quantabase/qmorph/internal/ir"
	"github.com/quantabase/qmorph/internal/transpile"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	From string
}

// InspectResult is the JSON payload for circuit introspection.
type InspectResult struct {
	Framework  string   `json:"framework"`
	Qubits     int      `json:"qubits"`
	Clbits     int      `json:"clbits"`
	Ops        int      `json:"ops"`
	Depth      int      `json:"depth"`
	FreeParams []string `json:"free_params,omitempty"`
	Hash       string   `json:"hash"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show circuit structure and content hash",
		Long: `Parse a circuit and report its framework-agnostic structure:
register sizes, operation count, depth, free parameters, and the
canonical content hash.

Example:
  qmorph inspect --from qasm bell.qasm`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "source framework (required)")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func runInspect(opts *InspectOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	c, err := parseCircuit(opts.RootOptions, cmd, opts.From, path, formatter)
	if err != nil {
		return err
	}

	hash, err := ir.Hash(c)
	if err != nil {
		return failWith(formatter, ExitFailure, ErrCodeGeneric, err.Error())
	}

	result := InspectResult{
		Framework:  opts.From,
		Qubits:     c.NumQubits(),
		Clbits:     c.NumClbits(),
		Ops:        c.Len(),
		Depth:      c.Depth(),
		FreeParams: c.FreeParams(),
		Hash:       hash,
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "Framework:   %s\n", result.Framework)
	fmt.Fprintf(formatter.Writer, "Qubits:      %d\n", result.Qubits)
	fmt.Fprintf(formatter.Writer, "Clbits:      %d\n", result.Clbits)
	fmt.Fprintf(formatter.Writer, "Operations:  %d\n", result.Ops)
	fmt.Fprintf(formatter.Writer, "Depth:       %d\n", result.Depth)
	if len(result.FreeParams) > 0 {
		fmt.Fprintf(formatter.Writer, "Free params: %s\n", strings.Join(result.FreeParams, ", "))
	}
	fmt.Fprintf(formatter.Writer, "Hash:        %s\n", result.Hash)
	return nil
}

// parseCircuit reads, decodes, and parses a source program, emitting
// formatter errors on failure. Shared by inspect, validate, and save.
func parseCircuit(opts *RootOptions, cmd *cobra.Command, framework, path string, formatter *OutputFormatter) (*ir.Circuit, error) {
	data, err := readProgram(cmd, path)
	if err != nil {
		return nil, failWith(formatter, ExitCommandError, ErrCodeReadFailed, fmt.Sprintf("reading input: %v", err))
	}

	native, err := decodeNative(framework, data)
	if err != nil {
		return nil, failWith(formatter, ExitCommandError, ErrCodeBadInput, err.Error())
	}

	w, err := transpile.Wrap(native, framework, opts.Registry)
	if err != nil {
		return nil, fail(formatter, err)
	}

	c, err := w.IR()
	if err != nil {
		return nil, fail(formatter, err)
	}
	return c, nil
}
