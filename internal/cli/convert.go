package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantabase/qmorph/internal/transpile"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	From   string
	To     string
	Output string // output file path
}

// ConvertResult is the JSON payload for a successful conversion.
type ConvertResult struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Qubits  int    `json:"qubits"`
	Clbits  int    `json:"clbits"`
	Ops     int    `json:"ops"`
	Program string `json:"program"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a circuit between frameworks",
		Long: `Convert a circuit from one framework to another through the canonical IR.

The input file holds the source program (use "-" for stdin): program text
for qasm and quil, a JSON payload for ionq and braket. The converted
program is written to stdout, or to --output.

Example:
  qmorph convert --from qasm --to quil bell.qasm
  qmorph convert --from quil --to ionq bell.quil -o bell.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "source framework (required)")
	cmd.Flags().StringVar(&opts.To, "to", "", "target framework (required)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runConvert(opts *ConvertOptions, path string, cmd *cobra.Command) error {
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
		return failWith(formatter, ExitCommandError, ErrCodeBadInput, err.Error())
	}

	w, err := transpile.Wrap(native, opts.From, opts.Registry)
	if err != nil {
		return fail(formatter, err)
	}

	c, err := w.IR()
	if err != nil {
		return fail(formatter, err)
	}
	formatter.VerboseLog("Parsed %s circuit: %d qubit(s), %d op(s)", opts.From, c.NumQubits(), c.Len())

	out, err := w.Transpile(opts.To)
	if err != nil {
		return fail(formatter, err)
	}

	program, err := renderNative(out)
	if err != nil {
		return failWith(formatter, ExitFailure, ErrCodeGeneric, err.Error())
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(program), 0644); err != nil {
			return failWith(formatter, ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(ConvertResult{
			From:    opts.From,
			To:      opts.To,
			Qubits:  c.NumQubits(),
			Clbits:  c.NumClbits(),
			Ops:     c.Len(),
			Program: program,
		})
	}

	if opts.Output != "" {
		fmt.Fprintf(formatter.Writer, "Wrote %s program to %s\n", opts.To, opts.Output)
		return nil
	}
	fmt.Fprint(formatter.Writer, program)
	return nil
}
