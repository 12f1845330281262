package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quantabase/qmorph/internal/catalog"
)

// GatesOptions holds flags for the gates command.
type GatesOptions struct {
	*RootOptions
	Framework string
}

// GateRow is one gate's catalog entry in the JSON payload.
type GateRow struct {
	Gate   string            `json:"gate"`
	Arity  int               `json:"arity"`
	Params int               `json:"params"`
	Names  map[string]string `json:"names,omitempty"`
}

// NewGatesCommand creates the gates command.
func NewGatesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GatesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "gates",
		Short: "List the canonical gate vocabulary",
		Long: `List every gate in the canonical vocabulary with its arity and
parameter count. With --framework, also show each gate's native spelling
in that framework; gates the framework cannot express are marked "-".

Example:
  qmorph gates
  qmorph gates --framework quil`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGates(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Framework, "framework", "", "show native names for this framework")

	return cmd
}

func runGates(opts *GatesOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cat := catalog.Default()

	if opts.Framework != "" {
		known := false
		for _, fw := range cat.Frameworks() {
			if fw == opts.Framework {
				known = true
				break
			}
		}
		if !known {
			return failWith(formatter, ExitCommandError, ErrCodeUnknownFramework,
				fmt.Sprintf("unknown framework %q: known frameworks are %v", opts.Framework, cat.Frameworks()))
		}
	}

	rows := make([]GateRow, 0)
	for _, spec := range cat.Gates() {
		row := GateRow{Gate: spec.Name, Arity: spec.Arity, Params: spec.ParamCount}
		if opts.Framework != "" {
			row.Names = make(map[string]string)
			for controls := 0; controls <= 2; controls++ {
				native, err := cat.NativeName(spec.Name, controls, opts.Framework)
				if err != nil {
					continue
				}
				row.Names[fmt.Sprintf("controls_%d", controls)] = native
			}
		}
		rows = append(rows, row)
	}

	if formatter.Format == "json" {
		return formatter.Success(rows)
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	if opts.Framework != "" {
		fmt.Fprintf(tw, "GATE\tARITY\tPARAMS\t%s\n", opts.Framework)
		for _, row := range rows {
			native := row.Names["controls_0"]
			if native == "" {
				native = "-"
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", row.Gate, row.Arity, row.Params, native)
		}
	} else {
		fmt.Fprintln(tw, "GATE\tARITY\tPARAMS")
		for _, row := range rows {
			fmt.Fprintf(tw, "%s\t%d\t%d\n", row.Gate, row.Arity, row.Params)
		}
	}
	return tw.Flush()
}
