package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantabase/qmorph/internal/store"
)

// SaveOptions holds flags for the save command.
type SaveOptions struct {
	*RootOptions
	From     string
	Database string
	Name     string
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SaveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Save a circuit to the local catalog",
		Long: `Parse a source program and save its canonical form to a local SQLite
catalog. Saving is content-addressed: re-saving an identical circuit
returns the existing record instead of inserting a duplicate.

Example:
  qmorph save --from qasm --db ./circuits.db --name bell bell.qasm`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "source framework (required)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database path (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "circuit name")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSave(opts *SaveOptions, path string, cmd *cobra.Command) error {
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

	db, err := store.Open(opts.Database)
	if err != nil {
		return failWith(formatter, ExitCommandError, ErrCodeGeneric, fmt.Sprintf("opening database: %v", err))
	}
	defer db.Close()

	record, err := db.Save(cmd.Context(), opts.Name, opts.From, c)
	if err != nil {
		return fail(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(record)
	}

	fmt.Fprintf(formatter.Writer, "✓ Saved circuit %s\n", record.ID)
	if record.Name != "" {
		fmt.Fprintf(formatter.Writer, "  Name: %s\n", record.Name)
	}
	fmt.Fprintf(formatter.Writer, "  Hash: %s\n", record.Hash)
	fmt.Fprintf(formatter.Writer, "  %d qubit(s), %d op(s)\n", record.NumQubits, record.NumOps)
	return nil
}
