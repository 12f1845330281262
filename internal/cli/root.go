// Package cli implements the qmorph command line interface: converting
// circuits between frameworks, inspecting their canonical form, and keeping
// a local catalog of saved circuits.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantabase/qmorph/internal/frameworks"
	"github.com/quantabase/qmorph/internal/transpile"
)

// RootOptions holds global flags and shared state for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Registry *transpile.Registry
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the qmorph CLI.
func NewRootCommand() (*cobra.Command, error) {
	reg := transpile.New()
	if err := frameworks.RegisterAll(reg); err != nil {
		return nil, fmt.Errorf("register frameworks: %w", err)
	}
	opts := &RootOptions{Registry: reg}

	cmd := &cobra.Command{
		Use:   "qmorph",
		Short: "qmorph - quantum circuit converter",
		Long:  "Convert quantum circuits between frameworks through a canonical intermediate representation.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewGatesCommand(opts))
	cmd.AddCommand(NewSaveCommand(opts))
	cmd.AddCommand(NewListCommand(opts))

	return cmd, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
