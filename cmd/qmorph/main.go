package main

import (
	"fmt"
	"os"

	"github.com/quantabase/qmorph/internal/cli"
)

func main() {
	root, err := cli.NewRootCommand()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCommandError)
	}
	if err := root.Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
