package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/taskman/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()

	// ExitErrors were already reported by the command's formatter.
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}
