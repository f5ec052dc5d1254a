// Command facet composes, runs and tests facet components.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/facet/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
