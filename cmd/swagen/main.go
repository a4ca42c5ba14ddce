// Command swagen generates API clients from API definitions.
package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"

	"github.com/mark3labs/swagen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		pterm.Error.WithWriter(os.Stderr).Println(cli.Message(err))
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
