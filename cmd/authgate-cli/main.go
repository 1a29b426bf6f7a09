// Package main provides the entry point for authgate-cli.
//
// authgate-cli is the command-line client for authgate, covering login,
// token-cached API calls, and identity inspection.
package main

import (
	"fmt"
	"os"

	"github.com/authgate-io/authgate/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
