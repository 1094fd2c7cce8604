package main

import (
	"os"

	"github.com/ariel-frischer/releasekit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
