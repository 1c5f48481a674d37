package main

import (
	"os"

	"github.com/grappleflow/grappleflow/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
