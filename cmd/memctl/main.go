package main

import (
	"os"

	"github.com/danielmriley/aigent-sub002/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
