// Package main is the entry point for the cloudpool CLI.
package main

import (
	"os"

	"cloudpool/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
