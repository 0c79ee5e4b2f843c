// Package main is the entry point for the zinc CLI tool.
package main

import (
	"os"

	"github.com/teoward/zinc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
