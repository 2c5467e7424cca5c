// Package main is the entry point for the s4m CLI.
package main

import (
	"os"

	"github.com/thoreinstein/s4m/cmd/s4m/commands"
)

func main() {
	os.Exit(commands.Execute())
}
