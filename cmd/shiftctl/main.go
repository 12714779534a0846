package main

import (
	"os"

	"shiftdesk/cmd/shiftctl/commands"
)

func main() {
	// Errors are printed by the printer package.
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
