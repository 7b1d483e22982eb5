package main

import (
	"os"

	"nostrium/cmd/nostrium/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
