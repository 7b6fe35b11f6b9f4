package main

import (
	"os"

	"libauth/cmd/libauth/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(commands.ExitCode(err))
	}
}
