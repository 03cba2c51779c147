package main

import (
	"os"

	"github.com/lthoerner/imei-info/cmd/imeiinfo/commands"
)

// main is entry point of application.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
