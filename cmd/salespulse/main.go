// main is the entry point for the salespulse CLI.
package main

import (
	"github.com/salespulse/salespulse/cmd"
	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/internal/runstore"
)

func main() {
	err := cmd.Execute()

	// Cleanup runs before any fatal exit so the run store closes and
	// profiles flush even on command failure.
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}
	runstore.CloseRunStore()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
