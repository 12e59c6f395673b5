// main is the entry point for the churnscope CLI.
package main

import (
	"github.com/retainly/churnscope/cmd"
	"github.com/retainly/churnscope/internal/contract"
	"github.com/retainly/churnscope/internal/store"
)

func main() {
	err := cmd.Execute()

	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}

	// Close before exiting; LogFatal calls os.Exit, which skips defers.
	store.CloseStore()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
