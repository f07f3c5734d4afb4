// Command rddlsim runs, steps, and serves the scenario fixtures in
// internal/scenarios over the Grounder/Simulator/Environment pipeline,
// grounded on cmd/ailang/main.go's command-dispatch and color-helper
// conventions but rebuilt on cobra instead of the flag package.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Version info, set by ldflags during build.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
}
