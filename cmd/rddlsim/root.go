package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rddlgo/rddlgo/internal/config"
	"github.com/rddlgo/rddlgo/internal/ground"
	"github.com/rddlgo/rddlgo/internal/model"
	"github.com/rddlgo/rddlgo/internal/scenarios"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rddlsim",
		Short: "Ground, step, and serve RDDLGO scenario fixtures",
		Long: bold("RDDLGO") + ` - a PPDL/RDDL probabilistic-planning simulator.

Pick a scenario from "rddlsim version --scenarios" and drive it with the
run, repl, or serve subcommands.`,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newReplCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// loadScenario resolves a scenario name to a Grounded Model, applying any
// scenario.yml overrides and printing grounder warnings to stdout.
func loadScenario(name, configPath string) (*model.Model, *config.Scenario, error) {
	lm, ok := scenarios.Named(name)
	if !ok {
		return nil, nil, fmt.Errorf("unknown scenario %q, want one of: %s", name, strings.Join(sortedNames(), ", "))
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	gm, warnings, err := ground.New(lm).Ground()
	if err != nil {
		return nil, nil, fmt.Errorf("grounding %q: %w", name, err)
	}
	for _, w := range warnings {
		fmt.Printf("%s %s\n", yellow("warning:"), w.String())
	}

	gm.Horizon = cfg.ResolveHorizon(gm.Horizon)
	return gm, cfg, nil
}

func sortedNames() []string {
	names := append([]string{}, scenarios.Names()...)
	sort.Strings(names)
	return names
}
