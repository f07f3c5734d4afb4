package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rddlgo/rddlgo/internal/repl"
)

func newReplCmd() *cobra.Command {
	var scenario, configPath string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Step a scenario interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			gm, cfg, err := loadScenario(scenario, configPath)
			if err != nil {
				return err
			}
			repl.New(gm, cfg.Seed, cfg.EnforceActionConstraints, Version).Start(os.Stdout)
			return nil
		},
	}

	cmd.Flags().StringVar(&scenario, "scenario", "", "scenario name (see 'rddlsim version --scenarios')")
	cmd.Flags().StringVar(&configPath, "config", "", "optional scenario.yml path")
	cmd.MarkFlagRequired("scenario")

	return cmd
}
