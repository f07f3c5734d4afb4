package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rddlgo/rddlgo/internal/httpenv"
)

func newServeCmd() *cobra.Command {
	var scenario, configPath string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose a scenario's episode lifecycle as a REST service",
		RunE: func(cmd *cobra.Command, args []string) error {
			gm, cfg, err := loadScenario(scenario, configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("%s serving %q on :%d\n", cyan("→"), scenario, port)
			err = httpenv.Run(ctx, httpenv.Config{
				Port:                     port,
				Model:                    gm,
				Seed:                     cfg.Seed,
				EnforceActionConstraints: cfg.EnforceActionConstraints,
			})
			if err != nil && ctx.Err() != nil {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&scenario, "scenario", "", "scenario name (see 'rddlsim version --scenarios')")
	cmd.Flags().StringVar(&configPath, "config", "", "optional scenario.yml path")
	cmd.Flags().IntVar(&port, "port", 8080, "listen port")
	cmd.MarkFlagRequired("scenario")

	return cmd
}
